package crosspost

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/xbnstudios/furcast-nsfw-bot/core/config"
)

type sentMessage struct {
	chat tele.Recipient
	text string
	opts *tele.SendOptions
}

type fakeGateway struct {
	forwardErr error
	sendErr    map[int]error // by 0-based send ordinal

	forwards []tele.Recipient
	sends    []sentMessage

	nextID int
}

func (g *fakeGateway) Forward(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error) {
	g.forwards = append(g.forwards, to)
	if g.forwardErr != nil {
		return nil, g.forwardErr
	}
	g.nextID++
	return &tele.Message{
		ID:   g.nextID,
		Chat: &tele.Chat{ID: recipientID(to)},
	}, nil
}

func (g *fakeGateway) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	ordinal := len(g.sends)
	var sp *tele.SendOptions
	for _, o := range opts {
		if v, ok := o.(*tele.SendOptions); ok {
			sp = v
		}
	}
	g.sends = append(g.sends, sentMessage{chat: to, text: fmt.Sprint(what), opts: sp})
	if err, ok := g.sendErr[ordinal]; ok {
		return nil, err
	}
	g.nextID++
	return &tele.Message{
		ID:   g.nextID,
		Chat: &tele.Chat{ID: recipientID(to)},
	}, nil
}

func recipientID(r tele.Recipient) int64 {
	var id int64
	_, _ = fmt.Sscan(r.Recipient(), &id)
	return id
}

var testChats = coreconfig.ChatSet{
	Main:   -1001000000001,
	NSFW:   -1001000000002,
	Invite: -1001000000002,
	Admin:  -1001000000003,
}

func testMedia() *tele.Message {
	return &tele.Message{
		ID:     42,
		Chat:   &tele.Chat{ID: 99},
		Sender: &tele.User{ID: 7, FirstName: "Riley <3"},
	}
}

func TestPostProducesThreeMessages(t *testing.T) {
	gw := &fakeGateway{}
	e := NewEngine(gw, testChats, "some_bot")

	res, err := e.Post(context.Background(), testMedia(), "cute wolf")
	if err != nil {
		t.Fatalf("post: %v", err)
	}

	if len(gw.forwards) != 1 || recipientID(gw.forwards[0]) != testChats.NSFW {
		t.Fatalf("forward targets = %v, want the restricted channel", gw.forwards)
	}
	if len(gw.sends) != 2 {
		t.Fatalf("sends = %d, want 2", len(gw.sends))
	}

	announce := gw.sends[0]
	if recipientID(announce.chat) != testChats.Main {
		t.Fatalf("announcement went to %v", announce.chat)
	}
	if !strings.Contains(announce.text, "cute wolf") {
		t.Fatalf("announcement missing description: %q", announce.text)
	}
	if !strings.Contains(announce.text, res.ForwardLink) {
		t.Fatalf("announcement missing forward link: %q", announce.text)
	}
	if !strings.Contains(announce.text, "https://t.me/some_bot") {
		t.Fatalf("announcement missing bot link: %q", announce.text)
	}
	// Display names are HTML-escaped before interpolation.
	if !strings.Contains(announce.text, "Riley &lt;3") || strings.Contains(announce.text, "Riley <3") {
		t.Fatalf("display name not escaped: %q", announce.text)
	}

	follow := gw.sends[1]
	if recipientID(follow.chat) != testChats.NSFW {
		t.Fatalf("context post went to %v", follow.chat)
	}
	if !strings.Contains(follow.text, res.AnnounceLink) {
		t.Fatalf("context post missing announcement link: %q", follow.text)
	}

	for i, s := range gw.sends {
		if s.opts == nil || !s.opts.DisableNotification || s.opts.ParseMode != tele.ModeHTML {
			t.Fatalf("send %d options = %+v, want silent HTML", i, s.opts)
		}
	}
}

func TestPostForwardFailureSendsNothing(t *testing.T) {
	gw := &fakeGateway{forwardErr: errors.New("not enough rights")}
	e := NewEngine(gw, testChats, "some_bot")

	_, err := e.Post(context.Background(), testMedia(), "desc")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(gw.sends) != 0 {
		t.Fatalf("sends = %d, want none after a failed forward", len(gw.sends))
	}
}

func TestPostAnnounceFailurePropagates(t *testing.T) {
	gw := &fakeGateway{sendErr: map[int]error{0: errors.New("blocked")}}
	e := NewEngine(gw, testChats, "some_bot")

	_, err := e.Post(context.Background(), testMedia(), "desc")
	if err == nil {
		t.Fatal("expected error")
	}
	if len(gw.sends) != 1 {
		t.Fatalf("sends = %d, want the failed announcement only", len(gw.sends))
	}
}

func TestPostNilMedia(t *testing.T) {
	e := NewEngine(&fakeGateway{}, testChats, "some_bot")
	if _, err := e.Post(context.Background(), nil, "desc"); err == nil {
		t.Fatal("expected error for nil media")
	}
}
