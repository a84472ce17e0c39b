package bot

import (
	"errors"
	"testing"

	tele "gopkg.in/telebot.v4"
)

type fakeGateway struct {
	member    *tele.ChatMember
	memberErr error
}

func (f *fakeGateway) Forward(to tele.Recipient, msg tele.Editable, opts ...interface{}) (*tele.Message, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGateway) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGateway) Delete(msg tele.Editable) error { return nil }

func (f *fakeGateway) ChatByID(id int64) (*tele.Chat, error) { return nil, errors.New("no chat") }

func (f *fakeGateway) InviteLink(chat *tele.Chat) (string, error) { return "", errors.New("no rights") }

func (f *fakeGateway) ChatMemberOf(chat, user tele.Recipient) (*tele.ChatMember, error) {
	return f.member, f.memberErr
}

func TestMoveDescription(t *testing.T) {
	if got := moveDescription(""); got != "(moved from main chat)" {
		t.Fatalf("empty payload: %q", got)
	}
	got := moveDescription("anthro mouse <3")
	want := "anthro mouse &lt;3 (moved from main chat)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMemberRole(t *testing.T) {
	for _, role := range []tele.MemberStatus{tele.Member, tele.Administrator, tele.Creator} {
		if !memberRole(role) {
			t.Errorf("role %q should grant access", role)
		}
	}
	for _, role := range []tele.MemberStatus{tele.Left, tele.Kicked, tele.Restricted} {
		if memberRole(role) {
			t.Errorf("role %q should not grant access", role)
		}
	}
}

func TestIsChatop(t *testing.T) {
	user := &tele.User{ID: 7}

	app := &App{gw: &fakeGateway{member: &tele.ChatMember{Role: tele.Creator}}}
	if !app.isChatop(user) {
		t.Fatal("creator should be chatop")
	}

	app = &App{gw: &fakeGateway{member: &tele.ChatMember{
		Role:   tele.Administrator,
		Rights: tele.Rights{CanDeleteMessages: true},
	}}}
	if !app.isChatop(user) {
		t.Fatal("admin with delete rights should be chatop")
	}

	app = &App{gw: &fakeGateway{member: &tele.ChatMember{Role: tele.Member}}}
	if app.isChatop(user) {
		t.Fatal("plain member must not be chatop")
	}

	app = &App{gw: &fakeGateway{memberErr: errors.New("bad request")}}
	if app.isChatop(user) {
		t.Fatal("lookup failure must not grant rights")
	}
}
