package invite

import (
	"context"
	"errors"
	"testing"

	tele "gopkg.in/telebot.v4"
)

type fakeExporter struct {
	chat      *tele.Chat
	chatErr   error
	link      string
	linkErr   error
	linkCalls int
}

func (f *fakeExporter) ChatByID(id int64) (*tele.Chat, error) {
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return f.chat, nil
}

func (f *fakeExporter) InviteLink(chat *tele.Chat) (string, error) {
	f.linkCalls++
	return f.link, f.linkErr
}

func TestRotateStoresNewLink(t *testing.T) {
	cell := NewCell("https://t.me/+old")
	gw := &fakeExporter{link: "https://t.me/+new"}

	got, err := cell.Rotate(context.Background(), gw, -100)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if got != "https://t.me/+new" || cell.Get() != got {
		t.Fatalf("link = %q, cell = %q", got, cell.Get())
	}
}

func TestRotateFailureKeepsOldLink(t *testing.T) {
	cell := NewCell("https://t.me/+old")

	if _, err := cell.Rotate(context.Background(), &fakeExporter{linkErr: errors.New("no rights")}, -100); err == nil {
		t.Fatal("expected error")
	}
	if cell.Get() != "https://t.me/+old" {
		t.Fatalf("cell = %q, want old link preserved", cell.Get())
	}

	// An empty export result is a failure too.
	if _, err := cell.Rotate(context.Background(), &fakeExporter{}, -100); err == nil {
		t.Fatal("expected error for empty link")
	}
	if cell.Get() != "https://t.me/+old" {
		t.Fatalf("cell = %q, want old link preserved", cell.Get())
	}
}

func TestBootstrapReusesChatLink(t *testing.T) {
	cell := NewCell("")
	gw := &fakeExporter{chat: &tele.Chat{ID: -100, InviteLink: "https://t.me/+existing"}}

	cell.Bootstrap(context.Background(), gw, -100)

	if cell.Get() != "https://t.me/+existing" {
		t.Fatalf("cell = %q", cell.Get())
	}
	if gw.linkCalls != 0 {
		t.Fatal("should not export when the chat already has a link")
	}
}

func TestBootstrapExportsWhenChatHasNone(t *testing.T) {
	cell := NewCell("")
	gw := &fakeExporter{chat: &tele.Chat{ID: -100}, link: "https://t.me/+fresh"}

	cell.Bootstrap(context.Background(), gw, -100)

	if cell.Get() != "https://t.me/+fresh" {
		t.Fatalf("cell = %q", cell.Get())
	}
}

func TestBootstrapKeepsSeedOnFailure(t *testing.T) {
	cell := NewCell("https://t.me/+seed")
	gw := &fakeExporter{chatErr: errors.New("not found"), linkErr: errors.New("no rights")}

	cell.Bootstrap(context.Background(), gw, -100)

	if cell.Get() != "https://t.me/+seed" {
		t.Fatalf("cell = %q, want seed preserved", cell.Get())
	}
}
