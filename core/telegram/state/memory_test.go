package state

import (
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

func newTestManager(now *time.Time) *memoryManager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
		now:      func() time.Time { return *now },
	}
}

func TestBeginReplacesSession(t *testing.T) {
	now := time.Unix(1000, 0)
	m := newTestManager(&now)

	first := &tele.Message{ID: 1}
	second := &tele.Message{ID: 2}

	m.Begin(7, 7, "awaiting_description", first)
	m.Begin(7, 7, "awaiting_description", second)

	sess, ok := m.Get(7)
	if !ok {
		t.Fatal("session missing")
	}
	if sess.Media == nil || sess.Media.ID != 2 {
		t.Fatalf("media = %+v, want the replacement", sess.Media)
	}
	if !m.InProgress(7) {
		t.Fatal("expected session in progress")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	now := time.Unix(1000, 0)
	m := newTestManager(&now)

	m.Begin(7, 7, "awaiting_description", nil)
	m.Clear(7)
	m.Clear(7)

	if m.InProgress(7) {
		t.Fatal("cleared session still in progress")
	}
	if st := m.GetState(7); st != StateIdle {
		t.Fatalf("state = %q, want idle", st)
	}
}

func TestExpireStale(t *testing.T) {
	now := time.Unix(1000, 0)
	m := newTestManager(&now)

	m.Begin(1, 10, "awaiting_description", nil)
	now = now.Add(2 * time.Minute)
	m.Begin(2, 20, "awaiting_description", nil)

	now = now.Add(90 * time.Second) // user 1 idle 3m30s, user 2 idle 1m30s
	expired := m.ExpireStale(3 * time.Minute)

	if len(expired) != 1 || expired[0].UserID != 1 {
		t.Fatalf("expired = %+v, want user 1 only", expired)
	}
	if expired[0].ChatID != 10 {
		t.Fatalf("chat id = %d, want 10", expired[0].ChatID)
	}
	if m.InProgress(1) {
		t.Fatal("expired session still present")
	}
	if !m.InProgress(2) {
		t.Fatal("fresh session was dropped")
	}
}

func TestExpireOne(t *testing.T) {
	now := time.Unix(1000, 0)
	m := newTestManager(&now)

	if _, ok := m.ExpireOne(1, time.Minute); ok {
		t.Fatal("absent session reported expired")
	}

	m.Begin(1, 10, "awaiting_description", nil)
	if _, ok := m.ExpireOne(1, time.Minute); ok {
		t.Fatal("fresh session reported expired")
	}
	if !m.InProgress(1) {
		t.Fatal("fresh session must survive the check")
	}

	now = now.Add(2 * time.Minute)
	sess, ok := m.ExpireOne(1, time.Minute)
	if !ok || sess.ChatID != 10 {
		t.Fatalf("expire = %+v, %v", sess, ok)
	}
	if m.InProgress(1) {
		t.Fatal("expired session still present")
	}

	// Check and removal are one step: a second caller sees nothing, so
	// only one timeout notice can ever be produced for a session.
	if _, ok := m.ExpireOne(1, time.Minute); ok {
		t.Fatal("session expired twice")
	}
}

func TestExpireOneAfterSweep(t *testing.T) {
	now := time.Unix(1000, 0)
	m := newTestManager(&now)

	m.Begin(1, 10, "awaiting_description", nil)
	now = now.Add(2 * time.Minute)

	if swept := m.ExpireStale(time.Minute); len(swept) != 1 {
		t.Fatalf("swept = %d, want 1", len(swept))
	}
	if _, ok := m.ExpireOne(1, time.Minute); ok {
		t.Fatal("lazy check expired a session the sweep already removed")
	}
}

func TestSetStateBumpsActivity(t *testing.T) {
	now := time.Unix(1000, 0)
	m := newTestManager(&now)

	m.Begin(1, 10, "awaiting_description", nil)
	now = now.Add(2 * time.Minute)
	m.SetState(1, "awaiting_description")

	if _, ok := m.ExpireOne(1, time.Minute); ok {
		t.Fatal("activity bump did not reset the deadline")
	}
}
