package state

import (
	"time"

	tele "gopkg.in/telebot.v4"
)

// State identifies a finite-state-machine step used in conversations.
type State string

const (
	// StateIdle indicates there is no active conversation with the user.
	StateIdle State = "idle"
)

// Session stores conversation state and captured input for a user.
type Session struct {
	UserID int64
	ChatID int64
	State  State
	// Media holds the message that opened the conversation, if any.
	Media *tele.Message
	// UpdatedAt is bumped on every transition and read by expiry sweeps.
	UpdatedAt time.Time
}

// Manager orchestrates user sessions and FSM state transitions.
type Manager interface {
	Get(userID int64) (Session, bool)
	Begin(userID, chatID int64, st State, media *tele.Message)
	SetState(userID int64, st State)
	GetState(userID int64) State
	Clear(userID int64)

	// ExpireStale removes sessions idle longer than ttl and returns them.
	ExpireStale(ttl time.Duration) []Session
	// ExpireOne removes the user's session if it passed the ttl and
	// returns it. Check and removal are one atomic step, so exactly one
	// caller wins when a sweep races a lazy check.
	ExpireOne(userID int64, ttl time.Duration) (Session, bool)

	InProgress(userID int64) bool
	ManagerHandler(c tele.Context) error
}
