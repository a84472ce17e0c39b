package state

import (
	"sync"
	"time"

	"log/slog"

	"github.com/xbnstudios/furcast-nsfw-bot/core/logger"
	tghelpers "github.com/xbnstudios/furcast-nsfw-bot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	now      func() time.Time
}

// NewMemoryManager constructs an in-memory Manager implementation.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// Get returns a copy of the session for a user if it exists.
func (m *memoryManager) Get(userID int64) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if session, ok := m.sessions[userID]; ok {
		return *session, true
	}
	return Session{UserID: userID, State: StateIdle}, false
}

// Begin replaces the user's session wholesale. A user has at most one
// session at a time; re-entry overwrites the previous capture.
func (m *memoryManager) Begin(userID, chatID int64, st State, media *tele.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &Session{
		UserID:    userID,
		ChatID:    chatID,
		State:     st,
		Media:     media,
		UpdatedAt: m.now(),
	}
}

// SetState updates the state for an existing session and bumps activity.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return
	}
	sess.State = st
	sess.UpdatedAt = m.now()
}

// GetState returns the current FSM state of a user, or StateIdle if none exists.
func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.State
	}
	return StateIdle
}

// Clear removes the entire session for a user. Clearing an absent session
// is a no-op.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}

// ExpireStale removes and returns sessions idle longer than ttl.
func (m *memoryManager) ExpireStale(ttl time.Duration) []Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	var expired []Session
	for id, sess := range m.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			expired = append(expired, *sess)
			delete(m.sessions, id)
		}
	}
	return expired
}

// ExpireOne removes and returns the user's session if it is stale.
func (m *memoryManager) ExpireOne(userID int64, ttl time.Duration) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok || !sess.UpdatedAt.Before(m.now().Add(-ttl)) {
		return Session{}, false
	}
	delete(m.sessions, userID)
	return *sess, true
}

// InProgress reports whether the user currently has an active FSM state.
func (m *memoryManager) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return ok && sess.State != StateIdle
}

// ManagerHandler executes the handler function registered for the user's current state, if any.
func (m *memoryManager) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	current := m.GetState(userID)
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.manager",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(current)),
	)

	if handler, ok := fsmHandlers[current]; ok {
		return handler(c)
	}
	return nil
}
