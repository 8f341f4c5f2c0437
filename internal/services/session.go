package services

import (
	"errors"
	"sync"

	"github.com/makerport/makerport/internal/models"
	"github.com/makerport/makerport/internal/store"
	"github.com/makerport/makerport/internal/utils"
)

// Session is a signed-in user's server-side state. User is a cached copy of
// the persisted record; RefreshUser reloads it after a points write.
type Session struct {
	Token string            `json:"token"`
	User  models.UserRecord `json:"user"`
}

// SessionManager tracks signed-in users and keeps their cached user records
// in sync with the users collection.
type SessionManager struct {
	mu       sync.RWMutex
	users    *store.Users
	sessions map[string]*Session
	expire   int
}

// NewSessionManager creates a session manager backed by the users view.
// expireHours controls token lifetime.
func NewSessionManager(users *store.Users, expireHours int) *SessionManager {
	return &SessionManager{
		users:    users,
		sessions: make(map[string]*Session),
		expire:   expireHours,
	}
}

// SignIn persists the user record, merging profile fields into any existing
// record, and opens a session with a fresh token.
func (m *SessionManager) SignIn(user models.UserRecord) (*Session, error) {
	_, _, getErr := m.users.Get(user.ID)
	creating := errors.Is(getErr, store.ErrNotFound)

	saved, err := m.users.Mutate(user.ID, func(u *models.UserRecord) error {
		if creating {
			*u = user
			return nil
		}
		u.Merge(user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(saved.ID, saved.Username, m.expire)
	if err != nil {
		return nil, err
	}

	session := &Session{Token: token, User: saved}

	m.mu.Lock()
	m.sessions[saved.ID] = session
	m.mu.Unlock()

	return session, nil
}

// CurrentUser returns the cached record for a signed-in user.
func (m *SessionManager) CurrentUser(userID string) (models.UserRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[userID]
	if !ok {
		return models.UserRecord{}, false
	}
	return s.User, true
}

// RefreshUser reloads the persisted record into the session cache. Called
// after any write that changes the user's points or badges so the signed-in
// view stays current.
func (m *SessionManager) RefreshUser(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return
	}
	rec, _, err := m.users.Get(userID)
	if err != nil {
		return
	}
	s.User = rec
}

// Logout drops the session. The user record itself is untouched.
func (m *SessionManager) Logout(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Active reports whether the user has an open session.
func (m *SessionManager) Active(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[userID]
	return ok
}
