package service

import (
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Session ties an opaque token to a logged-in user. Sessions are created at
// login, removed at logout, and hold no state beyond the identity; every
// operation resolves the wallet through the directory at call time.
type Session struct {
	Token     string
	Login     string
	CreatedAt time.Time
}

// SessionRegistry maps tokens to live sessions. It has its own small lock
// because sessions are not part of the persisted account state.
type SessionRegistry struct {
	mu      sync.RWMutex
	byToken map[string]*Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{byToken: make(map[string]*Session)}
}

func (r *SessionRegistry) Create(login string) *Session {
	s := &Session{
		Token:     uuid.Must(uuid.NewV4()).String(),
		Login:     login,
		CreatedAt: time.Now(),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byToken[s.Token] = s
	return s
}

func (r *SessionRegistry) Resolve(token string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byToken[token]
	return s, ok
}

func (r *SessionRegistry) Remove(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byToken[token]; !ok {
		return false
	}
	delete(r.byToken, token)
	return true
}
