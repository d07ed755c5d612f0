package service

import (
	"sync"

	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/models"
)

// SessionState is the lifecycle state of the process-wide session.
type SessionState int

const (
	// SessionLoading is the initial state while the startup identity probe
	// runs.
	SessionLoading SessionState = iota
	// SessionAnonymous means no identity is established.
	SessionAnonymous
	// SessionAuthenticated means a full handshake completed and the
	// profile is populated.
	SessionAuthenticated
)

// String returns the lowercase name of the state, for logs.
func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionAnonymous:
		return "anonymous"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

type sessionStore struct {
	logger *logger.Logger

	mu        sync.RWMutex
	state     SessionState
	user      models.User
	onCleared func()
}

// NewSessionStore returns an empty store in the loading state.
func NewSessionStore(logger *logger.Logger) SessionStore {
	return &sessionStore{logger: logger, state: SessionLoading}
}

// State implements [SessionStore].
func (s *sessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User implements [SessionStore].
func (s *sessionStore) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != SessionAuthenticated {
		return models.User{}, false
	}
	return s.user, true
}

// Set implements [SessionStore].
func (s *sessionStore) Set(user models.User) {
	s.mu.Lock()
	s.state = SessionAuthenticated
	s.user = user
	s.mu.Unlock()

	s.logger.Info().Str("email", user.Email).Msg("session established")
}

// ResolveAnonymous implements [SessionStore].
func (s *sessionStore) ResolveAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionLoading {
		s.state = SessionAnonymous
	}
}

// Clear implements [SessionStore].
func (s *sessionStore) Clear() {
	s.mu.Lock()
	wasAuthenticated := s.state == SessionAuthenticated
	s.state = SessionAnonymous
	s.user = models.User{}
	hook := s.onCleared
	s.mu.Unlock()

	if wasAuthenticated {
		s.logger.Info().Msg("session cleared")
		if hook != nil {
			hook()
		}
	}
}

// OnCleared implements [SessionStore].
func (s *sessionStore) OnCleared(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onCleared = hook
}
