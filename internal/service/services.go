// Package service holds the client's business logic: the login handshake
// state machine, the security-question fallback flow, the process-wide
// session store, and the authenticated task/history surfaces.
package service

import (
	"github.com/THRIPURASRI/voicenudge-cli/internal/adapter"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/internal/store"
)

// ClientServices groups the client service layer into a single value.
type ClientServices struct {
	Session         SessionStore
	AuthService     ClientAuthService
	FallbackService ClientFallbackService
	TaskService     ClientTaskService
	ProbeJob        ClientProbeJob
}

// NewClientServices wires the service layer over the server adapter and the
// local storage. The adapter's auth-failure hook is bound to the session
// store here: a 401/403 observed on any non-handshake endpoint clears the
// session, no matter which call saw it.
func NewClientServices(serverAdapter adapter.ServerAdapter, storages *store.ClientStorages, logger *logger.Logger) *ClientServices {
	session := NewSessionStore(logger)
	serverAdapter.SetOnAuthFailure(session.Clear)

	var identities store.IdentityRepository
	if storages != nil {
		identities = storages.Identity
	}

	attempt := &attemptTracker{}
	authSvc := NewAuthService(serverAdapter, session, identities, attempt, logger)

	return &ClientServices{
		Session:         session,
		AuthService:     authSvc,
		FallbackService: NewFallbackService(serverAdapter, authSvc, attempt, logger),
		TaskService:     NewTaskService(serverAdapter, logger),
		ProbeJob:        NewProbeJob(serverAdapter, session, logger),
	}
}
