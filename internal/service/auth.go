package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/THRIPURASRI/voicenudge-cli/internal/adapter"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/internal/store"
	"github.com/THRIPURASRI/voicenudge-cli/models"
)

// attemptTracker holds the state of the current login attempt. It is shared
// between the auth service and the fallback service because a challenge-
// pending attempt is resolved by the fallback flow.
type attemptTracker struct {
	mu    sync.Mutex
	state models.AttemptState
}

func (t *attemptTracker) get() models.AttemptState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *attemptTracker) set(state models.AttemptState) {
	t.mu.Lock()
	t.state = state
	t.mu.Unlock()
}

// beginSubmit moves the tracker to Submitting unless an attempt is already
// in flight.
func (t *attemptTracker) beginSubmit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == models.AttemptSubmitting {
		return ErrAttemptInFlight
	}
	t.state = models.AttemptSubmitting
	return nil
}

type authService struct {
	adapter    adapter.ServerAdapter
	session    SessionStore
	identities store.IdentityRepository
	attempt    *attemptTracker
	logger     *logger.Logger
}

// NewAuthService builds the handshake controller. identities may be nil when
// no local cache is configured.
func NewAuthService(serverAdapter adapter.ServerAdapter, session SessionStore, identities store.IdentityRepository, attempt *attemptTracker, logger *logger.Logger) ClientAuthService {
	return &authService{
		adapter:    serverAdapter,
		session:    session,
		identities: identities,
		attempt:    attempt,
		logger:     logger,
	}
}

// Submit implements [ClientAuthService]. Exactly one of the four outcomes is
// produced per attempt, and at most one session is ever established.
func (a *authService) Submit(ctx context.Context, creds models.Credentials, sample *models.VoiceSample) (models.Outcome, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if err := a.attempt.beginSubmit(); err != nil {
		return nil, err
	}

	if sample.Empty() {
		a.logger.Info().Str("email", creds.Email).Msg("submitting without a voice sample")
	}

	reply, err := a.adapter.Login(ctx, creds, sample)
	if err != nil {
		a.attempt.set(models.AttemptRejected)
		a.logger.Warn().Err(err).Msg("login transport failure")
		return models.Rejected{Reason: fmt.Sprintf("network error: %v", err), Network: true}, nil
	}

	return a.classify(ctx, creds.Email, reply), nil
}

// classify turns the raw graded reply into a closed outcome and advances the
// attempt state machine.
func (a *authService) classify(ctx context.Context, email string, reply adapter.LoginReply) models.Outcome {
	switch reply.StatusCode {
	case http.StatusOK:
		if err := a.completeAuthentication(ctx); err != nil {
			a.attempt.set(models.AttemptRejected)
			return models.Rejected{Reason: fmt.Sprintf("network error: %v", err), Network: true}
		}
		a.attempt.set(models.AttemptAuthenticated)
		return models.Authenticated{Message: reply.Body.Message}

	case http.StatusPartialContent:
		a.attempt.set(models.AttemptChallengePending)
		a.logger.Info().Str("email", email).Msg("voice not confirmed, challenge required")
		return models.ChallengeRequired{Question: reply.Body.SecurityQuestion}

	case http.StatusForbidden:
		a.attempt.set(models.AttemptLocked)
		a.logger.Warn().Str("email", email).Msg("account locked by server")
		return models.Locked{}

	default: // 401
		a.attempt.set(models.AttemptRejected)
		reason := reply.Body.Error
		if reason == "" {
			reason = "invalid credentials"
		}
		return models.Rejected{Reason: reason}
	}
}

// completeAuthentication is the shared success path of the handshake and the
// fallback flows: fetch the profile, establish the session, remember the
// identity locally. The session is established only if the profile fetch
// succeeds, so a challenge-pending attempt never holds a partial session.
func (a *authService) completeAuthentication(ctx context.Context) error {
	user, err := a.adapter.Me(ctx)
	if err != nil {
		return fmt.Errorf("fetch profile: %w", err)
	}
	a.session.Set(user)

	if a.identities != nil {
		if err := a.identities.SaveLastIdentity(ctx, user.Email); err != nil {
			a.logger.Warn().Err(err).Msg("could not cache last identity")
		}
	}
	return nil
}

// RestoreSession implements [ClientAuthService]. The probe is best-effort:
// any failure, including a transport one, resolves the session to anonymous
// and the user goes through the regular login flow.
func (a *authService) RestoreSession(ctx context.Context) bool {
	user, err := a.adapter.Me(ctx)
	if err != nil {
		a.logger.Debug().Err(err).Msg("no live session found at startup")
		a.session.ResolveAnonymous()
		return false
	}

	a.session.Set(user)
	a.logger.Info().Str("email", user.Email).Msg("session restored")
	return true
}

// AttemptState implements [ClientAuthService].
func (a *authService) AttemptState() models.AttemptState {
	return a.attempt.get()
}

// Register implements [ClientAuthService].
func (a *authService) Register(ctx context.Context, reg models.Registration) error {
	if !models.IsPlausibleEmail(reg.Email) {
		return models.ErrInvalidEmail
	}
	if reg.Password == "" {
		return models.ErrEmptyPassword
	}
	if strings.TrimSpace(reg.SecurityAnswer) == "" {
		return models.ErrEmptyAnswer
	}
	if reg.Voice.Empty() {
		return ErrVoiceSampleRequired
	}

	resp, err := a.adapter.Register(ctx, reg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRegisterOnServer, err)
	}

	a.logger.Info().Str("email", reg.Email).Str("message", resp.Message).Msg("registered new account")
	return nil
}

// Logout implements [ClientAuthService]. Clearing the local session is
// unconditional; the server call is best-effort.
func (a *authService) Logout(ctx context.Context) {
	if err := a.adapter.Logout(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("server logout failed, clearing local session anyway")
	}
	a.session.Clear()
	a.attempt.set(models.AttemptIdle)
}
