package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/THRIPURASRI/voicenudge-cli/internal/adapter"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
	"github.com/THRIPURASRI/voicenudge-cli/models"
)

type fallbackService struct {
	adapter adapter.ServerAdapter
	auth    *authService
	attempt *attemptTracker
	logger  *logger.Logger
}

// NewFallbackService builds the security-question challenge handler. It
// shares the attempt tracker and the authentication-completion path with
// auth, because a correct fallback answer finishes the pending attempt.
func NewFallbackService(serverAdapter adapter.ServerAdapter, auth ClientAuthService, attempt *attemptTracker, logger *logger.Logger) ClientFallbackService {
	return &fallbackService{
		adapter: serverAdapter,
		auth:    auth.(*authService),
		attempt: attempt,
		logger:  logger,
	}
}

// FetchQuestion implements [ClientFallbackService]. Errors are swallowed:
// a missing or unreachable question must never disturb the login form.
func (f *fallbackService) FetchQuestion(ctx context.Context, email string) string {
	challenge, err := f.adapter.SecurityQuestion(ctx, email)
	if err != nil {
		f.logger.Debug().Err(err).Str("email", email).Msg("security question lookup failed")
		return ""
	}
	return challenge.Question
}

// VerifyAnswer implements [ClientFallbackService]. A wrong answer leaves the
// challenge retryable; no client-side attempt limit is enforced.
func (f *fallbackService) VerifyAnswer(ctx context.Context, email, answer string) (models.Outcome, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, models.ErrEmptyAnswer
	}

	_, err := f.adapter.VerifySecurity(ctx, email, answer)
	if errors.Is(err, adapter.ErrUnauthorized) {
		f.attempt.set(models.AttemptRejected)
		f.logger.Info().Str("email", email).Msg("fallback answer rejected")
		return models.Rejected{Reason: "incorrect answer"}, nil
	}
	if err != nil {
		f.attempt.set(models.AttemptRejected)
		f.logger.Warn().Err(err).Msg("fallback verification transport failure")
		return models.Rejected{Reason: fmt.Sprintf("network error: %v", err), Network: true}, nil
	}

	if err = f.auth.completeAuthentication(ctx); err != nil {
		f.attempt.set(models.AttemptRejected)
		return models.Rejected{Reason: fmt.Sprintf("network error: %v", err), Network: true}, nil
	}

	f.attempt.set(models.AttemptAuthenticated)
	return models.Authenticated{}, nil
}
