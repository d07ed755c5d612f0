package service

import (
	"context"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/models"
)

// ClientAuthService drives the login handshake state machine. One Submit is
// one attempt: it sends the credentials plus the optional voice sample,
// classifies the graded server reply into a [models.Outcome], and on full
// success populates the session store. A ChallengeRequired outcome parks the
// attempt in the challenge-pending state, resolved only through
// [ClientFallbackService.VerifyAnswer].
type ClientAuthService interface {
	// Submit runs a single login attempt. The sample may be nil: the
	// attempt is still made and the UI surfaces an advisory that voice
	// verification will be skipped. Transport failures are returned as a
	// Rejected outcome with Network set, not as an error; the error return
	// is reserved for invalid input and an attempt already in flight.
	Submit(ctx context.Context, creds models.Credentials, sample *models.VoiceSample) (models.Outcome, error)

	// AttemptState reports the state of the current attempt.
	AttemptState() models.AttemptState

	// RestoreSession probes the server for a live session cookie at
	// startup. On success it populates the session store and reports
	// true; otherwise it resolves the store to anonymous.
	RestoreSession(ctx context.Context) bool

	// Register creates a new account. The voice sample is required.
	Register(ctx context.Context, reg models.Registration) error

	// Logout clears the session unconditionally; the server call is
	// best-effort and its failure is not reported.
	Logout(ctx context.Context)
}

// ClientFallbackService manages the security-question challenge flow.
type ClientFallbackService interface {
	// FetchQuestion looks up the question configured for email.
	// Best-effort and silent-fail: any error yields an empty string, never
	// an interruption of the login form.
	FetchQuestion(ctx context.Context, email string) string

	// VerifyAnswer submits the fallback answer. A correct answer resolves
	// the pending attempt to Authenticated and populates the session; a
	// wrong one resolves to Rejected and may be retried. The error return
	// is reserved for an empty answer.
	VerifyAnswer(ctx context.Context, email, answer string) (models.Outcome, error)
}

// SessionStore is the process-wide holder of the authenticated identity.
// Values move through loading → anonymous | authenticated; only a completed
// handshake populates it and any observed auth failure clears it.
type SessionStore interface {
	// State returns the current lifecycle state.
	State() SessionState

	// User returns the session profile. ok is false unless the state is
	// [SessionAuthenticated].
	User() (user models.User, ok bool)

	// Set establishes the session for user.
	Set(user models.User)

	// ResolveAnonymous moves loading → anonymous after the startup probe
	// found no live session. No-op in any other state.
	ResolveAnonymous()

	// Clear drops the session. Idempotent; the on-cleared hook fires only
	// on the authenticated → anonymous transition.
	Clear()

	// OnCleared registers the single hook invoked when an established
	// session is cleared, so the UI can route back to login.
	OnCleared(hook func())
}

// ClientTaskService exposes the authenticated collaborator surfaces: tasks
// and activity history. Every call rides the session cookie, so a 401 on any
// of them clears the session through the adapter's auth-failure hook.
type ClientTaskService interface {
	Tasks(ctx context.Context) ([]models.Task, error)

	// CreateTask creates a task from free text. Returns
	// [models.ErrEmptyTaskText] for blank input.
	CreateTask(ctx context.Context, text string) (models.Task, error)

	// CreateVoiceTask creates a task from a voice note; the server
	// transcribes it and parses the transcription. Returns
	// [models.ErrEmptyVoiceTask] when the sample carries no audio.
	CreateVoiceTask(ctx context.Context, sample *models.VoiceSample) (models.Task, error)

	// ScheduleTask sets the task's due time from "YYYY-MM-DDTHH:MM" (an
	// optional ":SS" is accepted). Returns [models.ErrInvalidDueDate] for
	// anything else. The server adds a reminder five minutes before the
	// due time.
	ScheduleTask(ctx context.Context, id int64, dueAt string) (models.TaskSchedule, error)

	CompleteTask(ctx context.Context, id int64) error

	History(ctx context.Context) ([]models.HistoryEntry, error)

	ClearHistory(ctx context.Context) error
}

// ClientProbeJob is the background keepalive worker: it pings the profile
// endpoint on an interval so a server-side session expiry surfaces promptly
// through the same auth-failure path as any other call.
type ClientProbeJob interface {
	// Start launches the probe goroutine, stopping any previous one. A
	// non-positive interval falls back to 5 minutes. The goroutine exits
	// when ctx is cancelled or Stop is called.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the goroutine to exit and blocks until it has.
	Stop()
}
