package models

// Outcome is the terminal classification of one login handshake or fallback
// attempt. It is a closed union: the only implementations are the four types
// in this file, so a type switch over them is exhaustive.
//
// Server status mapping:
//
//	200 → Authenticated
//	206 → ChallengeRequired (credentials valid, voice not confirmed)
//	403 → Locked
//	401 → Rejected
//	transport failure → Rejected with Network set
type Outcome interface {
	isOutcome()
}

// Authenticated means the session has been fully established.
type Authenticated struct {
	// Message is the optional human-readable greeting from the server.
	Message string
}

// ChallengeRequired means credentials were accepted but voice verification
// was inconclusive; the user must answer the embedded security question.
type ChallengeRequired struct {
	Question string
}

// Locked means the account was locked because the voice mismatch exceeded
// server policy. Terminal; recovery is out of band.
type Locked struct{}

// Rejected means the attempt failed: bad credentials, a wrong fallback
// answer, or a transport failure (Network true, retryable by resubmitting).
type Rejected struct {
	Reason  string
	Network bool
}

func (Authenticated) isOutcome()     {}
func (ChallengeRequired) isOutcome() {}
func (Locked) isOutcome()            {}
func (Rejected) isOutcome()          {}

// AttemptState is the client-side state of a single login attempt.
type AttemptState int

const (
	AttemptIdle AttemptState = iota
	AttemptSubmitting
	AttemptAuthenticated
	AttemptChallengePending
	AttemptLocked
	AttemptRejected
)

// String returns the lowercase name of the state, for logs.
func (s AttemptState) String() string {
	switch s {
	case AttemptIdle:
		return "idle"
	case AttemptSubmitting:
		return "submitting"
	case AttemptAuthenticated:
		return "authenticated"
	case AttemptChallengePending:
		return "challenge_pending"
	case AttemptLocked:
		return "locked"
	case AttemptRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
