package service

import "errors"

var (
	// ErrAttemptInFlight is returned by Submit while a previous attempt is
	// still in the submitting state.
	ErrAttemptInFlight = errors.New("a login attempt is already in flight")

	// ErrVoiceSampleRequired is returned by Register when no voice sample
	// is attached. Registration, unlike login, requires one.
	ErrVoiceSampleRequired = errors.New("a voice sample is required to register")

	// ErrRegisterOnServer wraps server-side registration failures.
	ErrRegisterOnServer = errors.New("registration failed on server")
)
