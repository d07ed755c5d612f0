package models

import "strings"

// User represents the authenticated identity as reported by the server's
// /api/auth/me endpoint. It is the payload of the process-wide session and
// contains no credential material.
type User struct {
	// ID is the server-side unique identifier of the user.
	ID int64 `json:"id"`

	// Name is the display name of the user. Non-sensitive, shown in UI.
	Name string `json:"name"`

	// Email is the identity the user logs in with.
	Email string `json:"email"`

	// VoiceLocked reports whether the account has been locked by the
	// server after repeated voice mismatches.
	VoiceLocked bool `json:"voice_locked"`
}

// Credentials holds the email/password pair collected by the login form.
// Ephemeral: owned by the form until submitted, never persisted.
type Credentials struct {
	Email    string
	Password string
}

// Validate checks the local form-level invariants on the credentials:
// the email must look like an address and the password must be non-empty.
func (c Credentials) Validate() error {
	if !IsPlausibleEmail(c.Email) {
		return ErrInvalidEmail
	}
	if c.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// Registration is the payload of a new-account request. Voice is required by
// the registration flow; ProfileImagePath is optional.
type Registration struct {
	Name             string
	Email            string
	Password         string
	SecurityQuestion string
	SecurityAnswer   string
	Voice            *VoiceSample
	ProfileImagePath string
}

// IsPlausibleEmail reports whether s is syntactically plausible as an email
// address. Deliberately loose: the server is the authority, the client only
// needs a gate for prefetching the security question.
func IsPlausibleEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1
}
