// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package models

// SecurityChallenge is the fallback security question configured for an
// identity. Read-only to the fallback handler; fetched lazily once the
// identity field holds a plausible address.
type SecurityChallenge struct {
	// Email is the identity the question applies to.
	Email string

	// Question is the question text as stored on the server.
	Question string
}
