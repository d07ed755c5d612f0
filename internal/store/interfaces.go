package store

import "context"

// IdentityRepository is the local cache of the last identity that logged in
// on this device. It exists so the login form can prefill the email field;
// it never stores secrets.
type IdentityRepository interface {
	// SaveLastIdentity records email as the most recent successful login
	// identity, replacing any previous one.
	SaveLastIdentity(ctx context.Context, email string) error

	// LastIdentity returns the cached identity. Returns
	// [ErrIdentityNotFound] when no login has happened on this device yet.
	LastIdentity(ctx context.Context) (string, error)

	// ClearLastIdentity forgets the cached identity. Clearing an empty
	// cache is not an error.
	ClearLastIdentity(ctx context.Context) error
}
