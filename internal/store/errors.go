package store

import "errors"

// ErrIdentityNotFound is returned when the local cache holds no identity.
var ErrIdentityNotFound = errors.New("no cached identity")
