// Package store holds the client's local persistence: a small SQLite
// database caching non-sensitive login state between runs.
package store

import (
	"context"
	"fmt"

	"github.com/THRIPURASRI/voicenudge-cli/internal/config"
	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
)

// ClientStorages groups the client-side repositories into a single value
// passed to the service layer.
type ClientStorages struct {
	// Identity is the last-login identity cache used to prefill the login
	// form.
	Identity IdentityRepository
}

// NewClientStorages initialises the local storage layer: opens the SQLite
// file from cfg.DSN (creating it when absent), runs schema migration, and
// wires the repositories.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Identity: NewIdentityRepository(db, logger),
	}, nil
}
