// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Thripura Sri

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/THRIPURASRI/voicenudge-cli/internal/logger"
)

type identityRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewIdentityRepository returns the SQLite-backed [IdentityRepository].
func NewIdentityRepository(db *DB, logger *logger.Logger) IdentityRepository {
	return &identityRepository{db: db, logger: logger}
}

// SaveLastIdentity implements [IdentityRepository].
func (r *identityRepository) SaveLastIdentity(ctx context.Context, email string) error {
	const query = `
		INSERT INTO last_identity (id, email, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET email = $1, updated_at = $2;`

	if _, err := r.db.ExecContext(ctx, query, email, time.Now().UTC()); err != nil {
		r.logger.Err(err).Str("func", "SaveLastIdentity").Msg("error saving identity")
		return fmt.Errorf("save last identity: %w", err)
	}
	return nil
}

// LastIdentity implements [IdentityRepository].
func (r *identityRepository) LastIdentity(ctx context.Context) (string, error) {
	const query = `SELECT email FROM last_identity WHERE id = 1;`

	var email string
	err := r.db.QueryRowContext(ctx, query).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrIdentityNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "LastIdentity").Msg("error reading identity")
		return "", fmt.Errorf("read last identity: %w", err)
	}
	return email, nil
}

// ClearLastIdentity implements [IdentityRepository].
func (r *identityRepository) ClearLastIdentity(ctx context.Context) error {
	const query = `DELETE FROM last_identity WHERE id = 1;`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		r.logger.Err(err).Str("func", "ClearLastIdentity").Msg("error clearing identity")
		return fmt.Errorf("clear last identity: %w", err)
	}
	return nil
}
