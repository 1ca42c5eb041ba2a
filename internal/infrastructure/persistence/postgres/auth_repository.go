package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

// === Auth Operations ===

// FindByShortToken retrieves an API key by its short token.
func (s *Store) FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error) {
	var (
		key domain.APIKey
		id  uuid.UUID
	)
	err := s.db.QueryRow(ctx,
		`SELECT id, account_id, key_type, service, version, short_token, long_secret_hash,
		        name, is_active, created_at, last_used_at, expires_at
		 FROM api_keys WHERE short_token = $1`, shortToken).
		Scan(&id, &key.AccountID, &key.KeyType, &key.Service, &key.Version, &key.ShortToken,
			&key.LongSecretHash, &key.Name, &key.IsActive, &key.CreatedAt, &key.LastUsedAt, &key.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: API key", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	key.ID = id.String()
	key.CreatedAt = key.CreatedAt.UTC()
	return &key, nil
}

// UpdateLastUsed moves last_used_at forward. A timestamp that is not later
// than the stored one is a no-op; an unknown key is domain.ErrNotFound.
func (s *Store) UpdateLastUsed(ctx context.Context, keyID string, timestamp time.Time) error {
	id, err := guard.ParseID(keyID, "key_id")
	if err != nil {
		return err
	}

	var exists bool
	err = s.db.QueryRow(ctx,
		`WITH updated AS (
		     UPDATE api_keys SET last_used_at = $2
		     WHERE id = $1 AND (last_used_at IS NULL OR last_used_at < $2)
		 )
		 SELECT EXISTS (SELECT 1 FROM api_keys WHERE id = $1)`,
		id, timestamp).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to update last used: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: API key %s", domain.ErrNotFound, keyID)
	}
	return nil
}

// Create stores a new API key.
func (s *Store) Create(ctx context.Context, key *domain.APIKey) error {
	if err := guard.Required(key, "api_key"); err != nil {
		return err
	}
	id, err := guard.ParseID(key.ID, "key_id")
	if err != nil {
		return err
	}
	if err := guard.AccountID(key.AccountID); err != nil {
		return err
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO api_keys (id, account_id, key_type, service, version, short_token,
		                       long_secret_hash, name, is_active, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, key.AccountID, key.KeyType, key.Service, key.Version, key.ShortToken,
		key.LongSecretHash, key.Name, key.IsActive, key.CreatedAt, key.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}
	return nil
}
