package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

// FindByShortToken retrieves an API key by its short token.
func (s *Store) FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error) {
	var (
		key                 domain.APIKey
		created             string
		lastUsed, expiresAt sql.NullString
	)
	err := s.q.QueryRowContext(ctx,
		`SELECT id, account_id, key_type, service, version, short_token, long_secret_hash,
		        name, is_active, created_at, last_used_at, expires_at
		 FROM api_keys WHERE short_token = ?`, shortToken).
		Scan(&key.ID, &key.AccountID, &key.KeyType, &key.Service, &key.Version, &key.ShortToken,
			&key.LongSecretHash, &key.Name, &key.IsActive, &created, &lastUsed, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: API key", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	if key.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if key.LastUsedAt, err = parseTimePtr(lastUsed); err != nil {
		return nil, err
	}
	if key.ExpiresAt, err = parseTimePtr(expiresAt); err != nil {
		return nil, err
	}
	return &key, nil
}

// UpdateLastUsed moves last_used_at forward. Older timestamps are ignored;
// an unknown key is domain.ErrNotFound.
func (s *Store) UpdateLastUsed(ctx context.Context, keyID string, timestamp time.Time) error {
	id, err := guard.ParseID(keyID, "key_id")
	if err != nil {
		return err
	}

	ts := formatTime(timestamp)
	return s.transact(ctx, "update_last_used", func(tx *Store) error {
		if _, err := tx.q.ExecContext(ctx,
			`UPDATE api_keys SET last_used_at = ? WHERE id = ? AND (last_used_at IS NULL OR last_used_at < ?)`,
			ts, id, ts); err != nil {
			return fmt.Errorf("failed to update last used: %w", err)
		}

		var exists bool
		if err := tx.q.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM api_keys WHERE id = ?)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check key existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: API key %s", domain.ErrNotFound, keyID)
		}
		return nil
	})
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

	_, err = s.q.ExecContext(ctx,
		`INSERT INTO api_keys (id, account_id, key_type, service, version, short_token,
		                       long_secret_hash, name, is_active, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, key.AccountID, key.KeyType, key.Service, key.Version, key.ShortToken,
		key.LongSecretHash, key.Name, key.IsActive, formatTime(key.CreatedAt), formatTimePtr(key.ExpiresAt))
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}
	return nil
}
