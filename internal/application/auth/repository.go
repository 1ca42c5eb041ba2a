package auth

import (
	"context"
	"time"

	"github.com/rezkam/todolist/internal/domain"
)

// Repository defines storage operations for API keys.
type Repository interface {
	// FindByShortToken retrieves the key with the given short token.
	// Returns an error wrapping domain.ErrNotFound if there is none.
	FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error)

	// UpdateLastUsed moves last_used_at forward to timestamp. Older
	// timestamps are ignored.
	UpdateLastUsed(ctx context.Context, keyID string, timestamp time.Time) error

	// Create stores a new key.
	Create(ctx context.Context, key *domain.APIKey) error
}
