package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
	"github.com/rezkam/todolist/internal/infrastructure/keygen"
)

// Default configuration values.
const (
	DefaultOperationTimeout = 5 * time.Second
	DefaultUpdateQueueSize  = 1000
)

// Config holds configuration for the Authenticator.
type Config struct {
	OperationTimeout time.Duration // zero means no timeout
	UpdateQueueSize  int
	Clock            clock.Clock
}

type lastUsedUpdate struct {
	keyID     string
	timestamp time.Time
}

// Authenticator validates API keys and records their last use in the
// background.
type Authenticator struct {
	repo             Repository
	clock            clock.Clock
	appCtx           context.Context
	lastUsedUpdates  chan lastUsedUpdate
	shutdownChan     chan struct{}
	shutdownOnce     sync.Once
	wg               sync.WaitGroup
	operationTimeout time.Duration
}

// NewAuthenticator creates an authenticator and starts its last-used worker.
// ctx is the application context; the worker stops consuming from it once
// Shutdown is called.
func NewAuthenticator(ctx context.Context, repo Repository, config Config) *Authenticator {
	if config.OperationTimeout < 0 {
		config.OperationTimeout = DefaultOperationTimeout
	}
	if config.UpdateQueueSize <= 0 {
		config.UpdateQueueSize = DefaultUpdateQueueSize
	}
	if config.Clock == nil {
		config.Clock = clock.System{}
	}

	a := &Authenticator{
		repo:             repo,
		clock:            config.Clock,
		appCtx:           ctx,
		lastUsedUpdates:  make(chan lastUsedUpdate, config.UpdateQueueSize),
		shutdownChan:     make(chan struct{}),
		operationTimeout: config.OperationTimeout,
	}

	a.wg.Add(1)
	go a.processLastUsedUpdates()

	return a
}

func (a *Authenticator) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.operationTimeout == 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.operationTimeout)
}

func (a *Authenticator) processLastUsedUpdates() {
	defer a.wg.Done()

	for {
		select {
		case update := <-a.lastUsedUpdates:
			ctx, cancel := a.withTimeout(a.appCtx)
			if err := a.repo.UpdateLastUsed(ctx, update.keyID, update.timestamp); err != nil {
				slog.WarnContext(ctx, "failed to update API key last_used_at",
					"key_id", update.keyID,
					"error", err)
			}
			cancel()

		case <-a.shutdownChan:
			// Drain what is queued. appCtx may already be cancelled here.
			for {
				select {
				case update := <-a.lastUsedUpdates:
					ctx, cancel := a.withTimeout(context.Background())
					_ = a.repo.UpdateLastUsed(ctx, update.keyID, update.timestamp)
					cancel()
				default:
					return
				}
			}
		}
	}
}

// Shutdown stops the worker after it drains queued updates, or when ctx is
// done. Calling it more than once is safe.
func (a *Authenticator) Shutdown(ctx context.Context) error {
	var shutdownErr error
	a.shutdownOnce.Do(func() {
		close(a.shutdownChan)

		done := make(chan struct{})
		go func() {
			a.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			shutdownErr = fmt.Errorf("shutdown timeout: %w", ctx.Err())
		}
	})
	return shutdownErr
}

// ValidateAPIKey returns the stored key for apiKey. Malformed, unknown,
// inactive and expired keys all yield domain.ErrUnauthorized.
func (a *Authenticator) ValidateAPIKey(ctx context.Context, apiKey string) (*domain.APIKey, error) {
	parts, err := keygen.Parse(apiKey)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	key, err := a.repo.FindByShortToken(opCtx, parts.ShortToken)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	provided := keygen.HashSecret(parts.LongSecret)
	if subtle.ConstantTimeCompare([]byte(key.LongSecretHash), []byte(provided)) != 1 {
		return nil, domain.ErrUnauthorized
	}

	now := a.clock.Now()
	if !key.IsActive || (key.ExpiresAt != nil && !key.ExpiresAt.After(now)) {
		return nil, domain.ErrUnauthorized
	}

	select {
	case a.lastUsedUpdates <- lastUsedUpdate{keyID: key.ID, timestamp: now}:
	default:
		slog.WarnContext(ctx, "dropped last_used_at update, queue full", "key_id", key.ID)
	}

	return key, nil
}

// CreateAPIKey issues a key acting for accountID and returns the full key.
// The plain key is not recoverable afterwards.
func CreateAPIKey(ctx context.Context, repo Repository, clk clock.Clock, accountID, name string, expiresAt *time.Time) (string, error) {
	if err := guard.First(guard.AccountID(accountID), guard.NonEmptyText(name, "name")); err != nil {
		return "", err
	}

	parts, err := keygen.Generate(keygen.DefaultKeyType, keygen.DefaultService, keygen.DefaultVersion)
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	keyID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate key ID: %w", err)
	}

	err = repo.Create(ctx, &domain.APIKey{
		ID:             keyID.String(),
		AccountID:      accountID,
		KeyType:        parts.KeyType,
		Service:        parts.Service,
		Version:        parts.Version,
		ShortToken:     parts.ShortToken,
		LongSecretHash: keygen.HashSecret(parts.LongSecret),
		Name:           name,
		IsActive:       true,
		CreatedAt:      clk.Now(),
		ExpiresAt:      expiresAt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create API key: %w", err)
	}

	return parts.String(), nil
}
