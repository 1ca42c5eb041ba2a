package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/infrastructure/keygen"
)

var testNow = time.Date(2022, 8, 14, 9, 0, 0, 0, time.UTC)

type updateLastUsedCall struct {
	KeyID     string
	Timestamp time.Time
}

// mockRepository keeps keys in memory and records last-used updates.
type mockRepository struct {
	mu                  sync.Mutex
	keys                map[string]*domain.APIKey
	updateLastUsedCalls []updateLastUsedCall
	updateLastUsedDelay time.Duration
	createErr           error
}

func newMockRepository() *mockRepository {
	return &mockRepository{keys: make(map[string]*domain.APIKey)}
}

func (m *mockRepository) FindByShortToken(_ context.Context, shortToken string) (*domain.APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key, ok := m.keys[shortToken]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *key
	return &copied, nil
}

func (m *mockRepository) UpdateLastUsed(ctx context.Context, keyID string, timestamp time.Time) error {
	if m.updateLastUsedDelay > 0 {
		select {
		case <-time.After(m.updateLastUsedDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateLastUsedCalls = append(m.updateLastUsedCalls, updateLastUsedCall{KeyID: keyID, Timestamp: timestamp})
	return nil
}

func (m *mockRepository) Create(_ context.Context, key *domain.APIKey) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key.ShortToken] = key
	return nil
}

func (m *mockRepository) getUpdateLastUsedCalls() []updateLastUsedCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]updateLastUsedCall(nil), m.updateLastUsedCalls...)
}

func (m *mockRepository) only(t *testing.T) *domain.APIKey {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.Len(t, m.keys, 1)
	for _, k := range m.keys {
		return k
	}
	return nil
}

func newTestAuthenticator(t *testing.T, repo Repository) *Authenticator {
	t.Helper()
	a := NewAuthenticator(context.Background(), repo, Config{
		OperationTimeout: time.Second,
		UpdateQueueSize:  10,
		Clock:            clock.NewFixed(testNow),
	})
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

func issueKey(t *testing.T, repo *mockRepository, expiresAt *time.Time) (string, string) {
	t.Helper()
	accountID := uuid.NewString()
	full, err := CreateAPIKey(context.Background(), repo, clock.NewFixed(testNow), accountID, "test key", expiresAt)
	require.NoError(t, err)
	return full, accountID
}

func TestCreateAPIKey(t *testing.T) {
	repo := newMockRepository()
	full, accountID := issueKey(t, repo, nil)

	stored := repo.only(t)
	parts, err := keygen.Parse(full)
	require.NoError(t, err)

	assert.Equal(t, accountID, stored.AccountID)
	assert.Equal(t, parts.ShortToken, stored.ShortToken)
	assert.Equal(t, keygen.HashSecret(parts.LongSecret), stored.LongSecretHash)
	assert.NotContains(t, stored.LongSecretHash, parts.LongSecret)
	assert.Equal(t, "todolist", stored.Service)
	assert.True(t, stored.IsActive)
	assert.Equal(t, testNow, stored.CreatedAt)
}

func TestCreateAPIKey_Validation(t *testing.T) {
	repo := newMockRepository()
	clk := clock.NewFixed(testNow)

	_, err := CreateAPIKey(context.Background(), repo, clk, "", "name", nil)
	assert.ErrorIs(t, err, domain.ErrNullArgument)

	_, err = CreateAPIKey(context.Background(), repo, clk, "not-a-uuid", "name", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	_, err = CreateAPIKey(context.Background(), repo, clk, uuid.NewString(), " ", nil)
	assert.ErrorIs(t, err, domain.ErrNullArgument)

	repo.createErr = errors.New("unique violation")
	_, err = CreateAPIKey(context.Background(), repo, clk, uuid.NewString(), "name", nil)
	assert.ErrorIs(t, err, repo.createErr)
}

func TestAuthenticator_ValidateAPIKey(t *testing.T) {
	repo := newMockRepository()
	full, accountID := issueKey(t, repo, nil)
	a := newTestAuthenticator(t, repo)

	key, err := a.ValidateAPIKey(context.Background(), full)
	require.NoError(t, err)
	assert.Equal(t, accountID, key.AccountID)

	require.NoError(t, a.Shutdown(context.Background()))
	calls := repo.getUpdateLastUsedCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, key.ID, calls[0].KeyID)
	assert.Equal(t, testNow, calls[0].Timestamp)
}

func TestAuthenticator_ValidateAPIKey_Rejections(t *testing.T) {
	repo := newMockRepository()
	full, _ := issueKey(t, repo, nil)
	parts, err := keygen.Parse(full)
	require.NoError(t, err)

	wrongSecret := parts
	replacement := "x"
	if parts.LongSecret[0] == 'x' {
		replacement = "y"
	}
	wrongSecret.LongSecret = replacement + parts.LongSecret[1:]
	unknown := parts
	unknown.ShortToken = "000000000000"

	tests := []struct {
		name string
		key  string
	}{
		{"malformed", "not-a-key"},
		{"empty", ""},
		{"unknown short token", unknown.String()},
		{"wrong secret", wrongSecret.String()},
	}

	a := newTestAuthenticator(t, repo)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.ValidateAPIKey(context.Background(), tt.key)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestAuthenticator_ValidateAPIKey_Expired(t *testing.T) {
	repo := newMockRepository()
	expired := testNow.Add(-time.Minute)
	full, _ := issueKey(t, repo, &expired)

	_, err := newTestAuthenticator(t, repo).ValidateAPIKey(context.Background(), full)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticator_ValidateAPIKey_Inactive(t *testing.T) {
	repo := newMockRepository()
	full, _ := issueKey(t, repo, nil)
	repo.only(t).IsActive = false

	_, err := newTestAuthenticator(t, repo).ValidateAPIKey(context.Background(), full)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticator_Shutdown_DrainsQueue(t *testing.T) {
	repo := newMockRepository()
	repo.updateLastUsedDelay = 10 * time.Millisecond
	a := NewAuthenticator(context.Background(), repo, Config{UpdateQueueSize: 100})

	const numUpdates = 10
	for i := range numUpdates {
		a.lastUsedUpdates <- lastUsedUpdate{keyID: uuid.NewString(), timestamp: testNow.Add(time.Duration(i) * time.Second)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Shutdown(ctx))

	assert.Len(t, repo.getUpdateLastUsedCalls(), numUpdates)
}

func TestAuthenticator_Shutdown_Timeout(t *testing.T) {
	repo := newMockRepository()
	repo.updateLastUsedDelay = 2 * time.Second
	a := NewAuthenticator(context.Background(), repo, Config{UpdateQueueSize: 10})

	a.lastUsedUpdates <- lastUsedUpdate{keyID: "slow", timestamp: testNow}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := a.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAuthenticator_Shutdown_Idempotent(t *testing.T) {
	a := NewAuthenticator(context.Background(), newMockRepository(), Config{})

	require.NoError(t, a.Shutdown(context.Background()))
	require.NoError(t, a.Shutdown(context.Background()))
}

func TestAuthenticator_QueueFullDropsUpdate(t *testing.T) {
	repo := newMockRepository()
	full, _ := issueKey(t, repo, nil)
	repo.updateLastUsedDelay = 200 * time.Millisecond

	a := NewAuthenticator(context.Background(), repo, Config{
		UpdateQueueSize: 1,
		Clock:           clock.NewFixed(testNow),
	})

	// Validation never blocks on the queue even when the worker is busy.
	for range 5 {
		_, err := a.ValidateAPIKey(context.Background(), full)
		require.NoError(t, err)
	}

	require.NoError(t, a.Shutdown(context.Background()))
	assert.Less(t, len(repo.getUpdateLastUsedCalls()), 5)
}

func TestAccountIDContext(t *testing.T) {
	_, ok := AccountIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = AccountIDFromContext(WithAccountID(context.Background(), ""))
	assert.False(t, ok)

	id := uuid.NewString()
	got, ok := AccountIDFromContext(WithAccountID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
