// Package compliance runs the same behavioral tests against every blob sink.
package compliance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todolist/internal/infrastructure/blob"
)

// Store is the behavior every sink provides.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// RunBlobStoreComplianceTest runs the suite. setup returns a fresh store and
// its cleanup.
func RunBlobStoreComplianceTest(t *testing.T, setup func() (Store, func())) {
	t.Run("PutAndGet", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		key := uuid.NewString() + "/list.json"
		require.NoError(t, store.Put(ctx, key, []byte(`{"title":"Tdl 1"}`)))

		data, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Tdl 1"}`, string(data))
	})

	t.Run("PutReplaces", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		key := uuid.NewString() + "/list.json"
		require.NoError(t, store.Put(ctx, key, []byte("first")))
		require.NoError(t, store.Put(ctx, key, []byte("second")))

		data, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))
	})

	t.Run("GetMissing", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()

		_, err := store.Get(context.Background(), uuid.NewString()+"/missing.json")
		assert.ErrorIs(t, err, blob.ErrObjectNotFound)
	})

	t.Run("ListByPrefix", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		account := uuid.NewString()
		other := uuid.NewString()
		require.NoError(t, store.Put(ctx, account+"/b.json", []byte("b")))
		require.NoError(t, store.Put(ctx, account+"/a.json", []byte("a")))
		require.NoError(t, store.Put(ctx, other+"/c.json", []byte("c")))

		keys, err := store.List(ctx, account+"/")
		require.NoError(t, err)
		assert.Equal(t, []string{account + "/a.json", account + "/b.json"}, keys)
	})

	t.Run("RejectsInvalidKeys", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()

		for _, key := range []string{"", "/abs.json", "../escape.json"} {
			assert.ErrorIs(t, store.Put(context.Background(), key, []byte("x")), blob.ErrInvalidKey, key)
		}
	})
}
