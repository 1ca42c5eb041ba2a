package export_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todolist/internal/application/export"
	"github.com/rezkam/todolist/internal/application/todo"
	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/infrastructure/blob/fs"
	"github.com/rezkam/todolist/internal/infrastructure/persistence/sqlite"
)

var testNow = time.Date(2022, 8, 14, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store   *sqlite.Store
	clk     *clock.Fixed
	lists   *todo.ListService
	entries *todo.EntryService
	notes   *todo.NoteService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.Open(context.Background(), sqlite.DBConfig{Path: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	clk := clock.NewFixed(testNow)
	return &fixture{
		store:   store,
		clk:     clk,
		lists:   todo.NewListService(store, clk, todo.Config{}),
		entries: todo.NewEntryService(store, store, clk, todo.Config{}),
		notes:   todo.NewNoteService(store, store, todo.Config{}),
	}
}

// failingSink fails after accepting limit writes.
type failingSink struct {
	limit int
	keys  []string
}

func (f *failingSink) Put(_ context.Context, key string, _ []byte) error {
	if len(f.keys) >= f.limit {
		return errors.New("bucket unavailable")
	}
	f.keys = append(f.keys, key)
	return nil
}

func TestExportAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	account := uuid.NewString()

	visible, err := f.lists.CreateList(ctx, "Groceries", account)
	require.NoError(t, err)
	hidden, err := f.lists.CreateList(ctx, "Archive", account)
	require.NoError(t, err)
	_, err = f.lists.SwitchHide(ctx, hidden.ID)
	require.NoError(t, err)
	_, err = f.lists.CreateList(ctx, "Someone else", uuid.NewString())
	require.NoError(t, err)

	entry, err := f.entries.CreateEntry(ctx, visible.ID, "Milk", "2 litres", testNow.Add(24*time.Hour))
	require.NoError(t, err)
	_, err = f.entries.CompleteEntry(ctx, entry.ID)
	require.NoError(t, err)
	_, err = f.notes.CreateNote(ctx, entry.ID, visible.ID, "organic")
	require.NoError(t, err)

	sink, err := fs.NewStore(t.TempDir())
	require.NoError(t, err)

	keys, err := export.NewService(f.store, sink, f.clk).ExportAccount(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, []string{
		export.ObjectKey(account, visible.ID),
		export.ObjectKey(account, hidden.ID),
	}, keys)

	raw, err := sink.Get(ctx, keys[0])
	require.NoError(t, err)
	var doc export.Document
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, testNow, doc.ExportedAt)
	assert.Equal(t, "Groceries", doc.List.Title)
	assert.False(t, doc.List.Hidden)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "Milk", doc.Entries[0].Title)
	assert.Equal(t, domain.ProgressCompleted.String(), doc.Entries[0].Progress)
	require.Len(t, doc.Entries[0].Notes, 1)
	assert.Equal(t, "organic", doc.Entries[0].Notes[0].Text)

	raw, err = sink.Get(ctx, keys[1])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.True(t, doc.List.Hidden)
	assert.NotNil(t, doc.Entries)
	assert.Empty(t, doc.Entries)
}

func TestExportAccount_NoLists(t *testing.T) {
	f := newFixture(t)
	keys, err := export.NewService(f.store, &failingSink{limit: 0}, f.clk).ExportAccount(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestExportAccount_InvalidAccount(t *testing.T) {
	f := newFixture(t)
	_, err := export.NewService(f.store, &failingSink{}, f.clk).ExportAccount(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrNullArgument)
}

func TestExportAccount_SinkFailureKeepsWrittenKeys(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	account := uuid.NewString()
	for _, title := range []string{"One", "Two", "Three"} {
		_, err := f.lists.CreateList(ctx, title, account)
		require.NoError(t, err)
	}

	sink := &failingSink{limit: 2}
	keys, err := export.NewService(f.store, sink, f.clk).ExportAccount(ctx, account)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unavailable")
	assert.Len(t, keys, 2)
	assert.Equal(t, sink.keys, keys)
}
