package todo

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todolist/internal/domain"
)

func entryRepoWith(entry *domain.TodoEntry) *mockRepository {
	return &mockRepository{
		findEntryByIDFn: func(_ context.Context, id uuid.UUID) (*domain.TodoEntry, error) {
			if id != entry.ID {
				return nil, domain.ErrEntryNotFound
			}
			return entry, nil
		},
	}
}

func TestNoteService_CreateNote(t *testing.T) {
	entry := storedEntry()
	repo := entryRepoWith(entry)
	var stored *domain.Note
	repo.createNoteFn = func(_ context.Context, n *domain.Note) error {
		stored = n
		return nil
	}

	got, err := NewNoteService(repo, repo, Config{}).CreateNote(context.Background(), entry.ID, entry.ListID, "  call first  ")
	require.NoError(t, err)

	assert.Same(t, stored, got)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, entry.ID, got.EntryID)
	assert.Equal(t, "call first", got.Text)
}

func TestNoteService_CreateNote_EntryOfAnotherList(t *testing.T) {
	entry := storedEntry()
	repo := entryRepoWith(entry)

	_, err := NewNoteService(repo, repo, Config{}).CreateNote(context.Background(), entry.ID, uuid.New(), "text")
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteService_CreateNote_Validation(t *testing.T) {
	svc := NewNoteService(&mockRepository{}, &mockRepository{}, Config{})

	tests := []struct {
		name    string
		entryID uuid.UUID
		listID  uuid.UUID
		text    string
		wantErr error
	}{
		{"zero entry id", uuid.Nil, uuid.New(), "text", domain.ErrOutOfRange},
		{"zero list id", uuid.New(), uuid.Nil, "text", domain.ErrOutOfRange},
		{"blank text", uuid.New(), uuid.New(), "   ", domain.ErrNullArgument},
		{"long text", uuid.New(), uuid.New(), strings.Repeat("n", 151), domain.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateNote(context.Background(), tt.entryID, tt.listID, tt.text)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNoteService_DeleteNote(t *testing.T) {
	entry := storedEntry()
	noteID := uuid.New()
	otherEntry := uuid.New()

	repo := entryRepoWith(entry)
	repo.findNoteByIDFn = func(_ context.Context, id uuid.UUID) (*domain.Note, error) {
		return &domain.Note{ID: id, EntryID: otherEntry, Text: "elsewhere"}, nil
	}
	var deleted *domain.Note
	repo.deleteNoteFn = func(_ context.Context, n *domain.Note) error {
		deleted = n
		return nil
	}

	err := NewNoteService(repo, repo, Config{}).DeleteNote(context.Background(), noteID, entry.ID, entry.ListID)
	require.NoError(t, err)

	require.NotNil(t, deleted)
	assert.Equal(t, noteID, deleted.ID)
	assert.Equal(t, entry.ID, deleted.EntryID, "the delete is scoped to the entry from the path")
}

func TestNoteService_DeleteNote_Missing(t *testing.T) {
	entry := storedEntry()
	repo := entryRepoWith(entry)
	repo.findNoteByIDFn = func(context.Context, uuid.UUID) (*domain.Note, error) {
		return nil, domain.ErrNoteNotFound
	}
	svc := NewNoteService(repo, repo, Config{})

	err := svc.DeleteNote(context.Background(), uuid.New(), entry.ID, entry.ListID)
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)

	err = svc.DeleteNote(context.Background(), uuid.New(), uuid.New(), entry.ListID)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)

	err = svc.DeleteNote(context.Background(), uuid.Nil, entry.ID, entry.ListID)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestNoteService_GetNotesByEntry(t *testing.T) {
	entryID := uuid.New()
	repo := &mockRepository{
		findNotesByEntryFn: func(_ context.Context, id uuid.UUID, req domain.PageRequest) (domain.PagedResult[domain.Note], error) {
			assert.Equal(t, entryID, id)
			assert.Equal(t, 3, req.Offset())
			return domain.PagedResult[domain.Note]{
				Items:      []domain.Note{{ID: uuid.New(), EntryID: entryID, Text: "n4"}},
				TotalCount: 4,
			}, nil
		},
	}
	svc := NewNoteService(repo, repo, Config{MaxPageSize: 10})

	got, err := svc.GetNotesByEntry(context.Background(), entryID, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, entryID, got.EntryID)
	assert.Len(t, got.Notes, 1)
	assert.Equal(t, 2, got.Paging.TotalPages())
	assert.Equal(t, 2, got.Paging.CurrentPage)

	_, err = svc.GetNotesByEntry(context.Background(), entryID, 1, 11)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}
