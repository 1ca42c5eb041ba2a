package todo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/domain"
)

// ListFilter selects the lists of one account by visibility.
type ListFilter struct {
	AccountID string
	Hidden    bool
}

// ListRepository defines storage operations for lists.
type ListRepository interface {
	// CreateList inserts a new list.
	CreateList(ctx context.Context, list *domain.TodoList) error

	// FindListByID retrieves a list.
	// Returns domain.ErrListNotFound if the list does not exist.
	FindListByID(ctx context.Context, id uuid.UUID) (*domain.TodoList, error)

	// UpdateList overwrites title, hidden flag and updated timestamp.
	// Returns domain.ErrListNotFound if the list does not exist.
	UpdateList(ctx context.Context, list *domain.TodoList) error

	// DeleteList removes a list together with its entries and their notes.
	// Returns domain.ErrListNotFound if the list does not exist.
	DeleteList(ctx context.Context, id uuid.UUID) error

	// FindLists returns one page of lists ordered by creation time then id,
	// and the total number of lists matching the filter.
	FindLists(ctx context.Context, filter ListFilter, page domain.PageRequest) (domain.PagedResult[domain.TodoList], error)

	// CountListsWithTitlePrefix counts the account's lists whose title starts
	// with prefix. The comparison is case-sensitive and literal.
	CountListsWithTitlePrefix(ctx context.Context, accountID, prefix string) (int, error)
}

// EntryRepository defines storage operations for entries.
type EntryRepository interface {
	// CreateEntry inserts a new entry.
	// Returns domain.ErrListNotFound if the owning list does not exist.
	CreateEntry(ctx context.Context, entry *domain.TodoEntry) error

	// CreateEntries inserts entries in one batch. An empty batch is a no-op.
	CreateEntries(ctx context.Context, entries []domain.TodoEntry) error

	// FindEntryByID retrieves an entry with ListTitle populated.
	// Returns domain.ErrEntryNotFound if the entry does not exist.
	FindEntryByID(ctx context.Context, id uuid.UUID) (*domain.TodoEntry, error)

	// UpdateEntry overwrites every mutable field of the entry.
	// Returns domain.ErrEntryNotFound if the entry does not exist.
	UpdateEntry(ctx context.Context, entry *domain.TodoEntry) error

	// DeleteEntry removes the entry if it belongs to listID.
	// Returns domain.ErrEntryNotFound otherwise.
	DeleteEntry(ctx context.Context, entryID, listID uuid.UUID) error

	// FindEntriesByList returns one page of a list's entries ordered by due
	// date then id, and the list's total entry count.
	FindEntriesByList(ctx context.Context, listID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error)

	// FindAllEntriesByList returns every entry of a list, unpaged.
	FindAllEntriesByList(ctx context.Context, listID uuid.UUID) ([]domain.TodoEntry, error)

	// FindEntriesDueBetween pages the account's entries with from <= due < to,
	// ordered by due date then id.
	FindEntriesDueBetween(ctx context.Context, accountID string, from, to time.Time, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error)

	// FindNextDueEntry returns the account's entry with the smallest due date
	// strictly after the given instant, ties broken by id.
	// Returns domain.ErrEntryNotFound when there is none.
	FindNextDueEntry(ctx context.Context, accountID string, after time.Time) (*domain.TodoEntry, error)
}

// NoteRepository defines storage operations for notes.
type NoteRepository interface {
	// CreateNote inserts a new note.
	// Returns domain.ErrEntryNotFound if the owning entry does not exist.
	CreateNote(ctx context.Context, note *domain.Note) error

	// FindNoteByID retrieves a note.
	// Returns domain.ErrNoteNotFound if the note does not exist.
	FindNoteByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// DeleteNote removes the note if it is attached to note.EntryID.
	// Returns domain.ErrNoteNotFound otherwise.
	DeleteNote(ctx context.Context, note *domain.Note) error

	// FindNotesByEntry returns one page of an entry's notes ordered by id,
	// and the entry's total note count.
	FindNotesByEntry(ctx context.Context, entryID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.Note], error)
}

// Repository is the full set of storage operations a store provides.
type Repository interface {
	ListRepository
	EntryRepository
	NoteRepository

	// Atomic runs fn inside a transaction. The repository passed to fn is
	// scoped to that transaction; returning an error rolls it back.
	Atomic(ctx context.Context, fn func(repo Repository) error) error
}
