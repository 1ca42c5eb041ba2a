package todo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/domain"
)

// mockRepository implements Repository with overridable functions.
// Calling a method whose function is unset fails the test with a panic.
type mockRepository struct {
	createListFn                func(ctx context.Context, list *domain.TodoList) error
	findListByIDFn              func(ctx context.Context, id uuid.UUID) (*domain.TodoList, error)
	updateListFn                func(ctx context.Context, list *domain.TodoList) error
	deleteListFn                func(ctx context.Context, id uuid.UUID) error
	findListsFn                 func(ctx context.Context, filter ListFilter, page domain.PageRequest) (domain.PagedResult[domain.TodoList], error)
	countListsWithTitlePrefixFn func(ctx context.Context, accountID, prefix string) (int, error)

	createEntryFn       func(ctx context.Context, entry *domain.TodoEntry) error
	createEntriesFn     func(ctx context.Context, entries []domain.TodoEntry) error
	findEntryByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.TodoEntry, error)
	updateEntryFn       func(ctx context.Context, entry *domain.TodoEntry) error
	deleteEntryFn       func(ctx context.Context, entryID, listID uuid.UUID) error
	findEntriesByListFn func(ctx context.Context, listID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error)
	findAllEntriesFn    func(ctx context.Context, listID uuid.UUID) ([]domain.TodoEntry, error)
	findEntriesDueFn    func(ctx context.Context, accountID string, from, to time.Time, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error)
	findNextDueEntryFn  func(ctx context.Context, accountID string, after time.Time) (*domain.TodoEntry, error)
	createNoteFn        func(ctx context.Context, note *domain.Note) error
	findNoteByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	deleteNoteFn        func(ctx context.Context, note *domain.Note) error
	findNotesByEntryFn  func(ctx context.Context, entryID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.Note], error)
	atomicCalls         int
}

var _ Repository = (*mockRepository)(nil)

func (m *mockRepository) CreateList(ctx context.Context, list *domain.TodoList) error {
	if m.createListFn == nil {
		panic("CreateList not used in this test")
	}
	return m.createListFn(ctx, list)
}

func (m *mockRepository) FindListByID(ctx context.Context, id uuid.UUID) (*domain.TodoList, error) {
	if m.findListByIDFn == nil {
		panic("FindListByID not used in this test")
	}
	return m.findListByIDFn(ctx, id)
}

func (m *mockRepository) UpdateList(ctx context.Context, list *domain.TodoList) error {
	if m.updateListFn == nil {
		panic("UpdateList not used in this test")
	}
	return m.updateListFn(ctx, list)
}

func (m *mockRepository) DeleteList(ctx context.Context, id uuid.UUID) error {
	if m.deleteListFn == nil {
		panic("DeleteList not used in this test")
	}
	return m.deleteListFn(ctx, id)
}

func (m *mockRepository) FindLists(ctx context.Context, filter ListFilter, page domain.PageRequest) (domain.PagedResult[domain.TodoList], error) {
	if m.findListsFn == nil {
		panic("FindLists not used in this test")
	}
	return m.findListsFn(ctx, filter, page)
}

func (m *mockRepository) CountListsWithTitlePrefix(ctx context.Context, accountID, prefix string) (int, error) {
	if m.countListsWithTitlePrefixFn == nil {
		panic("CountListsWithTitlePrefix not used in this test")
	}
	return m.countListsWithTitlePrefixFn(ctx, accountID, prefix)
}

func (m *mockRepository) CreateEntry(ctx context.Context, entry *domain.TodoEntry) error {
	if m.createEntryFn == nil {
		panic("CreateEntry not used in this test")
	}
	return m.createEntryFn(ctx, entry)
}

func (m *mockRepository) CreateEntries(ctx context.Context, entries []domain.TodoEntry) error {
	if m.createEntriesFn == nil {
		panic("CreateEntries not used in this test")
	}
	return m.createEntriesFn(ctx, entries)
}

func (m *mockRepository) FindEntryByID(ctx context.Context, id uuid.UUID) (*domain.TodoEntry, error) {
	if m.findEntryByIDFn == nil {
		panic("FindEntryByID not used in this test")
	}
	return m.findEntryByIDFn(ctx, id)
}

func (m *mockRepository) UpdateEntry(ctx context.Context, entry *domain.TodoEntry) error {
	if m.updateEntryFn == nil {
		panic("UpdateEntry not used in this test")
	}
	return m.updateEntryFn(ctx, entry)
}

func (m *mockRepository) DeleteEntry(ctx context.Context, entryID, listID uuid.UUID) error {
	if m.deleteEntryFn == nil {
		panic("DeleteEntry not used in this test")
	}
	return m.deleteEntryFn(ctx, entryID, listID)
}

func (m *mockRepository) FindEntriesByList(ctx context.Context, listID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error) {
	if m.findEntriesByListFn == nil {
		panic("FindEntriesByList not used in this test")
	}
	return m.findEntriesByListFn(ctx, listID, page)
}

func (m *mockRepository) FindAllEntriesByList(ctx context.Context, listID uuid.UUID) ([]domain.TodoEntry, error) {
	if m.findAllEntriesFn == nil {
		panic("FindAllEntriesByList not used in this test")
	}
	return m.findAllEntriesFn(ctx, listID)
}

func (m *mockRepository) FindEntriesDueBetween(ctx context.Context, accountID string, from, to time.Time, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error) {
	if m.findEntriesDueFn == nil {
		panic("FindEntriesDueBetween not used in this test")
	}
	return m.findEntriesDueFn(ctx, accountID, from, to, page)
}

func (m *mockRepository) FindNextDueEntry(ctx context.Context, accountID string, after time.Time) (*domain.TodoEntry, error) {
	if m.findNextDueEntryFn == nil {
		panic("FindNextDueEntry not used in this test")
	}
	return m.findNextDueEntryFn(ctx, accountID, after)
}

func (m *mockRepository) CreateNote(ctx context.Context, note *domain.Note) error {
	if m.createNoteFn == nil {
		panic("CreateNote not used in this test")
	}
	return m.createNoteFn(ctx, note)
}

func (m *mockRepository) FindNoteByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	if m.findNoteByIDFn == nil {
		panic("FindNoteByID not used in this test")
	}
	return m.findNoteByIDFn(ctx, id)
}

func (m *mockRepository) DeleteNote(ctx context.Context, note *domain.Note) error {
	if m.deleteNoteFn == nil {
		panic("DeleteNote not used in this test")
	}
	return m.deleteNoteFn(ctx, note)
}

func (m *mockRepository) FindNotesByEntry(ctx context.Context, entryID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.Note], error) {
	if m.findNotesByEntryFn == nil {
		panic("FindNotesByEntry not used in this test")
	}
	return m.findNotesByEntryFn(ctx, entryID, page)
}

func (m *mockRepository) Atomic(ctx context.Context, fn func(repo Repository) error) error {
	m.atomicCalls++
	return fn(m)
}
