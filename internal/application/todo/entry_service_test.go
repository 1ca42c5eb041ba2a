package todo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/domain"
)

func newTestEntryService(repo *mockRepository) *EntryService {
	return NewEntryService(repo, repo, clock.NewFixed(testNow), Config{})
}

func storedEntry() *domain.TodoEntry {
	return &domain.TodoEntry{
		ID:          uuid.New(),
		ListID:      uuid.New(),
		Title:       "stored title",
		Description: "stored description",
		DueDate:     testNow.AddDate(0, 0, 2),
		CreatedAt:   testNow.AddDate(0, 0, -1),
		UpdatedAt:   testNow.AddDate(0, 0, -1),
		Progress:    domain.ProgressInProgress,
	}
}

func TestEntryService_ReadEntriesByList(t *testing.T) {
	listID := uuid.New()
	page := []domain.TodoEntry{
		{ID: uuid.New(), Title: "a", Progress: domain.ProgressNotStarted},
		{ID: uuid.New(), Title: "b", Progress: domain.ProgressCompleted},
		{ID: uuid.New(), Title: "c", Progress: domain.ProgressInProgress},
		{ID: uuid.New(), Title: "d", Progress: domain.ProgressCompleted},
	}
	newRepo := func() *mockRepository {
		return &mockRepository{
			findEntriesByListFn: func(_ context.Context, id uuid.UUID, req domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error) {
				assert.Equal(t, listID, id)
				assert.Equal(t, domain.PageRequest{Page: 1, Size: 4}, req)
				return domain.PagedResult[domain.TodoEntry]{Items: append([]domain.TodoEntry(nil), page...), TotalCount: 9}, nil
			},
		}
	}

	t.Run("hide completed filters the fetched page", func(t *testing.T) {
		got, err := newTestEntryService(newRepo()).ReadEntriesByList(context.Background(), listID, 1, 4, true)
		require.NoError(t, err)

		require.Len(t, got.Entries, 2)
		assert.Equal(t, "a", got.Entries[0].Title)
		assert.Equal(t, "c", got.Entries[1].Title)
		assert.True(t, got.HideCompleted)
		assert.Equal(t, 9, got.Paging.TotalItems)
		assert.Equal(t, 3, got.Paging.TotalPages())
	})

	t.Run("show completed keeps the page", func(t *testing.T) {
		got, err := newTestEntryService(newRepo()).ReadEntriesByList(context.Background(), listID, 1, 4, false)
		require.NoError(t, err)

		assert.Len(t, got.Entries, 4)
		assert.False(t, got.HideCompleted)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newTestEntryService(&mockRepository{})

		_, err := svc.ReadEntriesByList(context.Background(), uuid.Nil, 1, 4, true)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)

		_, err = svc.ReadEntriesByList(context.Background(), listID, 0, 4, true)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	})
}

func TestEntryService_CreateEntry(t *testing.T) {
	list := &domain.TodoList{ID: uuid.New(), AccountID: uuid.NewString(), Title: "Groceries"}
	due := testNow.Add(48 * time.Hour)

	var stored *domain.TodoEntry
	repo := &mockRepository{
		findListByIDFn: func(_ context.Context, id uuid.UUID) (*domain.TodoList, error) {
			assert.Equal(t, list.ID, id)
			return list, nil
		},
		createEntryFn: func(_ context.Context, e *domain.TodoEntry) error {
			stored = e
			return nil
		},
	}

	got, err := newTestEntryService(repo).CreateEntry(context.Background(), list.ID, "Milk", "Two litres", due)
	require.NoError(t, err)

	assert.Same(t, stored, got)
	assert.Equal(t, list.ID, got.ListID)
	assert.Equal(t, "Groceries", got.ListTitle)
	assert.Equal(t, "Milk", got.Title)
	assert.Equal(t, "Two litres", got.Description)
	assert.Equal(t, due, got.DueDate)
	assert.Equal(t, domain.ProgressNotStarted, got.Progress)
	assert.Equal(t, testNow, got.CreatedAt)
}

func TestEntryService_CreateEntry_Validation(t *testing.T) {
	svc := newTestEntryService(&mockRepository{})
	listID := uuid.New()
	future := testNow.Add(time.Hour)

	tests := []struct {
		name        string
		listID      uuid.UUID
		title       string
		description string
		due         time.Time
		wantErr     error
	}{
		{"zero list id", uuid.Nil, "t", "d", future, domain.ErrOutOfRange},
		{"empty title", listID, "", "d", future, domain.ErrNullArgument},
		{"long title", listID, strings.Repeat("t", 76), "d", future, domain.ErrOutOfRange},
		{"empty description", listID, "t", "", future, domain.ErrNullArgument},
		{"long description", listID, "t", strings.Repeat("d", 251), future, domain.ErrOutOfRange},
		{"due now", listID, "t", "d", testNow, domain.ErrOutOfRange},
		{"due in the past", listID, "t", "d", testNow.Add(-time.Minute), domain.ErrOutOfRange},
		{"zero due date", listID, "t", "d", time.Time{}, domain.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEntry(context.Background(), tt.listID, tt.title, tt.description, tt.due)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEntryService_CreateEntry_MissingList(t *testing.T) {
	repo := &mockRepository{
		findListByIDFn: func(context.Context, uuid.UUID) (*domain.TodoList, error) {
			return nil, domain.ErrListNotFound
		},
	}

	_, err := newTestEntryService(repo).CreateEntry(context.Background(), uuid.New(), "t", "d", testNow.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrListNotFound)
}

func TestEntryService_EditEntry(t *testing.T) {
	newDue := testNow.AddDate(0, 0, 5)

	tests := []struct {
		name      string
		edit      func(stored *domain.TodoEntry) domain.EntryEdit
		wantTitle string
		wantDesc  string
		wantDue   func(stored *domain.TodoEntry) time.Time
	}{
		{
			name: "only due date keeps text fields",
			edit: func(*domain.TodoEntry) domain.EntryEdit {
				return domain.EntryEdit{DueDate: newDue}
			},
			wantTitle: "stored title",
			wantDesc:  "stored description",
			wantDue:   func(*domain.TodoEntry) time.Time { return newDue },
		},
		{
			name: "all fields",
			edit: func(*domain.TodoEntry) domain.EntryEdit {
				return domain.EntryEdit{Title: domain.Some("new title"), Description: domain.Some("new description"), DueDate: newDue}
			},
			wantTitle: "new title",
			wantDesc:  "new description",
			wantDue:   func(*domain.TodoEntry) time.Time { return newDue },
		},
		{
			name: "same due date leaves it untouched",
			edit: func(stored *domain.TodoEntry) domain.EntryEdit {
				return domain.EntryEdit{Title: domain.Some("new title"), DueDate: stored.DueDate.In(time.FixedZone("UTC+2", 7200))}
			},
			wantTitle: "new title",
			wantDesc:  "stored description",
			wantDue:   func(stored *domain.TodoEntry) time.Time { return stored.DueDate },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored := storedEntry()
			originalDue := stored.DueDate
			var updated *domain.TodoEntry
			repo := &mockRepository{
				findEntryByIDFn: func(context.Context, uuid.UUID) (*domain.TodoEntry, error) {
					copied := *stored
					return &copied, nil
				},
				updateEntryFn: func(_ context.Context, e *domain.TodoEntry) error {
					updated = e
					return nil
				},
			}

			_, err := newTestEntryService(repo).EditEntry(context.Background(), stored.ID, tt.edit(stored))
			require.NoError(t, err)

			require.NotNil(t, updated)
			assert.Equal(t, tt.wantTitle, updated.Title)
			assert.Equal(t, tt.wantDesc, updated.Description)
			assert.Equal(t, tt.wantDue(stored), updated.DueDate)
			assert.Equal(t, originalDue, stored.DueDate)
			assert.Equal(t, stored.Progress, updated.Progress)
			assert.Equal(t, testNow, updated.UpdatedAt)
		})
	}
}

func TestEntryService_EditEntry_Validation(t *testing.T) {
	svc := newTestEntryService(&mockRepository{})
	future := testNow.Add(time.Hour)

	_, err := svc.EditEntry(context.Background(), uuid.Nil, domain.EntryEdit{DueDate: future})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = svc.EditEntry(context.Background(), uuid.New(), domain.EntryEdit{DueDate: testNow})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = svc.EditEntry(context.Background(), uuid.New(), domain.EntryEdit{Title: domain.Some(""), DueDate: future})
	assert.ErrorIs(t, err, domain.ErrNullArgument)

	_, err = svc.EditEntry(context.Background(), uuid.New(), domain.EntryEdit{Description: domain.Some(strings.Repeat("d", 251)), DueDate: future})
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestEntryService_EditEntry_Missing(t *testing.T) {
	repo := &mockRepository{
		findEntryByIDFn: func(context.Context, uuid.UUID) (*domain.TodoEntry, error) {
			return nil, domain.ErrEntryNotFound
		},
	}

	_, err := newTestEntryService(repo).EditEntry(context.Background(), uuid.New(), domain.EntryEdit{DueDate: testNow.Add(time.Hour)})
	assert.ErrorIs(t, err, domain.ErrNullArgument)
	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestEntryService_DeleteEntry(t *testing.T) {
	entryID, listID := uuid.New(), uuid.New()
	called := false
	repo := &mockRepository{
		deleteEntryFn: func(_ context.Context, e, l uuid.UUID) error {
			called = true
			assert.Equal(t, entryID, e)
			assert.Equal(t, listID, l)
			return nil
		},
	}
	svc := newTestEntryService(repo)

	require.NoError(t, svc.DeleteEntry(context.Background(), entryID, listID))
	assert.True(t, called)

	assert.ErrorIs(t, svc.DeleteEntry(context.Background(), uuid.Nil, listID), domain.ErrOutOfRange)
	assert.ErrorIs(t, svc.DeleteEntry(context.Background(), entryID, uuid.Nil), domain.ErrOutOfRange)
}

func TestEntryService_ChangeProgress(t *testing.T) {
	stored := storedEntry()
	var updated *domain.TodoEntry
	repo := &mockRepository{
		findEntryByIDFn: func(context.Context, uuid.UUID) (*domain.TodoEntry, error) { return stored, nil },
		updateEntryFn: func(_ context.Context, e *domain.TodoEntry) error {
			updated = e
			return nil
		},
	}
	svc := newTestEntryService(repo)

	_, err := svc.ChangeProgress(context.Background(), stored.ID, domain.ProgressNotStarted)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressNotStarted, updated.Progress)

	_, err = svc.CompleteEntry(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProgressCompleted, updated.Progress)

	_, err = svc.ChangeProgress(context.Background(), stored.ID, domain.ProgressStatus(3))
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	_, err = svc.CompleteEntry(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestEntryService_ReadTodaysEntries(t *testing.T) {
	accountID := uuid.NewString()
	var gotFrom, gotTo time.Time
	repo := &mockRepository{
		findEntriesDueFn: func(_ context.Context, acc string, from, to time.Time, req domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error) {
			assert.Equal(t, accountID, acc)
			assert.Equal(t, domain.PageRequest{Page: 1, Size: 4}, req)
			gotFrom, gotTo = from, to
			return domain.PagedResult[domain.TodoEntry]{Items: []domain.TodoEntry{{Title: "x"}}, TotalCount: 1}, nil
		},
	}

	got, err := newTestEntryService(repo).ReadTodaysEntries(context.Background(), accountID, 1, 4)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2022, 8, 14, 0, 0, 0, 0, time.UTC), gotFrom)
	assert.Equal(t, time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC), gotTo)
	assert.Len(t, got.Entries, 1)
	assert.Equal(t, 1, got.Paging.TotalPages())
}

func TestEntryService_ReadTodaysEntries_UsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("UTC-10", -10*60*60)
	var gotFrom time.Time
	repo := &mockRepository{
		findEntriesDueFn: func(_ context.Context, _ string, from, _ time.Time, _ domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error) {
			gotFrom = from
			return domain.PagedResult[domain.TodoEntry]{}, nil
		},
	}
	svc := NewEntryService(repo, repo, clock.NewFixed(testNow), Config{Location: loc})

	_, err := svc.ReadTodaysEntries(context.Background(), uuid.NewString(), 1, 4)
	require.NoError(t, err)

	// 09:00 UTC on the 14th is 23:00 on the 13th at UTC-10.
	assert.Equal(t, time.Date(2022, 8, 13, 10, 0, 0, 0, time.UTC), gotFrom)
}

func TestEntryService_GetReminderInfo(t *testing.T) {
	accountID := uuid.NewString()

	t.Run("next entry", func(t *testing.T) {
		next := storedEntry()
		repo := &mockRepository{
			findNextDueEntryFn: func(_ context.Context, acc string, after time.Time) (*domain.TodoEntry, error) {
				assert.Equal(t, accountID, acc)
				assert.Equal(t, testNow, after)
				return next, nil
			},
		}

		got, err := newTestEntryService(repo).GetReminderInfo(context.Background(), accountID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, next.Title, got.Title)
		assert.Equal(t, next.DueDate, got.DueDate)
		assert.Equal(t, next.ID, got.EntryID)
	})

	t.Run("none", func(t *testing.T) {
		repo := &mockRepository{
			findNextDueEntryFn: func(context.Context, string, time.Time) (*domain.TodoEntry, error) {
				return nil, domain.ErrEntryNotFound
			},
		}

		got, err := newTestEntryService(repo).GetReminderInfo(context.Background(), accountID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		dbErr := errors.New("timeout")
		repo := &mockRepository{
			findNextDueEntryFn: func(context.Context, string, time.Time) (*domain.TodoEntry, error) {
				return nil, dbErr
			},
		}

		_, err := newTestEntryService(repo).GetReminderInfo(context.Background(), accountID)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("invalid account", func(t *testing.T) {
		_, err := newTestEntryService(&mockRepository{}).GetReminderInfo(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	})
}
