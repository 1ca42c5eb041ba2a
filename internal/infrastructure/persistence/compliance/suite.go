// Package compliance holds a behavioural test suite shared by every store
// implementation.
package compliance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todolist/internal/application/auth"
	"github.com/rezkam/todolist/internal/application/todo"
	"github.com/rezkam/todolist/internal/domain"
)

// Store is what a storage backend must implement.
type Store interface {
	todo.Repository
	auth.Repository
}

// base is a whole second so every backend stores it exactly.
var base = time.Date(2022, time.August, 14, 9, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time {
	return base.Add(offset)
}

func newList(accountID, title string, created time.Time) *domain.TodoList {
	return &domain.TodoList{
		ID:        uuid.Must(uuid.NewV7()),
		AccountID: accountID,
		Title:     title,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func newEntry(listID uuid.UUID, title string, due time.Time) *domain.TodoEntry {
	return &domain.TodoEntry{
		ID:          uuid.Must(uuid.NewV7()),
		ListID:      listID,
		Title:       title,
		Description: "description of " + title,
		DueDate:     due,
		CreatedAt:   base,
		UpdatedAt:   base,
		Progress:    domain.ProgressNotStarted,
	}
}

func newNote(entryID uuid.UUID, text string) *domain.Note {
	return &domain.Note{ID: uuid.Must(uuid.NewV7()), EntryID: entryID, Text: text}
}

func assertSameTime(t *testing.T, want, got time.Time, field string) {
	t.Helper()
	assert.Truef(t, want.Equal(got), "%s: want %s, got %s", field, want, got)
}

func entryTitles(entries []domain.TodoEntry) []string {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	return titles
}

// RunRepositoryComplianceTest runs the suite against a Store. setup returns a
// fresh, empty store and a teardown function.
func RunRepositoryComplianceTest(t *testing.T, setup func() (Store, func())) {
	run := func(name string, fn func(t *testing.T, ctx context.Context, store Store)) {
		t.Run(name, func(t *testing.T) {
			store, teardown := setup()
			defer teardown()
			fn(t, context.Background(), store)
		})
	}

	run("ListRoundTrip", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Groceries", base)
		list.Hidden = true
		require.NoError(t, store.CreateList(ctx, list))

		got, err := store.FindListByID(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, list.ID, got.ID)
		assert.Equal(t, list.AccountID, got.AccountID)
		assert.Equal(t, "Groceries", got.Title)
		assert.True(t, got.Hidden)
		assertSameTime(t, list.CreatedAt, got.CreatedAt, "created_at")
		assertSameTime(t, list.UpdatedAt, got.UpdatedAt, "updated_at")
	})

	run("FindMissingList", func(t *testing.T, ctx context.Context, store Store) {
		_, err := store.FindListByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrListNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	run("UpdateList", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Before", base)
		require.NoError(t, store.CreateList(ctx, list))

		list.Title = "After"
		list.Hidden = true
		list.UpdatedAt = at(time.Hour)
		require.NoError(t, store.UpdateList(ctx, list))

		got, err := store.FindListByID(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", got.Title)
		assert.True(t, got.Hidden)
		assertSameTime(t, at(time.Hour), got.UpdatedAt, "updated_at")
		assertSameTime(t, base, got.CreatedAt, "created_at")

		missing := newList(list.AccountID, "Missing", base)
		assert.ErrorIs(t, store.UpdateList(ctx, missing), domain.ErrListNotFound)
	})

	run("DeleteListCascades", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Doomed", base)
		require.NoError(t, store.CreateList(ctx, list))
		entry := newEntry(list.ID, "task", at(24*time.Hour))
		require.NoError(t, store.CreateEntry(ctx, entry))
		note := newNote(entry.ID, "remember")
		require.NoError(t, store.CreateNote(ctx, note))

		require.NoError(t, store.DeleteList(ctx, list.ID))

		_, err := store.FindListByID(ctx, list.ID)
		assert.ErrorIs(t, err, domain.ErrListNotFound)
		_, err = store.FindEntryByID(ctx, entry.ID)
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
		_, err = store.FindNoteByID(ctx, note.ID)
		assert.ErrorIs(t, err, domain.ErrNoteNotFound)

		assert.ErrorIs(t, store.DeleteList(ctx, list.ID), domain.ErrListNotFound)
	})

	run("FindListsPagesByAccountAndHidden", func(t *testing.T, ctx context.Context, store Store) {
		account := uuid.NewString()
		for i, title := range []string{"first", "second", "third"} {
			require.NoError(t, store.CreateList(ctx, newList(account, title, at(time.Duration(i)*time.Minute))))
		}
		hidden := newList(account, "hidden", base)
		hidden.Hidden = true
		require.NoError(t, store.CreateList(ctx, hidden))
		require.NoError(t, store.CreateList(ctx, newList(uuid.NewString(), "someone else", base)))

		visible := todo.ListFilter{AccountID: account}

		page1, err := store.FindLists(ctx, visible, domain.PageRequest{Page: 1, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, page1.TotalCount)
		require.Len(t, page1.Items, 2)
		assert.Equal(t, "first", page1.Items[0].Title)
		assert.Equal(t, "second", page1.Items[1].Title)

		page2, err := store.FindLists(ctx, visible, domain.PageRequest{Page: 2, Size: 2})
		require.NoError(t, err)
		require.Len(t, page2.Items, 1)
		assert.Equal(t, "third", page2.Items[0].Title)

		page3, err := store.FindLists(ctx, visible, domain.PageRequest{Page: 3, Size: 2})
		require.NoError(t, err)
		assert.Empty(t, page3.Items)
		assert.Equal(t, 3, page3.TotalCount)

		hiddenPage, err := store.FindLists(ctx, todo.ListFilter{AccountID: account, Hidden: true}, domain.PageRequest{Page: 1, Size: 5})
		require.NoError(t, err)
		require.Len(t, hiddenPage.Items, 1)
		assert.Equal(t, hidden.ID, hiddenPage.Items[0].ID)
		assert.Equal(t, 1, hiddenPage.TotalCount)
	})

	run("CountListsWithTitlePrefix", func(t *testing.T, ctx context.Context, store Store) {
		account := uuid.NewString()
		hidden := newList(account, "Tdl 1 -Copy 2", base)
		hidden.Hidden = true
		for _, l := range []*domain.TodoList{
			newList(account, "Tdl 1", base),
			newList(account, "Tdl 1 -Copy 1", base),
			newList(account, "Other", base),
			newList(account, "tdl 1 lowercase", base),
			hidden,
			newList(uuid.NewString(), "Tdl 1", base),
		} {
			require.NoError(t, store.CreateList(ctx, l))
		}

		count, err := store.CountListsWithTitlePrefix(ctx, account, "Tdl 1")
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		count, err = store.CountListsWithTitlePrefix(ctx, account, "100%")
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	run("EntryRoundTrip", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Work", base)
		require.NoError(t, store.CreateList(ctx, list))
		entry := newEntry(list.ID, "report", at(48*time.Hour))
		entry.Progress = domain.ProgressInProgress
		require.NoError(t, store.CreateEntry(ctx, entry))

		got, err := store.FindEntryByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
		assert.Equal(t, list.ID, got.ListID)
		assert.Equal(t, "Work", got.ListTitle)
		assert.Equal(t, entry.Title, got.Title)
		assert.Equal(t, entry.Description, got.Description)
		assert.Equal(t, domain.ProgressInProgress, got.Progress)
		assertSameTime(t, entry.DueDate, got.DueDate, "due_date")
		assertSameTime(t, entry.CreatedAt, got.CreatedAt, "created_at")

		_, err = store.FindEntryByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	run("CreateEntryInMissingList", func(t *testing.T, ctx context.Context, store Store) {
		err := store.CreateEntry(ctx, newEntry(uuid.New(), "orphan", at(time.Hour)))
		assert.ErrorIs(t, err, domain.ErrListNotFound)
	})

	run("CreateEntriesBatch", func(t *testing.T, ctx context.Context, store Store) {
		require.NoError(t, store.CreateEntries(ctx, nil))

		list := newList(uuid.NewString(), "Batch", base)
		require.NoError(t, store.CreateList(ctx, list))
		batch := []domain.TodoEntry{
			*newEntry(list.ID, "later", at(72*time.Hour)),
			*newEntry(list.ID, "sooner", at(24*time.Hour)),
		}
		require.NoError(t, store.CreateEntries(ctx, batch))

		all, err := store.FindAllEntriesByList(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"sooner", "later"}, entryTitles(all))

		invalid := []domain.TodoEntry{*newEntry(list.ID, "ok", at(time.Hour)), *newEntry(list.ID, "", at(time.Hour))}
		assert.ErrorIs(t, store.CreateEntries(ctx, invalid), domain.ErrNullArgument)
	})

	run("UpdateEntry", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Work", base)
		require.NoError(t, store.CreateList(ctx, list))
		entry := newEntry(list.ID, "draft", at(time.Hour))
		require.NoError(t, store.CreateEntry(ctx, entry))

		entry.Title = "final"
		entry.Description = "done properly"
		entry.DueDate = at(5 * time.Hour)
		entry.Progress = domain.ProgressCompleted
		entry.UpdatedAt = at(2 * time.Hour)
		require.NoError(t, store.UpdateEntry(ctx, entry))

		got, err := store.FindEntryByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", got.Title)
		assert.Equal(t, "done properly", got.Description)
		assert.Equal(t, domain.ProgressCompleted, got.Progress)
		assertSameTime(t, at(5*time.Hour), got.DueDate, "due_date")
		assertSameTime(t, at(2*time.Hour), got.UpdatedAt, "updated_at")

		assert.ErrorIs(t, store.UpdateEntry(ctx, newEntry(list.ID, "ghost", at(time.Hour))), domain.ErrEntryNotFound)
	})

	run("DeleteEntryRequiresOwningList", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Work", base)
		require.NoError(t, store.CreateList(ctx, list))
		entry := newEntry(list.ID, "task", at(time.Hour))
		require.NoError(t, store.CreateEntry(ctx, entry))

		assert.ErrorIs(t, store.DeleteEntry(ctx, entry.ID, uuid.New()), domain.ErrEntryNotFound)
		_, err := store.FindEntryByID(ctx, entry.ID)
		require.NoError(t, err)

		require.NoError(t, store.DeleteEntry(ctx, entry.ID, list.ID))
		_, err = store.FindEntryByID(ctx, entry.ID)
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	run("FindEntriesByListPages", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Work", base)
		other := newList(list.AccountID, "Other", base)
		require.NoError(t, store.CreateList(ctx, list))
		require.NoError(t, store.CreateList(ctx, other))
		for i := range 5 {
			require.NoError(t, store.CreateEntry(ctx, newEntry(list.ID, string(rune('a'+i)), at(time.Duration(5-i)*time.Hour))))
		}
		require.NoError(t, store.CreateEntry(ctx, newEntry(other.ID, "elsewhere", at(time.Hour))))

		page, err := store.FindEntriesByList(ctx, list.ID, domain.PageRequest{Page: 1, Size: 4})
		require.NoError(t, err)
		assert.Equal(t, 5, page.TotalCount)
		assert.Equal(t, []string{"e", "d", "c", "b"}, entryTitles(page.Items))

		page, err = store.FindEntriesByList(ctx, list.ID, domain.PageRequest{Page: 2, Size: 4})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, entryTitles(page.Items))
	})

	run("FindEntriesDueBetween", func(t *testing.T, ctx context.Context, store Store) {
		account := uuid.NewString()
		visible := newList(account, "Visible", base)
		hidden := newList(account, "Hidden", base)
		hidden.Hidden = true
		foreign := newList(uuid.NewString(), "Foreign", base)
		for _, l := range []*domain.TodoList{visible, hidden, foreign} {
			require.NoError(t, store.CreateList(ctx, l))
		}

		from := time.Date(2022, time.August, 15, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 1)
		for _, e := range []*domain.TodoEntry{
			newEntry(visible.ID, "at start", from),
			newEntry(hidden.ID, "hidden noon", from.Add(12*time.Hour)),
			newEntry(visible.ID, "last second", to.Add(-time.Second)),
			newEntry(visible.ID, "at end", to),
			newEntry(visible.ID, "day before", from.Add(-time.Second)),
			newEntry(foreign.ID, "foreign noon", from.Add(12*time.Hour)),
		} {
			require.NoError(t, store.CreateEntry(ctx, e))
		}

		page, err := store.FindEntriesDueBetween(ctx, account, from, to, domain.PageRequest{Page: 1, Size: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalCount)
		assert.Equal(t, []string{"at start", "hidden noon", "last second"}, entryTitles(page.Items))

		page, err = store.FindEntriesDueBetween(ctx, account, from, to, domain.PageRequest{Page: 2, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"last second"}, entryTitles(page.Items))
	})

	run("FindNextDueEntry", func(t *testing.T, ctx context.Context, store Store) {
		account := uuid.NewString()
		list := newList(account, "Reminders", base)
		require.NoError(t, store.CreateList(ctx, list))

		_, err := store.FindNextDueEntry(ctx, account, base)
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)

		past := newEntry(list.ID, "past", base.Add(-time.Hour))
		exactlyNow := newEntry(list.ID, "now", base)
		second := newEntry(list.ID, "tie second", at(24*time.Hour))
		second.ID = uuid.MustParse("00000000-0000-7000-8000-000000000002")
		first := newEntry(list.ID, "tie first", at(24*time.Hour))
		first.ID = uuid.MustParse("00000000-0000-7000-8000-000000000001")
		later := newEntry(list.ID, "later", at(48*time.Hour))
		for _, e := range []*domain.TodoEntry{past, exactlyNow, second, later, first} {
			require.NoError(t, store.CreateEntry(ctx, e))
		}

		next, err := store.FindNextDueEntry(ctx, account, base)
		require.NoError(t, err)
		assert.Equal(t, "tie first", next.Title)

		_, err = store.FindNextDueEntry(ctx, uuid.NewString(), base)
		assert.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	run("Notes", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Work", base)
		require.NoError(t, store.CreateList(ctx, list))
		entry := newEntry(list.ID, "task", at(time.Hour))
		other := newEntry(list.ID, "other", at(time.Hour))
		require.NoError(t, store.CreateEntry(ctx, entry))
		require.NoError(t, store.CreateEntry(ctx, other))

		var notes []*domain.Note
		for _, text := range []string{"one", "two", "three", "four"} {
			n := newNote(entry.ID, text)
			require.NoError(t, store.CreateNote(ctx, n))
			notes = append(notes, n)
		}
		require.NoError(t, store.CreateNote(ctx, newNote(other.ID, "not mine")))

		got, err := store.FindNoteByID(ctx, notes[0].ID)
		require.NoError(t, err)
		assert.Equal(t, *notes[0], *got)

		page, err := store.FindNotesByEntry(ctx, entry.ID, domain.PageRequest{Page: 2, Size: 3})
		require.NoError(t, err)
		assert.Equal(t, 4, page.TotalCount)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "four", page.Items[0].Text)

		assert.ErrorIs(t, store.CreateNote(ctx, newNote(uuid.New(), "orphan")), domain.ErrEntryNotFound)

		elsewhere := *notes[1]
		elsewhere.EntryID = other.ID
		assert.ErrorIs(t, store.DeleteNote(ctx, &elsewhere), domain.ErrNoteNotFound)

		require.NoError(t, store.DeleteNote(ctx, notes[1]))
		_, err = store.FindNoteByID(ctx, notes[1].ID)
		assert.ErrorIs(t, err, domain.ErrNoteNotFound)
	})

	run("AdapterGuards", func(t *testing.T, ctx context.Context, store Store) {
		account := uuid.NewString()

		assert.ErrorIs(t, store.CreateList(ctx, nil), domain.ErrNullArgument)
		assert.ErrorIs(t, store.CreateList(ctx, newList(account, "  ", base)), domain.ErrNullArgument)
		assert.ErrorIs(t, store.CreateList(ctx, newList(account, strings.Repeat("x", 101), base)), domain.ErrOutOfRange)
		assert.ErrorIs(t, store.CreateList(ctx, newList("not-a-guid", "t", base)), domain.ErrInvalidFormat)

		list := newList(account, "ok", base)
		require.NoError(t, store.CreateList(ctx, list))

		long := newEntry(list.ID, strings.Repeat("x", 76), at(time.Hour))
		assert.ErrorIs(t, store.CreateEntry(ctx, long), domain.ErrOutOfRange)
		undated := newEntry(list.ID, "undated", time.Time{})
		assert.ErrorIs(t, store.CreateEntry(ctx, undated), domain.ErrOutOfRange)
		maxDated := newEntry(list.ID, "forever", domain.MaxTime)
		assert.ErrorIs(t, store.CreateEntry(ctx, maxDated), domain.ErrOutOfRange)
		badProgress := newEntry(list.ID, "bad", at(time.Hour))
		badProgress.Progress = domain.ProgressStatus(7)
		assert.ErrorIs(t, store.CreateEntry(ctx, badProgress), domain.ErrOutOfRange)

		assert.ErrorIs(t, store.CreateNote(ctx, nil), domain.ErrNullArgument)
		assert.ErrorIs(t, store.CreateNote(ctx, newNote(uuid.New(), strings.Repeat("n", 151))), domain.ErrOutOfRange)

		_, err := store.FindListByID(ctx, uuid.Nil)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
		_, err = store.FindLists(ctx, todo.ListFilter{AccountID: "bad"}, domain.PageRequest{Page: 1, Size: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)
		_, err = store.FindLists(ctx, todo.ListFilter{AccountID: account}, domain.PageRequest{Page: 0, Size: 1})
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
		_, err = store.FindNextDueEntry(ctx, "", base)
		assert.ErrorIs(t, err, domain.ErrNullArgument)
	})

	run("AtomicRollsBack", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Rolled back", base)
		boom := errors.New("boom")

		err := store.Atomic(ctx, func(repo todo.Repository) error {
			require.NoError(t, repo.CreateList(ctx, list))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = store.FindListByID(ctx, list.ID)
		assert.ErrorIs(t, err, domain.ErrListNotFound)
	})

	run("AtomicCommits", func(t *testing.T, ctx context.Context, store Store) {
		list := newList(uuid.NewString(), "Committed", base)
		entry := newEntry(list.ID, "inside", at(time.Hour))

		err := store.Atomic(ctx, func(repo todo.Repository) error {
			if err := repo.CreateList(ctx, list); err != nil {
				return err
			}
			return repo.CreateEntries(ctx, []domain.TodoEntry{*entry})
		})
		require.NoError(t, err)

		got, err := store.FindEntryByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, "Committed", got.ListTitle)
	})

	run("APIKeys", func(t *testing.T, ctx context.Context, store Store) {
		key := &domain.APIKey{
			ID:             uuid.Must(uuid.NewV7()).String(),
			AccountID:      uuid.NewString(),
			KeyType:        "sk",
			Service:        "todolist",
			Version:        "v1",
			ShortToken:     "a3f5d8c2b4e6",
			LongSecretHash: strings.Repeat("ab", 32),
			Name:           "cli",
			IsActive:       true,
			CreatedAt:      base,
		}
		require.NoError(t, store.Create(ctx, key))

		got, err := store.FindByShortToken(ctx, key.ShortToken)
		require.NoError(t, err)
		assert.Equal(t, key.ID, got.ID)
		assert.Equal(t, key.AccountID, got.AccountID)
		assert.Equal(t, key.LongSecretHash, got.LongSecretHash)
		assert.True(t, got.IsActive)
		assert.Nil(t, got.LastUsedAt)
		assert.Nil(t, got.ExpiresAt)

		require.NoError(t, store.UpdateLastUsed(ctx, key.ID, at(time.Hour)))
		require.NoError(t, store.UpdateLastUsed(ctx, key.ID, at(time.Minute)))
		got, err = store.FindByShortToken(ctx, key.ShortToken)
		require.NoError(t, err)
		require.NotNil(t, got.LastUsedAt)
		assertSameTime(t, at(time.Hour), *got.LastUsedAt, "last_used_at")

		_, err = store.FindByShortToken(ctx, "000000000000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.ErrorIs(t, store.UpdateLastUsed(ctx, uuid.NewString(), base), domain.ErrNotFound)
	})
}
