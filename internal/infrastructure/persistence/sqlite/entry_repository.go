package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

const (
	entrySelect = `SELECT e.id, e.list_id, e.title, e.description, e.due_date, e.progress,
		e.created_at, e.updated_at, l.title
		FROM todo_entries e JOIN todo_lists l ON l.id = e.list_id`

	insertEntry = `INSERT INTO todo_entries
		(id, list_id, title, description, due_date, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

func scanEntry(row scanner) (domain.TodoEntry, error) {
	var (
		e                     domain.TodoEntry
		progress              int
		due, created, updated string
	)
	err := row.Scan(&e.ID, &e.ListID, &e.Title, &e.Description, &due, &progress, &created, &updated, &e.ListTitle)
	if err != nil {
		return domain.TodoEntry{}, err
	}
	e.Progress = domain.ProgressStatus(progress)
	if e.DueDate, err = parseTime(due); err != nil {
		return domain.TodoEntry{}, err
	}
	if e.CreatedAt, err = parseTime(created); err != nil {
		return domain.TodoEntry{}, err
	}
	if e.UpdatedAt, err = parseTime(updated); err != nil {
		return domain.TodoEntry{}, err
	}
	return e, nil
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]domain.TodoEntry, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanEntry)
}

func (s *Store) insertEntry(ctx context.Context, e *domain.TodoEntry) error {
	_, err := s.q.ExecContext(ctx, insertEntry,
		e.ID, e.ListID, e.Title, e.Description, formatTime(e.DueDate), int(e.Progress),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrListNotFound, e.ListID)
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// CreateEntry inserts an entry. A missing list yields domain.ErrListNotFound.
func (s *Store) CreateEntry(ctx context.Context, entry *domain.TodoEntry) error {
	if err := guard.Entry(entry); err != nil {
		return err
	}
	return s.insertEntry(ctx, entry)
}

// CreateEntries inserts entries in one transaction. An empty slice is a no-op.
func (s *Store) CreateEntries(ctx context.Context, entries []domain.TodoEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		if err := guard.Entry(&entries[i]); err != nil {
			return err
		}
	}

	return s.transact(ctx, "create_entries", func(tx *Store) error {
		for i := range entries {
			if err := tx.insertEntry(ctx, &entries[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindEntryByID retrieves an entry with the title of its list.
func (s *Store) FindEntryByID(ctx context.Context, id uuid.UUID) (*domain.TodoEntry, error) {
	if err := guard.NonEmptyID(id, "entry_id"); err != nil {
		return nil, err
	}

	entry, err := scanEntry(s.q.QueryRowContext(ctx, entrySelect+` WHERE e.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return &entry, nil
}

// UpdateEntry overwrites the mutable fields of an entry.
func (s *Store) UpdateEntry(ctx context.Context, entry *domain.TodoEntry) error {
	if err := guard.Entry(entry); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		`UPDATE todo_entries
		 SET title = ?, description = ?, due_date = ?, progress = ?, updated_at = ?
		 WHERE id = ?`,
		entry.Title, entry.Description, formatTime(entry.DueDate), int(entry.Progress),
		formatTime(entry.UpdatedAt), entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return checkRowsAffected(res, domain.ErrEntryNotFound, entry.ID)
}

// DeleteEntry removes an entry only if it belongs to listID.
func (s *Store) DeleteEntry(ctx context.Context, entryID, listID uuid.UUID) error {
	if err := guard.First(guard.NonEmptyID(entryID, "entry_id"), guard.NonEmptyID(listID, "list_id")); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `DELETE FROM todo_entries WHERE id = ? AND list_id = ?`, entryID, listID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return checkRowsAffected(res, domain.ErrEntryNotFound, entryID)
}

// FindEntriesByList returns one page of a list's entries by due date.
func (s *Store) FindEntriesByList(ctx context.Context, listID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error) {
	var result domain.PagedResult[domain.TodoEntry]
	if err := guard.First(guard.NonEmptyID(listID, "list_id"), guard.Page(page, 0)); err != nil {
		return result, err
	}

	items, err := s.queryEntries(ctx,
		entrySelect+` WHERE e.list_id = ? ORDER BY e.due_date, e.id LIMIT ? OFFSET ?`,
		listID, page.Size, page.Offset())
	if err != nil {
		return result, fmt.Errorf("failed to find entries: %w", err)
	}
	result.Items = items

	err = s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM todo_entries WHERE list_id = ?`, listID).Scan(&result.TotalCount)
	if err != nil {
		return result, fmt.Errorf("failed to count entries: %w", err)
	}
	return result, nil
}

// FindAllEntriesByList returns every entry of a list by due date.
func (s *Store) FindAllEntriesByList(ctx context.Context, listID uuid.UUID) ([]domain.TodoEntry, error) {
	if err := guard.NonEmptyID(listID, "list_id"); err != nil {
		return nil, err
	}

	entries, err := s.queryEntries(ctx, entrySelect+` WHERE e.list_id = ? ORDER BY e.due_date, e.id`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entries: %w", err)
	}
	return entries, nil
}

// FindEntriesDueBetween returns one page of the account's entries due in
// [from, to).
func (s *Store) FindEntriesDueBetween(ctx context.Context, accountID string, from, to time.Time, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error) {
	var result domain.PagedResult[domain.TodoEntry]
	if err := guard.First(guard.AccountID(accountID), guard.Page(page, 0)); err != nil {
		return result, err
	}

	lo, hi := formatTime(from), formatTime(to)
	items, err := s.queryEntries(ctx,
		entrySelect+` WHERE l.account_id = ? AND e.due_date >= ? AND e.due_date < ?
		 ORDER BY e.due_date, e.id LIMIT ? OFFSET ?`,
		accountID, lo, hi, page.Size, page.Offset())
	if err != nil {
		return result, fmt.Errorf("failed to find due entries: %w", err)
	}
	result.Items = items

	err = s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM todo_entries e JOIN todo_lists l ON l.id = e.list_id
		 WHERE l.account_id = ? AND e.due_date >= ? AND e.due_date < ?`,
		accountID, lo, hi).Scan(&result.TotalCount)
	if err != nil {
		return result, fmt.Errorf("failed to count due entries: %w", err)
	}
	return result, nil
}

// FindNextDueEntry returns the account's entry with the earliest due date
// strictly after the given instant, or domain.ErrEntryNotFound.
func (s *Store) FindNextDueEntry(ctx context.Context, accountID string, after time.Time) (*domain.TodoEntry, error) {
	if err := guard.AccountID(accountID); err != nil {
		return nil, err
	}

	entry, err := scanEntry(s.q.QueryRowContext(ctx,
		entrySelect+` WHERE l.account_id = ? AND e.due_date > ? ORDER BY e.due_date, e.id LIMIT 1`,
		accountID, formatTime(after)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no entry due after %s", domain.ErrEntryNotFound, after.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("failed to find next entry: %w", err)
	}
	return &entry, nil
}
