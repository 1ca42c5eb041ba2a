package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

// === Entry Operations ===

const (
	entrySelect = `SELECT e.id, e.list_id, e.title, e.description, e.due_date, e.progress,
		e.created_at, e.updated_at, l.title
		FROM todo_entries e JOIN todo_lists l ON l.id = e.list_id`

	insertEntry = `INSERT INTO todo_entries
		(id, list_id, title, description, due_date, progress, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
)

func scanEntry(row pgx.Row) (domain.TodoEntry, error) {
	var (
		e        domain.TodoEntry
		progress int16
	)
	err := row.Scan(&e.ID, &e.ListID, &e.Title, &e.Description, &e.DueDate, &progress,
		&e.CreatedAt, &e.UpdatedAt, &e.ListTitle)
	if err != nil {
		return domain.TodoEntry{}, err
	}
	e.Progress = domain.ProgressStatus(progress)
	e.DueDate = e.DueDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}

func (s *Store) collectEntries(ctx context.Context, sql string, args ...any) ([]domain.TodoEntry, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TodoEntry, error) {
		return scanEntry(row)
	})
}

func entryArgs(e *domain.TodoEntry) []any {
	return []any{e.ID, e.ListID, e.Title, e.Description, e.DueDate, int16(e.Progress), e.CreatedAt, e.UpdatedAt}
}

// CreateEntry inserts an entry. A missing list yields domain.ErrListNotFound.
func (s *Store) CreateEntry(ctx context.Context, entry *domain.TodoEntry) error {
	if err := guard.Entry(entry); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, insertEntry, entryArgs(entry)...); err != nil {
		if isForeignKeyViolation(err, "list_id") {
			return fmt.Errorf("%w: %s", domain.ErrListNotFound, entry.ListID)
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// CreateEntries inserts entries in one batch. An empty slice is a no-op.
func (s *Store) CreateEntries(ctx context.Context, entries []domain.TodoEntry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range entries {
		if err := guard.Entry(&entries[i]); err != nil {
			return err
		}
		batch.Queue(insertEntry, entryArgs(&entries[i])...)
	}

	if err := s.db.SendBatch(ctx, batch).Close(); err != nil {
		if isForeignKeyViolation(err, "list_id") {
			return fmt.Errorf("%w: batch insert", domain.ErrListNotFound)
		}
		return fmt.Errorf("failed to create entries: %w", err)
	}
	return nil
}

// FindEntryByID retrieves an entry with the title of its list.
func (s *Store) FindEntryByID(ctx context.Context, id uuid.UUID) (*domain.TodoEntry, error) {
	if err := guard.NonEmptyID(id, "entry_id"); err != nil {
		return nil, err
	}

	entry, err := scanEntry(s.db.QueryRow(ctx, entrySelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

	tag, err := s.db.Exec(ctx,
		`UPDATE todo_entries
		 SET title = $2, description = $3, due_date = $4, progress = $5, updated_at = $6
		 WHERE id = $1`,
		entry.ID, entry.Title, entry.Description, entry.DueDate, int16(entry.Progress), entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrEntryNotFound, entry.ID)
}

// DeleteEntry removes an entry only if it belongs to listID.
func (s *Store) DeleteEntry(ctx context.Context, entryID, listID uuid.UUID) error {
	if err := guard.First(guard.NonEmptyID(entryID, "entry_id"), guard.NonEmptyID(listID, "list_id")); err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM todo_entries WHERE id = $1 AND list_id = $2`, entryID, listID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrEntryNotFound, entryID)
}

// FindEntriesByList returns one page of a list's entries by due date.
func (s *Store) FindEntriesByList(ctx context.Context, listID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error) {
	var result domain.PagedResult[domain.TodoEntry]
	if err := guard.First(guard.NonEmptyID(listID, "list_id"), guard.Page(page, 0)); err != nil {
		return result, err
	}

	items, err := s.collectEntries(ctx,
		entrySelect+` WHERE e.list_id = $1 ORDER BY e.due_date, e.id LIMIT $2 OFFSET $3`,
		listID, page.Size, page.Offset())
	if err != nil {
		return result, fmt.Errorf("failed to find entries: %w", err)
	}
	result.Items = items

	err = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM todo_entries WHERE list_id = $1`, listID).Scan(&result.TotalCount)
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

	entries, err := s.collectEntries(ctx, entrySelect+` WHERE e.list_id = $1 ORDER BY e.due_date, e.id`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entries: %w", err)
	}
	return entries, nil
}

// FindEntriesDueBetween returns one page of the account's entries due in
// [from, to), hidden lists included.
func (s *Store) FindEntriesDueBetween(ctx context.Context, accountID string, from, to time.Time, page domain.PageRequest) (domain.PagedResult[domain.TodoEntry], error) {
	var result domain.PagedResult[domain.TodoEntry]
	if err := guard.First(guard.AccountID(accountID), guard.Page(page, 0)); err != nil {
		return result, err
	}

	items, err := s.collectEntries(ctx,
		entrySelect+` WHERE l.account_id = $1 AND e.due_date >= $2 AND e.due_date < $3
		 ORDER BY e.due_date, e.id LIMIT $4 OFFSET $5`,
		accountID, from, to, page.Size, page.Offset())
	if err != nil {
		return result, fmt.Errorf("failed to find due entries: %w", err)
	}
	result.Items = items

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM todo_entries e JOIN todo_lists l ON l.id = e.list_id
		 WHERE l.account_id = $1 AND e.due_date >= $2 AND e.due_date < $3`,
		accountID, from, to).Scan(&result.TotalCount)
	if err != nil {
		return result, fmt.Errorf("failed to count due entries: %w", err)
	}
	return result, nil
}

// FindNextDueEntry returns the account's entry with the earliest due date
// strictly after the given instant. It returns domain.ErrEntryNotFound when
// there is none.
func (s *Store) FindNextDueEntry(ctx context.Context, accountID string, after time.Time) (*domain.TodoEntry, error) {
	if err := guard.AccountID(accountID); err != nil {
		return nil, err
	}

	entry, err := scanEntry(s.db.QueryRow(ctx,
		entrySelect+` WHERE l.account_id = $1 AND e.due_date > $2 ORDER BY e.due_date, e.id LIMIT 1`,
		accountID, after))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no entry due after %s", domain.ErrEntryNotFound, after.Format(time.RFC3339))
		}
		return nil, fmt.Errorf("failed to find next entry: %w", err)
	}
	return &entry, nil
}
