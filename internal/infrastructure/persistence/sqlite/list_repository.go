package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/application/todo"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

const listColumns = `id, account_id, title, hidden, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanList(row scanner) (domain.TodoList, error) {
	var (
		l                domain.TodoList
		created, updated string
	)
	if err := row.Scan(&l.ID, &l.AccountID, &l.Title, &l.Hidden, &created, &updated); err != nil {
		return domain.TodoList{}, err
	}
	var err error
	if l.CreatedAt, err = parseTime(created); err != nil {
		return domain.TodoList{}, err
	}
	if l.UpdatedAt, err = parseTime(updated); err != nil {
		return domain.TodoList{}, err
	}
	return l, nil
}

// CreateList inserts a new list.
func (s *Store) CreateList(ctx context.Context, list *domain.TodoList) error {
	if err := guard.List(list); err != nil {
		return err
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO todo_lists (`+listColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		list.ID, list.AccountID, list.Title, list.Hidden, formatTime(list.CreatedAt), formatTime(list.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

// FindListByID retrieves a list by its ID.
func (s *Store) FindListByID(ctx context.Context, id uuid.UUID) (*domain.TodoList, error) {
	if err := guard.NonEmptyID(id, "list_id"); err != nil {
		return nil, err
	}

	list, err := scanList(s.q.QueryRowContext(ctx, `SELECT `+listColumns+` FROM todo_lists WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrListNotFound, id)
		}
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	return &list, nil
}

// UpdateList overwrites the title, hidden flag and update time of a list.
func (s *Store) UpdateList(ctx context.Context, list *domain.TodoList) error {
	if err := guard.List(list); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		`UPDATE todo_lists SET title = ?, hidden = ?, updated_at = ? WHERE id = ?`,
		list.Title, list.Hidden, formatTime(list.UpdatedAt), list.ID)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	return checkRowsAffected(res, domain.ErrListNotFound, list.ID)
}

// DeleteList removes a list together with its entries and their notes.
func (s *Store) DeleteList(ctx context.Context, id uuid.UUID) error {
	if err := guard.NonEmptyID(id, "list_id"); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `DELETE FROM todo_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return checkRowsAffected(res, domain.ErrListNotFound, id)
}

// FindLists returns one page of an account's lists with the given hidden flag.
func (s *Store) FindLists(ctx context.Context, filter todo.ListFilter, page domain.PageRequest) (domain.PagedResult[domain.TodoList], error) {
	var result domain.PagedResult[domain.TodoList]
	if err := guard.First(guard.AccountID(filter.AccountID), guard.Page(page, 0)); err != nil {
		return result, err
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT `+listColumns+` FROM todo_lists
		 WHERE account_id = ? AND hidden = ?
		 ORDER BY created_at, id
		 LIMIT ? OFFSET ?`,
		filter.AccountID, filter.Hidden, page.Size, page.Offset())
	if err != nil {
		return result, fmt.Errorf("failed to find lists: %w", err)
	}
	if result.Items, err = collect(rows, scanList); err != nil {
		return result, fmt.Errorf("failed to scan lists: %w", err)
	}

	err = s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM todo_lists WHERE account_id = ? AND hidden = ?`,
		filter.AccountID, filter.Hidden).Scan(&result.TotalCount)
	if err != nil {
		return result, fmt.Errorf("failed to count lists: %w", err)
	}
	return result, nil
}

// CountListsWithTitlePrefix counts an account's lists whose title starts
// with prefix. The comparison is case-sensitive.
func (s *Store) CountListsWithTitlePrefix(ctx context.Context, accountID, prefix string) (int, error) {
	if err := guard.AccountID(accountID); err != nil {
		return 0, err
	}

	var count int
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM todo_lists WHERE account_id = ? AND substr(title, 1, length(?)) = ?`,
		accountID, prefix, prefix).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lists: %w", err)
	}
	return count, nil
}

// collect scans every row and closes rows.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
