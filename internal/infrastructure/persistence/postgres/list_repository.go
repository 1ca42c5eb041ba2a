package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rezkam/todolist/internal/application/todo"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

// === List Operations ===

const listColumns = `id, account_id, title, hidden, created_at, updated_at`

func scanList(row pgx.Row) (domain.TodoList, error) {
	var l domain.TodoList
	if err := row.Scan(&l.ID, &l.AccountID, &l.Title, &l.Hidden, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return domain.TodoList{}, err
	}
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return l, nil
}

// CreateList inserts a new list.
func (s *Store) CreateList(ctx context.Context, list *domain.TodoList) error {
	if err := guard.List(list); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO todo_lists (`+listColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		list.ID, list.AccountID, list.Title, list.Hidden, list.CreatedAt, list.UpdatedAt)
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

	row := s.db.QueryRow(ctx, `SELECT `+listColumns+` FROM todo_lists WHERE id = $1`, id)
	list, err := scanList(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

	tag, err := s.db.Exec(ctx,
		`UPDATE todo_lists SET title = $2, hidden = $3, updated_at = $4 WHERE id = $1`,
		list.ID, list.Title, list.Hidden, list.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrListNotFound, list.ID)
}

// DeleteList removes a list together with its entries and their notes.
func (s *Store) DeleteList(ctx context.Context, id uuid.UUID) error {
	if err := guard.NonEmptyID(id, "list_id"); err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM todo_lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrListNotFound, id)
}

// FindLists returns one page of an account's lists with the given hidden
// flag, ordered by creation time.
func (s *Store) FindLists(ctx context.Context, filter todo.ListFilter, page domain.PageRequest) (domain.PagedResult[domain.TodoList], error) {
	var result domain.PagedResult[domain.TodoList]
	if err := guard.First(guard.AccountID(filter.AccountID), guard.Page(page, 0)); err != nil {
		return result, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT `+listColumns+` FROM todo_lists
		 WHERE account_id = $1 AND hidden = $2
		 ORDER BY created_at, id
		 LIMIT $3 OFFSET $4`,
		filter.AccountID, filter.Hidden, page.Size, page.Offset())
	if err != nil {
		return result, fmt.Errorf("failed to find lists: %w", err)
	}
	result.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TodoList, error) {
		return scanList(row)
	})
	if err != nil {
		return result, fmt.Errorf("failed to scan lists: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM todo_lists WHERE account_id = $1 AND hidden = $2`,
		filter.AccountID, filter.Hidden).Scan(&result.TotalCount)
	if err != nil {
		return result, fmt.Errorf("failed to count lists: %w", err)
	}
	return result, nil
}

// CountListsWithTitlePrefix counts an account's lists, hidden or not, whose
// title starts with prefix.
func (s *Store) CountListsWithTitlePrefix(ctx context.Context, accountID, prefix string) (int, error) {
	if err := guard.AccountID(accountID); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM todo_lists WHERE account_id = $1 AND starts_with(title, $2)`,
		accountID, prefix).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lists: %w", err)
	}
	return count, nil
}
