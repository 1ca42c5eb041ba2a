package todo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

// ListService provides use cases for lists.
type ListService struct {
	repo   Repository
	clock  clock.Clock
	config Config
}

// NewListService creates a list service.
// Applies application defaults for zero or invalid config values.
func NewListService(repo Repository, clk clock.Clock, config Config) *ListService {
	return &ListService{
		repo:   repo,
		clock:  clk,
		config: config.withDefaults(),
	}
}

// ReadAllLists returns a page of the account's visible lists.
func (s *ListService) ReadAllLists(ctx context.Context, accountID string, page, pageSize int) (*domain.ListPage, error) {
	return s.readLists(ctx, ListFilter{AccountID: accountID, Hidden: false}, page, pageSize)
}

// ReadAllHiddenLists returns a page of the account's hidden lists.
func (s *ListService) ReadAllHiddenLists(ctx context.Context, accountID string, page, pageSize int) (*domain.ListPage, error) {
	return s.readLists(ctx, ListFilter{AccountID: accountID, Hidden: true}, page, pageSize)
}

func (s *ListService) readLists(ctx context.Context, filter ListFilter, page, pageSize int) (*domain.ListPage, error) {
	req := domain.PageRequest{Page: page, Size: pageSize}
	if err := guard.First(guard.AccountID(filter.AccountID), guard.Page(req, s.config.MaxPageSize)); err != nil {
		return nil, err
	}

	result, err := s.repo.FindLists(ctx, filter, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read lists: %w", err)
	}

	return &domain.ListPage{
		Lists:  result.Items,
		Paging: domain.NewPagingInfo(req, result.TotalCount),
	}, nil
}

// ReadList retrieves a list by id.
func (s *ListService) ReadList(ctx context.Context, id uuid.UUID) (*domain.TodoList, error) {
	if err := guard.NonEmptyID(id, "list_id"); err != nil {
		return nil, err
	}

	list, err := s.repo.FindListByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read list: %w", err)
	}
	return list, nil
}

// CreateList creates a visible list owned by accountID.
func (s *ListService) CreateList(ctx context.Context, title, accountID string) (*domain.TodoList, error) {
	title = strings.TrimSpace(title)
	if err := guard.First(
		guard.NonEmptyText(title, "title"),
		guard.MaxLength(title, domain.MaxListTitleLength, "title"),
		guard.AccountID(accountID),
	); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	now := s.clock.Now()
	list := &domain.TodoList{
		ID:        id,
		AccountID: accountID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return list, nil
}

// UpdateList replaces the title and refreshes the updated timestamp.
func (s *ListService) UpdateList(ctx context.Context, id uuid.UUID, title string) (*domain.TodoList, error) {
	title = strings.TrimSpace(title)
	if err := guard.First(
		guard.NonEmptyID(id, "list_id"),
		guard.NonEmptyText(title, "title"),
		guard.MaxLength(title, domain.MaxListTitleLength, "title"),
	); err != nil {
		return nil, err
	}

	list, err := s.repo.FindListByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read list: %w", err)
	}

	list.Title = title
	list.UpdatedAt = s.clock.Now()

	if err := s.repo.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}
	return list, nil
}

// DeleteList removes a list with all of its entries and notes.
func (s *ListService) DeleteList(ctx context.Context, id uuid.UUID) error {
	if err := guard.NonEmptyID(id, "list_id"); err != nil {
		return err
	}

	if err := s.repo.DeleteList(ctx, id); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

// SwitchHide toggles the hidden flag and refreshes the updated timestamp.
func (s *ListService) SwitchHide(ctx context.Context, id uuid.UUID) (*domain.TodoList, error) {
	if err := guard.NonEmptyID(id, "list_id"); err != nil {
		return nil, err
	}

	list, err := s.repo.FindListByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read list: %w", err)
	}

	list.Hidden = !list.Hidden
	list.UpdatedAt = s.clock.Now()

	if err := s.repo.UpdateList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to update list: %w", err)
	}
	return list, nil
}

// CopyList duplicates a list and its entries, without notes, under a
// "{base} -Copy {n}" title where n counts the account's lists sharing the
// base title, the source included. The copy happens in one transaction.
func (s *ListService) CopyList(ctx context.Context, id uuid.UUID) (*domain.TodoList, error) {
	if err := guard.NonEmptyID(id, "list_id"); err != nil {
		return nil, err
	}

	var copied *domain.TodoList
	err := s.repo.Atomic(ctx, func(repo Repository) error {
		source, err := repo.FindListByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to read list: %w", err)
		}

		base := copyBaseTitle(source.Title)
		count, err := repo.CountListsWithTitlePrefix(ctx, source.AccountID, base)
		if err != nil {
			return fmt.Errorf("failed to count copies: %w", err)
		}

		newID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate id: %w", err)
		}

		now := s.clock.Now()
		list := &domain.TodoList{
			ID:        newID,
			AccountID: source.AccountID,
			Title:     copyTitle(base, count),
			Hidden:    source.Hidden,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.CreateList(ctx, list); err != nil {
			return fmt.Errorf("failed to create list: %w", err)
		}

		entries, err := repo.FindAllEntriesByList(ctx, source.ID)
		if err != nil {
			return fmt.Errorf("failed to read entries: %w", err)
		}

		clones := make([]domain.TodoEntry, 0, len(entries))
		for _, e := range entries {
			cloneID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate id: %w", err)
			}
			clones = append(clones, domain.TodoEntry{
				ID:          cloneID,
				ListID:      list.ID,
				Title:       e.Title,
				Description: e.Description,
				DueDate:     e.DueDate,
				CreatedAt:   e.CreatedAt,
				UpdatedAt:   now,
				Progress:    e.Progress,
			})
		}

		if err := repo.CreateEntries(ctx, clones); err != nil {
			return fmt.Errorf("failed to copy entries: %w", err)
		}

		copied = list
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}
