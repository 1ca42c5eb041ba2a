package todo

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

// EntryService provides use cases for entries.
type EntryService struct {
	entries EntryRepository
	lists   ListRepository
	clock   clock.Clock
	config  Config
}

// NewEntryService creates an entry service.
// Applies application defaults for zero or invalid config values.
func NewEntryService(entries EntryRepository, lists ListRepository, clk clock.Clock, config Config) *EntryService {
	return &EntryService{
		entries: entries,
		lists:   lists,
		clock:   clk,
		config:  config.withDefaults(),
	}
}

// ReadEntriesByList returns a page of a list's entries. With hideCompleted,
// completed entries are dropped from the fetched page, so the page may hold
// fewer than pageSize entries while Paging still counts the whole list.
func (s *EntryService) ReadEntriesByList(ctx context.Context, listID uuid.UUID, page, pageSize int, hideCompleted bool) (*domain.EntryPage, error) {
	req := domain.PageRequest{Page: page, Size: pageSize}
	if err := guard.First(guard.NonEmptyID(listID, "list_id"), guard.Page(req, s.config.MaxPageSize)); err != nil {
		return nil, err
	}

	result, err := s.entries.FindEntriesByList(ctx, listID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	entries := result.Items
	if hideCompleted {
		entries = slices.DeleteFunc(entries, domain.TodoEntry.IsCompleted)
	}

	return &domain.EntryPage{
		Entries:       entries,
		Paging:        domain.NewPagingInfo(req, result.TotalCount),
		HideCompleted: hideCompleted,
	}, nil
}

// CreateEntry adds a not-started entry to a list. The due date must be in
// the future.
func (s *EntryService) CreateEntry(ctx context.Context, listID uuid.UUID, title, description string, dueDate time.Time) (*domain.TodoEntry, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	now := s.clock.Now()

	if err := guard.First(
		guard.NonEmptyID(listID, "list_id"),
		checkEntryTitle(title),
		checkEntryDescription(description),
		guard.DateNotAtBounds(dueDate, "due_date"),
		guard.DateStrictlyFuture(dueDate, now, "due_date"),
	); err != nil {
		return nil, err
	}

	list, err := s.lists.FindListByID(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to read list: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	entry := &domain.TodoEntry{
		ID:          id,
		ListID:      list.ID,
		Title:       title,
		Description: description,
		DueDate:     dueDate.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Progress:    domain.ProgressNotStarted,
		ListTitle:   list.Title,
	}

	if err := s.entries.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, nil
}

// ReadEntry retrieves an entry with the title of its list.
func (s *EntryService) ReadEntry(ctx context.Context, id uuid.UUID) (*domain.TodoEntry, error) {
	if err := guard.NonEmptyID(id, "entry_id"); err != nil {
		return nil, err
	}

	entry, err := s.entries.FindEntryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}
	return entry, nil
}

// EditEntry applies a partial update. Unset title or description keep the
// stored value; the due date is required, must be in the future and is only
// written when it differs from the stored one. A missing entry yields an
// error matching both domain.ErrNullArgument and domain.ErrEntryNotFound.
func (s *EntryService) EditEntry(ctx context.Context, id uuid.UUID, edit domain.EntryEdit) (*domain.TodoEntry, error) {
	now := s.clock.Now()

	checks := []error{
		guard.NonEmptyID(id, "entry_id"),
		guard.DateNotAtBounds(edit.DueDate, "due_date"),
		guard.DateStrictlyFuture(edit.DueDate, now, "due_date"),
	}
	if title, ok := edit.Title.Get(); ok {
		edit.Title = domain.Some(strings.TrimSpace(title))
		checks = append(checks, checkEntryTitle(edit.Title.Or("")))
	}
	if description, ok := edit.Description.Get(); ok {
		edit.Description = domain.Some(strings.TrimSpace(description))
		checks = append(checks, checkEntryDescription(edit.Description.Or("")))
	}
	if err := guard.First(checks...); err != nil {
		return nil, err
	}

	entry, err := s.entries.FindEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrNullArgument, err)
		}
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}

	entry.Title = edit.Title.Or(entry.Title)
	entry.Description = edit.Description.Or(entry.Description)
	if !entry.DueDate.Equal(edit.DueDate) {
		entry.DueDate = edit.DueDate.UTC()
	}
	entry.UpdatedAt = now

	if err := s.entries.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry removes an entry of the given list.
func (s *EntryService) DeleteEntry(ctx context.Context, entryID, listID uuid.UUID) error {
	if err := guard.First(guard.NonEmptyID(entryID, "entry_id"), guard.NonEmptyID(listID, "list_id")); err != nil {
		return err
	}

	if err := s.entries.DeleteEntry(ctx, entryID, listID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

// ChangeProgress sets the progress state of an entry.
func (s *EntryService) ChangeProgress(ctx context.Context, entryID uuid.UUID, status domain.ProgressStatus) (*domain.TodoEntry, error) {
	if err := guard.First(guard.NonEmptyID(entryID, "entry_id"), guard.ValidProgress(status, "progress")); err != nil {
		return nil, err
	}

	entry, err := s.entries.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}

	entry.Progress = status
	entry.UpdatedAt = s.clock.Now()

	if err := s.entries.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}
	return entry, nil
}

// CompleteEntry marks an entry as completed.
func (s *EntryService) CompleteEntry(ctx context.Context, id uuid.UUID) (*domain.TodoEntry, error) {
	return s.ChangeProgress(ctx, id, domain.ProgressCompleted)
}

// ReadTodaysEntries returns a page of the account's entries due on the
// current calendar day, ordered by due date.
func (s *EntryService) ReadTodaysEntries(ctx context.Context, accountID string, page, pageSize int) (*domain.EntryPage, error) {
	req := domain.PageRequest{Page: page, Size: pageSize}
	if err := guard.First(guard.AccountID(accountID), guard.Page(req, s.config.MaxPageSize)); err != nil {
		return nil, err
	}

	from, to := clock.DayBounds(s.clock.Now(), s.config.Location)

	result, err := s.entries.FindEntriesDueBetween(ctx, accountID, from, to, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read today's entries: %w", err)
	}

	return &domain.EntryPage{
		Entries: result.Items,
		Paging:  domain.NewPagingInfo(req, result.TotalCount),
	}, nil
}

// GetReminderInfo returns the account's next entry due strictly after now,
// or nil when nothing is pending.
func (s *EntryService) GetReminderInfo(ctx context.Context, accountID string) (*domain.Reminder, error) {
	if err := guard.AccountID(accountID); err != nil {
		return nil, err
	}

	entry, err := s.entries.FindNextDueEntry(ctx, accountID, s.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read reminder: %w", err)
	}

	return &domain.Reminder{
		EntryID: entry.ID,
		ListID:  entry.ListID,
		Title:   entry.Title,
		DueDate: entry.DueDate,
	}, nil
}

func checkEntryTitle(title string) error {
	return guard.First(
		guard.NonEmptyText(title, "title"),
		guard.MaxLength(title, domain.MaxEntryTitleLength, "title"),
	)
}

func checkEntryDescription(description string) error {
	return guard.First(
		guard.NonEmptyText(description, "description"),
		guard.MaxLength(description, domain.MaxEntryDescriptionLength, "description"),
	)
}
