// Package export writes account snapshots to blob storage.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/application/todo"
	"github.com/rezkam/todolist/internal/clock"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

// readPageSize is the page size used to walk lists and notes.
const readPageSize = 100

// Source reads the data an export walks.
type Source interface {
	FindLists(ctx context.Context, filter todo.ListFilter, page domain.PageRequest) (domain.PagedResult[domain.TodoList], error)
	FindAllEntriesByList(ctx context.Context, listID uuid.UUID) ([]domain.TodoEntry, error)
	FindNotesByEntry(ctx context.Context, entryID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.Note], error)
}

// BlobStore stores export documents by key.
type BlobStore interface {
	// Put creates or replaces the object at key.
	Put(ctx context.Context, key string, data []byte) error
}

// Service exports accounts.
type Service struct {
	source Source
	sink   BlobStore
	clock  clock.Clock
}

// NewService creates an export service.
func NewService(source Source, sink BlobStore, clk clock.Clock) *Service {
	return &Service{source: source, sink: sink, clock: clk}
}

// ExportAccount writes one document per list of the account, visible and
// hidden, to {accountID}/{listID}.json and returns the written keys in
// write order. A failed write stops the export; keys already written stay.
func (s *Service) ExportAccount(ctx context.Context, accountID string) ([]string, error) {
	if err := guard.AccountID(accountID); err != nil {
		return nil, err
	}

	exportedAt := s.clock.Now().UTC()
	var keys []string
	for _, hidden := range []bool{false, true} {
		lists, err := s.allLists(ctx, todo.ListFilter{AccountID: accountID, Hidden: hidden})
		if err != nil {
			return keys, err
		}

		for _, list := range lists {
			doc, err := s.buildDocument(ctx, list, exportedAt)
			if err != nil {
				return keys, err
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return keys, fmt.Errorf("failed to marshal list %s: %w", list.ID, err)
			}

			key := ObjectKey(accountID, list.ID)
			if err := s.sink.Put(ctx, key, data); err != nil {
				return keys, fmt.Errorf("failed to write %s: %w", key, err)
			}
			keys = append(keys, key)
		}
	}

	slog.InfoContext(ctx, "account exported", "account_id", accountID, "lists", len(keys))
	return keys, nil
}

// ObjectKey is the blob key of a list document.
func ObjectKey(accountID string, listID uuid.UUID) string {
	return accountID + "/" + listID.String() + ".json"
}

func (s *Service) allLists(ctx context.Context, filter todo.ListFilter) ([]domain.TodoList, error) {
	var lists []domain.TodoList
	for page := 1; ; page++ {
		result, err := s.source.FindLists(ctx, filter, domain.PageRequest{Page: page, Size: readPageSize})
		if err != nil {
			return nil, fmt.Errorf("failed to read lists: %w", err)
		}
		lists = append(lists, result.Items...)
		if len(result.Items) == 0 || len(lists) >= result.TotalCount {
			return lists, nil
		}
	}
}

func (s *Service) allNotes(ctx context.Context, entryID uuid.UUID) ([]domain.Note, error) {
	var notes []domain.Note
	for page := 1; ; page++ {
		result, err := s.source.FindNotesByEntry(ctx, entryID, domain.PageRequest{Page: page, Size: readPageSize})
		if err != nil {
			return nil, fmt.Errorf("failed to read notes of entry %s: %w", entryID, err)
		}
		notes = append(notes, result.Items...)
		if len(result.Items) == 0 || len(notes) >= result.TotalCount {
			return notes, nil
		}
	}
}

func (s *Service) buildDocument(ctx context.Context, list domain.TodoList, exportedAt time.Time) (Document, error) {
	entries, err := s.source.FindAllEntriesByList(ctx, list.ID)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read entries of list %s: %w", list.ID, err)
	}

	doc := Document{
		ExportedAt: exportedAt,
		List: List{
			ID:        list.ID,
			Title:     list.Title,
			Hidden:    list.Hidden,
			CreatedAt: list.CreatedAt.UTC(),
			UpdatedAt: list.UpdatedAt.UTC(),
		},
		Entries: make([]Entry, 0, len(entries)),
	}
	for _, e := range entries {
		notes, err := s.allNotes(ctx, e.ID)
		if err != nil {
			return Document{}, err
		}
		entry := Entry{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			DueDate:     e.DueDate.UTC(),
			Progress:    e.Progress.String(),
			CreatedAt:   e.CreatedAt.UTC(),
			UpdatedAt:   e.UpdatedAt.UTC(),
			Notes:       make([]Note, 0, len(notes)),
		}
		for _, n := range notes {
			entry.Notes = append(entry.Notes, Note{ID: n.ID, Text: n.Text})
		}
		doc.Entries = append(doc.Entries, entry)
	}
	return doc, nil
}
