package todo

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

// NoteService provides use cases for notes.
type NoteService struct {
	notes   NoteRepository
	entries EntryRepository
	config  Config
}

// NewNoteService creates a note service.
func NewNoteService(notes NoteRepository, entries EntryRepository, config Config) *NoteService {
	return &NoteService{
		notes:   notes,
		entries: entries,
		config:  config.withDefaults(),
	}
}

// CreateNote attaches a note to an entry of the given list.
func (s *NoteService) CreateNote(ctx context.Context, entryID, listID uuid.UUID, text string) (*domain.Note, error) {
	text = strings.TrimSpace(text)
	if err := guard.First(
		guard.NonEmptyID(entryID, "entry_id"),
		guard.NonEmptyID(listID, "list_id"),
		guard.NonEmptyText(text, "text"),
		guard.MaxLength(text, domain.MaxNoteTextLength, "text"),
	); err != nil {
		return nil, err
	}

	entry, err := s.entryOfList(ctx, entryID, listID)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}

	note := &domain.Note{
		ID:      id,
		EntryID: entry.ID,
		Text:    text,
	}
	if err := s.notes.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// DeleteNote removes a note. The note is re-attached to entryID before the
// delete so a note of another entry is reported as not found.
func (s *NoteService) DeleteNote(ctx context.Context, noteID, entryID, listID uuid.UUID) error {
	if err := guard.First(
		guard.NonEmptyID(noteID, "note_id"),
		guard.NonEmptyID(entryID, "entry_id"),
		guard.NonEmptyID(listID, "list_id"),
	); err != nil {
		return err
	}

	if _, err := s.entryOfList(ctx, entryID, listID); err != nil {
		return err
	}

	note, err := s.notes.FindNoteByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("failed to read note: %w", err)
	}
	note.EntryID = entryID

	if err := s.notes.DeleteNote(ctx, note); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// GetNotesByEntry returns a page of an entry's notes.
func (s *NoteService) GetNotesByEntry(ctx context.Context, entryID uuid.UUID, page, pageSize int) (*domain.NotePage, error) {
	req := domain.PageRequest{Page: page, Size: pageSize}
	if err := guard.First(guard.NonEmptyID(entryID, "entry_id"), guard.Page(req, s.config.MaxPageSize)); err != nil {
		return nil, err
	}

	result, err := s.notes.FindNotesByEntry(ctx, entryID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}

	return &domain.NotePage{
		EntryID: entryID,
		Notes:   result.Items,
		Paging:  domain.NewPagingInfo(req, result.TotalCount),
	}, nil
}

// entryOfList loads an entry and requires it to belong to listID.
func (s *NoteService) entryOfList(ctx context.Context, entryID, listID uuid.UUID) (*domain.TodoEntry, error) {
	entry, err := s.entries.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}
	if entry.ListID != listID {
		return nil, fmt.Errorf("failed to read entry: %w", domain.ErrEntryNotFound)
	}
	return entry, nil
}
