package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

func scanNote(row scanner) (domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.EntryID, &n.Text)
	return n, err
}

// CreateNote inserts a note. A missing entry yields domain.ErrEntryNotFound.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	if err := guard.Note(note); err != nil {
		return err
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO entry_notes (id, entry_id, text) VALUES (?, ?, ?)`,
		note.ID, note.EntryID, note.Text)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, note.EntryID)
		}
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// FindNoteByID retrieves a note by its ID.
func (s *Store) FindNoteByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	if err := guard.NonEmptyID(id, "note_id"); err != nil {
		return nil, err
	}

	note, err := scanNote(s.q.QueryRowContext(ctx, `SELECT id, entry_id, text FROM entry_notes WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoteNotFound, id)
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

// DeleteNote removes the note only if it is attached to note.EntryID.
func (s *Store) DeleteNote(ctx context.Context, note *domain.Note) error {
	if err := guard.Required(note, "note"); err != nil {
		return err
	}
	if err := guard.First(guard.NonEmptyID(note.ID, "note_id"), guard.NonEmptyID(note.EntryID, "entry_id")); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `DELETE FROM entry_notes WHERE id = ? AND entry_id = ?`, note.ID, note.EntryID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return checkRowsAffected(res, domain.ErrNoteNotFound, note.ID)
}

// FindNotesByEntry returns one page of an entry's notes in creation order.
func (s *Store) FindNotesByEntry(ctx context.Context, entryID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.Note], error) {
	var result domain.PagedResult[domain.Note]
	if err := guard.First(guard.NonEmptyID(entryID, "entry_id"), guard.Page(page, 0)); err != nil {
		return result, err
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT id, entry_id, text FROM entry_notes WHERE entry_id = ? ORDER BY id LIMIT ? OFFSET ?`,
		entryID, page.Size, page.Offset())
	if err != nil {
		return result, fmt.Errorf("failed to find notes: %w", err)
	}
	if result.Items, err = collect(rows, scanNote); err != nil {
		return result, fmt.Errorf("failed to scan notes: %w", err)
	}

	err = s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM entry_notes WHERE entry_id = ?`, entryID).Scan(&result.TotalCount)
	if err != nil {
		return result, fmt.Errorf("failed to count notes: %w", err)
	}
	return result, nil
}
