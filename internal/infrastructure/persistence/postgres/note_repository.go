package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
)

// === Note Operations ===

func scanNote(row pgx.Row) (domain.Note, error) {
	var n domain.Note
	err := row.Scan(&n.ID, &n.EntryID, &n.Text)
	return n, err
}

// CreateNote inserts a note. A missing entry yields domain.ErrEntryNotFound.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	if err := guard.Note(note); err != nil {
		return err
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO entry_notes (id, entry_id, text) VALUES ($1, $2, $3)`,
		note.ID, note.EntryID, note.Text)
	if err != nil {
		if isForeignKeyViolation(err, "entry_id") {
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

	note, err := scanNote(s.db.QueryRow(ctx, `SELECT id, entry_id, text FROM entry_notes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
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

	tag, err := s.db.Exec(ctx, `DELETE FROM entry_notes WHERE id = $1 AND entry_id = $2`, note.ID, note.EntryID)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return checkRowsAffected(tag, domain.ErrNoteNotFound, note.ID)
}

// FindNotesByEntry returns one page of an entry's notes in creation order.
func (s *Store) FindNotesByEntry(ctx context.Context, entryID uuid.UUID, page domain.PageRequest) (domain.PagedResult[domain.Note], error) {
	var result domain.PagedResult[domain.Note]
	if err := guard.First(guard.NonEmptyID(entryID, "entry_id"), guard.Page(page, 0)); err != nil {
		return result, err
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, entry_id, text FROM entry_notes WHERE entry_id = $1 ORDER BY id LIMIT $2 OFFSET $3`,
		entryID, page.Size, page.Offset())
	if err != nil {
		return result, fmt.Errorf("failed to find notes: %w", err)
	}
	result.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Note, error) {
		return scanNote(row)
	})
	if err != nil {
		return result, fmt.Errorf("failed to scan notes: %w", err)
	}

	err = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM entry_notes WHERE entry_id = $1`, entryID).Scan(&result.TotalCount)
	if err != nil {
		return result, fmt.Errorf("failed to count notes: %w", err)
	}
	return result, nil
}
