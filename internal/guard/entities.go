package guard

import "github.com/rezkam/todolist/internal/domain"

// List checks a list before it is written.
func List(l *domain.TodoList) error {
	if err := Required(l, "list"); err != nil {
		return err
	}
	return First(
		NonEmptyID(l.ID, "list.id"),
		AccountID(l.AccountID),
		NonEmptyText(l.Title, "list.title"),
		MaxLength(l.Title, domain.MaxListTitleLength, "list.title"),
	)
}

// Entry checks an entry before it is written.
func Entry(e *domain.TodoEntry) error {
	if err := Required(e, "entry"); err != nil {
		return err
	}
	return First(
		NonEmptyID(e.ID, "entry.id"),
		NonEmptyID(e.ListID, "entry.list_id"),
		NonEmptyText(e.Title, "entry.title"),
		MaxLength(e.Title, domain.MaxEntryTitleLength, "entry.title"),
		NonEmptyText(e.Description, "entry.description"),
		MaxLength(e.Description, domain.MaxEntryDescriptionLength, "entry.description"),
		DateNotAtBounds(e.DueDate, "entry.due_date"),
		ValidProgress(e.Progress, "entry.progress"),
	)
}

// Note checks a note before it is written.
func Note(n *domain.Note) error {
	if err := Required(n, "note"); err != nil {
		return err
	}
	return First(
		NonEmptyID(n.ID, "note.id"),
		NonEmptyID(n.EntryID, "note.entry_id"),
		NonEmptyText(n.Text, "note.text"),
		MaxLength(n.Text, domain.MaxNoteTextLength, "note.text"),
	)
}
