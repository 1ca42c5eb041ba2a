package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/domain"
)

type pagingDTO struct {
	TotalItems   int `json:"total_items"`
	ItemsPerPage int `json:"items_per_page"`
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
}

type listDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type listPageDTO struct {
	Lists  []listDTO `json:"lists"`
	Paging pagingDTO `json:"paging"`
}

type entryDTO struct {
	ID            uuid.UUID `json:"id"`
	ListID        uuid.UUID `json:"list_id"`
	ListTitle     string    `json:"list_title,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DueDate       time.Time `json:"due_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Progress      int       `json:"progress"`
	ProgressLabel string    `json:"progress_label"`
}

type entryPageDTO struct {
	Entries       []entryDTO `json:"entries"`
	Paging        pagingDTO  `json:"paging"`
	HideCompleted bool       `json:"hide_completed"`
}

type noteDTO struct {
	ID      uuid.UUID `json:"id"`
	EntryID uuid.UUID `json:"entry_id"`
	Text    string    `json:"text"`
}

type notePageDTO struct {
	EntryID uuid.UUID `json:"entry_id"`
	Notes   []noteDTO `json:"notes"`
	Paging  pagingDTO `json:"paging"`
}

type reminderDTO struct {
	EntryID uuid.UUID `json:"entry_id"`
	ListID  uuid.UUID `json:"list_id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}

// reminderResponseDTO keeps "reminder" present as null when nothing is due.
type reminderResponseDTO struct {
	Reminder *reminderDTO `json:"reminder"`
}

type listTitleRequest struct {
	Title string `json:"title"`
}

type createEntryRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
}

type editEntryRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"due_date"`
}

type changeProgressRequest struct {
	Progress string `json:"progress"`
}

type createNoteRequest struct {
	Text string `json:"text"`
}

func mapPaging(p domain.PagingInfo) pagingDTO {
	return pagingDTO{
		TotalItems:   p.TotalItems,
		ItemsPerPage: p.ItemsPerPage,
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages(),
	}
}

func mapList(l *domain.TodoList) listDTO {
	return listDTO{
		ID:        l.ID,
		Title:     l.Title,
		Hidden:    l.Hidden,
		CreatedAt: l.CreatedAt.UTC(),
		UpdatedAt: l.UpdatedAt.UTC(),
	}
}

func mapListPage(p *domain.ListPage) listPageDTO {
	lists := make([]listDTO, 0, len(p.Lists))
	for i := range p.Lists {
		lists = append(lists, mapList(&p.Lists[i]))
	}
	return listPageDTO{Lists: lists, Paging: mapPaging(p.Paging)}
}

func mapEntry(e *domain.TodoEntry) entryDTO {
	return entryDTO{
		ID:            e.ID,
		ListID:        e.ListID,
		ListTitle:     e.ListTitle,
		Title:         e.Title,
		Description:   e.Description,
		DueDate:       e.DueDate.UTC(),
		CreatedAt:     e.CreatedAt.UTC(),
		UpdatedAt:     e.UpdatedAt.UTC(),
		Progress:      int(e.Progress),
		ProgressLabel: e.Progress.String(),
	}
}

func mapEntryPage(p *domain.EntryPage) entryPageDTO {
	entries := make([]entryDTO, 0, len(p.Entries))
	for i := range p.Entries {
		entries = append(entries, mapEntry(&p.Entries[i]))
	}
	return entryPageDTO{Entries: entries, Paging: mapPaging(p.Paging), HideCompleted: p.HideCompleted}
}

func mapNote(n *domain.Note) noteDTO {
	return noteDTO{ID: n.ID, EntryID: n.EntryID, Text: n.Text}
}

func mapNotePage(p *domain.NotePage) notePageDTO {
	notes := make([]noteDTO, 0, len(p.Notes))
	for i := range p.Notes {
		notes = append(notes, mapNote(&p.Notes[i]))
	}
	return notePageDTO{EntryID: p.EntryID, Notes: notes, Paging: mapPaging(p.Paging)}
}

func mapReminder(r *domain.Reminder) reminderResponseDTO {
	if r == nil {
		return reminderResponseDTO{}
	}
	return reminderResponseDTO{Reminder: &reminderDTO{
		EntryID: r.EntryID,
		ListID:  r.ListID,
		Title:   r.Title,
		DueDate: r.DueDate.UTC(),
	}}
}
