package handler

import (
	"log/slog"
	"net/http"

	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/infrastructure/http/response"
)

// ListEntries serves GET /api/lists/{list_id}/entries. Completed entries
// are hidden unless hide_completed=false.
func (h *TodoHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r)
	if !ok {
		return
	}
	page, size, ok := pageParams(w, r, h.config.EntriesPageSize)
	if !ok {
		return
	}
	hideCompleted, ok := queryBool(w, r, "hide_completed", true)
	if !ok {
		return
	}

	result, err := h.entries.ReadEntriesByList(r.Context(), list.ID, page, size, hideCompleted)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapEntryPage(result))
}

// CreateEntry serves POST /api/lists/{list_id}/entries.
func (h *TodoHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r)
	if !ok {
		return
	}
	var req createEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.entries.CreateEntry(r.Context(), list.ID, req.Title, req.Description, req.DueDate)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "entry created",
		"entry_id", entry.ID,
		"list_id", list.ID)
	response.Created(w, mapEntry(entry))
}

// GetEntry serves GET /api/lists/{list_id}/entries/{entry_id}.
func (h *TodoHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}
	response.OK(w, mapEntry(entry))
}

// EditEntry serves PATCH /api/lists/{list_id}/entries/{entry_id}. Omitted
// title and description keep their stored values.
func (h *TodoHandler) EditEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}
	var req editEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	edited, err := h.entries.EditEntry(r.Context(), entry.ID, domain.EntryEdit{
		Title:       domain.FromPtr(req.Title),
		Description: domain.FromPtr(req.Description),
		DueDate:     req.DueDate,
	})
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapEntry(edited))
}

// DeleteEntry serves DELETE /api/lists/{list_id}/entries/{entry_id}.
func (h *TodoHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}

	if err := h.entries.DeleteEntry(r.Context(), entry.ID, entry.ListID); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "entry deleted", "entry_id", entry.ID)
	response.NoContent(w)
}

// ChangeProgress serves PUT /api/lists/{list_id}/entries/{entry_id}/progress.
func (h *TodoHandler) ChangeProgress(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}
	var req changeProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	status, err := domain.ParseProgressStatus(req.Progress)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	updated, err := h.entries.ChangeProgress(r.Context(), entry.ID, status)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapEntry(updated))
}

// CompleteEntry serves POST /api/lists/{list_id}/entries/{entry_id}/complete.
func (h *TodoHandler) CompleteEntry(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}

	updated, err := h.entries.CompleteEntry(r.Context(), entry.ID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapEntry(updated))
}

// ListTodaysEntries serves GET /api/entries/today.
func (h *TodoHandler) ListTodaysEntries(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}
	page, size, ok := pageParams(w, r, h.config.EntriesPageSize)
	if !ok {
		return
	}

	result, err := h.entries.ReadTodaysEntries(r.Context(), account, page, size)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapEntryPage(result))
}

// GetReminder serves GET /api/reminder.
func (h *TodoHandler) GetReminder(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}

	reminder, err := h.entries.GetReminderInfo(r.Context(), account)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapReminder(reminder))
}
