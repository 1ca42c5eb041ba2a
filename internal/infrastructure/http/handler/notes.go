package handler

import (
	"net/http"

	"github.com/rezkam/todolist/internal/infrastructure/http/response"
)

// ListNotes serves GET /api/lists/{list_id}/entries/{entry_id}/notes.
func (h *TodoHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}
	page, size, ok := pageParams(w, r, h.config.NotesPageSize)
	if !ok {
		return
	}

	result, err := h.notes.GetNotesByEntry(r.Context(), entry.ID, page, size)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapNotePage(result))
}

// CreateNote serves POST /api/lists/{list_id}/entries/{entry_id}/notes.
func (h *TodoHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}
	var req createNoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	note, err := h.notes.CreateNote(r.Context(), entry.ID, entry.ListID, req.Text)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.Created(w, mapNote(note))
}

// DeleteNote serves DELETE /api/lists/{list_id}/entries/{entry_id}/notes/{note_id}.
func (h *TodoHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	entry, ok := h.ownedEntry(w, r)
	if !ok {
		return
	}
	noteID, ok := pathID(w, r, "note_id")
	if !ok {
		return
	}

	if err := h.notes.DeleteNote(r.Context(), noteID, entry.ID, entry.ListID); err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.NoContent(w)
}
