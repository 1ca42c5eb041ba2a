package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/application/auth"
	"github.com/rezkam/todolist/internal/domain"
	"github.com/rezkam/todolist/internal/guard"
	"github.com/rezkam/todolist/internal/infrastructure/http/response"
)

// accountID returns the authenticated account, answering 401 when the
// request never went through the auth middleware.
func accountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.AccountIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "missing account")
	}
	return id, ok
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := guard.ParseID(chi.URLParam(r, name), name)
	if err != nil {
		response.FromDomainError(w, r, err)
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		response.ValidationError(w, name, "must be an integer")
		return 0, false
	}
	return n, true
}

func queryBool(w http.ResponseWriter, r *http.Request, name string, fallback bool) (bool, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		response.ValidationError(w, name, "must be a boolean")
		return false, false
	}
	return b, true
}

// pageParams reads page (default 1) and page_size (default pageSize).
func pageParams(w http.ResponseWriter, r *http.Request, pageSize int) (int, int, bool) {
	page, ok := queryInt(w, r, "page", 1)
	if !ok {
		return 0, 0, false
	}
	size, ok := queryInt(w, r, "page_size", pageSize)
	if !ok {
		return 0, 0, false
	}
	return page, size, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "invalid JSON")
		return false
	}
	return true
}

// ownedList loads the list named by {list_id}. Lists of other accounts are
// reported as missing.
func (h *TodoHandler) ownedList(w http.ResponseWriter, r *http.Request) (*domain.TodoList, bool) {
	account, ok := accountID(w, r)
	if !ok {
		return nil, false
	}
	listID, ok := pathID(w, r, "list_id")
	if !ok {
		return nil, false
	}

	list, err := h.lists.ReadList(r.Context(), listID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return nil, false
	}
	if list.AccountID != account {
		response.NotFound(w, "list")
		return nil, false
	}
	return list, true
}

// ownedEntry loads the entry named by {entry_id} after checking that it
// sits in an owned {list_id}.
func (h *TodoHandler) ownedEntry(w http.ResponseWriter, r *http.Request) (*domain.TodoEntry, bool) {
	list, ok := h.ownedList(w, r)
	if !ok {
		return nil, false
	}
	entryID, ok := pathID(w, r, "entry_id")
	if !ok {
		return nil, false
	}

	entry, err := h.entries.ReadEntry(r.Context(), entryID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return nil, false
	}
	if entry.ListID != list.ID {
		response.NotFound(w, "entry")
		return nil, false
	}
	return entry, true
}
