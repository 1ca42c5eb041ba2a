package handler

import (
	"log/slog"
	"net/http"

	"github.com/rezkam/todolist/internal/infrastructure/http/response"
)

// ListLists serves GET /api/lists. hidden=true selects the hidden lists.
func (h *TodoHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}
	page, size, ok := pageParams(w, r, h.config.ListsPageSize)
	if !ok {
		return
	}
	hidden, ok := queryBool(w, r, "hidden", false)
	if !ok {
		return
	}

	read := h.lists.ReadAllLists
	if hidden {
		read = h.lists.ReadAllHiddenLists
	}
	result, err := read(r.Context(), account, page, size)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapListPage(result))
}

// CreateList serves POST /api/lists.
func (h *TodoHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	account, ok := accountID(w, r)
	if !ok {
		return
	}
	var req listTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	list, err := h.lists.CreateList(r.Context(), req.Title, account)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "list created", "list_id", list.ID)
	response.Created(w, mapList(list))
}

// GetList serves GET /api/lists/{list_id}.
func (h *TodoHandler) GetList(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r)
	if !ok {
		return
	}
	response.OK(w, mapList(list))
}

// UpdateList serves PATCH /api/lists/{list_id}.
func (h *TodoHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r)
	if !ok {
		return
	}
	var req listTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.lists.UpdateList(r.Context(), list.ID, req.Title)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapList(updated))
}

// DeleteList serves DELETE /api/lists/{list_id}.
func (h *TodoHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r)
	if !ok {
		return
	}

	if err := h.lists.DeleteList(r.Context(), list.ID); err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "list deleted", "list_id", list.ID)
	response.NoContent(w)
}

// SwitchHide serves POST /api/lists/{list_id}/hide.
func (h *TodoHandler) SwitchHide(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r)
	if !ok {
		return
	}

	updated, err := h.lists.SwitchHide(r.Context(), list.ID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}
	response.OK(w, mapList(updated))
}

// CopyList serves POST /api/lists/{list_id}/copy.
func (h *TodoHandler) CopyList(w http.ResponseWriter, r *http.Request) {
	list, ok := h.ownedList(w, r)
	if !ok {
		return
	}

	copied, err := h.lists.CopyList(r.Context(), list.ID)
	if err != nil {
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "list copied",
		"source_list_id", list.ID,
		"list_id", copied.ID)
	response.Created(w, mapList(copied))
}
