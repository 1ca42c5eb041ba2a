package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/todolist/internal/application/todo"
	mw "github.com/rezkam/todolist/internal/infrastructure/http/middleware"
	"github.com/rezkam/todolist/internal/infrastructure/http/openapi"
)

// Default page sizes applied when a request omits page_size.
const (
	DefaultListsPageSize   = 5
	DefaultEntriesPageSize = 4
	DefaultNotesPageSize   = 3
)

// Services groups the application services the handlers call.
type Services struct {
	Lists   *todo.ListService
	Entries *todo.EntryService
	Notes   *todo.NoteService
}

// Config holds handler configuration. Zero page sizes use the defaults.
type Config struct {
	ListsPageSize   int
	EntriesPageSize int
	NotesPageSize   int
}

func (c Config) withDefaults() Config {
	if c.ListsPageSize <= 0 {
		c.ListsPageSize = DefaultListsPageSize
	}
	if c.EntriesPageSize <= 0 {
		c.EntriesPageSize = DefaultEntriesPageSize
	}
	if c.NotesPageSize <= 0 {
		c.NotesPageSize = DefaultNotesPageSize
	}
	return c
}

// TodoHandler adapts HTTP requests to application service calls. Every
// handler expects an account in the request context.
type TodoHandler struct {
	lists   *todo.ListService
	entries *todo.EntryService
	notes   *todo.NoteService
	config  Config
}

// NewTodoHandler creates a new HTTP API handler.
func NewTodoHandler(services Services, config Config) *TodoHandler {
	return &TodoHandler{
		lists:   services.Lists,
		entries: services.Entries,
		notes:   services.Notes,
		config:  config.withDefaults(),
	}
}

// Routes registers every API route on r, relative to the /api mount point.
func (h *TodoHandler) Routes(r chi.Router) {
	r.Route("/lists", func(r chi.Router) {
		r.Get("/", h.ListLists)
		r.Post("/", h.CreateList)

		r.Route("/{list_id}", func(r chi.Router) {
			r.Get("/", h.GetList)
			r.Patch("/", h.UpdateList)
			r.Delete("/", h.DeleteList)
			r.Post("/hide", h.SwitchHide)
			r.Post("/copy", h.CopyList)

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", h.ListEntries)
				r.Post("/", h.CreateEntry)

				r.Route("/{entry_id}", func(r chi.Router) {
					r.Get("/", h.GetEntry)
					r.Patch("/", h.EditEntry)
					r.Delete("/", h.DeleteEntry)
					r.Put("/progress", h.ChangeProgress)
					r.Post("/complete", h.CompleteEntry)

					r.Get("/notes", h.ListNotes)
					r.Post("/notes", h.CreateNote)
					r.Delete("/notes/{note_id}", h.DeleteNote)
				})
			})
		})
	})

	r.Get("/entries/today", h.ListTodaysEntries)
	r.Get("/reminder", h.GetReminder)
}

// NewOpenAPIRouter builds the API router: request validation against the
// embedded OpenAPI document followed by the handlers. Production and tests
// both use it so they see identical behavior.
func NewOpenAPIRouter(services Services, config Config) (http.Handler, error) {
	spec, err := openapi.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}

	apiRouter := chi.NewRouter()
	apiRouter.Use(mw.NewValidator(spec, mw.ValidationConfig{MultiError: true}))
	NewTodoHandler(services, config).Routes(apiRouter)

	return apiRouter, nil
}
