// Package response writes the JSON envelopes shared by every HTTP handler.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rezkam/todolist/internal/domain"
)

// encodeFailureJSON is written when a payload cannot be marshaled.
const encodeFailureJSON = `{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response","details":[]}}`

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information. Details is never null.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []ErrorField `json:"details"`
}

// ErrorField describes a field-specific error.
type ErrorField struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// JSON marshals data before touching w, so an encoding failure still yields
// a well-formed 500 instead of a truncated success.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(encodeFailureJSON))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(body)
}

// OK sends a 200 OK response with JSON data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 Created response with JSON data.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error sends an error envelope without field details.
func Error(w http.ResponseWriter, code, message string, statusCode int) {
	JSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: []ErrorField{},
		},
	})
}

// BadRequest sends a 400 for requests that cannot be interpreted at all.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, "INVALID_REQUEST", message, http.StatusBadRequest)
}

// ValidationError sends a 400 validation error with field details.
func ValidationError(w http.ResponseWriter, field, issue string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: []ErrorField{{Field: field, Issue: issue}},
		},
	})
}

// NotFound sends a 404 Not Found error.
func NotFound(w http.ResponseWriter, resource string) {
	Error(w, "NOT_FOUND", resource+" not found", http.StatusNotFound)
}

// Unauthorized sends a 401 Unauthorized error.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, "UNAUTHORIZED", message, http.StatusUnauthorized)
}

// PayloadTooLarge sends a 413 Request Entity Too Large error.
func PayloadTooLarge(w http.ResponseWriter) {
	Error(w, "PAYLOAD_TOO_LARGE", "request body exceeds size limit", http.StatusRequestEntityTooLarge)
}

// InternalError logs err and sends a generic 500. Error text never reaches
// the client.
func InternalError(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "internal server error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	}
	Error(w, "INTERNAL_ERROR", "an internal error occurred", http.StatusInternalServerError)
}

// FromDomainError maps domain errors to HTTP responses. Not found is checked
// before the argument kinds because EditEntry reports a missing entry with
// both.
func FromDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrListNotFound):
		NotFound(w, "list")
	case errors.Is(err, domain.ErrEntryNotFound):
		NotFound(w, "entry")
	case errors.Is(err, domain.ErrNoteNotFound):
		NotFound(w, "note")
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, "resource")

	case errors.Is(err, domain.ErrNullArgument),
		errors.Is(err, domain.ErrOutOfRange),
		errors.Is(err, domain.ErrInvalidFormat):
		ValidationError(w, fieldOf(err), err.Error())

	case errors.Is(err, domain.ErrUnauthorized):
		Unauthorized(w, "invalid or missing API key")

	default:
		InternalError(w, r, err)
	}
}

// fieldOf digs the offending name out of a guard error. Guards format their
// errors as "<kind>: <name> <issue>".
func fieldOf(err error) string {
	msg := err.Error()
	for _, kind := range []error{domain.ErrNullArgument, domain.ErrOutOfRange, domain.ErrInvalidFormat} {
		_, rest, found := strings.Cut(msg, kind.Error()+": ")
		if !found {
			continue
		}
		if end := strings.IndexAny(rest, " :"); end > 0 {
			return rest[:end]
		}
		return rest
	}
	return "request"
}
