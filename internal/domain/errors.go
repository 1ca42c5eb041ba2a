package domain

import "errors"

// Argument error kinds. Guards wrap one of these with the offending name.
var (
	// ErrNullArgument indicates a required value is absent or empty.
	ErrNullArgument = errors.New("required value is missing")

	// ErrOutOfRange indicates a length, range or enum-domain violation.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidFormat indicates an identifier string could not be parsed.
	ErrInvalidFormat = errors.New("invalid format")
)

// Lookup errors returned by repository implementations.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrListNotFound indicates the specified list does not exist.
	ErrListNotFound = wrapNotFound("list not found")

	// ErrEntryNotFound indicates the specified entry does not exist.
	ErrEntryNotFound = wrapNotFound("entry not found")

	// ErrNoteNotFound indicates the specified note does not exist.
	ErrNoteNotFound = wrapNotFound("note not found")
)

// Authentication errors.
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidAPIKeyFormat = errors.New("invalid API key format")
)

// notFoundError keeps a specific message while matching ErrNotFound.
type notFoundError struct {
	msg string
}

func wrapNotFound(msg string) error {
	return &notFoundError{msg: msg}
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Unwrap() error { return ErrNotFound }
