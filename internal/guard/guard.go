// Package guard holds the precondition checks shared by the services and the
// store adapters. Every check returns nil when the value is acceptable and
// otherwise an error wrapping one of the domain argument kinds, so callers
// can branch with errors.Is.
package guard

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/rezkam/todolist/internal/domain"
)

// First returns the first non-nil error.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Required fails with ErrNullArgument when v is nil or a nil pointer.
func Required(v any, name string) error {
	if v == nil {
		return fmt.Errorf("%w: %s is nil", domain.ErrNullArgument, name)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return fmt.Errorf("%w: %s is nil", domain.ErrNullArgument, name)
		}
	}
	return nil
}

// NonEmptyText fails with ErrNullArgument when s is empty or only whitespace.
func NonEmptyText(s, name string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s is empty", domain.ErrNullArgument, name)
	}
	return nil
}

// MaxLength fails with ErrOutOfRange when s has more than n characters.
func MaxLength(s string, n int, name string) error {
	if l := utf8.RuneCountInString(s); l > n {
		return fmt.Errorf("%w: %s is %d characters, limit is %d", domain.ErrOutOfRange, name, l, n)
	}
	return nil
}

// NonEmptyID fails with ErrOutOfRange when id is the all-zero UUID.
func NonEmptyID(id uuid.UUID, name string) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: %s is the nil UUID", domain.ErrOutOfRange, name)
	}
	return nil
}

// ValidProgress fails with ErrOutOfRange outside the three progress states.
func ValidProgress(p domain.ProgressStatus, name string) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %s has unknown value %d", domain.ErrOutOfRange, name, int(p))
	}
	return nil
}

// DateNotAtBounds fails with ErrOutOfRange when t is the zero time or
// domain.MaxTime.
func DateNotAtBounds(t time.Time, name string) error {
	if t.IsZero() || t.Equal(domain.MaxTime) {
		return fmt.Errorf("%w: %s is at the representable bound", domain.ErrOutOfRange, name)
	}
	return nil
}

// DateStrictlyFuture fails with ErrOutOfRange unless t is after now.
func DateStrictlyFuture(t, now time.Time, name string) error {
	if !t.After(now) {
		return fmt.Errorf("%w: %s must be later than now", domain.ErrOutOfRange, name)
	}
	return nil
}

// ParseableID fails with ErrInvalidFormat when s is not a UUID.
func ParseableID(s, name string) error {
	_, err := ParseID(s, name)
	return err
}

// ParseID parses s as a UUID, failing with ErrInvalidFormat.
func ParseID(s, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidFormat, name, err)
	}
	return id, nil
}

// Positive fails with ErrOutOfRange when n is less than 1.
func Positive(n int, name string) error {
	if n < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", domain.ErrOutOfRange, name, n)
	}
	return nil
}

// AccountID requires a non-empty account identifier that parses as a UUID.
func AccountID(accountID string) error {
	return First(
		NonEmptyText(accountID, "account_id"),
		ParseableID(accountID, "account_id"),
	)
}

// Page validates a page request against an upper page-size limit.
// A non-positive maxSize disables the upper limit.
func Page(req domain.PageRequest, maxSize int) error {
	if err := First(Positive(req.Page, "page"), Positive(req.Size, "page_size")); err != nil {
		return err
	}
	if maxSize > 0 && req.Size > maxSize {
		return fmt.Errorf("%w: page_size %d exceeds limit %d", domain.ErrOutOfRange, req.Size, maxSize)
	}
	return nil
}
