package guard

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/rezkam/todolist/internal/domain"
)

func TestFirst(t *testing.T) {
	assert.NoError(t, First())
	assert.NoError(t, First(nil, nil))

	err := First(nil, Positive(0, "page"), NonEmptyText("", "title"))
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestRequired(t *testing.T) {
	var nilList *domain.TodoList

	assert.ErrorIs(t, Required(nil, "list"), domain.ErrNullArgument)
	assert.ErrorIs(t, Required(nilList, "list"), domain.ErrNullArgument)
	assert.ErrorIs(t, Required([]domain.TodoEntry(nil), "entries"), domain.ErrNullArgument)
	assert.NoError(t, Required(&domain.TodoList{}, "list"))
	assert.NoError(t, Required([]domain.TodoEntry{}, "entries"))
	assert.NoError(t, Required(42, "answer"))
}

func TestNonEmptyText(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"a", false},
		{" padded ", false},
	}

	for _, tt := range tests {
		err := NonEmptyText(tt.input, "title")
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrNullArgument, "input %q", tt.input)
		} else {
			assert.NoError(t, err, "input %q", tt.input)
		}
	}
}

func TestMaxLength(t *testing.T) {
	assert.NoError(t, MaxLength(strings.Repeat("a", 75), 75, "title"))
	assert.ErrorIs(t, MaxLength(strings.Repeat("a", 76), 75, "title"), domain.ErrOutOfRange)

	// Counted in characters, not bytes.
	assert.NoError(t, MaxLength(strings.Repeat("é", 10), 10, "title"))
}

func TestNonEmptyID(t *testing.T) {
	assert.ErrorIs(t, NonEmptyID(uuid.Nil, "list_id"), domain.ErrOutOfRange)
	assert.NoError(t, NonEmptyID(uuid.New(), "list_id"))
}

func TestValidProgress(t *testing.T) {
	for _, p := range []domain.ProgressStatus{domain.ProgressNotStarted, domain.ProgressInProgress, domain.ProgressCompleted} {
		assert.NoError(t, ValidProgress(p, "progress"))
	}
	assert.ErrorIs(t, ValidProgress(-1, "progress"), domain.ErrOutOfRange)
	assert.ErrorIs(t, ValidProgress(3, "progress"), domain.ErrOutOfRange)
}

func TestDateNotAtBounds(t *testing.T) {
	assert.ErrorIs(t, DateNotAtBounds(time.Time{}, "due_date"), domain.ErrOutOfRange)
	assert.ErrorIs(t, DateNotAtBounds(domain.MaxTime, "due_date"), domain.ErrOutOfRange)
	assert.NoError(t, DateNotAtBounds(time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC), "due_date"))
}

func TestDateStrictlyFuture(t *testing.T) {
	now := time.Date(2022, 8, 14, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, DateStrictlyFuture(now.Add(time.Nanosecond), now, "due_date"))
	assert.ErrorIs(t, DateStrictlyFuture(now, now, "due_date"), domain.ErrOutOfRange)
	assert.ErrorIs(t, DateStrictlyFuture(now.Add(-time.Hour), now, "due_date"), domain.ErrOutOfRange)
}

func TestParseID(t *testing.T) {
	id := uuid.New()

	got, err := ParseID(id.String(), "list_id")
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ParseID("not-a-uuid", "list_id")
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)
	assert.ErrorIs(t, ParseableID("", "list_id"), domain.ErrInvalidFormat)
}

func TestAccountID(t *testing.T) {
	assert.ErrorIs(t, AccountID(""), domain.ErrNullArgument)
	assert.ErrorIs(t, AccountID("user-42"), domain.ErrInvalidFormat)
	assert.NoError(t, AccountID(uuid.NewString()))
}

func TestPage(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.PageRequest
		max     int
		wantErr error
	}{
		{"valid", domain.PageRequest{Page: 1, Size: 5}, 100, nil},
		{"page zero", domain.PageRequest{Page: 0, Size: 5}, 100, domain.ErrOutOfRange},
		{"size zero", domain.PageRequest{Page: 1, Size: 0}, 100, domain.ErrOutOfRange},
		{"size above max", domain.PageRequest{Page: 1, Size: 101}, 100, domain.ErrOutOfRange},
		{"no max", domain.PageRequest{Page: 3, Size: 1000}, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Page(tt.req, tt.max)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
