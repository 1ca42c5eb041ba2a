package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field limits, in characters.
const (
	MaxListTitleLength        = 100
	MaxEntryTitleLength       = 75
	MaxEntryDescriptionLength = 250
	MaxNoteTextLength         = 150
)

// MaxTime is the largest timestamp the stores accept. Together with the zero
// time.Time it bounds every persisted date.
var MaxTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)

// TodoList is a named collection of entries owned by one account.
type TodoList struct {
	ID        uuid.UUID
	AccountID string
	Title     string
	Hidden    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TodoEntry is a single task within a list.
type TodoEntry struct {
	ID          uuid.UUID
	ListID      uuid.UUID
	Title       string
	Description string
	DueDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Progress    ProgressStatus

	// ListTitle is populated by single-entry reads and ignored on writes.
	ListTitle string
}

// IsCompleted reports whether the entry has reached the final state.
func (e TodoEntry) IsCompleted() bool {
	return e.Progress == ProgressCompleted
}

// Note is a free-text annotation attached to an entry.
type Note struct {
	ID      uuid.UUID
	EntryID uuid.UUID
	Text    string
}

// EntryEdit carries a partial entry update. Unset text fields keep their
// stored value; there is no way to clear them.
type EntryEdit struct {
	Title       Optional[string]
	Description Optional[string]
	DueDate     time.Time
}

// Reminder is the soonest still-future entry of an account.
type Reminder struct {
	EntryID uuid.UUID
	ListID  uuid.UUID
	Title   string
	DueDate time.Time
}

// APIKey is an aggregate root representing an API key for authentication.
//
// API keys use a split-token pattern:
//   - ShortToken: indexed portion for lookup
//   - LongSecretHash: cryptographic hash for verification
//   - FullKey: only shown once at creation (short + long)
//
// AccountID is the account every request made with the key acts for.
type APIKey struct {
	ID             string
	AccountID      string
	KeyType        string // "sk" = secret key
	Service        string // e.g. "todolist"
	Version        string // e.g. "v1"
	ShortToken     string
	LongSecretHash string // BLAKE2b-256 hash of long secret
	Name           string
	IsActive       bool
	CreatedAt      time.Time
	LastUsedAt     *time.Time
	ExpiresAt      *time.Time
}
