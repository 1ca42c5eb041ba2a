package export

import (
	"time"

	"github.com/google/uuid"
)

// Document is the exported form of one list.
type Document struct {
	ExportedAt time.Time `json:"exported_at"`
	List       List      `json:"list"`
	Entries    []Entry   `json:"entries"`
}

// List is an exported list.
type List struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Entry is an exported entry with its notes.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Progress    string    `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Notes       []Note    `json:"notes"`
}

// Note is an exported note.
type Note struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}
