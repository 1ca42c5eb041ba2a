package domain

import (
	"fmt"
	"strings"
)

// ProgressStatus is the three-state progress of an entry.
// The numeric values are persisted and must not change.
type ProgressStatus int

const (
	ProgressNotStarted ProgressStatus = 0
	ProgressInProgress ProgressStatus = 1
	ProgressCompleted  ProgressStatus = 2
)

// Valid reports whether p is one of the defined states.
func (p ProgressStatus) Valid() bool {
	return p >= ProgressNotStarted && p <= ProgressCompleted
}

// String returns the display label, e.g. "Not Started".
func (p ProgressStatus) String() string {
	switch p {
	case ProgressNotStarted:
		return "Not Started"
	case ProgressInProgress:
		return "In Progress"
	case ProgressCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("ProgressStatus(%d)", int(p))
	}
}

// ParseProgressStatus accepts a display label or its snake case form
// ("not_started", "in_progress", "completed"), case-insensitively.
func ParseProgressStatus(s string) (ProgressStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)

	switch normalized {
	case "not_started":
		return ProgressNotStarted, nil
	case "in_progress":
		return ProgressInProgress, nil
	case "completed":
		return ProgressCompleted, nil
	default:
		return 0, fmt.Errorf("%w: progress %q is not a known status", ErrOutOfRange, s)
	}
}
