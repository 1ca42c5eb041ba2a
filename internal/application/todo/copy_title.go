package todo

import (
	"fmt"
	"strings"

	"github.com/rezkam/todolist/internal/domain"
)

const (
	copyMarker          = " -Copy"
	copyTruncatedLength = 60
)

// copyBaseTitle strips everything from the first copy marker onwards, so
// copying a copy counts against the original title.
func copyBaseTitle(title string) string {
	base, _, _ := strings.Cut(title, copyMarker)
	return base
}

// copyTitle builds the title of the count-th copy of base. Titles that would
// exceed the list title limit keep the first 60 characters of base followed
// by an ellipsis before the suffix.
func copyTitle(base string, count int) string {
	suffix := fmt.Sprintf("%s %d", copyMarker, count)

	title := base + suffix
	if len([]rune(title)) <= domain.MaxListTitleLength {
		return title
	}

	runes := []rune(base)
	if len(runes) > copyTruncatedLength {
		runes = runes[:copyTruncatedLength]
	}
	return string(runes) + "..." + suffix
}
