// Package blob holds what the blob sinks share.
package blob

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrObjectNotFound is returned by Get for a missing key.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidKey is returned for keys that are empty, absolute, or
	// step outside the store root.
	ErrInvalidKey = errors.New("invalid object key")
)

// CheckKey validates a slash separated object key.
func CheckKey(key string) error {
	if key == "" || key == "." || strings.HasPrefix(key, "/") || path.Clean(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for seg := range strings.SplitSeq(key, "/") {
		if seg == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
