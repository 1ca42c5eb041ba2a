package todo

import "time"

// DefaultMaxPageSize caps page sizes when Config.MaxPageSize is unset.
const DefaultMaxPageSize = 100

// Config holds configuration shared by the todo services.
type Config struct {
	// MaxPageSize is the largest accepted page size.
	MaxPageSize int

	// Location defines calendar days for "due today". Nil means UTC.
	Location *time.Location
}

// withDefaults returns a copy with zero or invalid values replaced.
func (c Config) withDefaults() Config {
	if c.MaxPageSize <= 0 {
		c.MaxPageSize = DefaultMaxPageSize
	}
	if c.Location == nil {
		c.Location = time.UTC
	}
	return c
}
