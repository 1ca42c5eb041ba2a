package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystem_ReturnsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, System{}.Now().Location())
}

func TestFixed(t *testing.T) {
	start := time.Date(2022, 8, 14, 9, 30, 0, 0, time.UTC)
	c := NewFixed(start)

	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	c.Set(start.AddDate(0, 0, 1))
	assert.Equal(t, start.AddDate(0, 0, 1), c.Now())
}

func TestDayBounds(t *testing.T) {
	t.Run("utc", func(t *testing.T) {
		now := time.Date(2022, 8, 15, 17, 4, 5, 0, time.UTC)
		start, end := DayBounds(now, time.UTC)

		assert.Equal(t, time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2022, 8, 16, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("nil location means utc", func(t *testing.T) {
		now := time.Date(2022, 8, 15, 1, 0, 0, 0, time.UTC)
		start, _ := DayBounds(now, nil)

		assert.Equal(t, time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC), start)
	})

	t.Run("fixed offset crosses utc date", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*60*60)
		// 22:00 UTC on the 15th is already the 16th at UTC+3.
		now := time.Date(2022, 8, 15, 22, 0, 0, 0, time.UTC)
		start, end := DayBounds(now, loc)

		assert.Equal(t, time.Date(2022, 8, 15, 21, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2022, 8, 16, 21, 0, 0, 0, time.UTC), end)
	})
}
