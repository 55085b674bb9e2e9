package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 10, DaysBetween(date(2024, 1, 1), date(2024, 1, 11)))
	assert.Equal(t, 1, DaysBetween(date(2024, 1, 1), date(2024, 1, 2)))

	// Same-day and inverted ranges clamp to 1, never 0 or negative.
	assert.Equal(t, 1, DaysBetween(date(2024, 1, 5), date(2024, 1, 5)))
	assert.Equal(t, 1, DaysBetween(date(2024, 1, 11), date(2024, 1, 1)))
}

func TestDaysBetweenPartialDaysRoundUp(t *testing.T) {
	start := date(2024, 1, 1)
	end := start.Add(36 * time.Hour)
	assert.Equal(t, 2, DaysBetween(start, end))
}

func TestDaysPassed(t *testing.T) {
	start := date(2024, 1, 1)

	assert.Equal(t, 1, DaysPassed(start, start.Add(12*time.Hour)))
	assert.Equal(t, 2, DaysPassed(start, start.Add(36*time.Hour)))
	assert.Equal(t, 10, DaysPassed(start, date(2024, 1, 11)))

	// Start in the future yields a negative count; clamping is the caller's job.
	assert.Equal(t, -5, DaysPassed(start, date(2023, 12, 27)))
}

func TestEstimatedCompletionDate(t *testing.T) {
	start := date(2024, 1, 1)

	// 200 units at 40 per session: 5 sessions, one every 2 days -> 8 days out.
	got, err := EstimatedCompletionDate(200, 40, start, 2)
	assert.NoError(t, err)
	assert.Equal(t, date(2024, 1, 9), got)

	// A single session finishes on the start date.
	got, err = EstimatedCompletionDate(30, 30, start, 7)
	assert.NoError(t, err)
	assert.Equal(t, start, got)

	// Partial last session still rounds the session count up.
	got, err = EstimatedCompletionDate(210, 40, start, 2)
	assert.NoError(t, err)
	assert.Equal(t, date(2024, 1, 11), got)
}

func TestEstimatedCompletionDateInvalidConfig(t *testing.T) {
	start := date(2024, 1, 1)

	_, err := EstimatedCompletionDate(200, 0, start, 2)
	assert.ErrorIs(t, err, ErrInvalidGoalConfig)

	_, err = EstimatedCompletionDate(0, 40, start, 2)
	assert.ErrorIs(t, err, ErrInvalidGoalConfig)

	_, err = EstimatedCompletionDate(200, 40, start, 0)
	assert.ErrorIs(t, err, ErrInvalidGoalConfig)
}
