package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/f-kazuma/smardy1210/models"
)

func pacedGoal() *models.Goal {
	return &models.Goal{
		TargetAmount: 200,
		DailyTarget:  40,
		StartDate:    date(2024, 1, 1),
		EndDate:      date(2024, 1, 11),
		Frequency:    2,
	}
}

func TestExpectedProgress(t *testing.T) {
	goal := pacedGoal()

	// Two full days in: 2 * 40.
	assert.Equal(t, 80.0, ExpectedProgress(goal, date(2024, 1, 3)))

	// Partial days count as a whole day passed.
	assert.Equal(t, 120.0, ExpectedProgress(goal, date(2024, 1, 3).Add(6*time.Hour)))
}

func TestExpectedProgressClamps(t *testing.T) {
	goal := pacedGoal()

	// Before the start date nothing is expected, never a negative amount.
	assert.Equal(t, 0.0, ExpectedProgress(goal, date(2023, 12, 1)))

	// Long after the deadline the expectation caps at the total target.
	assert.Equal(t, 200.0, ExpectedProgress(goal, date(2024, 6, 1)))
}

func TestProgressPercentage(t *testing.T) {
	assert.Equal(t, 25.0, ProgressPercentage(50, 200))
	assert.Equal(t, 100.0, ProgressPercentage(200, 200))

	// Clamped to [0, 100] for any input.
	assert.Equal(t, 100.0, ProgressPercentage(300, 200))
	assert.Equal(t, 0.0, ProgressPercentage(-10, 200))

	// A zero or negative total is 0% by convention, not a division by zero.
	assert.Equal(t, 0.0, ProgressPercentage(50, 0))
	assert.Equal(t, 0.0, ProgressPercentage(50, -1))
}

func TestProgressDifference(t *testing.T) {
	assert.Equal(t, 30.0, ProgressDifference(110, 80))
	assert.Equal(t, -25.0, ProgressDifference(55, 80))

	// Unclamped in both directions.
	assert.Equal(t, 500.0, ProgressDifference(700, 200))
}
