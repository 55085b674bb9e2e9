package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalTarget(t *testing.T) {
	assert.Equal(t, 200.0, TotalTarget(100, 2))
	assert.Equal(t, 37.5, TotalTarget(12.5, 3))
}

func TestDailyTarget(t *testing.T) {
	// 200 units over 10 days, studying every 2 days: 5 sessions of 40.
	got, err := DailyTarget(200, 10, 2)
	assert.NoError(t, err)
	assert.Equal(t, 40.0, got)

	// Uneven split rounds up.
	got, err = DailyTarget(100, 7, 2)
	assert.NoError(t, err)
	assert.Equal(t, 34.0, got)
}

func TestDailyTargetShortRange(t *testing.T) {
	// Range shorter than one frequency interval: the whole goal is due in a
	// single sitting.
	got, err := DailyTarget(50, 3, 7)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, got)
}

func TestDailyTargetInvalidConfig(t *testing.T) {
	_, err := DailyTarget(0, 10, 2)
	assert.ErrorIs(t, err, ErrInvalidGoalConfig)

	_, err = DailyTarget(-5, 10, 2)
	assert.ErrorIs(t, err, ErrInvalidGoalConfig)

	_, err = DailyTarget(100, 0, 2)
	assert.ErrorIs(t, err, ErrInvalidGoalConfig)

	_, err = DailyTarget(100, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidGoalConfig)
}

// The computed pace must always be sufficient: following dailyTarget once
// every frequency days finishes the goal by the deadline.
func TestDailyTargetIsSufficient(t *testing.T) {
	targets := []float64{1, 7, 50, 99.5, 200, 1000}
	for _, target := range targets {
		for totalDays := 1; totalDays <= 40; totalDays++ {
			for frequency := 1; frequency <= 10; frequency++ {
				dt, err := DailyTarget(target, totalDays, frequency)
				assert.NoError(t, err)

				sessions := math.Ceil(float64(totalDays) / float64(frequency))
				assert.GreaterOrEqual(t, sessions*dt, target,
					"target=%v totalDays=%d frequency=%d dailyTarget=%v",
					target, totalDays, frequency, dt)
			}
		}
	}
}

// With totalDays an exact multiple of frequency, pacing a derived total
// target lands exactly on ceil(base*reps/k) per session.
func TestPacingRoundTrip(t *testing.T) {
	base, reps := 100.0, 2
	frequency := 3
	for k := 1; k <= 12; k++ {
		total := TotalTarget(base, reps)
		dt, err := DailyTarget(total, frequency*k, frequency)
		assert.NoError(t, err)
		assert.Equal(t, math.Ceil(total/float64(k)), dt, "k=%d", k)
	}
}
