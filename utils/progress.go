package utils

import (
	"time"

	"github.com/f-kazuma/smardy1210/models"
)

// ExpectedProgress returns the amount that should be done by now if the plan
// were followed exactly. Days before the start count as zero, and the result
// never exceeds the goal's total target.
//
// The expected curve advances by dailyTarget per calendar day regardless of
// the goal's frequency; frequency only shaped how dailyTarget was derived.
// This matches the pacing model users see in the UI and is kept as-is.
func ExpectedProgress(goal *models.Goal, now time.Time) float64 {
	daysPassed := DaysPassed(goal.StartDate, now)
	if daysPassed < 0 {
		daysPassed = 0
	}
	expected := float64(daysPassed) * goal.DailyTarget
	if expected > goal.TargetAmount {
		return goal.TargetAmount
	}
	return expected
}

// ProgressPercentage returns current/total as a percentage clamped to
// [0, 100]. A non-positive total is 0% by convention, never a division by
// zero.
func ProgressPercentage(current, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := current / total * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// ProgressDifference returns actual minus expected: positive means ahead of
// schedule, negative behind. Unclamped.
func ProgressDifference(actual, expected float64) float64 {
	return actual - expected
}
