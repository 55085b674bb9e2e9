package utils

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidGoalConfig marks a pacing plan that cannot be computed: a
// non-positive target or daily target, an inverted date range, or a frequency
// below one. Surfaced to the caller rather than recovered, since it means the
// plan is unreachable.
var ErrInvalidGoalConfig = errors.New("invalid goal configuration")

const dayHours = 24

// DaysBetween returns the inclusive day span between start and end, rounding
// partial days up. Same-day and inverted ranges clamp to 1 rather than
// erroring, so a degenerate range still yields a usable one-day plan.
func DaysBetween(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / dayHours))
	if days <= 0 {
		return 1
	}
	return days
}

// DaysPassed returns how many days have elapsed from start to now, rounding
// partial days up. The result is negative when start is in the future; callers
// that need a floor of zero clamp it themselves.
func DaysPassed(start, now time.Time) int {
	return int(math.Ceil(now.Sub(start).Hours() / dayHours))
}

// EstimatedCompletionDate projects the date the goal finishes if exactly
// dailyTarget is completed once every frequency days, starting at start.
func EstimatedCompletionDate(targetAmount, dailyTarget float64, start time.Time, frequency int) (time.Time, error) {
	if dailyTarget <= 0 || targetAmount <= 0 || frequency < 1 {
		return time.Time{}, ErrInvalidGoalConfig
	}
	sessionsNeeded := int(math.Ceil(targetAmount / dailyTarget))
	daysNeeded := (sessionsNeeded - 1) * frequency
	return start.AddDate(0, 0, daysNeeded), nil
}
