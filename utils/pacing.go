package utils

import "math"

// TotalTarget returns the total amount of work in a goal: the base unit size
// times the number of repetitions.
func TotalTarget(baseAmount float64, repetitions int) float64 {
	return baseAmount * float64(repetitions)
}

// DailyTarget returns the per-session amount needed to finish targetAmount
// within totalDays, studying once every frequency days.
//
// Rounding is always ceiling: a floored target would under-shoot the pace and
// make the goal unreachable by the deadline. When the range is too short for
// even one full session (totalSessions == 0) the whole target is due in a
// single sitting.
func DailyTarget(targetAmount float64, totalDays, frequency int) (float64, error) {
	if targetAmount <= 0 || totalDays < 1 || frequency < 1 {
		return 0, ErrInvalidGoalConfig
	}
	totalSessions := totalDays / frequency
	if totalSessions == 0 {
		return targetAmount, nil
	}
	return math.Ceil(targetAmount / float64(totalSessions)), nil
}
