package utils

import (
	"time"

	"github.com/f-kazuma/smardy1210/models"
)

// StudyStats holds running totals of study time in minutes. The buckets are
// inclusive supersets: a session counted in Today is also counted in Week,
// Month and Total.
type StudyStats struct {
	Today int `json:"today"`
	Week  int `json:"week"`
	Month int `json:"month"`
	Total int `json:"total"`
}

// DailyStudyEntry is one day of the current week's study-time series.
type DailyStudyEntry struct {
	Day     string `json:"day"`
	Minutes int    `json:"minutes"`
}

// GoalTime is the total study time logged against one goal.
type GoalTime struct {
	GoalID  string `json:"goalId"`
	Minutes int    `json:"minutes"`
}

// midnight truncates t to the start of its calendar day.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart returns the most recent Sunday at or before t, at midnight.
func weekStart(t time.Time) time.Time {
	today := midnight(t)
	return today.AddDate(0, 0, -int(today.Weekday()))
}

// ComputeStudyStats sums session durations into today/week/month/total
// buckets relative to now. The week starts on Sunday.
func ComputeStudyStats(sessions []models.StudySession, now time.Time) StudyStats {
	today := midnight(now)
	week := weekStart(now)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var stats StudyStats
	for _, s := range sessions {
		stats.Total += s.Duration
		if !s.StartTime.Before(today) {
			stats.Today += s.Duration
		}
		if !s.StartTime.Before(week) {
			stats.Week += s.Duration
		}
		if !s.StartTime.Before(month) {
			stats.Month += s.Duration
		}
	}
	return stats
}

// ComputeDailyStudyData returns the current week's study time as a
// Sunday-first series of seven days, regardless of which weekday now is.
func ComputeDailyStudyData(sessions []models.StudySession, now time.Time) []DailyStudyEntry {
	start := weekStart(now)

	minutes := make([]int, 7)
	for _, s := range sessions {
		if s.StartTime.Before(start) {
			continue
		}
		minutes[int(s.StartTime.Weekday())] += s.Duration
	}

	entries := make([]DailyStudyEntry, 7)
	for i := range entries {
		entries[i] = DailyStudyEntry{
			Day:     time.Weekday(i).String()[:3],
			Minutes: minutes[i],
		}
	}
	return entries
}

// ComputeSubjectDistribution sums session durations per goal across the whole
// log. Goals with no sessions do not appear.
func ComputeSubjectDistribution(sessions []models.StudySession) []GoalTime {
	totals := make(map[string]int)
	var order []string
	for _, s := range sessions {
		if _, seen := totals[s.GoalID]; !seen {
			order = append(order, s.GoalID)
		}
		totals[s.GoalID] += s.Duration
	}

	dist := make([]GoalTime, 0, len(order))
	for _, id := range order {
		dist = append(dist, GoalTime{GoalID: id, Minutes: totals[id]})
	}
	return dist
}
