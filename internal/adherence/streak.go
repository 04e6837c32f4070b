// Package adherence holds the pure scoring math shared by the client tracker
// and the coach compliance views: streaks, trailing-window completion rates,
// and compliance aggregation. Nothing here touches the store or fails.
package adherence

import (
	"sort"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// graceDays is how far the next log may lag the running anchor before the
// streak breaks. One day tolerates a log written just after local midnight.
const graceDays = 1

// uniqueDays truncates dates to calendar days, drops duplicates and anything
// after limit (when limit is non-zero), and returns them newest first.
func uniqueDays(dates []time.Time, limit time.Time) []time.Time {
	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := domain.Day(d)
		if !limit.IsZero() && day.After(limit) {
			continue
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// CurrentStreak counts consecutive logged days ending today or yesterday.
// Dates may be unsorted and may repeat; each calendar day counts once.
// Logs dated after today are ignored.
func CurrentStreak(dates []time.Time, today time.Time) int {
	today = domain.Day(today)
	days := uniqueDays(dates, today)

	streak := 0
	anchor := today
	for _, day := range days {
		if domain.DaysBetween(day, anchor) > graceDays {
			break
		}
		streak++
		anchor = day
	}
	return streak
}

// LongestStreak returns the longest run of consecutive calendar days found
// anywhere in dates.
func LongestStreak(dates []time.Time) int {
	days := uniqueDays(dates, time.Time{})
	if len(days) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(days); i++ {
		if domain.DaysBetween(days[i], days[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
