package adherence

import (
	"math"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// DefaultWindowDays is the trailing window used when callers pass none.
const DefaultWindowDays = 7

// WindowTarget returns how many logged days a cadence expects inside a
// trailing window. Daily cadences expect every day. Weekly cadences expect
// TimesPerWeek per seven days, scaled to the window and never below one.
func WindowTarget(c domain.Cadence, windowDays int) int {
	if windowDays <= 0 {
		return 0
	}
	switch c.Kind {
	case domain.CadenceWeekly:
		if c.TimesPerWeek <= 0 {
			return 0
		}
		target := int(math.Round(float64(c.TimesPerWeek) * float64(windowDays) / 7))
		if target < 1 {
			target = 1
		}
		if target > windowDays {
			target = windowDays
		}
		return target
	default:
		return windowDays
	}
}

// CountInWindow counts distinct logged days in [today-windowDays+1, today].
func CountInWindow(dates []time.Time, today time.Time, windowDays int) int {
	if windowDays <= 0 {
		return 0
	}
	today = domain.Day(today)
	start := today.AddDate(0, 0, -(windowDays - 1))

	count := 0
	for _, day := range uniqueDays(dates, today) {
		if day.Before(start) {
			break
		}
		count++
	}
	return count
}

// CompletionRate returns round(count/target*100) clamped to [0,100], where
// count is the number of distinct logged days in the trailing window.
// A non-positive target yields 0.
func CompletionRate(dates []time.Time, today time.Time, windowDays, target int) int {
	return RateFromCounts(CountInWindow(dates, today, windowDays), target)
}

// RateFromCounts converts completed/assigned counts into a percentage with the
// same rounding and clamping as CompletionRate.
func RateFromCounts(completed, assigned int) int {
	if assigned <= 0 || completed <= 0 {
		return 0
	}
	return clampPct(int(math.Round(float64(completed) / float64(assigned) * 100)))
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
