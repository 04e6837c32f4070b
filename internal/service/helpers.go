package service

import (
	"fmt"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/adherence"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// itemProgress holds the windowed numbers for one item.
type itemProgress struct {
	Streak    int
	Completed int
	Target    int
	Rate      int
}

func progressFor(item *domain.TrackedItem, dates []time.Time, today time.Time, window int) itemProgress {
	target := adherence.WindowTarget(item.Cadence, window)
	return itemProgress{
		Streak:    adherence.CurrentStreak(dates, today),
		Completed: adherence.CountInWindow(dates, today, window),
		Target:    target,
		Rate:      adherence.CompletionRate(dates, today, window, target),
	}
}

// windowStart is the first day of a window ending today.
func windowStart(today time.Time, window int) time.Time {
	return domain.Day(today).AddDate(0, 0, -(window - 1))
}

func itemIDs(items []*domain.TrackedItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

func hasDay(dates []time.Time, day time.Time) bool {
	day = domain.Day(day)
	for _, d := range dates {
		if domain.Day(d).Equal(day) {
			return true
		}
	}
	return false
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
