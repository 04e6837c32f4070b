package service

import (
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// Clock supplies "now" and the zone whose calendar defines a day.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// SystemClock uses the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Today returns the current calendar day.
func (c Clock) Today() time.Time {
	return domain.DayOf(c.now(), c.Location)
}

// todayAt resolves an optional request override to a calendar day.
func (c Clock) todayAt(override *time.Time) time.Time {
	if override != nil {
		return domain.DayOf(*override, c.Location)
	}
	return c.Today()
}
