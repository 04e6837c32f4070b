package domain

import "time"

// LogEntry records one completion of a tracked item on a calendar day.
// (TrackedItemID, Date) is the natural key.
type LogEntry struct {
	TrackedItemID string
	Date          time.Time
	Source        LogSource
	CreatedAt     time.Time
}

// DatesFor returns the log dates belonging to itemID.
func DatesFor(entries []LogEntry, itemID string) []time.Time {
	var dates []time.Time
	for _, e := range entries {
		if e.TrackedItemID == itemID {
			dates = append(dates, e.Date)
		}
	}
	return dates
}
