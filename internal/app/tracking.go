package app

import (
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// ItemProgress is the per-item view used by the tracker and the streak/rate
// commands.
type ItemProgress struct {
	Item          *domain.TrackedItem
	Streak        int
	LongestStreak int
	Completed     int
	Target        int
	Rate          int
	DoneToday     bool
}

type ProgressRequest struct {
	Now        *time.Time
	SubjectID  string
	WindowDays int
}

type BackfillResult struct {
	Inserted int
	Skipped  int
}

type ImportResult struct {
	SubjectsCreated int
	ItemsCreated    int
	LogsInserted    int
	LogsSkipped     int
}
