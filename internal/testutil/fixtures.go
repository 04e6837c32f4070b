package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

func NewTestSubject(name string) *domain.Subject {
	return &domain.Subject{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// TrackedItem options
type ItemOption func(*domain.TrackedItem)

func WithCategory(c domain.Category) ItemOption {
	return func(i *domain.TrackedItem) {
		i.Category = c
	}
}

func WithCadence(c domain.Cadence) ItemOption {
	return func(i *domain.TrackedItem) {
		i.Cadence = c
	}
}

func WithStartDate(d time.Time) ItemOption {
	return func(i *domain.TrackedItem) {
		i.StartDate = domain.Day(d)
	}
}

func Inactive() ItemOption {
	return func(i *domain.TrackedItem) {
		i.Active = false
	}
}

// NewTestItem builds an active daily habit for subjectID.
func NewTestItem(subjectID, title string, opts ...ItemOption) *domain.TrackedItem {
	now := time.Now().UTC()
	item := &domain.TrackedItem{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		Category:  domain.CategoryHabit,
		Title:     title,
		Cadence:   domain.Daily,
		StartDate: domain.Day(now.AddDate(0, -1, 0)),
		Active:    true,
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(item)
	}
	return item
}

// DaysBefore returns the calendar days today-n for each n.
func DaysBefore(today time.Time, ns ...int) []time.Time {
	days := make([]time.Time, 0, len(ns))
	for _, n := range ns {
		days = append(days, domain.Day(today).AddDate(0, 0, -n))
	}
	return days
}
