package domain

import (
	"fmt"
	"strings"
	"time"
)

// TrackedItem assigns a habit, workout plan or nutrition plan to a subject.
type TrackedItem struct {
	ID        string
	SubjectID string
	Category  Category
	Title     string
	Cadence   Cadence
	StartDate time.Time
	Active    bool
	CreatedAt time.Time
}

// Validate checks the fields required before an item can be stored.
func (t *TrackedItem) Validate() error {
	if t.SubjectID == "" {
		return fmt.Errorf("subject is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !ValidCategories[string(t.Category)] {
		return fmt.Errorf("invalid category %q (want workout, nutrition or habit)", t.Category)
	}
	return t.Cadence.Validate()
}

// DisplayID returns the first 8 characters of the ID.
func (t *TrackedItem) DisplayID() string {
	if len(t.ID) > 8 {
		return t.ID[:8]
	}
	return t.ID
}
