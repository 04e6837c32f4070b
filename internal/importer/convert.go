package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// Generated holds the domain objects produced from a backfill file.
// Subjects and Items contain only new records; Logs may reference existing
// items.
type Generated struct {
	Subjects []*domain.Subject
	Items    []*domain.TrackedItem
	Logs     []domain.LogEntry
}

// Convert transforms a validated ImportSchema into domain objects.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema, now time.Time) (*Generated, error) {
	now = now.UTC()
	gen := &Generated{}

	for _, s := range schema.Subjects {
		subjectID := s.ID
		if subjectID == "" {
			subjectID = uuid.New().String()
			gen.Subjects = append(gen.Subjects, &domain.Subject{
				ID:        subjectID,
				Name:      s.Name,
				CreatedAt: now,
			})
		}

		for _, it := range s.Items {
			logs, err := parseLogs(it.Logs)
			if err != nil {
				return nil, err
			}

			itemID := it.ID
			if itemID == "" {
				item, err := convertItem(subjectID, it, logs, now)
				if err != nil {
					return nil, err
				}
				itemID = item.ID
				gen.Items = append(gen.Items, item)
			}

			for _, d := range logs {
				gen.Logs = append(gen.Logs, domain.LogEntry{
					TrackedItemID: itemID,
					Date:          d,
					Source:        domain.SourceBackfill,
					CreatedAt:     now,
				})
			}
		}
	}
	return gen, nil
}

func convertItem(subjectID string, it ItemImport, logs []time.Time, now time.Time) (*domain.TrackedItem, error) {
	cadence := domain.Daily
	if it.Cadence != "" {
		c, err := domain.ParseCadence(it.Cadence)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", it.Title, err)
		}
		cadence = c
	}

	// Without an explicit start the item starts on its earliest log.
	start := domain.Day(now)
	for _, d := range logs {
		if d.Before(start) {
			start = d
		}
	}
	if it.StartDate != "" {
		d, err := domain.ParseDate(it.StartDate)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", it.Title, err)
		}
		start = d
	}

	return &domain.TrackedItem{
		ID:        uuid.New().String(),
		SubjectID: subjectID,
		Category:  domain.Category(it.Category),
		Title:     it.Title,
		Cadence:   cadence,
		StartDate: start,
		Active:    true,
		CreatedAt: now,
	}, nil
}

// parseLogs parses and deduplicates log dates, keeping file order.
func parseLogs(raw []string) ([]time.Time, error) {
	seen := make(map[time.Time]bool, len(raw))
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := domain.ParseDate(s)
		if err != nil {
			return nil, err
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}
