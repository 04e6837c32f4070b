package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/repository"
)

type trackedItemService struct {
	subjects repository.SubjectRepo
	items    repository.TrackedItemRepo
	clock    Clock
	observer UseCaseObserver
}

func NewTrackedItemService(
	subjects repository.SubjectRepo,
	items repository.TrackedItemRepo,
	clock Clock,
	observers ...UseCaseObserver,
) TrackedItemService {
	return &trackedItemService{
		subjects: subjects,
		items:    items,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Assign validates and stores a new tracked item. Missing ID, start date and
// cadence are filled with a fresh uuid, today and daily.
func (s *trackedItemService) Assign(ctx context.Context, item *domain.TrackedItem) (err error) {
	fields := map[string]any{"subject_id": item.SubjectID, "category": string(item.Category)}
	defer track(ctx, s.observer, "assign-item", fields)(&err)

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Cadence.Kind == "" {
		item.Cadence = domain.Daily
	}
	if item.StartDate.IsZero() {
		item.StartDate = s.clock.Today()
	}
	item.StartDate = domain.Day(item.StartDate)
	item.Active = true
	item.CreatedAt = time.Now().UTC()

	if err = item.Validate(); err != nil {
		return err
	}
	if _, err = s.subjects.GetByID(ctx, item.SubjectID); err != nil {
		return fmt.Errorf("subject %s: %w", item.SubjectID, err)
	}
	if err = s.items.Create(ctx, item); err != nil {
		return fmt.Errorf("assigning %q: %w", item.Title, err)
	}
	fields["item_id"] = item.ID
	return nil
}

func (s *trackedItemService) GetByID(ctx context.Context, id string) (*domain.TrackedItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *trackedItemService) ListBySubject(ctx context.Context, subjectID string, includeInactive bool) ([]*domain.TrackedItem, error) {
	return s.items.ListBySubject(ctx, subjectID, includeInactive)
}

func (s *trackedItemService) FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.TrackedItem, error) {
	return s.items.FindByIDPrefix(ctx, prefix)
}

func (s *trackedItemService) Deactivate(ctx context.Context, id string) error {
	return s.items.Deactivate(ctx, id)
}
