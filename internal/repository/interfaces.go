package repository

import (
	"context"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

type SubjectRepo interface {
	Create(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
}

type TrackedItemRepo interface {
	Create(ctx context.Context, item *domain.TrackedItem) error
	GetByID(ctx context.Context, id string) (*domain.TrackedItem, error)
	ListBySubject(ctx context.Context, subjectID string, includeInactive bool) ([]*domain.TrackedItem, error)
	FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.TrackedItem, error)
	Deactivate(ctx context.Context, id string) error
}

// LogStore is the event log collaborator the engine depends on. Inserts and
// deletes are idempotent on (itemID, date).
type LogStore interface {
	ListLogs(ctx context.Context, itemIDs []string, since time.Time) ([]domain.LogEntry, error)
	InsertLog(ctx context.Context, itemID string, date time.Time) error
	DeleteLog(ctx context.Context, itemID string, date time.Time) error
}
