package service

import (
	"context"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/importer"
)

type SubjectService interface {
	Create(ctx context.Context, name string) (*domain.Subject, error)
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	List(ctx context.Context) ([]*domain.Subject, error)
}

type TrackedItemService interface {
	Assign(ctx context.Context, item *domain.TrackedItem) error
	GetByID(ctx context.Context, id string) (*domain.TrackedItem, error)
	ListBySubject(ctx context.Context, subjectID string, includeInactive bool) ([]*domain.TrackedItem, error)
	FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.TrackedItem, error)
	Deactivate(ctx context.Context, id string) error
}

type LogService interface {
	Backfill(ctx context.Context, itemID string, dates []time.Time) (*app.BackfillResult, error)
	Remove(ctx context.Context, itemID string, date time.Time) error
}

// AdherenceService exposes the read side of the engine: streaks, windowed
// completion rates and compliance summaries.
type AdherenceService interface {
	GetStreak(ctx context.Context, itemID string) (int, error)
	GetCompletionRate(ctx context.Context, itemID string, windowDays int) (int, error)
	GetProgress(ctx context.Context, req app.ProgressRequest) ([]app.ItemProgress, error)
	GetComplianceSummary(ctx context.Context, req app.ComplianceRequest) (*app.ComplianceSummary, error)
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*app.ImportResult, error)
}
