package app

import (
	"context"
	"time"
)

type ComplianceUseCase interface {
	GetComplianceSummary(ctx context.Context, req ComplianceRequest) (*ComplianceSummary, error)
}

type StreakUseCase interface {
	GetStreak(ctx context.Context, itemID string) (int, error)
}

type CompletionRateUseCase interface {
	GetCompletionRate(ctx context.Context, itemID string, windowDays int) (int, error)
}

type ToggleUseCase interface {
	Toggle(ctx context.Context, itemID string) (bool, error)
}

type BackfillUseCase interface {
	Backfill(ctx context.Context, itemID string, dates []time.Time) (*BackfillResult, error)
}
