package service

import (
	"context"
	"fmt"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/db"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/repository"
)

var _ app.BackfillUseCase = (*logService)(nil)

type logService struct {
	items    repository.TrackedItemRepo
	logs     repository.LogStore
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewLogService(
	items repository.TrackedItemRepo,
	logs repository.LogStore,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) LogService {
	return &logService{items: items, logs: logs, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// Backfill records past completions for one item in a single transaction.
// Days that already have a log are counted as skipped.
func (s *logService) Backfill(ctx context.Context, itemID string, dates []time.Time) (result *app.BackfillResult, err error) {
	fields := map[string]any{"item_id": itemID, "dates": len(dates)}
	defer track(ctx, s.observer, "backfill-logs", fields)(&err)

	if _, err = s.items.GetByID(ctx, itemID); err != nil {
		return nil, fmt.Errorf("tracked item %s: %w", itemID, err)
	}

	result = &app.BackfillResult{}
	now := time.Now().UTC()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txLogs := repository.NewSQLiteLogRepo(tx)
		for _, d := range dates {
			inserted, err := txLogs.InsertEntry(ctx, domain.LogEntry{
				TrackedItemID: itemID,
				Date:          domain.Day(d),
				Source:        domain.SourceBackfill,
				CreatedAt:     now,
			})
			if err != nil {
				return fmt.Errorf("backfilling %s: %w", domain.FormatDate(d), err)
			}
			if inserted {
				result.Inserted++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["inserted"] = result.Inserted
	return result, nil
}

func (s *logService) Remove(ctx context.Context, itemID string, date time.Time) (err error) {
	defer track(ctx, s.observer, "remove-log", map[string]any{"item_id": itemID, "date": domain.FormatDate(date)})(&err)

	if _, err = s.items.GetByID(ctx, itemID); err != nil {
		return fmt.Errorf("tracked item %s: %w", itemID, err)
	}
	return s.logs.DeleteLog(ctx, itemID, domain.Day(date))
}
