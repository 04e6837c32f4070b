package service

import (
	"context"
	"fmt"

	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/db"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/importer"
	"github.com/horia913/daily-fitness-sub008/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	clock    Clock
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, clock Clock, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*app.ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

// ImportSchema writes every subject, item and log in one transaction. Any
// failure, including a reference to a missing subject or item, rolls the
// whole file back.
func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *app.ImportResult, err error) {
	fields := map[string]any{"subjects": len(schema.Subjects)}
	defer track(ctx, s.observer, "import-backfill", fields)(&err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema, s.clock.now())
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	result = &app.ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		subjects := repository.NewSQLiteSubjectRepo(tx)
		items := repository.NewSQLiteTrackedItemRepo(tx)
		logs := repository.NewSQLiteLogRepo(tx)

		for _, subj := range generated.Subjects {
			if err := subjects.Create(ctx, subj); err != nil {
				return fmt.Errorf("creating subject %q: %w", subj.Name, err)
			}
			result.SubjectsCreated++
		}
		for _, item := range generated.Items {
			if err := items.Create(ctx, item); err != nil {
				return fmt.Errorf("creating item %q: %w", item.Title, err)
			}
			result.ItemsCreated++
		}
		for _, entry := range generated.Logs {
			inserted, err := logs.InsertEntry(ctx, entry)
			if err != nil {
				return fmt.Errorf("logging %s on %s: %w", entry.TrackedItemID, domain.FormatDate(entry.Date), err)
			}
			if inserted {
				result.LogsInserted++
			} else {
				result.LogsSkipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["items_created"] = result.ItemsCreated
	fields["logs_inserted"] = result.LogsInserted
	return result, nil
}
