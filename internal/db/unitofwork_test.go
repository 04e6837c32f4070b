package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horia913/daily-fitness-sub008/internal/db"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

// seededDB opens an in-memory database holding one subject and one item.
func seededDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`INSERT INTO subjects (id, name, created_at) VALUES ('s1', 'Ana', '2025-03-01T00:00:00Z')`)
	require.NoError(t, err)
	_, err = database.Exec(`INSERT INTO tracked_items (id, subject_id, category, title, start_date, created_at)
		VALUES ('i1', 's1', 'habit', 'Water', '2025-03-01', '2025-03-01T00:00:00Z')`)
	require.NoError(t, err)
	return database
}

func insertLog(ctx context.Context, tx db.DBTX, date string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO log_entries (tracked_item_id, log_date, source, created_at) VALUES ('i1', ?, 'backfill', '2025-03-01T00:00:00Z')`,
		date)
	return err
}

func countLogs(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM log_entries`).Scan(&n))
	return n
}

func TestWithinTx_CommitsAllRows(t *testing.T) {
	database := seededDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		for _, d := range []string{"2025-03-01", "2025-03-02", "2025-03-03"} {
			if err := insertLog(ctx, tx, d); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, countLogs(t, database))
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	database := seededDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	errImport := errors.New("bad row")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertLog(ctx, tx, "2025-03-01"); err != nil {
			return err
		}
		return errImport
	})
	require.ErrorIs(t, err, errImport)
	assert.Equal(t, 0, countLogs(t, database), "partial import must not persist")
}

func TestWithinTx_RollsBackOnPanic(t *testing.T) {
	database := seededDB(t)
	uow := db.NewSQLiteUnitOfWork(database)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertLog(ctx, tx, "2025-03-01")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countLogs(t, database))
}

func TestWithinTx_ClosedDatabaseIsStoreUnavailable(t *testing.T) {
	database := seededDB(t)
	uow := db.NewSQLiteUnitOfWork(database)
	require.NoError(t, database.Close())

	called := false
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.False(t, called)
}
