package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/horia913/daily-fitness-sub008/internal/db"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/repository"
	"github.com/horia913/daily-fitness-sub008/internal/testutil"
)

var testToday = time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

func testClock() Clock {
	return Clock{
		Now:      func() time.Time { return testToday.Add(9 * time.Hour) },
		Location: time.UTC,
	}
}

type testEnv struct {
	db       *sql.DB
	subjects *repository.SQLiteSubjectRepo
	items    *repository.SQLiteTrackedItemRepo
	logs     *repository.SQLiteLogRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:       database,
		subjects: repository.NewSQLiteSubjectRepo(database),
		items:    repository.NewSQLiteTrackedItemRepo(database),
		logs:     repository.NewSQLiteLogRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}

func (e *testEnv) subject(t *testing.T, name string) *domain.Subject {
	t.Helper()
	s := testutil.NewTestSubject(name)
	require.NoError(t, e.subjects.Create(context.Background(), s))
	return s
}

func (e *testEnv) item(t *testing.T, subjectID, title string, opts ...testutil.ItemOption) *domain.TrackedItem {
	t.Helper()
	item := testutil.NewTestItem(subjectID, title, opts...)
	require.NoError(t, e.items.Create(context.Background(), item))
	return item
}

// logDaysAgo records completions n days before testToday for each n.
func (e *testEnv) logDaysAgo(t *testing.T, itemID string, ns ...int) {
	t.Helper()
	for _, d := range testutil.DaysBefore(testToday, ns...) {
		require.NoError(t, e.logs.InsertLog(context.Background(), itemID, d))
	}
}
