package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/testutil"
)

func TestBackfill_InsertsAndSkipsDuplicates(t *testing.T) {
	env := setupRepos(t)
	s := env.subject(t, "Dana")
	item := env.item(t, s.ID, "Walk")
	env.logDaysAgo(t, item.ID, 1)

	svc := NewLogService(env.items, env.logs, env.uow)
	days := testutil.DaysBefore(testToday, 1, 2, 3, 3)
	result, err := svc.Backfill(context.Background(), item.ID, days)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 2, result.Skipped)

	entries, err := env.logs.ListLogs(context.Background(), []string{item.ID}, testToday.AddDate(0, 0, -10))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.SourceToggle, entries[0].Source, "existing entry keeps its source")
	assert.Equal(t, domain.SourceBackfill, entries[1].Source)
}

func TestBackfill_RollsBackOnFailure(t *testing.T) {
	env := setupRepos(t)
	s := env.subject(t, "Dana")
	item := env.item(t, s.ID, "Walk")

	boom := errors.New("disk I/O error")
	uow := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 3, Err: boom}
	svc := NewLogService(env.items, env.logs, uow)

	_, err := svc.Backfill(context.Background(), item.ID, testutil.DaysBefore(testToday, 1, 2, 3, 4))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	entries, err := env.logs.ListLogs(context.Background(), []string{item.ID}, testToday.AddDate(0, 0, -10))
	require.NoError(t, err)
	assert.Empty(t, entries, "earlier inserts in the batch must roll back")
}

func TestBackfill_UnknownItem(t *testing.T) {
	env := setupRepos(t)
	svc := NewLogService(env.items, env.logs, env.uow)

	_, err := svc.Backfill(context.Background(), "missing", testutil.DaysBefore(testToday, 1))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveLog(t *testing.T) {
	env := setupRepos(t)
	s := env.subject(t, "Dana")
	item := env.item(t, s.ID, "Walk")
	env.logDaysAgo(t, item.ID, 0, 1)

	svc := NewLogService(env.items, env.logs, env.uow)
	require.NoError(t, svc.Remove(context.Background(), item.ID, testToday))
	require.NoError(t, svc.Remove(context.Background(), item.ID, testToday), "removing twice is a no-op")

	entries, err := env.logs.ListLogs(context.Background(), []string{item.ID}, testToday.AddDate(0, 0, -5))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, testToday.AddDate(0, 0, -1), entries[0].Date)
}
