package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Many writers inserting the same (item, day) must still leave one entry.
func TestConcurrentAccess_DuplicateInsertsCollapse(t *testing.T) {
	database := testutil.NewTestFileDB(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Race")
	require.NoError(t, NewSQLiteSubjectRepo(database).Create(ctx, subj))
	item := testutil.NewTestItem(subj.ID, "Water")
	require.NoError(t, NewSQLiteTrackedItemRepo(database).Create(ctx, item))

	logs := NewSQLiteLogRepo(database)
	day := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(writer int) {
			defer wg.Done()
			for i := 0; i < 5; i++ {
				if err := logs.InsertLog(ctx, item.ID, day); err != nil {
					t.Errorf("writer %d: insert: %v", writer, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	entries, err := logs.ListLogs(ctx, []string{item.ID}, day)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// Toggles for different items proceed independently while readers batch-read.
func TestConcurrentAccess_IndependentItems(t *testing.T) {
	database := testutil.NewTestFileDB(t)
	ctx := context.Background()

	subj := testutil.NewTestSubject("Batch")
	require.NoError(t, NewSQLiteSubjectRepo(database).Create(ctx, subj))
	items := NewSQLiteTrackedItemRepo(database)

	const itemCount = 6
	ids := make([]string, 0, itemCount)
	for i := 0; i < itemCount; i++ {
		it := testutil.NewTestItem(subj.ID, fmt.Sprintf("Item-%d", i))
		require.NoError(t, items.Create(ctx, it))
		ids = append(ids, it.ID)
	}

	logs := NewSQLiteLogRepo(database)
	today := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(itemID string) {
			defer wg.Done()
			for d := 0; d < 10; d++ {
				if err := logs.InsertLog(ctx, itemID, today.AddDate(0, 0, -d)); err != nil {
					t.Errorf("insert %s: %v", itemID, err)
					return
				}
			}
		}(id)
	}
	for r := 0; r < 3; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := logs.ListLogs(ctx, ids, today.AddDate(0, 0, -30)); err != nil {
					t.Errorf("reader %d: %v", reader, err)
					return
				}
			}
		}(r)
	}
	wg.Wait()

	entries, err := logs.ListLogs(ctx, ids, time.Time{})
	require.NoError(t, err)
	assert.Len(t, entries, itemCount*10)
}
