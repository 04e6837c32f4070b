package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
)

type logKey struct {
	itemID string
	day    time.Time
}

// FakeLogStore is an in-memory LogStore with hooks for delaying and failing
// mutations. Safe for concurrent use.
type FakeLogStore struct {
	mu      sync.Mutex
	entries map[logKey]domain.LogEntry

	// Gate, when non-nil, blocks every mutation until it is closed or
	// receives a value. Started gets a value as each mutation begins waiting.
	Gate    chan struct{}
	Started chan string

	// MutateErr, when non-nil, is returned by InsertLog and DeleteLog after
	// the gate opens. ListErr is returned by ListLogs.
	MutateErr error
	ListErr   error

	// FailItems makes ListLogs fail when any requested id is in the set.
	FailItems map[string]error

	inserts int
	deletes int
}

func NewFakeLogStore() *FakeLogStore {
	return &FakeLogStore{entries: make(map[logKey]domain.LogEntry)}
}

// Seed inserts entries directly, bypassing hooks.
func (f *FakeLogStore) Seed(itemID string, days ...time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range days {
		day := domain.Day(d)
		f.entries[logKey{itemID, day}] = domain.LogEntry{
			TrackedItemID: itemID,
			Date:          day,
			Source:        domain.SourceBackfill,
			CreatedAt:     time.Now().UTC(),
		}
	}
}

// Has reports whether a log exists for itemID on day.
func (f *FakeLogStore) Has(itemID string, day time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[logKey{itemID, domain.Day(day)}]
	return ok
}

// Calls returns how many inserts and deletes reached the store.
func (f *FakeLogStore) Calls() (inserts, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inserts, f.deletes
}

func (f *FakeLogStore) ListLogs(ctx context.Context, itemIDs []string, since time.Time) ([]domain.LogEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ListErr != nil {
		return nil, f.ListErr
	}
	want := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		if err := f.FailItems[id]; err != nil {
			return nil, err
		}
		want[id] = true
	}

	var out []domain.LogEntry
	for k, e := range f.entries {
		if !want[k.itemID] {
			continue
		}
		if !since.IsZero() && k.day.Before(domain.Day(since)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].TrackedItemID < out[j].TrackedItemID
	})
	return out, nil
}

func (f *FakeLogStore) InsertLog(ctx context.Context, itemID string, date time.Time) error {
	if err := f.wait(ctx, itemID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserts++
	if f.MutateErr != nil {
		return f.MutateErr
	}
	day := domain.Day(date)
	if _, ok := f.entries[logKey{itemID, day}]; !ok {
		f.entries[logKey{itemID, day}] = domain.LogEntry{
			TrackedItemID: itemID,
			Date:          day,
			Source:        domain.SourceToggle,
			CreatedAt:     time.Now().UTC(),
		}
	}
	return nil
}

func (f *FakeLogStore) DeleteLog(ctx context.Context, itemID string, date time.Time) error {
	if err := f.wait(ctx, itemID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.MutateErr != nil {
		return f.MutateErr
	}
	delete(f.entries, logKey{itemID, domain.Day(date)})
	return nil
}

func (f *FakeLogStore) wait(ctx context.Context, itemID string) error {
	f.mu.Lock()
	gate, started := f.Gate, f.Started
	f.mu.Unlock()

	if started != nil {
		select {
		case started <- itemID:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
