package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/metrics"
	"github.com/horia913/daily-fitness-sub008/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

type recorder struct {
	mu      sync.Mutex
	changes []Change
}

func (r *recorder) record(c Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

func (r *recorder) phases(itemID string) []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Phase
	for _, c := range r.changes {
		if c.ItemID == itemID {
			out = append(out, c.Phase)
		}
	}
	return out
}

func newTestController(t *testing.T, store *testutil.FakeLogStore, opts ...func(*Options)) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	o := Options{
		Now:      func() time.Time { return testNow },
		Location: time.UTC,
		OnChange: rec.record,
	}
	for _, fn := range opts {
		fn(&o)
	}
	c := NewController(store, o)
	t.Cleanup(c.Close)
	return c, rec
}

func today() time.Time { return domain.Day(testNow) }

func TestToggle_CommitsCompletion(t *testing.T) {
	store := testutil.NewFakeLogStore()
	c, rec := newTestController(t, store)
	c.Load(map[string]bool{"item-a": false})

	completed, err := c.Toggle(context.Background(), "item-a")
	require.NoError(t, err)
	assert.True(t, completed)
	assert.True(t, store.Has("item-a", today()))

	st, ok := c.State("item-a")
	require.True(t, ok)
	assert.Equal(t, State{Committed: true, Visible: true}, st)
	assert.Equal(t, []Phase{PhaseIdle, PhasePending, PhaseIdle}, rec.phases("item-a"))
}

func TestToggle_RemovesCompletion(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.Seed("item-a", today())
	c, _ := newTestController(t, store)
	require.NoError(t, c.Reload(context.Background(), []string{"item-a"}))

	completed, err := c.Toggle(context.Background(), "item-a")
	require.NoError(t, err)
	assert.False(t, completed)
	assert.False(t, store.Has("item-a", today()))
	_, deletes := store.Calls()
	assert.Equal(t, 1, deletes)
}

func TestToggle_RepeatedTogglesKeepOneLogPerDay(t *testing.T) {
	store := testutil.NewFakeLogStore()
	c, _ := newTestController(t, store)
	c.Load(map[string]bool{"item-a": false})

	for range 3 {
		_, err := c.Toggle(context.Background(), "item-a")
		require.NoError(t, err)
	}

	logs, err := store.ListLogs(context.Background(), []string{"item-a"}, time.Time{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Date.Equal(today()))
}

func TestToggle_RollsBackOnStoreFailure(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.MutateErr = domain.ErrStoreUnavailable
	c, rec := newTestController(t, store)
	c.Load(map[string]bool{"item-a": false})

	completed, err := c.Toggle(context.Background(), "item-a")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.False(t, completed)

	st, _ := c.State("item-a")
	assert.Equal(t, State{}, st)
	assert.Equal(t, []Phase{PhaseIdle, PhasePending, PhaseRolledBack, PhaseIdle}, rec.phases("item-a"))
	assert.False(t, store.Has("item-a", today()))
}

func TestToggle_RejectsWhilePending(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.Gate = make(chan struct{})
	store.Started = make(chan string, 4)
	c, _ := newTestController(t, store)
	c.Load(map[string]bool{"item-a": false})

	results := c.ToggleAsync(context.Background(), "item-a")
	<-store.Started

	st, _ := c.State("item-a")
	assert.Equal(t, State{Committed: false, Visible: true, Pending: true}, st)

	_, err := c.Toggle(context.Background(), "item-a")
	require.ErrorIs(t, err, ErrTogglePending)

	close(store.Gate)
	res := <-results
	require.NoError(t, res.Err)
	assert.True(t, res.Completed)

	inserts, deletes := store.Calls()
	assert.Equal(t, 1, inserts)
	assert.Equal(t, 0, deletes)
	st, _ = c.State("item-a")
	assert.Equal(t, State{Committed: true, Visible: true}, st)
}

func TestToggle_ItemsAreIndependent(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.Gate = make(chan struct{})
	store.Started = make(chan string, 4)
	c, _ := newTestController(t, store)
	c.Load(map[string]bool{"item-a": false, "item-b": true})

	ra := c.ToggleAsync(context.Background(), "item-a")
	rb := c.ToggleAsync(context.Background(), "item-b")

	started := map[string]bool{<-store.Started: true, <-store.Started: true}
	assert.Equal(t, map[string]bool{"item-a": true, "item-b": true}, started)

	close(store.Gate)
	a, b := <-ra, <-rb
	require.NoError(t, a.Err)
	require.NoError(t, b.Err)
	assert.True(t, a.Completed)
	assert.False(t, b.Completed)
}

func TestToggle_UnknownItem(t *testing.T) {
	store := testutil.NewFakeLogStore()
	c, _ := newTestController(t, store)

	_, err := c.Toggle(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
	inserts, deletes := store.Calls()
	assert.Zero(t, inserts+deletes)
}

func TestToggle_Timeout(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.Gate = make(chan struct{})
	c, _ := newTestController(t, store, func(o *Options) { o.Timeout = 20 * time.Millisecond })
	c.Load(map[string]bool{"item-a": true})

	completed, err := c.Toggle(context.Background(), "item-a")
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, completed)

	st, _ := c.State("item-a")
	assert.Equal(t, State{Committed: true, Visible: true}, st)
}

func TestReload_DuringPendingFailureKeepsReloadedState(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.Gate = make(chan struct{})
	store.Started = make(chan string, 1)
	store.MutateErr = errors.New("disk full")
	c, _ := newTestController(t, store)
	c.Load(map[string]bool{"item-a": true})

	results := c.ToggleAsync(context.Background(), "item-a")
	<-store.Started

	// Another device logged the item while our removal was in flight.
	c.Load(map[string]bool{"item-a": true})
	st, _ := c.State("item-a")
	assert.Equal(t, State{Committed: true, Visible: true, Pending: true}, st)

	_, err := c.Toggle(context.Background(), "item-a")
	require.ErrorIs(t, err, ErrTogglePending)

	close(store.Gate)
	res := <-results
	require.Error(t, res.Err)
	assert.True(t, res.Completed)

	st, _ = c.State("item-a")
	assert.Equal(t, State{Committed: true, Visible: true}, st)
}

func TestReload_DuringPendingSuccessCommitsTarget(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.Gate = make(chan struct{})
	store.Started = make(chan string, 1)
	c, _ := newTestController(t, store)
	c.Load(map[string]bool{"item-a": false})

	results := c.ToggleAsync(context.Background(), "item-a")
	<-store.Started
	require.NoError(t, c.Reload(context.Background(), []string{"item-a"}))

	close(store.Gate)
	res := <-results
	require.NoError(t, res.Err)

	st, _ := c.State("item-a")
	assert.Equal(t, State{Committed: true, Visible: true}, st)
}

func TestReload_ReadsTodayOnly(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.Seed("item-a", today())
	store.Seed("item-b", today().AddDate(0, 0, -1))
	c, _ := newTestController(t, store)

	require.NoError(t, c.Reload(context.Background(), []string{"item-a", "item-b", "item-c"}))

	snap := c.Snapshot()
	assert.Equal(t, map[string]State{
		"item-a": {Committed: true, Visible: true},
		"item-b": {},
		"item-c": {},
	}, snap)
}

func TestReload_StoreError(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.ListErr = domain.ErrStoreUnavailable
	c, _ := newTestController(t, store)

	err := c.Reload(context.Background(), []string{"item-a"})
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, ok := c.State("item-a")
	assert.False(t, ok)
}

func TestClose_DiscardsInFlightResponse(t *testing.T) {
	store := testutil.NewFakeLogStore()
	store.Gate = make(chan struct{})
	store.Started = make(chan string, 1)
	c, rec := newTestController(t, store)
	c.Load(map[string]bool{"item-a": false})

	results := c.ToggleAsync(context.Background(), "item-a")
	<-store.Started
	c.Close()

	res := <-results
	require.ErrorIs(t, res.Err, ErrClosed)
	assert.Equal(t, []Phase{PhaseIdle, PhasePending}, rec.phases("item-a"))

	_, err := c.Toggle(context.Background(), "item-a")
	require.ErrorIs(t, err, ErrClosed)
}

func TestClose_WaitsForRacingToggleAsync(t *testing.T) {
	for i := 0; i < 500; i++ {
		c := NewController(testutil.NewFakeLogStore(), Options{
			Now:      func() time.Time { return testNow },
			Location: time.UTC,
		})
		c.Load(map[string]bool{"item-a": false})

		var results <-chan Result
		started := make(chan struct{})
		done := make(chan struct{})
		go func() {
			<-started
			results = c.ToggleAsync(context.Background(), "item-a")
			close(done)
		}()
		close(started)
		c.Close()
		<-done

		select {
		case res := <-results:
			if res.Err != nil {
				require.ErrorIs(t, res.Err, ErrClosed, "iteration %d", i)
			}
		default:
			t.Fatalf("iteration %d: Close returned before the toggle result was delivered", i)
		}
	}
}

func TestClose_DiscardsUnsettledFlight(t *testing.T) {
	store := testutil.NewFakeLogStore()
	c := NewController(store, Options{
		Now:      func() time.Time { return testNow },
		Location: time.UTC,
	})
	c.Load(map[string]bool{"item-a": false})
	inFlight := promtest.ToFloat64(metrics.TogglesInFlight)
	discarded := promtest.ToFloat64(metrics.TogglesTotal.WithLabelValues(metrics.DirectionOn, metrics.ToggleDiscarded))

	f, err := c.Begin("item-a")
	require.NoError(t, err)
	assert.Equal(t, inFlight+1, promtest.ToFloat64(metrics.TogglesInFlight))

	c.Close()

	st, ok := c.State("item-a")
	require.True(t, ok)
	assert.Equal(t, State{Committed: false, Visible: false, Pending: false}, st)
	assert.Equal(t, inFlight, promtest.ToFloat64(metrics.TogglesInFlight))
	assert.Equal(t, discarded+1, promtest.ToFloat64(metrics.TogglesTotal.WithLabelValues(metrics.DirectionOn, metrics.ToggleDiscarded)))

	_, err = f.Settle(context.Background())
	require.ErrorIs(t, err, ErrClosed)
	inserts, deletes := store.Calls()
	assert.Zero(t, inserts)
	assert.Zero(t, deletes)
	assert.Equal(t, inFlight, promtest.ToFloat64(metrics.TogglesInFlight))
}

func TestFlight_SettleTwiceReturnsFirstOutcome(t *testing.T) {
	store := testutil.NewFakeLogStore()
	c, _ := newTestController(t, store)
	c.Load(map[string]bool{"item-a": false})

	f, err := c.Begin("item-a")
	require.NoError(t, err)
	assert.True(t, f.Target())

	first, err := f.Settle(context.Background())
	require.NoError(t, err)
	second, err := f.Settle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	inserts, _ := store.Calls()
	assert.Equal(t, 1, inserts)
}
