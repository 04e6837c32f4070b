// Package tracker owns the per-item "completed today" view state and applies
// optimistic toggles against the event log store.
//
// Each item moves Idle -> Pending -> Idle on success, or
// Idle -> Pending -> RolledBack -> Idle on failure. At most one mutation per
// item is in flight; a toggle that arrives while one is pending is rejected,
// never queued. Different items are independent.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/app"
	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/repository"
)

var _ app.ToggleUseCase = (*Controller)(nil)

var (
	// ErrTogglePending rejects a toggle while the same item has one in flight.
	ErrTogglePending = errors.New("toggle already pending")

	// ErrClosed is returned once the controller has been torn down, including
	// for responses that arrive after Close.
	ErrClosed = errors.New("tracker closed")
)

// Phase is where an item sits in the toggle state machine.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhasePending    Phase = "pending"
	PhaseRolledBack Phase = "rolled_back"
)

// State is the view state of one item.
type State struct {
	// Committed is the last state the store confirmed.
	Committed bool
	// Visible is what the view shows; it differs from Committed only while
	// a toggle is pending.
	Visible bool
	Pending bool
}

// Change is emitted on every phase transition.
type Change struct {
	ItemID string
	Phase  Phase
	State  State
	Err    error
}

// Result is the settled outcome of a toggle.
type Result struct {
	ItemID    string
	Completed bool
	Err       error
}

// Options configures a Controller. Zero values are usable.
type Options struct {
	// Now and Location define "today". Defaults: time.Now and time.Local.
	Now      func() time.Time
	Location *time.Location

	// Timeout bounds each store mutation. Zero means no deadline beyond
	// the caller's context.
	Timeout time.Duration

	Logger *slog.Logger

	// OnChange receives transitions in order. It runs synchronously and
	// must not call back into the Controller.
	OnChange func(Change)
}

type itemState struct {
	committed bool
	visible   bool
	pending   bool
	// gen increments on every Load so a settling flight can tell whether
	// the store state was re-read underneath it.
	gen uint64
}

// Controller applies optimistic toggles. Safe for concurrent use.
type Controller struct {
	store    repository.LogStore
	now      func() time.Time
	loc      *time.Location
	timeout  time.Duration
	logger   *slog.Logger
	onChange func(Change)

	mu      sync.Mutex
	items   map[string]*itemState
	flights map[*Flight]struct{}
	closed  bool

	// emitMu keeps OnChange calls in transition order across goroutines.
	emitMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController creates a Controller with no items loaded.
func NewController(store repository.LogStore, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		store:    store,
		now:      opts.Now,
		loc:      opts.Location,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
		onChange: opts.OnChange,
		items:    make(map[string]*itemState),
		flights:  make(map[*Flight]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Today returns the controller's current calendar day.
func (c *Controller) Today() time.Time {
	return domain.DayOf(c.now(), c.loc)
}

// State returns a snapshot of one item's view state.
func (c *Controller) State(itemID string) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.items[itemID]
	if !ok {
		return State{}, false
	}
	return st.snapshot(), true
}

// Snapshot returns the view state of every loaded item.
func (c *Controller) Snapshot() map[string]State {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]State, len(c.items))
	for id, st := range c.items {
		out[id] = st.snapshot()
	}
	return out
}

// Load overwrites the committed and visible state of the given items,
// adding any that are new. A pending flight keeps its guard; see Flight.Settle
// for how it reconciles with the reloaded value.
func (c *Controller) Load(completed map[string]bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	changes := make([]Change, 0, len(completed))
	for id, done := range completed {
		st, ok := c.items[id]
		if !ok {
			st = &itemState{}
			c.items[id] = st
		}
		st.committed = done
		st.visible = done
		st.gen++
		phase := PhaseIdle
		if st.pending {
			phase = PhasePending
		}
		changes = append(changes, Change{ItemID: id, Phase: phase, State: st.snapshot()})
	}
	c.emitUnlock(changes...)
}

// Reload re-reads today's logs for itemIDs from the store and loads them.
func (c *Controller) Reload(ctx context.Context, itemIDs []string) error {
	today := c.Today()
	entries, err := c.store.ListLogs(ctx, itemIDs, today)
	if err != nil {
		return fmt.Errorf("reloading toggle state: %w", err)
	}

	completed := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		completed[id] = false
	}
	for _, e := range entries {
		if domain.Day(e.Date).Equal(today) {
			completed[e.TrackedItemID] = true
		}
	}
	c.Load(completed)
	return nil
}

// Toggle flips itemID and waits for the store to settle. It returns the new
// committed state, or the restored state with the store error on rollback.
func (c *Controller) Toggle(ctx context.Context, itemID string) (bool, error) {
	f, err := c.Begin(itemID)
	if err != nil {
		return false, err
	}
	return f.Settle(ctx)
}

// ToggleAsync flips itemID immediately and settles in the background. The
// channel receives exactly one Result and is then closed.
func (c *Controller) ToggleAsync(ctx context.Context, itemID string) <-chan Result {
	out := make(chan Result, 1)
	f, err := c.begin(itemID, true)
	if err != nil {
		out <- Result{ItemID: itemID, Err: err}
		close(out)
		return out
	}

	go func() {
		defer c.wg.Done()
		defer close(out)
		completed, err := f.Settle(ctx)
		out <- Result{ItemID: itemID, Completed: completed, Err: err}
	}()
	return out
}

// Close tears the controller down. In-flight store calls are cancelled and
// their responses discarded. Close waits for ToggleAsync goroutines, then
// discards flights from Begin that were never settled.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()

	c.mu.Lock()
	unsettled := make([]*Flight, 0, len(c.flights))
	for f := range c.flights {
		unsettled = append(unsettled, f)
	}
	c.mu.Unlock()
	for _, f := range unsettled {
		f.abandon()
	}
}

// emitUnlock releases c.mu and delivers changes in order. Must be called
// with c.mu held.
func (c *Controller) emitUnlock(changes ...Change) {
	if c.onChange == nil || len(changes) == 0 {
		c.mu.Unlock()
		return
	}
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()
	for _, ch := range changes {
		c.onChange(ch)
	}
}

func (s *itemState) snapshot() State {
	return State{Committed: s.committed, Visible: s.visible, Pending: s.pending}
}
