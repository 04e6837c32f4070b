package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/metrics"
)

// Flight is a toggle that has flipped the view and not yet settled.
type Flight struct {
	c        *Controller
	itemID   string
	day      time.Time
	previous bool
	target   bool
	gen      uint64

	once      sync.Once
	completed bool
	err       error
}

// Begin runs the synchronous half of a toggle: it rejects the call if the
// item is pending, otherwise flips the visible state and marks it pending.
// The returned Flight must be settled exactly once. A flight still unsettled
// when the controller closes is discarded: its item leaves the pending state
// and a later Settle returns ErrClosed without touching the store.
func (c *Controller) Begin(itemID string) (*Flight, error) {
	return c.begin(itemID, false)
}

// begin registers the flight with c.wg when async is set. The Add happens
// under c.mu so Close cannot start waiting before it.
func (c *Controller) begin(itemID string, async bool) (*Flight, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	st, ok := c.items[itemID]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("tracked item %s: %w", itemID, domain.ErrNotFound)
	}
	if st.pending {
		c.mu.Unlock()
		metrics.TogglesTotal.WithLabelValues(metrics.Direction(!st.committed), metrics.ToggleRejected).Inc()
		return nil, fmt.Errorf("tracked item %s: %w", itemID, ErrTogglePending)
	}

	f := &Flight{
		c:        c,
		itemID:   itemID,
		day:      c.Today(),
		previous: st.committed,
		target:   !st.committed,
		gen:      st.gen,
	}
	st.visible = f.target
	st.pending = true
	c.flights[f] = struct{}{}
	if async {
		c.wg.Add(1)
	}
	metrics.TogglesInFlight.Inc()
	c.emitUnlock(Change{ItemID: itemID, Phase: PhasePending, State: st.snapshot()})
	return f, nil
}

// Target is the state this flight is trying to commit.
func (f *Flight) Target() bool { return f.target }

// Settle issues the store mutation and reconciles the view state. Calling it
// again returns the first outcome.
func (f *Flight) Settle(ctx context.Context) (bool, error) {
	f.once.Do(func() {
		f.completed, f.err = f.settle(ctx)
	})
	return f.completed, f.err
}

func (f *Flight) settle(ctx context.Context) (bool, error) {
	c := f.c
	defer metrics.TogglesInFlight.Dec()
	direction := metrics.Direction(f.target)

	err := f.mutate(ctx)

	c.mu.Lock()
	delete(c.flights, f)
	st, ok := c.items[f.itemID]
	if c.closed || !ok {
		c.mu.Unlock()
		metrics.TogglesTotal.WithLabelValues(direction, metrics.ToggleDiscarded).Inc()
		c.logger.Debug("discarding toggle response after close", "item_id", f.itemID, "error", err)
		return false, ErrClosed
	}

	stale := st.gen != f.gen
	st.pending = false

	if err == nil {
		// The write landed after any reload, so it is the newest truth.
		st.committed = f.target
		st.visible = f.target
		metrics.TogglesTotal.WithLabelValues(direction, metrics.ToggleCommitted).Inc()
		c.emitUnlock(Change{ItemID: f.itemID, Phase: PhaseIdle, State: st.snapshot()})
		return f.target, nil
	}

	if !stale {
		st.committed = f.previous
	}
	// A reload during the flight already holds the store's view.
	st.visible = st.committed
	restored := st.committed
	rolledBack := st.snapshot()
	metrics.TogglesTotal.WithLabelValues(direction, metrics.ToggleRolledBack).Inc()
	c.logger.Warn("toggle rolled back", "item_id", f.itemID, "target", f.target, "error", err)
	c.emitUnlock(
		Change{ItemID: f.itemID, Phase: PhaseRolledBack, State: rolledBack, Err: err},
		Change{ItemID: f.itemID, Phase: PhaseIdle, State: rolledBack},
	)
	return restored, fmt.Errorf("toggling %s: %w", f.itemID, err)
}

// abandon settles a flight nobody settled before Close, without a store call.
func (f *Flight) abandon() {
	f.once.Do(func() {
		c := f.c
		c.mu.Lock()
		delete(c.flights, f)
		if st, ok := c.items[f.itemID]; ok {
			st.pending = false
			st.visible = st.committed
		}
		c.mu.Unlock()
		metrics.TogglesInFlight.Dec()
		metrics.TogglesTotal.WithLabelValues(metrics.Direction(f.target), metrics.ToggleDiscarded).Inc()
		c.logger.Debug("discarding unsettled toggle on close", "item_id", f.itemID)
		f.err = ErrClosed
	})
}

func (f *Flight) mutate(ctx context.Context) error {
	c := f.c
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	var err error
	if f.target {
		err = c.store.InsertLog(ctx, f.itemID, f.day)
	} else {
		err = c.store.DeleteLog(ctx, f.itemID, f.day)
	}
	if err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)) &&
		!errors.Is(err, domain.ErrStoreUnavailable) {
		err = fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return err
}
