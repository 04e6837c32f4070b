package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/horia913/daily-fitness-sub008/internal/metrics"
)

// storeError classifies a driver error. Foreign-key failures mean the item
// is gone; everything else means the store could not do its job.
func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	metrics.StoreOperationErrorsTotal.WithLabelValues(op).Inc()
	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

// observe starts a latency timer for op; call the returned func when done.
func observe(op string) func() {
	start := time.Now()
	return func() {
		metrics.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// ctxErr reports a cancelled or expired context before touching the store.
func ctxErr(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
	}
	return nil
}
