package adherence

import (
	"testing"
	"time"

	"github.com/horia913/daily-fitness-sub008/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCompletionRate_DailyExample(t *testing.T) {
	dates := []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(4), daysAgo(6)}
	target := WindowTarget(domain.Daily, 7)
	assert.Equal(t, 7, target)
	assert.Equal(t, 71, CompletionRate(dates, today, 7, target))
}

func TestCompletionRate_ZeroTarget(t *testing.T) {
	dates := []time.Time{daysAgo(0), daysAgo(1)}
	assert.Equal(t, 0, CompletionRate(dates, today, 7, 0))
	assert.Equal(t, 0, CompletionRate(dates, today, 7, -3))
	assert.Equal(t, 0, CompletionRate(dates, today, 0, 7))
}

func TestCompletionRate_ClampedAt100(t *testing.T) {
	// Five logged days against a weekly target of three.
	dates := []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(4)}
	assert.Equal(t, 100, CompletionRate(dates, today, 7, WindowTarget(domain.Weekly(3), 7)))
}

func TestCompletionRate_Bounds(t *testing.T) {
	var dates []time.Time
	for i := -3; i < 40; i++ {
		dates = append(dates, daysAgo(i), daysAgo(i))
	}
	for window := 0; window <= 30; window++ {
		for target := -1; target <= 31; target++ {
			rate := CompletionRate(dates, today, window, target)
			assert.GreaterOrEqual(t, rate, 0)
			assert.LessOrEqual(t, rate, 100)
		}
	}
}

func TestCountInWindow_InclusiveEdges(t *testing.T) {
	// Day 6 is the oldest day inside a 7-day window; day 7 falls outside.
	dates := []time.Time{daysAgo(0), daysAgo(6), daysAgo(7), today.AddDate(0, 0, 1)}
	assert.Equal(t, 2, CountInWindow(dates, today, 7))
}

func TestCountInWindow_Deduplicates(t *testing.T) {
	dates := []time.Time{daysAgo(1), daysAgo(1).Add(3 * time.Hour), daysAgo(1)}
	assert.Equal(t, 1, CountInWindow(dates, today, 7))
}

func TestWindowTarget_Weekly(t *testing.T) {
	assert.Equal(t, 3, WindowTarget(domain.Weekly(3), 7))
	assert.Equal(t, 6, WindowTarget(domain.Weekly(3), 14))
	assert.Equal(t, 1, WindowTarget(domain.Weekly(1), 1))
	assert.Equal(t, 30, WindowTarget(domain.Daily, 30))
	assert.Equal(t, 0, WindowTarget(domain.Daily, 0))
	assert.Equal(t, 0, WindowTarget(domain.Cadence{Kind: domain.CadenceWeekly}, 7))
}

func TestRateFromCounts(t *testing.T) {
	assert.Equal(t, 70, RateFromCounts(7, 10))
	assert.Equal(t, 67, RateFromCounts(2, 3))
	assert.Equal(t, 0, RateFromCounts(4, 0))
	assert.Equal(t, 100, RateFromCounts(12, 10))
	assert.Equal(t, 0, RateFromCounts(-1, 10))
}
