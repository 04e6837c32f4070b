package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos
const (
	// Store operations
	OpListLogs     = "list_logs"
	OpInsertLog    = "insert_log"
	OpDeleteLog    = "delete_log"
	OpBackfillLog  = "backfill_log"
	OpGetItem      = "get_item"
	OpListItems    = "list_items"
	OpCreateItem   = "create_item"
	OpGetSubject   = "get_subject"
	OpListSubjects = "list_subjects"

	// Toggle outcomes
	ToggleCommitted  = "committed"
	ToggleRolledBack = "rolled_back"
	ToggleRejected   = "rejected"
	ToggleDiscarded  = "discarded"

	// Toggle directions
	DirectionOn  = "on"
	DirectionOff = "off"
)

// Store metrics
var (
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitcoach_store_operation_duration_seconds",
			Help:    "Event log store operation latency in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	StoreOperationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_store_operation_errors_total",
			Help: "Total number of failed event log store operations",
		},
		[]string{"operation"},
	)
)

// Toggle metrics
var (
	TogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitcoach_toggles_total",
			Help: "Optimistic toggles by direction and outcome",
		},
		[]string{"direction", "outcome"},
	)

	TogglesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitcoach_toggles_in_flight",
			Help: "Number of toggles waiting on the store",
		},
	)
)

// Compliance metrics
var (
	ComplianceSubjectsExcludedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitcoach_compliance_subjects_excluded_total",
			Help: "Subjects left out of a compliance summary because their data was unavailable",
		},
	)

	ComplianceOverall = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitcoach_compliance_overall",
			Help: "Coach-level overall compliance from the most recent summary",
		},
	)
)

// Direction returns the toggle direction label for a target state.
func Direction(target bool) string {
	if target {
		return DirectionOn
	}
	return DirectionOff
}
