package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records counters for stock operations and movements.
type LedgerMetrics struct {
	opDuration *prometheus.HistogramVec
	opFailure  *prometheus.CounterVec
	movements  *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	opDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_operation_duration_seconds",
		Help:    "Duration of inventory operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	opFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_operation_failure",
		Help: "Failed inventory operations.",
	}, []string{"operation"})
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_movements_recorded",
		Help: "Stock movement rows appended to the ledger.",
	}, []string{"movement_type"})
	reg.MustRegister(opDuration, opFailure, movements)
	return &LedgerMetrics{
		opDuration: opDuration,
		opFailure:  opFailure,
		movements:  movements,
	}
}

// ObserveOperation records the duration for the named operation.
func (l *LedgerMetrics) ObserveOperation(operation string, duration time.Duration) {
	if l == nil || l.opDuration == nil {
		return
	}
	l.opDuration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncFailure increments the failure counter for the named operation.
func (l *LedgerMetrics) IncFailure(operation string) {
	if l == nil || l.opFailure == nil {
		return
	}
	l.opFailure.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncMovements adds the number of ledger rows written for a movement type.
func (l *LedgerMetrics) IncMovements(movementType string, count int) {
	if l == nil || l.movements == nil || count <= 0 {
		return
	}
	l.movements.WithLabelValues(normalizeLabel(movementType)).Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
