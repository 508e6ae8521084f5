package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records purchase and sales order lifecycle events.
type OrderMetrics struct {
	submitted *prometheus.CounterVec
	mismatch  *prometheus.CounterVec
	movements *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Orders accepted for persistence, by kind.",
	}, []string{"kind"})
	mismatch := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_total_mismatch_total",
		Help: "Submissions whose client-computed totals differed from the recomputed ones.",
	}, []string{"kind"})
	movements := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_movements_total",
		Help: "Inventory movements applied, by reference type.",
	}, []string{"reference"})
	reg.MustRegister(submitted, mismatch, movements)
	return &OrderMetrics{
		submitted: submitted,
		mismatch:  mismatch,
		movements: movements,
	}
}

// IncSubmitted increments the submission counter for the order kind.
func (o *OrderMetrics) IncSubmitted(kind string) {
	if o == nil || o.submitted == nil {
		return
	}
	o.submitted.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncTotalMismatch increments the mismatch counter for the order kind.
func (o *OrderMetrics) IncTotalMismatch(kind string) {
	if o == nil || o.mismatch == nil {
		return
	}
	o.mismatch.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncMovement increments the inventory movement counter for the reference type.
func (o *OrderMetrics) IncMovement(reference string) {
	if o == nil || o.movements == nil {
		return
	}
	o.movements.WithLabelValues(normalizeLabel(reference)).Inc()
}
