// Package metrics holds the Prometheus collectors of the storage core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shelfdb"

// Metrics groups the counters updated by the router, allocator and search.
type Metrics struct {
	BackendsOpened      prometheus.Counter
	TablesAllocated     prometheus.Counter
	SearchTablesSkipped prometheus.Counter
	LookupFailures      prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BackendsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backends_opened_total",
			Help:      "Number of tenant backends opened by this process.",
		}),
		TablesAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tables_allocated_total",
			Help:      "Number of object tables allocated.",
		}),
		SearchTablesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_tables_skipped_total",
			Help:      "Number of tables skipped by search because their query failed.",
		}),
		LookupFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_failures_total",
			Help:      "Number of tenant lookup entries that could not be recorded.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.BackendsOpened, m.TablesAllocated, m.SearchTablesSkipped, m.LookupFailures)
	}
	return m
}
