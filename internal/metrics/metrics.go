// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wealthwise"

// StoreWrites counts record writes by collection and result ("ok" or "error").
var StoreWrites = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "store",
	Name:      "writes_total",
	Help:      "Total collection writes to the record backend.",
}, []string{"collection", "result"})

// StoreLoadFallbacks counts collections replaced by defaults during load, by reason.
var StoreLoadFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "store",
	Name:      "load_fallbacks_total",
	Help:      "Total collections that fell back to defaults on load.",
}, []string{"collection", "reason"})

// AdvisorRequests counts advisory calls by provider and outcome ("ok" or "fallback").
var AdvisorRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "advisor",
	Name:      "requests_total",
	Help:      "Total advisory requests.",
}, []string{"provider", "outcome"})

// AdvisorLatency tracks advisory round trips.
var AdvisorLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "advisor",
	Name:      "latency_seconds",
	Help:      "Advisory request latency in seconds.",
	Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
}, []string{"provider"})

// BackupOperations counts exports and imports by outcome.
var BackupOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "backup",
	Name:      "operations_total",
	Help:      "Total backup exports and imports.",
}, []string{"operation", "outcome"})
