// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeNoOp    = "noop"
	OutcomeError   = "error"
)

var LedgerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "simtrack",
	Subsystem: "ledger",
	Name:      "operations_total",
	Help:      "Hour ledger operations by transaction type and outcome.",
}, []string{"type", "outcome"})

var LedgerHours = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "simtrack",
	Subsystem: "ledger",
	Name:      "hours_total",
	Help:      "Absolute hours moved through the ledger by transaction type.",
}, []string{"type"})

var ReconciliationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "simtrack",
	Name:      "reconciliation_failures_total",
	Help:      "Request transitions whose hour reconciliation failed after the status change was committed.",
}, []string{"reason"})

var LedgerDrift = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "simtrack",
	Subsystem: "ledger",
	Name:      "inconsistent_projects",
	Help:      "Projects whose cached used hours disagreed with a ledger replay at the last reconciliation run.",
})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "simtrack",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route and status code.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

var WebsocketClients = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "simtrack",
	Subsystem: "notifications",
	Name:      "websocket_clients",
	Help:      "Currently connected notification websocket clients.",
})
