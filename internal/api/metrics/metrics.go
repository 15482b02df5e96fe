// Package metrics defines the custom Prometheus metrics for taskdesk. It is
// the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default registry on package init via
// promauto; the /metrics endpoint is served by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskdesk"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the REST backend.
// Labels:
//   - op: client operation (e.g. "login", "list_tasks")
//   - outcome: "ok", "auth_failure", "forbidden", "not_found", "invalid" or "network"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of REST backend calls, by operation and outcome.",
	},
	[]string{"op", "outcome"},
)

// BackendRequestDuration measures the round trip of a single backend call.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of REST backend calls including body decoding.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"op"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Labels:
//   - decision: "allow", "redirect_login" or "forbid"
//   - requirement: "any", "admin" or "employee"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions.",
	},
	[]string{"decision", "requirement"},
)

// SessionTransitionsTotal counts session store operations.
// Labels:
//   - op: "restore", "login", "register", "logout" or "update_identity"
//   - result: "ok" or "error"; restore reports "ok" or "empty"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session store operations, by result.",
	},
	[]string{"op", "result"},
)

// Result converts an error into the "result" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
