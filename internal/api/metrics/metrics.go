// Package metrics defines and registers all custom Prometheus metrics for the
// member portal. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// GateDecisionsTotal counts gate pipeline outcomes per stage.
// Labels:
//   - stage: the pipeline stage that produced the decision
//     ("anonymous", "approval", "onboarding", "role", "allowed")
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access-gate decisions, by deciding stage.",
	},
	[]string{"stage"},
)

// SessionsIssuedTotal counts durable sessions issued on successful
// authentication.
// Label:
//   - method: "password", "oauth"
var SessionsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_issued_total",
		Help:      "Total number of durable sessions issued, by auth method.",
	},
	[]string{"method"},
)

// AuthEventsTotal counts audit events that completed processing successfully.
// Label:
//   - action: the audited action (e.g. "sign_in", "onboarding_completed")
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of auth audit events successfully recorded.",
	},
	[]string{"action"},
)

// AuthEventErrorsTotal counts audit events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "insert_failed")
var AuthEventErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_event_errors_total",
		Help:      "Total number of auth audit events that failed processing.",
	},
	[]string{"reason"},
)

// AuthDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, recorded)
var AuthDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// EventQueueDepth tracks the current number of events waiting in each worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "event_queue_depth",
		Help:      "Current number of auth events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
