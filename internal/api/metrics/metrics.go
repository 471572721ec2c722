// Package metrics defines and registers all custom Prometheus metrics for the
// conference system. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "conference"

// ── Ticket dispatch metrics ───────────────────────────────────────────────────

// TicketsDispatchedTotal counts tickets that were sent and stamped.
var TicketsDispatchedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_dispatched_total",
		Help:      "Total number of conference tickets successfully dispatched.",
	},
)

// TicketsErrorsTotal counts ticket jobs that failed processing.
var TicketsErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_errors_total",
		Help:      "Total number of ticket dispatch jobs that failed.",
	},
)

// TicketsQueueDepth tracks the current number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var TicketsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "tickets_queue_depth",
		Help:      "Current number of ticket jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts confirmed voucher registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of voucher registrations.",
	},
)

// CheckinsTotal counts on-site arrival confirmations.
var CheckinsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_total",
		Help:      "Total number of on-site participant check-ins recorded.",
	},
)

// ── Programme metrics ─────────────────────────────────────────────────────────

// PresentationsSavedTotal counts submitted or updated presentations.
// Label:
//   - status: the status persisted with the save (e.g. "submitted", "accepted")
var PresentationsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "presentations_saved_total",
		Help:      "Total number of presentation saves, by persisted status.",
	},
	[]string{"status"},
)

// VotesCastTotal counts rates recorded on ballots.
// Label:
//   - rate: the cast rate value ("0", "1", "2")
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of votes cast, by rate.",
	},
	[]string{"rate"},
)
