// Package metrics defines and registers all custom Prometheus metrics for the
// emergency response dashboard. It is the single source of truth for metric names,
// labels, and help strings.
//
// Every metric registers itself with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Live panel metrics ────────────────────────────────────────────────────────

// TicksTotal counts simulation ticks applied to a panel snapshot.
// Label:
//   - panel: the panel name (e.g. "gps", "patients")
var TicksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticks_total",
		Help:      "Total number of simulation ticks applied, by panel.",
	},
	[]string{"panel"},
)

// RefreshesTotal counts refresh bridge outcomes.
// Labels:
//   - kind: the record kind refetched (e.g. "community_posts")
//   - outcome: "replaced", "superseded" or "failed"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_total",
		Help:      "Total number of refetches performed by refresh bridges, by outcome.",
	},
	[]string{"kind", "outcome"},
)

// RefreshDuration measures how long one refetch takes.
var RefreshDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Duration of a refetch from request to snapshot replace.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ChangeEventsTotal counts change events delivered to bridges.
var ChangeEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "change_events_total",
		Help:      "Total number of change events received from the change feed.",
	},
	[]string{"kind"},
)

// SessionsActive tracks mounted dashboard sessions.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of mounted dashboard sessions.",
	},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordsCreatedTotal counts inserted records.
// Label:
//   - kind: "emergency_requests" or "community_posts"
var RecordsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_created_total",
		Help:      "Total number of records created, by kind.",
	},
	[]string{"kind"},
)

// SubmissionsDedupTotal counts idempotency decisions on emergency requests.
// Label:
//   - result: "hit" (replayed) or "miss" (new submission)
var SubmissionsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_dedup_total",
		Help:      "Total number of idempotency checks on submissions, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ChangeQueueDepth tracks change events waiting in each dispatcher worker channel.
var ChangeQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "change_queue_depth",
		Help:      "Current number of change events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
