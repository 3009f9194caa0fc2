// Package metrics defines and registers all custom Prometheus metrics for the
// booking API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// through promauto and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthDecisionsTotal counts access-control outcomes of the protection pipeline.
// Labels:
//   - stage: "authenticate" or "authorize"
//   - result: "allowed", "unauthenticated", "invalid_token", "forbidden" or "error"
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of authentication and authorization decisions.",
	},
	[]string{"stage", "result"},
)

// TokensIssuedTotal counts session tokens signed at login.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// LoginFailuresTotal counts rejected login attempts.
var LoginFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of login attempts rejected for bad credentials.",
	},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings.
var BookingsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created.",
	},
)

// ── Rating worker metrics ─────────────────────────────────────────────────────

// RatingQueueDepth tracks the number of property ids waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RatingQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rating_queue_depth",
		Help:      "Current number of rating recomputations pending per worker.",
	},
	[]string{"worker_id"},
)

// RatingRecomputeDuration measures a single average-rating recomputation.
// Label:
//   - result: "ok" or "error"
var RatingRecomputeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rating_recompute_duration_seconds",
		Help:      "Duration of average rating recomputation per property.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// RatingDroppedTotal counts recompute requests dropped because a worker queue was full.
var RatingDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_dropped_total",
		Help:      "Total number of rating recomputations dropped on a full queue.",
	},
)
