// Package metrics defines all custom Prometheus metrics for the ordering
// gateway. It is the single source of truth for metric names, labels, and
// help strings. Metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordering"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "rejected" (backend said no) or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GuardDenialsTotal counts navigations turned into redirects by the route
// guard.
// Label:
//   - path: the navigation target that was denied
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of navigations denied by the route guard.",
	},
	[]string{"path"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// DraftsCreatedTotal counts order drafts opened.
var DraftsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "drafts_created_total",
		Help:      "Total number of order drafts created.",
	},
)

// OrdersSubmittedTotal counts order submissions.
// Label:
//   - outcome: "success", "validation_failed", "payment_missing", "rejected"
var OrdersSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of order submissions, by outcome.",
	},
	[]string{"outcome"},
)

// ── Collaborator metrics ──────────────────────────────────────────────────────

// BackendRequestDuration measures calls against the external restaurant
// backend.
// Labels:
//   - method: HTTP method
//   - outcome: "ok" or "error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the external restaurant backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "outcome"},
)

// EmailsSentTotal counts confirmation email deliveries.
// Label:
//   - outcome: "ok" or "error"
var EmailsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of order confirmation emails, by outcome.",
	},
	[]string{"outcome"},
)

// ImageSearchesTotal counts image search calls.
// Label:
//   - outcome: "ok" or "error" (errors degrade to empty results)
var ImageSearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_searches_total",
		Help:      "Total number of image search calls, by outcome.",
	},
	[]string{"outcome"},
)
