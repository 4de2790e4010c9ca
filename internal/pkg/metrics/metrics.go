// Package metrics defines and registers all custom Prometheus metrics for the
// portal. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts handled requests.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern (e.g. "/api/user/set-role")
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures handler latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// BlockedRequestsTotal counts requests rejected by the blacklist gate.
var BlockedRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocked_requests_total",
		Help:      "Total number of requests rejected because the client is blacklisted.",
	},
)

// ── Collection metrics ────────────────────────────────────────────────────────

// CollectionLoadFallbacksTotal counts loads that fell back to the default value.
// Labels:
//   - collection: collection name (e.g. "users")
//   - reason: "absent", "empty", "malformed" or "storage_error"
var CollectionLoadFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_load_fallbacks_total",
		Help:      "Total number of collection loads that returned the default value.",
	},
	[]string{"collection", "reason"},
)

// CollectionConflictsTotal counts optimistic version conflicts on save.
var CollectionConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_version_conflicts_total",
		Help:      "Total number of collection saves rejected by a version check.",
	},
	[]string{"collection"},
)

// CollectionWritesTotal counts completed saves.
// Label:
//   - result: "ok" or "error"
var CollectionWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collection_writes_total",
		Help:      "Total number of collection saves, by result.",
	},
	[]string{"collection", "result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "bad_credential"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsCreatedTotal counts sessions bound at login or registration.
var SessionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of sessions created.",
	},
)

// SearchRelayErrorsTotal counts failed outbound search fetches.
var SearchRelayErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_relay_errors_total",
		Help:      "Total number of search relay requests that failed upstream.",
	},
)
