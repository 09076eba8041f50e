// Package observability holds logging and Prometheus metrics shared by the
// HTTP layer and the services. Metric vars are registered with the default
// registry at init and exposed through the /metrics endpoint.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fieldops"

// HTTPRequestsTotal counts handled HTTP requests.
// Labels:
//   - method: HTTP method
//   - path: registered route path (not the raw URL)
//   - status: numeric response status
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "path", "status"},
)

// HTTPRequestDuration measures request handling latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP request handling.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// IdentityVerificationsTotal counts bearer-token verification attempts.
// Label:
//   - outcome: "ok", "invalid", or "unavailable"
var IdentityVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_verifications_total",
		Help:      "Total number of credential verification attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SubmissionsCreatedTotal counts recorded visit reports by service type.
var SubmissionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_created_total",
		Help:      "Total number of visit submissions recorded, by service type.",
	},
	[]string{"service_type"},
)

// RoleChangesTotal counts administrative role updates.
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of role assignments applied, by new role.",
	},
	[]string{"role"},
)

// RateLimitDecisionsTotal counts limiter verdicts.
// Labels:
//   - limiter: "redis" or "local"
//   - result: "allowed" or "rejected"
var RateLimitDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_decisions_total",
		Help:      "Total number of rate limiter decisions, by limiter type and result.",
	},
	[]string{"limiter", "result"},
)
