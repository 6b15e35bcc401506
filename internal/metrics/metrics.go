// Package metrics defines and registers all custom Prometheus metrics for the
// LocalKonnect mobile core. It is the single source of truth for metric
// names, labels, and help strings; metrics register with the default registry
// at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "localkonnect"

// RequestsTotal counts backend requests by outcome.
// Labels:
//   - method: HTTP method (GET, POST, PUT, DELETE)
//   - outcome: "success", "validation", "unauthenticated", "forbidden",
//     "not_found", "server_error", "network_error", or "internal"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend requests, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// RequestDuration measures a single request from dispatch to decoded response.
// Label:
//   - outcome: same values as RequestsTotal
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of backend requests from dispatch to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// AuthEventsTotal counts session lifecycle events.
// Label:
//   - event: "login", "login_failed", "signup", "otp_verified",
//     "password_created", "logout", "session_resumed", "session_expired"
var AuthEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_total",
		Help:      "Total number of session lifecycle events.",
	},
	[]string{"event"},
)

// OTPResendsTotal counts OTP resend requests across signup and reset flows.
var OTPResendsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_resends_total",
		Help:      "Total number of OTP resend requests.",
	},
)
