// Package metrics defines and registers all custom Prometheus metrics for
// the auth service. It is the single source of truth for metric names,
// labels, and help strings. HTTP-level metrics (latency, status codes) come
// from the echoprometheus middleware; everything here is domain-level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sextoandar_auth"

// LoginsTotal counts credential checks by result ("success" / "failure").
// Failures do not distinguish unknown-username from wrong-password; the
// service treats those identically and so does the metric.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LoginThrottledTotal counts logins rejected by the failed-attempt throttle.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of login attempts rejected by the throttle.",
	},
)

// RegistrationsTotal counts created accounts.
// Label:
//   - role: "USER", "PROPERTY_OWNER", or "ADMIN"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// TokensIssuedTotal counts session tokens signed at login.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued.",
	},
)

// TokenVerificationsTotal counts token verification outcomes.
// Label:
//   - result: "valid", "expired", "bad_signature", or "malformed"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of token verifications, by result.",
	},
	[]string{"result"},
)

// AdminMutationsTotal counts admin lifecycle mutations.
// Labels:
//   - action: "create_admin", "delete_admin", or "delete_user"
//   - outcome: "success" or "denied"
var AdminMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_mutations_total",
		Help:      "Total number of admin lifecycle mutations, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// WebhookDeliveriesTotal counts webhook delivery attempts ("ok" / "error").
var WebhookDeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_deliveries_total",
		Help:      "Total number of account event webhook deliveries, by result.",
	},
	[]string{"result"},
)
