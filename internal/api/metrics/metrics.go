// Package metrics defines and registers all custom Prometheus metrics for the
// LMS API. It is the single source of truth for metric names, labels, and
// help strings. Metrics are registered with the default registry at import
// time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lms"

// UsersProvisionedTotal counts completed registrations.
// Label:
//   - mode: "durable" when the record reached Postgres, "fallback" when it
//     landed in the in-memory cache during an outage
var UsersProvisionedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_provisioned_total",
		Help:      "Total number of user accounts provisioned, labelled by persistence mode.",
	},
	[]string{"mode"},
)

// MailSentTotal counts notification dispatch attempts.
// Labels:
//   - template: "welcome", "password_reset" or "verification_code"
//   - result: "ok" or "error"
var MailSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_sent_total",
		Help:      "Total number of notification emails attempted, labelled by template and result.",
	},
	[]string{"template", "result"},
)

// FallbackOperationsTotal counts operations absorbed by the in-memory
// fallback cache while the durable store was unreachable.
// Label:
//   - op: "create", "list" or "delete"
var FallbackOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallback_operations_total",
		Help:      "Total number of operations absorbed by the fallback cache during store outages.",
	},
	[]string{"op"},
)

// StoreUnavailableTotal counts durable-store calls that failed with a
// connectivity error, whether or not a fallback path existed.
var StoreUnavailableTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_unavailable_total",
		Help:      "Total number of durable store calls that failed due to unavailability.",
	},
)
