// Package metrics holds the Prometheus collectors shared by the API
// client, the store and the reference API server. Collectors register
// with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "deliveryapp"

// ClientRequestsTotal counts outbound API round trips.
// Labels:
//   - endpoint: logical endpoint name (e.g. "auth.login", "orders.cart.add")
//   - status: HTTP status code, or "transport_error"
var ClientRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of API requests issued by the client.",
	},
	[]string{"endpoint", "status"},
)

// ClientRequestDuration measures round-trip latency per endpoint.
var ClientRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Duration of API round trips issued by the client.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// StoreActionsTotal counts reducer transitions by action kind.
var StoreActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "actions_total",
		Help:      "Total number of actions dispatched to the application store.",
	},
	[]string{"kind"},
)

// StoreFailuresTotal counts failed store operations.
// Labels:
//   - operation: store operation name (e.g. "login", "load_categories")
//   - policy: "propagate", "swallow" or "reset_session"
var StoreFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "store",
		Name:      "operation_failures_total",
		Help:      "Total number of failed store operations, by failure policy.",
	},
	[]string{"operation", "policy"},
)

// MockOrdersCreatedTotal counts orders placed against the reference server.
var MockOrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mockapi",
		Name:      "orders_created_total",
		Help:      "Total number of orders created by the reference API server.",
	},
	[]string{"payment_method"},
)
