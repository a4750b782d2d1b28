// Package metrics defines and registers the Prometheus metrics of the accounts
// service. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// AccountsCreatedTotal counts successful registrations.
var AccountsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "created_total",
		Help:      "Total number of accounts created.",
	},
)

// AccountsUpdatedTotal counts successful profile updates.
var AccountsUpdatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updated_total",
		Help:      "Total number of accounts updated.",
	},
)

// OperationErrorsTotal counts rejected or failed account operations.
// Labels:
//   - operation: "create", "update" or "login"
//   - reason: short description of the failure (e.g. "username_taken", "store")
var OperationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operation_errors_total",
		Help:      "Total number of account operations that did not succeed, by reason.",
	},
	[]string{"operation", "reason"},
)

// LoginsTotal counts credential checks.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of credential checks, labelled by result.",
	},
	[]string{"result"},
)
