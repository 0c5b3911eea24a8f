// Package metrics defines and registers all custom Prometheus metrics for the
// back-office console API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthzDecisionsTotal counts authorization verdicts at the API gate.
// Labels:
//   - resource: the permissioned resource (e.g. "orders")
//   - action: view, create, update or delete
//   - outcome: "allow" or "deny"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by resource, action and outcome.",
	},
	[]string{"resource", "action", "outcome"},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts successfully created orders.
// Label:
//   - payments: "single" or "split" depending on the number of allocations
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by payment shape.",
	},
	[]string{"payments"},
)

// OrderRejectionsTotal counts order drafts rejected before submission.
// Label:
//   - reason: short violation name (e.g. "empty_order", "mismatched_total")
var OrderRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_rejections_total",
		Help:      "Total number of order drafts rejected by pre-submission validation.",
	},
	[]string{"reason"},
)

// ── Permission metrics ────────────────────────────────────────────────────────

// PermissionUpdatesTotal counts full-replacement permission writes.
var PermissionUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "permission_updates_total",
		Help:      "Total number of permission matrices replaced.",
	},
)
