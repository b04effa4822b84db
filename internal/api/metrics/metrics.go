// Package metrics defines and registers all custom Prometheus metrics for the
// vehicle registry. It is the single source of truth for metric names, labels,
// and help strings. HTTP-level metrics come from the echoprometheus middleware
// and are not declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vehicle_registry"

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success", "invalid_credentials", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// VehiclesCreatedTotal counts successfully registered vehicles.
// Label:
//   - status: "Active" or "Inactive"
var VehiclesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vehicles_created_total",
		Help:      "Total number of vehicles created, by status.",
	},
	[]string{"status"},
)

// PlateConflictsTotal counts writes rejected by the plate uniqueness invariant.
// Label:
//   - operation: "create" or "update"
var PlateConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "plate_conflicts_total",
		Help:      "Total number of writes rejected because the plate was already registered.",
	},
	[]string{"operation"},
)

// AuditEventsTotal counts audit trail entries recorded.
// Label:
//   - action: "created", "updated", or "deleted"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of registry events recorded in the audit trail.",
	},
	[]string{"action"},
)

// AuditQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of registry events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
