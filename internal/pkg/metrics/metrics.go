// Package metrics defines and registers the custom Prometheus metrics of the
// studio schedule service. It is the single source of truth for metric
// names, labels and help strings.
//
// Metrics register with the default registry on import through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studio"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "not_found", "bad_password", "not_approved" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SignupsTotal counts accepted signup requests, by requested role.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accepted signup requests.",
	},
	[]string{"role"},
)

// ── Schedule metrics ──────────────────────────────────────────────────────────

// SchedulesCreatedTotal counts created schedules.
// Label:
//   - type: "rehearsal", "ceremony", "general" or "selection"
var SchedulesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "schedules_created_total",
		Help:      "Total number of schedules created, by type.",
	},
	[]string{"type"},
)

// MemosAppendedTotal counts memos added to schedules.
var MemosAppendedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "memos_appended_total",
		Help:      "Total number of memos appended to schedules.",
	},
)

// ── Worksheet metrics ─────────────────────────────────────────────────────────

// WorksheetWritesTotal counts store writes.
// Labels:
//   - worksheet: worksheet name (e.g. "users", "schedules")
//   - op: "append", "replace_all", "update_row" or "delete_row"
var WorksheetWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "worksheet_writes_total",
		Help:      "Total number of worksheet writes, by worksheet and operation.",
	},
	[]string{"worksheet", "op"},
)

// VersionConflictsTotal counts row writes rejected because of a stale version.
var VersionConflictsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "version_conflicts_total",
		Help:      "Total number of row writes rejected with a version conflict.",
	},
	[]string{"worksheet"},
)

// WriteQueueDepth tracks jobs waiting in each write serializer worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var WriteQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "write_queue_depth",
		Help:      "Current number of write jobs pending in each serializer worker.",
	},
	[]string{"worker_id"},
)

// WriteDuration measures how long a serialized write section holds its key.
var WriteDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "write_duration_seconds",
		Help:      "Duration of serialized write sections.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"worksheet"},
)
