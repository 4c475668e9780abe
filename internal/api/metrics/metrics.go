// Package metrics defines the domain Prometheus metrics for the social
// network API. Metrics register with the default registry on import via
// promauto and are exposed on /metrics next to the HTTP request metrics
// recorded by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "socialnet"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts successful registrations.
var AccountsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid", or "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsTotal counts post mutations.
// Label:
//   - action: "created", "deleted", or "like_toggled"
var PostsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_total",
		Help:      "Total number of post mutations, labelled by action.",
	},
	[]string{"action"},
)

// ── Relationship metrics ──────────────────────────────────────────────────────

// RelationshipsTotal counts relationship mutations.
// Label:
//   - action: "follow", "unfollow", or "remove_follower"
var RelationshipsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relationships_total",
		Help:      "Total number of relationship mutations, labelled by action.",
	},
	[]string{"action"},
)

// RepairsTotal counts repair passes.
// Label:
//   - result: "clean", "fixed", or "error"
var RepairsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relationship_repairs_total",
		Help:      "Total number of relationship repair passes, labelled by result.",
	},
	[]string{"result"},
)

// RepairQueueDepth tracks accounts waiting in each repair worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RepairQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "repair_queue_depth",
		Help:      "Current number of accounts pending in each repair worker channel.",
	},
	[]string{"worker_id"},
)
