package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "command_sync_runs_total",
		Help: "Total number of command tree sync attempts, by result",
	}, []string{"result"})

	CommandChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "command_changes_total",
		Help: "Total number of commands classified as added, removed or updated",
	}, []string{"change"})

	ManifestReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "manifest_reloads_total",
		Help: "Total number of manifest hot-reload attempts, by status",
	}, []string{"status"})

	InteractionsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interactions_handled_total",
		Help: "Total number of interactions dispatched by the router, by kind",
	}, []string{"kind"})
)
