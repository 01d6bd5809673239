// Package metrics exposes prometheus instruments for the aggregation
// pipeline. Everything registers on the default registry and is served
// by the API router at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshRuns counts completed pipeline runs by outcome
	// ("ok" or "persist_failed").
	RefreshRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lottery_refresh_runs_total",
		Help: "Completed aggregation pipeline runs by outcome.",
	}, []string{"outcome"})

	// AdapterDegradations counts scrapes that degraded to an empty
	// result, by source.
	AdapterDegradations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lottery_adapter_degradations_total",
		Help: "Source adapter runs that degraded to an empty result.",
	}, []string{"source"})

	// ScrapeDuration observes per-source scrape latency.
	ScrapeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lottery_scrape_duration_seconds",
		Help:    "Time spent fetching and extracting one source.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	// SnapshotGames tracks the size of the current snapshot by kind.
	SnapshotGames = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lottery_snapshot_games",
		Help: "Games in the currently installed snapshot.",
	}, []string{"kind"})
)
