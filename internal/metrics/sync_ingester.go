package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_ingester",
		Name:      "cycles_total",
		Help:      "Count of completed sync cycles by outcome.",
	}, []string{"coin", "network", "outcome"})

	syncCycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_ingester",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of sync cycles.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "outcome"})

	syncSkippedTicksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_ingester",
		Name:      "skipped_ticks_total",
		Help:      "Count of ticks skipped because a cycle was still running.",
	}, []string{"coin", "network"})

	syncRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_ingester",
		Name:      "rows_total",
		Help:      "Count of rows handled by the writer.",
	}, []string{"coin", "network", "status"})

	syncTipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_ingester",
		Name:      "tip_height",
		Help:      "Last chain tip height seen upstream.",
	}, []string{"coin", "network"})
)

// SyncIngester tracks metrics for the sync cycle controller.
type SyncIngester struct {
	coin    model.Coin
	network model.Network
}

// NewSyncIngester constructs a SyncIngester with defaults.
func NewSyncIngester(coin model.Coin, network model.Network) *SyncIngester {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &SyncIngester{coin: coin, network: network}
}

// ObserveCycle records a completed cycle.
func (m SyncIngester) ObserveCycle(outcome string, started time.Time) {
	syncCyclesTotal.WithLabelValues(string(m.coin), string(m.network), outcome).Inc()
	syncCycleDuration.WithLabelValues(string(m.coin), string(m.network), outcome).
		Observe(time.Since(started).Seconds())
}

// ObserveSkippedTick records a tick dropped by the single-flight guard.
func (m SyncIngester) ObserveSkippedTick() {
	syncSkippedTicksTotal.WithLabelValues(string(m.coin), string(m.network)).Inc()
}

// ObserveRows records written and failed row counts of one persisted block.
func (m SyncIngester) ObserveRows(written, failed int) {
	syncRowsTotal.WithLabelValues(string(m.coin), string(m.network), "written").Add(float64(written))
	syncRowsTotal.WithLabelValues(string(m.coin), string(m.network), "failed").Add(float64(failed))
}

// ObserveTip records the upstream tip height.
func (m SyncIngester) ObserveTip(height uint64) {
	syncTipHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(height))
}
