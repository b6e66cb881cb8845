package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/utxo/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "upstream_client",
		Name:      "operations_total",
		Help:      "Count of upstream API calls by outcome.",
	}, []string{"source", "operation", "coin", "network", "status"})
	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "upstream_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of upstream API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "operation", "coin", "network", "status"})
)

// UpstreamClient tracks metrics for calls to chain and market APIs.
type UpstreamClient struct {
	source  string
	coin    model.Coin
	network model.Network
}

// NewUpstreamClient constructs a collector for one upstream source (esplora, bitcoind, coingecko, ...).
func NewUpstreamClient(source string, coin model.Coin, network model.Network) *UpstreamClient {
	if source == "" {
		source = "unknown"
	}
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &UpstreamClient{source: source, coin: coin, network: network}
}

// Observe records a single call outcome and duration. Failures are labelled with their error kind.
func (m UpstreamClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = chain.Kind(err)
	}

	upstreamRequestsTotal.WithLabelValues(m.source, operation, string(m.coin), string(m.network), status).Inc()
	upstreamRequestDuration.WithLabelValues(m.source, operation, string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
}
