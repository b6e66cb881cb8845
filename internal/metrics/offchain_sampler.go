package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	offchainSamplesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "offchain_sampler",
		Name:      "samples_total",
		Help:      "Count of sampling rounds by action (insert, update, skip, error).",
	}, []string{"action"})

	offchainSampleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "offchain_sampler",
		Name:      "sample_duration_seconds",
		Help:      "Duration of sampling rounds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})
)

// OffchainSampler tracks metrics for the market price sampler.
type OffchainSampler struct{}

// NewOffchainSampler constructs an OffchainSampler collector.
func NewOffchainSampler() *OffchainSampler {
	return &OffchainSampler{}
}

// ObserveSample records one sampling round.
func (m OffchainSampler) ObserveSample(action string, started time.Time) {
	offchainSamplesTotal.WithLabelValues(action).Inc()
	offchainSampleDuration.WithLabelValues(action).Observe(time.Since(started).Seconds())
}
