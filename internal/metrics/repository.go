package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"driver", "operation", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"driver", "operation", "status"})
)

// Repository tracks metrics for store operations of one driver.
type Repository struct {
	driver string
}

// NewRepository creates a Repository metrics collector for driver (clickhouse, postgres).
func NewRepository(driver string) *Repository {
	if driver == "" {
		driver = "unknown"
	}
	return &Repository{driver: driver}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	repositoryRequestsTotal.WithLabelValues(m.driver, operation, status).Inc()
	repositoryRequestDuration.WithLabelValues(m.driver, operation, status).Observe(time.Since(started).Seconds())
}
