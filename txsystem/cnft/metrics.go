package cnft

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// newOperationsMetric builds the per operation outcome counter. With a
// nil registerer the counter still counts but is not exported.
func newOperationsMetric(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "leafmint",
			Name:      "operations_total",
			Help:      "Number of processed registry operations by operation and result.",
		},
		[]string{"operation", "result"},
	)
}
