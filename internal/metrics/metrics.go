// metrics — prometheus-коллекторы newsadmin. Регистрируются в default registry при импорте.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newsadmin",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route template and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "newsadmin",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	LoaderBatches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "newsadmin",
		Name:      "loader_batches_total",
		Help:      "Grouped queries issued by the news post loader.",
	})

	LoaderBatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "newsadmin",
		Name:      "loader_batch_size",
		Help:      "Distinct ids per grouped query.",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
	})
)
