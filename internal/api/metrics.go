package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	queries     *prometheus.CounterVec
	matches     prometheus.Histogram
	datasetRows prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		queries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "supermarket_queries_total",
			Help: "Filter queries served, by result.",
		}, []string{"result"}),
		matches: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "supermarket_query_matches",
			Help:    "Number of stores matched per query.",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		}),
		datasetRows: f.NewGauge(prometheus.GaugeOpts{
			Name: "supermarket_dataset_rows",
			Help: "Rows in the loaded dataset.",
		}),
	}
}

func (m *Metrics) observeQuery(matches int, empty bool) {
	result := "match"
	if empty {
		result = "empty"
	}
	m.queries.WithLabelValues(result).Inc()
	m.matches.Observe(float64(matches))
}

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
