// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_queries_total",
			Help: "Total number of weather queries by outcome",
		},
		[]string{"outcome", "metric", "time_intent"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_provider_request_duration_seconds",
			Help:    "Duration of weather provider requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)

	UtterancesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_utterances_total",
			Help: "Total number of parsed utterances by whether a city was found",
		},
		[]string{"city_found"},
	)
)

func ObserveQuery(outcome, metric, timeIntent string) {
	QueriesTotal.WithLabelValues(outcome, metric, timeIntent).Inc()
}

func ObserveProviderRequest(endpoint, status string, d time.Duration) {
	ProviderRequestDuration.WithLabelValues(endpoint, status).Observe(d.Seconds())
}

func ObserveUtterance(cityFound bool) {
	label := "false"
	if cityFound {
		label = "true"
	}
	UtterancesTotal.WithLabelValues(label).Inc()
}
