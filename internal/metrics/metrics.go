// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "konorm_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "konorm_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})
)

// Normalizer metrics.
var (
	RulesFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "konorm_rules_fired_total",
		Help: "Pipeline rules that changed a Korean run, by rule",
	}, []string{"rule"})

	TextsNormalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "konorm_texts_normalized_total",
		Help: "Texts passed through the normalizer",
	})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "konorm_cache_lookups_total",
		Help: "Normalization cache lookups by result",
	}, []string{"result"})

	DictionaryWords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "konorm_dictionary_words",
		Help: "Words loaded per part of speech",
	}, []string{"pos"})
)

// ObserveRule is a konorm.WithRuleHook callback.
func ObserveRule[R ~string](rule R) {
	RulesFired.WithLabelValues(string(rule)).Inc()
}
