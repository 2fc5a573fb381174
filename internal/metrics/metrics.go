// Package metrics defines Prometheus metrics for pricewatch.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pricewatch"

// Fetch metrics.
var (
	FetchAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_attempts_total",
		Help:      "Total number of page fetch attempts, retries included.",
	})

	FetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_failures_total",
		Help:      "Total number of failed page fetch attempts.",
	})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parse_failures_total",
		Help:      "Total number of fetched pages in which no price was found.",
	})
)

// Cycle metrics.
var (
	ProductsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_skipped_total",
		Help:      "Total number of products skipped after exhausting retries.",
	})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "cycle_duration_seconds",
		Help:      "Duration of full monitoring cycles in seconds.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})
)

// Alert metrics.
var (
	AlertsFiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_fired_total",
		Help:      "Total number of price-drop alerts delivered.",
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)
