// Package metrics exposes Prometheus instrumentation for the carbon service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits counts carbon readings served from the TTL cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carbon_cache_hits_total",
		Help: "Carbon readings served from the in-process cache.",
	})

	// CacheMisses counts lookups that required a provider fetch.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carbon_cache_misses_total",
		Help: "Carbon lookups that missed the cache and fetched from the provider.",
	})

	// FetchFailures counts failed provider fetches per region.
	FetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eia_fetch_failures_total",
		Help: "Failed or unusable EIA fuel-mix fetches by region.",
	}, []string{"region"})

	// RequestDuration observes HTTP handler latency per route.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)
