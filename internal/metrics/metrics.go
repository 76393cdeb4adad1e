// Package metrics provides Prometheus metrics for the cartamarket backend.
// Scrape these at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carta_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carta_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Scryfall Client Metrics
	ScryfallRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carta_scryfall_requests_total",
			Help: "Scryfall API requests by endpoint and result",
		},
		[]string{"endpoint", "result"}, // endpoint: "autocomplete" or "printings"
	)

	ScryfallRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carta_scryfall_request_duration_seconds",
			Help:    "Scryfall API call latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	ScryfallCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carta_scryfall_cache_hits_total",
			Help: "Scryfall responses served from the LRU cache",
		},
		[]string{"endpoint"},
	)

	// Draft Session Metrics
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carta_sessions_created_total",
			Help: "Listing draft sessions created",
		},
	)

	SessionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carta_session_transitions_total",
			Help: "Draft session state transitions by target state",
		},
		[]string{"to"}, // "idle", "loading", "ready", "empty"
	)

	SuggestStaleDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carta_suggest_stale_dropped_total",
			Help: "Autocomplete responses discarded for arriving after a newer query",
		},
	)

	FetchSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carta_fetch_superseded_total",
			Help: "Printing fetches discarded because a newer name was confirmed",
		},
	)

	// Catalog Metrics
	ListingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carta_listings_created_total",
			Help: "Listings published to the catalog",
		},
	)

	ListingQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "carta_listing_query_duration_seconds",
			Help:    "Catalog browse query latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)
