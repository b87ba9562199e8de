// Package metrics declares the daemon's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API metrics
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baguette_api_request_duration_seconds",
			Help:    "API request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	APIRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baguette_api_requests_total",
			Help: "Total API requests",
		},
		[]string{"method", "route", "status"},
	)

	// Data source metrics
	SourceFetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baguette_source_fetch_total",
			Help: "Dashboard snapshot fetches by source and result",
		},
		[]string{"source", "result"},
	)
	SourceFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "baguette_source_fetch_duration_seconds",
			Help:    "Time to fetch one dashboard snapshot",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// Voting metrics
	WalletConnects = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baguette_wallet_connects_total",
			Help: "Wallet connection attempts by result",
		},
		[]string{"result"},
	)
	VotesSelected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "baguette_votes_selected_total",
			Help: "Local vote selections by charity",
		},
		[]string{"charity"},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequestDuration, APIRequestTotal,
		SourceFetchTotal, SourceFetchDuration,
		WalletConnects, VotesSelected,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
