package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	matchesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lolvsfriends_matches_ingested_total",
		Help: "Total number of matches fetched and stored",
	})

	matchesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lolvsfriends_matches_failed_total",
		Help: "Total number of matches skipped due to fetch or store failures",
	})

	rosterEntriesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lolvsfriends_roster_entries_failed_total",
		Help: "Total number of roster entries that failed to ingest",
	})

	matchIngestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lolvsfriends_match_ingest_duration_seconds",
		Help:    "Duration of fetching and storing a single match",
		Buckets: prometheus.DefBuckets,
	})
)
