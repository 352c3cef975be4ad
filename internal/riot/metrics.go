package riot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lolvsfriends_riot_requests_total",
		Help: "Total Riot API requests by outcome",
	}, []string{"outcome"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lolvsfriends_riot_retries_total",
		Help: "Total Riot API retries by reason",
	}, []string{"reason"})
)
