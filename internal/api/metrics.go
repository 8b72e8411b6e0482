package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riot_upstream_requests_total",
		Help: "Riot API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "riot_upstream_request_duration_seconds",
		Help:    "Riot API request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)
