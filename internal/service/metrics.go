package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	historyRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "match_history_requests_total",
		Help: "Match history requests by result",
	}, []string{"result"})

	historyCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "match_history_cache_hits_total",
		Help: "Match history requests served from cache",
	})

	matchFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "match_detail_failures_total",
		Help: "Match detail fetches that failed during history assembly",
	})
)
