// Package metrics exposes the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Turns counts completed conversation turns by outcome
	// (results, clarification, project, analysis, message).
	Turns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "study_agent_turns_total",
		Help: "Completed conversation turns by outcome.",
	}, []string{"outcome"})

	// LLMRequests counts gateway calls by status (ok, error).
	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "study_agent_llm_requests_total",
		Help: "Language model gateway calls by status.",
	}, []string{"status"})

	// LLMCacheHits counts gateway responses served from the LRU cache.
	LLMCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "study_agent_llm_cache_hits_total",
		Help: "Gateway responses served from the response cache.",
	})
)
