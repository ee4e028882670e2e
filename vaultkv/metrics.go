package vaultkv

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry is the Prometheus registry used by this package
	Registry = prometheus.NewRegistry()

	// Reads counts KV v2 reads by outcome: fetched, miss, or error
	Reads = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_reads_total",
			Help: "Total number of Vault KV v2 reads by outcome",
		},
		[]string{"outcome"},
	)

	// CacheHits counts secret lookups served from the cache
	CacheHits = promauto.With(Registry).NewCounter(
		prometheus.CounterOpts{
			Name: "vault_cache_hits_total",
			Help: "Total number of secret lookups served from the cache",
		},
	)
)
