package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ProfileMutations counts profile mutations by kind.
	ProfileMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_profile_mutations_total",
		Help: "Total profile mutations by kind (upsert, experience, education, delete)",
	}, []string{"kind"})

	// PostInteractions counts post mutations by kind.
	PostInteractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_post_interactions_total",
		Help: "Total post interactions by kind (create, delete, like, unlike, comment, uncomment)",
	}, []string{"kind"})

	// CacheHits counts cache-aside hits and misses per key prefix.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnector_cache_lookups_total",
		Help: "Cache-aside lookups by key prefix and outcome",
	}, []string{"prefix", "outcome"})
)
