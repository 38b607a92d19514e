package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chirp_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedAssemblyLatency records the time spent assembling home feeds.
	FeedAssemblyLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chirp_feed_assembly_latency_seconds",
		Help:    "Home feed assembly latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// FollowMutations counts follow-graph mutations by kind.
	FollowMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_follow_mutations_total",
		Help: "Total number of follow graph mutations",
	}, []string{"kind"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// TrackFeedAssembly returns a function that records feed assembly latency when called.
func TrackFeedAssembly() func() {
	start := time.Now()
	return func() {
		FeedAssemblyLatency.Observe(time.Since(start).Seconds())
	}
}
