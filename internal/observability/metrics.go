package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillshare_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillshare_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// EnrichmentDegradations counts plan reads that fell back to the
	// placeholder user because the owner could not be resolved.
	EnrichmentDegradations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillshare_enrichment_degradations_total",
		Help: "Total number of plan reads served with a placeholder owner",
	})

	// FollowEventsTotal counts follow/unfollow mutations by direction.
	FollowEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillshare_follow_events_total",
		Help: "Total number of plan follow and unfollow events",
	}, []string{"direction"})

	// WebSocketConnectionsTotal is the gauge of active follow-feed connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skillshare_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
