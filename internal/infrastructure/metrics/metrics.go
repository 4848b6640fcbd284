package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VerificationsTotal tracks verification calls by resulting verdict
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dnssecd_verifications_total",
		Help: "Total number of RRset verifications, by verdict",
	}, []string{"verdict"})

	// VerificationDuration tracks time spent inside VerifyRRsetWithKeyset
	VerificationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dnssecd_verification_duration_seconds",
		Help:    "Histogram of verification call duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"algorithm"})

	// VerdictCacheOperations tracks verdict-cache hits and misses
	VerdictCacheOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dnssecd_verdict_cache_operations_total",
		Help: "Total number of verdict cache hits and misses",
	}, []string{"result"})

	// AnchorStoreQueriesTotal tracks anchor-store lookups and saves
	AnchorStoreQueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dnssecd_anchor_store_queries_total",
		Help: "Total number of anchor store queries, by operation and result",
	}, []string{"operation", "result"})

	// DBConnectionsActive tracks open database connections
	DBConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dnssecd_db_connections_active",
		Help: "Number of active database connections",
	})
)
