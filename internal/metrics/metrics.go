package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Snapshot metrics
	PoolCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swaprouter_pool_count",
		Help: "Total number of pools in the active snapshot",
	})

	CoinCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swaprouter_coin_count",
		Help: "Total number of coin nodes in the routing graph",
	})

	SnapshotRebuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swaprouter_snapshot_rebuilds_total",
		Help: "Total number of router rebuilds from a new pool snapshot",
	})

	// Quote metrics
	QuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_quote_requests_total",
			Help: "Total number of quote requests",
		},
		[]string{"swap_mode", "status"},
	)

	QuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swaprouter_quote_duration_seconds",
			Help:    "Quote request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"swap_mode"},
	)

	QuoteCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swaprouter_quote_cache_hits_total",
		Help: "Total number of quote cache hits",
	})

	QuoteCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swaprouter_quote_cache_misses_total",
		Help: "Total number of quote cache misses",
	})

	QuoteCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swaprouter_quote_cache_size",
		Help: "Current number of entries in quote cache",
	})

	// Router phase metrics
	RouteEnumerationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swaprouter_route_enumeration_duration_seconds",
		Help:    "Candidate route enumeration duration in seconds",
		Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	SplitDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swaprouter_split_duration_seconds",
		Help:    "Flow splitting duration in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})

	CandidateRoutes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swaprouter_candidate_routes",
		Help:    "Number of candidate routes found per quote request",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 500, 1000},
	})

	SplitSlices = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swaprouter_split_slices",
		Help:    "Number of non-empty slices assigned per quote request",
		Buckets: []float64{1, 2, 3, 5, 7, 10, 15, 20, 50},
	})

	RoutesUsed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swaprouter_routes_used",
		Help:    "Number of routes with a nonzero allocation per quote",
		Buckets: []float64{1, 2, 3, 4, 5, 7, 10},
	})

	SimulationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swaprouter_simulation_failures_total",
		Help: "Total number of candidate route simulations dropped from a slice",
	})

	GasCeilingFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swaprouter_gas_ceiling_fallbacks_total",
		Help: "Total number of slices placed on a route over the gas ceiling",
	})

	PriceImpact = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swaprouter_price_impact_bps",
			Help:    "Price impact in basis points",
			Buckets: []float64{0, 10, 50, 100, 300, 500, 1000, 5000, 10000},
		},
		[]string{"severity"},
	)

	// Persistence metrics
	PersistedPools = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "swaprouter_persisted_pools",
		Help: "Number of pools written in the last snapshot persist",
	})

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swaprouter_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
