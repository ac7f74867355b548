package aggregator

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/pkg/errors"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/swap-router/internal/adapters/persistence"
	"github.com/hxuan190/swap-router/internal/adapters/snapshot"
	"github.com/hxuan190/swap-router/internal/config"
	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/metrics"
	"github.com/hxuan190/swap-router/internal/pool"
	"github.com/hxuan190/swap-router/internal/services"
	"github.com/hxuan190/swap-router/internal/services/router"
)

const AGGREGATOR_SERVICE = "aggregator-service"

var (
	ErrNotReady     = errors.New("no pool snapshot loaded")
	ErrEmptyRequest = errors.New("empty pool list")
)

//go:generate mockgen -destination=mock/store.go -package=mock . PoolStore

// PoolStore persists the live pool snapshot.
type PoolStore interface {
	SavePoolBatch(specs []pool.Spec, version uint64) error
	LoadAllPools() ([]pool.Spec, error)
	Close() error
}

type QuoteRequest struct {
	CoinIn         domain.CoinType
	CoinOut        domain.CoinType
	Amount         *big.Int
	SwapMode       domain.SwapMode
	Referrer       domain.Address
	ExternalFee    *domain.ExternalFee
	MaxRouteLength int
}

func (q QuoteRequest) cacheKey(version uint64) string {
	fee := "-"
	if q.ExternalFee != nil {
		fee = fmt.Sprintf("%s:%v", q.ExternalFee.Recipient, q.ExternalFee.FeePercentage)
	}
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s|%s|%d",
		version, q.SwapMode, q.CoinIn, q.CoinOut, q.Amount, q.Referrer, fee, q.MaxRouteLength)
}

type Stats struct {
	Pools     int    `json:"pools"`
	Coins     int    `json:"coins"`
	Version   uint64 `json:"version"`
	CacheSize int    `json:"cacheSize"`
}

// Service owns the live pool snapshot and the router built over it. Quotes
// read the router under a read lock; snapshot changes build a new router and
// swap it in.
type Service struct {
	container.BaseDIInstance
	logger *services.ServiceLogger

	cfg       *config.AggregatorConfig
	routerCfg router.Config
	store     PoolStore

	mu       sync.RWMutex
	router   *router.Router
	registry *poolRegistry
	version  uint64
	cache    *quoteCache
}

// NewService wires a service without the DI container. store may be nil.
func NewService(cfg *config.AggregatorConfig, routerCfg router.Config, store PoolStore) *Service {
	svc := &Service{cfg: cfg, routerCfg: routerCfg, store: store}
	svc.init()
	return svc
}

func (svc *Service) init() {
	svc.logger = services.NewServiceLogger(svc)
	svc.registry = newPoolRegistry(nil)
	svc.cache = newQuoteCache(svc.cfg.QuoteCacheSize)
}

func (svc *Service) ID() string {
	return AGGREGATOR_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.cfg = c.GetConfig(config.AGGREGATOR_CONFIG_KEY).(*config.AggregatorConfig)
	svc.routerCfg = c.GetConfig(config.ROUTER_CONFIG_KEY).(*config.RouterConfig).ToRouterConfig()
	svc.init()

	if svc.cfg.PersistenceEnabled {
		storage, err := persistence.NewStorage(svc.cfg.DBPath)
		if err != nil {
			return errors.Wrap(err, "open pool storage")
		}
		svc.store = storage
	}
	return nil
}

// Start loads persisted pools, overlays the snapshot file and builds the
// first router. An empty result leaves the service running but not ready.
func (svc *Service) Start() error {
	specs, err := svc.loadInitialSpecs()
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		svc.logger.Warn().Msg("no pools loaded, quotes will fail until pools are pushed")
		return nil
	}
	if err := svc.ReplacePools(specs); err != nil {
		return errors.Wrap(err, "build initial snapshot")
	}
	return nil
}

func (svc *Service) Stop() error {
	if svc.store != nil {
		return svc.store.Close()
	}
	return nil
}

func (svc *Service) loadInitialSpecs() ([]pool.Spec, error) {
	var specs []pool.Spec
	if svc.store != nil {
		stored, err := svc.store.LoadAllPools()
		if err != nil {
			return nil, errors.Wrap(err, "load persisted pools")
		}
		specs = stored
		svc.logger.Info().Int("count", len(stored)).Msg("loaded persisted pools")
	}

	if svc.cfg.SnapshotPath != "" {
		fromFile, err := snapshot.LoadFile(svc.cfg.SnapshotPath)
		if err != nil {
			return nil, err
		}
		specs = mergeSpecs(specs, fromFile)
		svc.logger.Info().
			Str("path", svc.cfg.SnapshotPath).
			Int("count", len(fromFile)).
			Msg("loaded snapshot file")
	}
	return specs, nil
}

// mergeSpecs returns base with every spec of overlay applied, overlay
// winning on UID collisions. Order is base order followed by new UIDs.
func mergeSpecs(base, overlay []pool.Spec) []pool.Spec {
	pos := make(map[string]int, len(base)+len(overlay))
	out := make([]pool.Spec, 0, len(base)+len(overlay))
	for _, list := range [][]pool.Spec{base, overlay} {
		for _, spec := range list {
			if i, ok := pos[spec.UID]; ok {
				out[i] = spec
				continue
			}
			pos[spec.UID] = len(out)
			out = append(out, spec)
		}
	}
	return out
}

// ReplacePools makes specs the whole snapshot.
func (svc *Service) ReplacePools(specs []pool.Spec) error {
	if len(specs) == 0 {
		return ErrEmptyRequest
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.rebuildLocked(specs)
}

// UpsertPools merges specs into the current snapshot.
func (svc *Service) UpsertPools(specs []pool.Spec) error {
	if len(specs) == 0 {
		return ErrEmptyRequest
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.rebuildLocked(mergeSpecs(svc.registry.All(), specs))
}

func (svc *Service) rebuildLocked(specs []pool.Spec) error {
	pools := make([]pool.Pool, 0, len(specs))
	for _, spec := range specs {
		p, err := pool.FromSpec(spec)
		if err != nil {
			return errors.Wrapf(err, "pool %s", spec.UID)
		}
		pools = append(pools, p)
	}

	r, err := router.NewRouter(pools, svc.routerCfg)
	if err != nil {
		return errors.Wrap(err, "build router")
	}

	version := svc.version + 1
	if svc.store != nil {
		if err := svc.store.SavePoolBatch(specs, version); err != nil {
			return errors.Wrap(err, "persist snapshot")
		}
		metrics.PersistedPools.Set(float64(len(specs)))
	}

	svc.router = r
	svc.registry = newPoolRegistry(specs)
	svc.version = version
	svc.cache.Clear()

	metrics.PoolCount.Set(float64(r.Graph().PoolCount()))
	metrics.CoinCount.Set(float64(r.Graph().CoinCount()))
	metrics.SnapshotRebuilds.Inc()

	svc.logger.Info().
		Int("pools", r.Graph().PoolCount()).
		Int("coins", r.Graph().CoinCount()).
		Uint64("version", version).
		Msg("snapshot rebuilt")
	return nil
}

type quoteResult struct {
	route *domain.CompleteTradeRoute
	err   error
}

// Quote routes req over the live snapshot, bounded by ctx and the configured
// quote timeout. Returned routes may be shared with the cache and must be
// treated as read only.
func (svc *Service) Quote(ctx context.Context, req QuoteRequest) (*domain.CompleteTradeRoute, error) {
	start := time.Now()
	mode := req.SwapMode.String()

	route, err := svc.quote(ctx, req)
	status := "ok"
	if err != nil {
		status = quoteStatus(err)
	}
	metrics.QuoteRequests.WithLabelValues(mode, status).Inc()
	metrics.QuoteDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	if err == nil {
		metrics.PriceImpact.
			WithLabelValues(string(router.GetPriceImpactSeverity(route.PriceImpactBps))).
			Observe(float64(route.PriceImpactBps))
	}
	return route, err
}

func (svc *Service) quote(ctx context.Context, req QuoteRequest) (*domain.CompleteTradeRoute, error) {
	svc.mu.RLock()
	r, version, cache := svc.router, svc.version, svc.cache
	svc.mu.RUnlock()
	if r == nil {
		return nil, ErrNotReady
	}

	key := req.cacheKey(version)
	if cached, ok := cache.Get(key); ok {
		return cached, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "quote")
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(svc.cfg.QuoteTimeoutMs)*time.Millisecond)
	defer cancel()

	done := make(chan quoteResult, 1)
	go func() {
		var res quoteResult
		opts := router.RouteOptions{
			Referrer:       req.Referrer,
			ExternalFee:    req.ExternalFee,
			MaxRouteLength: req.MaxRouteLength,
		}
		if req.SwapMode == domain.SwapModeExactOut {
			res.route, res.err = r.GetCompleteRouteGivenAmountOut(req.CoinIn, req.CoinOut, req.Amount, opts)
		} else {
			res.route, res.err = r.GetCompleteRouteGivenAmountIn(req.CoinIn, req.Amount, req.CoinOut, opts)
		}
		done <- res
	}()

	select {
	case <-ctx.Done():
		svc.logger.Warn().
			Str("coin_in", string(req.CoinIn)).
			Str("coin_out", string(req.CoinOut)).
			Msg("quote abandoned")
		return nil, errors.Wrap(ctx.Err(), "quote")
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		cache.Set(key, res.route)
		return res.route, nil
	}
}

func quoteStatus(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timeout"
	case errors.Is(err, router.ErrNoRoutesFound), errors.Is(err, router.ErrUnableToFindRoute):
		return "no_route"
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	default:
		return "error"
	}
}

// Pools returns the live specs sorted by UID.
func (svc *Service) Pools() []pool.Spec {
	svc.mu.RLock()
	reg := svc.registry
	svc.mu.RUnlock()
	return reg.All()
}

func (svc *Service) Pool(uid string) (pool.Spec, bool) {
	svc.mu.RLock()
	reg := svc.registry
	svc.mu.RUnlock()
	return reg.Get(uid)
}

// CoinInfo is a coin of the live graph with the coins it trades into
// directly.
type CoinInfo struct {
	Coin       domain.CoinType   `json:"coin"`
	Neighbours []domain.CoinType `json:"neighbours"`
}

// Coins lists the coins of the live graph sorted by type.
func (svc *Service) Coins() []CoinInfo {
	svc.mu.RLock()
	r := svc.router
	svc.mu.RUnlock()
	if r == nil {
		return nil
	}

	graph := r.Graph()
	coins := graph.Coins()
	out := make([]CoinInfo, 0, len(coins))
	for _, c := range coins {
		node, _ := graph.Node(c)
		out = append(out, CoinInfo{Coin: c, Neighbours: node.Neighbours()})
	}
	return out
}

func (svc *Service) Stats() Stats {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	stats := Stats{Version: svc.version, CacheSize: svc.cache.Size()}
	if svc.router != nil {
		stats.Pools = svc.router.Graph().PoolCount()
		stats.Coins = svc.router.Graph().CoinCount()
	}
	return stats
}
