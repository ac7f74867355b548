package router

import (
	"fmt"
	"math/big"
	"time"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/metrics"
	"github.com/hxuan190/swap-router/internal/pool"
)

// RouteOptions are the optional parameters of a routing request. The zero
// value routes with no referrer, no external fee and the configured hop bound.
type RouteOptions struct {
	Referrer       domain.Address
	ExternalFee    *domain.ExternalFee
	MaxRouteLength int
}

// Router finds split trade routes over one pool snapshot. It is immutable
// after construction and safe for concurrent use; every request works on its
// own copy-on-write view of the pools.
type Router struct {
	graph *CoinGraph
	cfg   Config
}

func NewRouter(pools []pool.Pool, cfg Config) (*Router, error) {
	if len(pools) == 0 {
		return nil, ErrNoPools
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.CutStrategy, _ = ParseCutStrategy(string(cfg.CutStrategy))

	graph, err := BuildCoinGraph(pools)
	if err != nil {
		return nil, err
	}
	return &Router{graph: graph, cfg: cfg}, nil
}

func (r *Router) Graph() *CoinGraph { return r.graph }
func (r *Router) Config() Config    { return r.cfg }

// GetCompleteRouteGivenAmountIn splits coinInAmount across routes to
// maximise the coin out received.
func (r *Router) GetCompleteRouteGivenAmountIn(
	coinIn domain.CoinType,
	coinInAmount *big.Int,
	coinOut domain.CoinType,
	opts RouteOptions,
) (*domain.CompleteTradeRoute, error) {
	return r.route(domain.SwapModeExactIn, coinIn, coinOut, coinInAmount, opts)
}

// GetCompleteRouteGivenAmountOut splits coinOutAmount across routes to
// minimise the coin in paid. With an external fee the routed amount is
// grossed up so the amount left after the fee is at least coinOutAmount.
func (r *Router) GetCompleteRouteGivenAmountOut(
	coinIn domain.CoinType,
	coinOut domain.CoinType,
	coinOutAmount *big.Int,
	opts RouteOptions,
) (*domain.CompleteTradeRoute, error) {
	return r.route(domain.SwapModeExactOut, coinIn, coinOut, coinOutAmount, opts)
}

func (r *Router) route(
	mode domain.SwapMode,
	coinIn, coinOut domain.CoinType,
	amount *big.Int,
	opts RouteOptions,
) (*domain.CompleteTradeRoute, error) {
	if err := r.validateExternalFee(opts.ExternalFee); err != nil {
		return nil, err
	}
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	if coinIn == coinOut {
		return nil, ErrSameCoin
	}
	maxRouteLength := opts.MaxRouteLength
	if maxRouteLength == 0 {
		maxRouteLength = r.cfg.MaxRouteLength
	}

	target := amount
	if mode == domain.SwapModeExactOut && opts.ExternalFee != nil {
		target = grossUpForFee(amount, opts.ExternalFee.FeePercentage)
	}

	start := time.Now()
	routes, err := r.graph.FindRoutes(coinIn, coinOut, maxRouteLength, mode)
	metrics.RouteEnumerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	metrics.CandidateRoutes.Observe(float64(len(routes)))

	start = time.Now()
	res, err := newSplitter(r.graph, r.cfg, mode, opts.Referrer).split(routes, target)
	metrics.SplitDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	metrics.SplitSlices.Observe(float64(res.slices))

	complete, err := assemble(res, assembleParams{
		mode:        mode,
		coinIn:      coinIn,
		coinOut:     coinOut,
		referrer:    opts.Referrer,
		externalFee: opts.ExternalFee,
	})
	if err != nil {
		return nil, err
	}
	metrics.RoutesUsed.Observe(float64(len(complete.Routes)))
	return complete, nil
}

func (r *Router) validateExternalFee(fee *domain.ExternalFee) error {
	if fee == nil {
		return nil
	}
	if fee.FeePercentage < 0 || fee.FeePercentage >= r.cfg.MaxExternalFeePercentage {
		return fmt.Errorf("%w: %v not in [0, %v)", ErrExternalFeeTooHigh, fee.FeePercentage, r.cfg.MaxExternalFeePercentage)
	}
	return nil
}
