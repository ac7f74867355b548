package router

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/metrics"
	"github.com/hxuan190/swap-router/internal/pool"
)

// PartitionAmount cuts total into n slices that sum to total exactly. The
// first slice absorbs the division remainder.
func PartitionAmount(total *big.Int, n int) []*big.Int {
	if n < 1 {
		n = 1
	}
	q, r := new(big.Int).QuoRem(total, big.NewInt(int64(n)), new(big.Int))
	slices := make([]*big.Int, n)
	for i := range slices {
		slices[i] = new(big.Int).Set(q)
	}
	slices[0].Add(slices[0], r)
	return slices
}

// poolState is the splitter's working registry: the caller's pools plus the
// entries replaced by accepted slices. The base slice is never written.
type poolState struct {
	base      []pool.Pool
	committed map[int]pool.Pool
}

func (s *poolState) get(idx int) pool.Pool {
	if p, ok := s.committed[idx]; ok {
		return p
	}
	return s.base[idx]
}

func (s *poolState) commit(touched map[int]pool.Pool) {
	for idx, p := range touched {
		s.committed[idx] = p
	}
}

type candidate struct {
	route     domain.TradeRoute
	allocated bool
}

type simulation struct {
	idx      int
	route    domain.TradeRoute
	marginal *big.Int
	touched  map[int]pool.Pool
}

type splitResult struct {
	routes            []domain.TradeRoute
	exceedsMaxGasCost bool
	slices            int
}

type splitter struct {
	graph    *CoinGraph
	cfg      Config
	mode     domain.SwapMode
	referrer domain.Address
	state    *poolState
}

func newSplitter(graph *CoinGraph, cfg Config, mode domain.SwapMode, referrer domain.Address) *splitter {
	return &splitter{
		graph:    graph,
		cfg:      cfg,
		mode:     mode,
		referrer: referrer,
		state:    &poolState{base: graph.pools, committed: make(map[int]pool.Pool)},
	}
}

// split assigns every slice of total to the route with the best marginal
// yield at that moment, pruning the candidate list after each slice.
func (s *splitter) split(routes []domain.TradeRoute, total *big.Int) (*splitResult, error) {
	cands := make([]candidate, len(routes))
	for i := range routes {
		cands[i] = candidate{route: routes[i].Clone()}
	}

	res := &splitResult{}
	slices := PartitionAmount(total, s.cfg.TradePartitionCount)
	for i, amount := range slices {
		if amount.Sign() == 0 {
			continue
		}
		res.slices++

		refGas := allocatedGas(cands)
		var inBudget, overBudget []*simulation
		for idx := range cands {
			sim, err := s.simulate(idx, cands[idx].route, amount)
			if err != nil {
				metrics.SimulationFailures.Inc()
				log.Debug().Err(err).Int("slice", i).Msg("[router] candidate dropped from slice")
				continue
			}

			projected := refGas
			if !cands[idx].allocated {
				projected += cands[idx].route.GasCost
			}
			if projected > s.cfg.MaxGasCost {
				overBudget = append(overBudget, sim)
			} else {
				inBudget = append(inBudget, sim)
			}
		}

		bucket := inBudget
		if len(bucket) == 0 && len(overBudget) > 0 {
			bucket = overBudget
			res.exceedsMaxGasCost = true
			metrics.GasCeilingFallbacks.Inc()
			log.Warn().
				Int("slice", i).
				Int64("max_gas_cost", s.cfg.MaxGasCost).
				Int("candidates", len(overBudget)).
				Msg("[router] no route within gas ceiling, using over budget routes")
		}
		if len(bucket) == 0 {
			return nil, ErrUnableToFindRoute
		}

		s.sortByYield(bucket)
		best := bucket[0]
		cands[best.idx].route = best.route
		cands[best.idx].allocated = true
		s.state.commit(best.touched)

		cands = s.prune(cands, bucket, i, len(slices))
	}

	res.routes = make([]domain.TradeRoute, len(cands))
	for i := range cands {
		res.routes[i] = cands[i].route
	}
	return res, nil
}

// simulate pushes amount through every hop of route against the committed
// pool state. Pools touched by the route are read from and written to a
// private overlay, so a route that revisits a pool sees its own trades.
func (s *splitter) simulate(idx int, route domain.TradeRoute, amount *big.Int) (*simulation, error) {
	next := route.Clone()
	touched := make(map[int]pool.Pool, len(next.Paths))
	given := amount

	for h := range next.Paths {
		path := &next.Paths[h]
		pIdx, ok := s.graph.index[path.PoolUID]
		if !ok {
			return nil, fmt.Errorf("pool %s not in graph", path.PoolUID)
		}
		p, ok := touched[pIdx]
		if !ok {
			p = s.state.get(pIdx)
		}

		// in exact-out mode hops carry the known amount on CoinIn, which is
		// the side the pool pays out
		actualIn, actualOut := path.CoinIn.Type, path.CoinOut.Type
		if s.mode == domain.SwapModeExactOut {
			actualIn, actualOut = actualOut, actualIn
		}

		var derived, tradeIn, tradeOut *big.Int
		var err error
		if s.mode == domain.SwapModeExactIn {
			derived, err = p.TradeAmountOut(actualIn, actualOut, given, s.referrer)
			tradeIn, tradeOut = given, derived
		} else {
			derived, err = p.TradeAmountIn(actualIn, actualOut, given, s.referrer)
			tradeIn, tradeOut = derived, given
		}
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", path.PoolUID, err)
		}

		if path.SpotPrice == 0 {
			path.SpotPrice = p.SpotPrice(actualIn, actualOut, false)
		}

		updated, err := p.UpdatedPoolAfterTrade(actualIn, tradeIn, actualOut, tradeOut)
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", path.PoolUID, err)
		}
		touched[pIdx] = updated

		path.CoinIn.Amount.Add(path.CoinIn.Amount, given)
		path.CoinOut.Amount.Add(path.CoinOut.Amount, derived)
		given = derived
	}

	next.CoinIn.Amount.Add(next.CoinIn.Amount, amount)
	next.CoinOut.Amount.Add(next.CoinOut.Amount, given)
	next.SpotPrice = 1
	for h := range next.Paths {
		next.SpotPrice *= next.Paths[h].SpotPrice
	}

	return &simulation{idx: idx, route: next, marginal: given, touched: touched}, nil
}

// sortByYield puts the best marginal first: most out for exact-in, least in
// for exact-out. Ties keep candidate order.
func (s *splitter) sortByYield(bucket []*simulation) {
	sort.SliceStable(bucket, func(i, j int) bool {
		c := bucket[i].marginal.Cmp(bucket[j].marginal)
		if s.mode == domain.SwapModeExactIn {
			return c > 0
		}
		return c < 0
	})
}

// prune orders candidates as the sorted bucket followed by everyone else and
// keeps a prefix of that order. Routes holding an allocation are always kept.
func (s *splitter) prune(cands []candidate, bucket []*simulation, slice, slices int) []candidate {
	order := make([]int, 0, len(cands))
	seen := make([]bool, len(cands))
	for _, sim := range bucket {
		order = append(order, sim.idx)
		seen[sim.idx] = true
	}
	for idx := range cands {
		if !seen[idx] {
			order = append(order, idx)
		}
	}

	firstUnallocated := len(order)
	for pos, idx := range order {
		if !cands[idx].allocated {
			firstUnallocated = pos
			break
		}
	}
	boundary := firstUnallocated
	if boundary < s.cfg.MinRoutesToCheck {
		boundary = s.cfg.MinRoutesToCheck
	}
	keep := keepCount(s.cfg.CutStrategy, boundary, len(order), slices-slice-1)

	next := make([]candidate, 0, keep)
	for pos, idx := range order {
		if pos < keep || cands[idx].allocated {
			next = append(next, cands[idx])
		}
	}
	return next
}

func keepCount(strategy CutStrategy, boundary, length, slicesLeft int) int {
	if boundary >= length {
		return length
	}
	if strategy == CutLinear {
		return boundary + (length-boundary)*slicesLeft/(slicesLeft+1)
	}
	return (boundary + length) / 2
}

func allocatedGas(cands []candidate) int64 {
	var total int64
	for i := range cands {
		if cands[i].allocated {
			total += cands[i].route.GasCost
		}
	}
	return total
}
