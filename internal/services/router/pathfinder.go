package router

import (
	"math/big"

	"github.com/hxuan190/swap-router/internal/domain"
)

type step struct {
	pool     int
	uid      domain.PoolUID
	from, to domain.CoinType
}

// FindRoutes enumerates every route from coinIn to coinOut with at most
// maxRouteLength hops, level by level. A hop never reuses the pool of the hop
// right before it; coins may be revisited. Routes are returned with zeroed
// amounts and, for SwapModeExactOut, already reversed.
func (g *CoinGraph) FindRoutes(coinIn, coinOut domain.CoinType, maxRouteLength int, mode domain.SwapMode) ([]domain.TradeRoute, error) {
	if maxRouteLength < 1 {
		return nil, ErrInvalidRouteLength
	}
	if coinIn == coinOut {
		return nil, ErrSameCoin
	}

	source, ok := g.nodes[coinIn]
	if !ok {
		return nil, ErrNoRoutesFound
	}

	var frontier [][]step
	for _, to := range source.neighbours {
		for _, uid := range source.Edges[to] {
			frontier = append(frontier, []step{{pool: g.index[uid], uid: uid, from: coinIn, to: to}})
		}
	}

	var completed [][]step
	for len(frontier) > 0 {
		var next [][]step
		for _, partial := range frontier {
			last := partial[len(partial)-1]
			if last.to == coinOut {
				completed = append(completed, partial)
				continue
			}
			if len(partial) >= maxRouteLength {
				continue
			}

			node, ok := g.nodes[last.to]
			if !ok {
				continue
			}
			for _, to := range node.neighbours {
				for _, uid := range node.Edges[to] {
					if uid == last.uid {
						continue
					}
					extended := make([]step, len(partial), len(partial)+1)
					copy(extended, partial)
					extended = append(extended, step{pool: g.index[uid], uid: uid, from: last.to, to: to})
					next = append(next, extended)
				}
			}
		}
		frontier = next
	}

	if len(completed) == 0 {
		return nil, ErrNoRoutesFound
	}

	routes := make([]domain.TradeRoute, 0, len(completed))
	for _, steps := range completed {
		route := g.tradeRoute(coinIn, coinOut, steps)
		if mode == domain.SwapModeExactOut {
			route = route.Reversed()
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func (g *CoinGraph) tradeRoute(coinIn, coinOut domain.CoinType, steps []step) domain.TradeRoute {
	route := domain.TradeRoute{Paths: make([]domain.TradePath, len(steps))}
	for i, s := range steps {
		p := g.pools[s.pool]
		feeIn, feeOut := p.TradeFees(s.from, s.to)
		route.Paths[i] = domain.TradePath{
			PoolUID:  s.uid,
			Protocol: p.Protocol().String(),
			CoinIn:   domain.CoinAmount{Type: s.from, Amount: new(big.Int), TradeFee: feeIn},
			CoinOut:  domain.CoinAmount{Type: s.to, Amount: new(big.Int), TradeFee: feeOut},
			GasCost:  p.ExpectedGasCostPerHop(),
		}
		route.GasCost += route.Paths[i].GasCost
	}
	route.CoinIn = domain.CoinAmount{Type: coinIn, Amount: new(big.Int), TradeFee: route.Paths[0].CoinIn.TradeFee}
	route.CoinOut = domain.CoinAmount{Type: coinOut, Amount: new(big.Int), TradeFee: route.Paths[len(steps)-1].CoinOut.TradeFee}
	return route
}
