package router

import (
	"fmt"
	"sort"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/pool"
)

// CoinNode holds every pool that trades this coin directly into another.
type CoinNode struct {
	Coin  domain.CoinType
	Edges map[domain.CoinType][]domain.PoolUID

	// sorted keys of Edges for deterministic expansion
	neighbours []domain.CoinType
}

func (n *CoinNode) Neighbours() []domain.CoinType {
	return append([]domain.CoinType(nil), n.neighbours...)
}

// CoinGraph is the adjacency view over a pool snapshot. Topology is fixed at
// build time; pools are stored in an arena and addressed by index so the
// splitter can overlay updated pool state without copying the registry.
type CoinGraph struct {
	nodes map[domain.CoinType]*CoinNode
	pools []pool.Pool
	index map[domain.PoolUID]int
}

// BuildCoinGraph records an edge for every ordered pair of distinct coins of
// every pool.
func BuildCoinGraph(pools []pool.Pool) (*CoinGraph, error) {
	if len(pools) == 0 {
		return nil, ErrNoPools
	}

	g := &CoinGraph{
		nodes: make(map[domain.CoinType]*CoinNode),
		pools: make([]pool.Pool, 0, len(pools)),
		index: make(map[domain.PoolUID]int, len(pools)),
	}

	for _, p := range pools {
		uid := p.UID()
		if _, exists := g.index[uid]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePool, uid)
		}
		g.index[uid] = len(g.pools)
		g.pools = append(g.pools, p)

		coins := p.CoinTypes()
		for _, from := range coins {
			for _, to := range coins {
				if from == to {
					continue
				}
				g.addEdge(from, to, uid)
			}
		}
	}

	for _, node := range g.nodes {
		node.neighbours = make([]domain.CoinType, 0, len(node.Edges))
		for to := range node.Edges {
			node.neighbours = append(node.neighbours, to)
		}
		sort.Slice(node.neighbours, func(i, j int) bool { return node.neighbours[i] < node.neighbours[j] })
	}
	return g, nil
}

func (g *CoinGraph) addEdge(from, to domain.CoinType, uid domain.PoolUID) {
	node, ok := g.nodes[from]
	if !ok {
		node = &CoinNode{Coin: from, Edges: make(map[domain.CoinType][]domain.PoolUID)}
		g.nodes[from] = node
	}
	for _, existing := range node.Edges[to] {
		if existing == uid {
			return
		}
	}
	node.Edges[to] = append(node.Edges[to], uid)
}

func (g *CoinGraph) Node(coin domain.CoinType) (*CoinNode, bool) {
	node, ok := g.nodes[coin]
	return node, ok
}

func (g *CoinGraph) Pool(uid domain.PoolUID) (pool.Pool, bool) {
	idx, ok := g.index[uid]
	if !ok {
		return nil, false
	}
	return g.pools[idx], true
}

func (g *CoinGraph) PoolCount() int { return len(g.pools) }
func (g *CoinGraph) CoinCount() int { return len(g.nodes) }

// Coins lists every coin node, sorted.
func (g *CoinGraph) Coins() []domain.CoinType {
	coins := make([]domain.CoinType, 0, len(g.nodes))
	for c := range g.nodes {
		coins = append(coins, c)
	}
	sort.Slice(coins, func(i, j int) bool { return coins[i] < coins[j] })
	return coins
}
