package router

import (
	"errors"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/pool"
	"github.com/hxuan190/swap-router/internal/pool/mock"
)

func TestBuildCoinGraphDuplicatePool(t *testing.T) {
	pools := []pool.Pool{
		cpPool(t, "pool1", USDC, USDT, "1000", "1000", 30),
		cpPool(t, "pool1", USDT, DAI, "1000", "1000", 30),
	}
	if _, err := BuildCoinGraph(pools); !errors.Is(err, ErrDuplicatePool) {
		t.Fatalf("got %v, want %v", err, ErrDuplicatePool)
	}
	if _, err := BuildCoinGraph(nil); !errors.Is(err, ErrNoPools) {
		t.Fatalf("got %v, want %v", err, ErrNoPools)
	}
}

func TestBuildCoinGraphEdgeOrder(t *testing.T) {
	a := cpPool(t, "a", USDC, USDT, "1000", "1000", 30)
	b := cpPool(t, "b", USDC, USDT, "1000", "1000", 5)

	tests := []struct {
		name  string
		pools []pool.Pool
		want  []domain.PoolUID
	}{
		{"input order", []pool.Pool{a, b}, []domain.PoolUID{"a", "b"}},
		{"reversed input", []pool.Pool{b, a}, []domain.PoolUID{"b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := BuildCoinGraph(tt.pools)
			if err != nil {
				t.Fatalf("BuildCoinGraph: %v", err)
			}
			for _, from := range []domain.CoinType{USDC, USDT} {
				to := USDT
				if from == USDT {
					to = USDC
				}
				node, ok := g.Node(from)
				if !ok {
					t.Fatalf("missing node %s", from)
				}
				if got := node.Edges[to]; !reflect.DeepEqual(got, tt.want) {
					t.Errorf("%s -> %s edges = %v, want %v", from, to, got, tt.want)
				}
			}
		})
	}
}

func TestBuildCoinGraphDedupesEdges(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := mock.NewMockPool(ctrl)
	p.EXPECT().UID().Return(domain.PoolUID("multi")).AnyTimes()
	p.EXPECT().CoinTypes().Return([]domain.CoinType{USDC, DAI, DAI}).AnyTimes()

	g, err := BuildCoinGraph([]pool.Pool{p})
	if err != nil {
		t.Fatalf("BuildCoinGraph: %v", err)
	}
	node, _ := g.Node(USDC)
	if got := node.Edges[DAI]; !reflect.DeepEqual(got, []domain.PoolUID{"multi"}) {
		t.Errorf("USDC -> DAI edges = %v", got)
	}
	dai, _ := g.Node(DAI)
	if _, ok := dai.Edges[DAI]; ok {
		t.Error("self edge recorded")
	}
	if g.CoinCount() != 2 || g.PoolCount() != 1 {
		t.Errorf("coins %d pools %d", g.CoinCount(), g.PoolCount())
	}
	if got := g.Coins(); !reflect.DeepEqual(got, []domain.CoinType{DAI, USDC}) {
		t.Errorf("coins = %v", got)
	}
}
