package router

import (
	"errors"
	"math/big"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/pool"
	"github.com/hxuan190/swap-router/internal/pool/mock"
)

func TestPartitionAmount(t *testing.T) {
	totals := []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(7), big.NewInt(199), bi("1000000000000000000000000000001")}
	counts := []int{1, 2, 3, 10, 14}

	for _, total := range totals {
		for _, n := range counts {
			slices := PartitionAmount(total, n)
			if len(slices) != n {
				t.Fatalf("PartitionAmount(%s, %d) gave %d slices", total, n, len(slices))
			}
			q, r := new(big.Int).QuoRem(total, big.NewInt(int64(n)), new(big.Int))
			sum := new(big.Int)
			for i, s := range slices {
				sum.Add(sum, s)
				want := q
				if i == 0 {
					want = new(big.Int).Add(q, r)
				}
				if s.Cmp(want) != 0 {
					t.Errorf("PartitionAmount(%s, %d)[%d] = %s, want %s", total, n, i, s, want)
				}
			}
			if sum.Cmp(total) != 0 {
				t.Errorf("PartitionAmount(%s, %d) sums to %s", total, n, sum)
			}
		}
	}

	if got := PartitionAmount(big.NewInt(5), 0); len(got) != 1 || got[0].Int64() != 5 {
		t.Errorf("non-positive count should give one slice, got %v", got)
	}
}

func TestKeepCount(t *testing.T) {
	tests := []struct {
		name       string
		strategy   CutStrategy
		boundary   int
		length     int
		slicesLeft int
		want       int
	}{
		{"boundary covers all", CutQuadratic, 10, 10, 5, 10},
		{"boundary past length", CutLinear, 12, 10, 5, 10},
		{"quadratic halves the tail", CutQuadratic, 3, 10, 9, 6},
		{"quadratic ignores slices left", CutQuadratic, 3, 10, 0, 6},
		{"linear early", CutLinear, 3, 10, 9, 9},
		{"linear middle", CutLinear, 3, 10, 1, 6},
		{"linear last slice", CutLinear, 3, 10, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keepCount(tt.strategy, tt.boundary, tt.length, tt.slicesLeft); got != tt.want {
				t.Errorf("keepCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func namedCandidates(n int, allocated ...int) []candidate {
	cands := make([]candidate, n)
	for i := range cands {
		uid := domain.PoolUID([]byte{'r', byte('0' + i)})
		cands[i] = candidate{route: domain.TradeRoute{Paths: []domain.TradePath{{PoolUID: uid}}}}
	}
	for _, idx := range allocated {
		cands[idx].allocated = true
	}
	return cands
}

func candidateNames(cands []candidate) []domain.PoolUID {
	out := make([]domain.PoolUID, len(cands))
	for i := range cands {
		out[i] = cands[i].route.Paths[0].PoolUID
	}
	return out
}

func TestPrune(t *testing.T) {
	// the bucket is the sorted simulation order of this slice; candidates
	// missing from it follow in their original order
	bucket := []*simulation{{idx: 2}, {idx: 0}, {idx: 1}}

	tests := []struct {
		name      string
		strategy  CutStrategy
		minRoutes int
		allocated []int
		slice     int
		want      []domain.PoolUID
	}{
		{
			name:      "quadratic keeps half past the floor",
			strategy:  CutQuadratic,
			minRoutes: 1,
			allocated: []int{4},
			want:      []domain.PoolUID{"r2", "r0", "r1", "r4"},
		},
		{
			name:      "linear keeps more early",
			strategy:  CutLinear,
			minRoutes: 1,
			allocated: []int{4},
			want:      []domain.PoolUID{"r2", "r0", "r1", "r3", "r4"},
		},
		{
			name:      "linear last slice keeps the boundary and allocations",
			strategy:  CutLinear,
			minRoutes: 1,
			allocated: []int{4},
			slice:     9,
			want:      []domain.PoolUID{"r2", "r4"},
		},
		{
			name:      "floor raises the boundary",
			strategy:  CutQuadratic,
			minRoutes: 4,
			want:      []domain.PoolUID{"r2", "r0", "r1", "r3", "r4"},
		},
		{
			name:      "floor at length keeps everything",
			strategy:  CutQuadratic,
			minRoutes: 6,
			want:      []domain.PoolUID{"r2", "r0", "r1", "r3", "r4", "r5"},
		},
		{
			name:      "allocated prefix moves the boundary",
			strategy:  CutQuadratic,
			minRoutes: 0,
			allocated: []int{2, 0},
			want:      []domain.PoolUID{"r2", "r0", "r1", "r3"},
		},
		{
			name:      "allocated tail always survives",
			strategy:  CutLinear,
			minRoutes: 0,
			allocated: []int{5},
			slice:     9,
			want:      []domain.PoolUID{"r5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &splitter{cfg: Config{MinRoutesToCheck: tt.minRoutes, CutStrategy: tt.strategy}}
			got := s.prune(namedCandidates(6, tt.allocated...), bucket, tt.slice, 10)
			if names := candidateNames(got); !reflect.DeepEqual(names, tt.want) {
				t.Errorf("kept %v, want %v", names, tt.want)
			}
		})
	}
}

// flakyPool is a USDC-DAI mock that pays twice the input, except for the
// calls fail marks, which return an error from the chosen method.
func flakyPool(t *testing.T, failQuote, failUpdate func(call int) bool) *mock.MockPool {
	t.Helper()
	ctrl := gomock.NewController(t)
	p := mock.NewMockPool(ctrl)
	p.EXPECT().UID().Return(domain.PoolUID("flaky")).AnyTimes()
	p.EXPECT().Protocol().Return(pool.ProtocolConstantProduct).AnyTimes()
	p.EXPECT().CoinTypes().Return([]domain.CoinType{USDC, DAI}).AnyTimes()
	p.EXPECT().ExpectedGasCostPerHop().Return(int64(0)).AnyTimes()
	p.EXPECT().TradeFees(gomock.Any(), gomock.Any()).Return(0.0, 0.0).AnyTimes()
	p.EXPECT().SpotPrice(gomock.Any(), gomock.Any(), gomock.Any()).Return(2.0).AnyTimes()

	quotes := 0
	p.EXPECT().TradeAmountOut(USDC, DAI, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_, _ domain.CoinType, amountIn *big.Int, _ domain.Address) (*big.Int, error) {
			quotes++
			if failQuote(quotes) {
				return nil, pool.ErrInsufficientLiquidity
			}
			return new(big.Int).Mul(amountIn, big.NewInt(2)), nil
		}).AnyTimes()

	updates := 0
	p.EXPECT().UpdatedPoolAfterTrade(USDC, gomock.Any(), DAI, gomock.Any()).DoAndReturn(
		func(domain.CoinType, *big.Int, domain.CoinType, *big.Int) (pool.Pool, error) {
			updates++
			if failUpdate(updates) {
				return nil, errors.New("state rejected")
			}
			return p, nil
		}).AnyTimes()
	return p
}

func TestSimulationFailureDropsCandidateForOneSlice(t *testing.T) {
	first := func(call int) bool { return call == 1 }
	never := func(int) bool { return false }

	tests := []struct {
		name       string
		failQuote  func(int) bool
		failUpdate func(int) bool
	}{
		{"quote fails", first, never},
		{"update fails", never, first},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pools := []pool.Pool{
				cpPool(t, "steady", USDC, DAI, "1000000000000000", "1000000000000000", 0),
				flakyPool(t, tt.failQuote, tt.failUpdate),
			}
			r := newTestRouter(t, pools, func(c *Config) { c.TradePartitionCount = 4 })

			complete, err := r.GetCompleteRouteGivenAmountIn(USDC, big.NewInt(400), DAI, RouteOptions{MaxRouteLength: 1})
			if err != nil {
				t.Fatalf("GetCompleteRouteGivenAmountIn: %v", err)
			}

			byPool := make(map[domain.PoolUID]domain.TradeRoute)
			for _, route := range complete.Routes {
				byPool[route.Paths[0].PoolUID] = route
			}
			steady, flaky := byPool["steady"], byPool["flaky"]
			if steady.CoinIn.Amount == nil || steady.CoinIn.Amount.Int64() != 100 {
				t.Fatalf("steady route should take only the failed slice, got %v", steady.CoinIn.Amount)
			}
			if flaky.CoinIn.Amount == nil || flaky.CoinIn.Amount.Int64() != 300 || flaky.CoinOut.Amount.Int64() != 600 {
				t.Fatalf("flaky route should win the remaining slices, got %v -> %v", flaky.CoinIn.Amount, flaky.CoinOut.Amount)
			}
			want := new(big.Int).Add(steady.CoinOut.Amount, flaky.CoinOut.Amount)
			if complete.CoinOut.Amount.Cmp(want) != 0 || complete.CoinIn.Amount.Int64() != 400 {
				t.Errorf("totals %s -> %s, want 400 -> %s", complete.CoinIn.Amount, complete.CoinOut.Amount, want)
			}
		})
	}
}

func TestCutStrategiesConserveAmounts(t *testing.T) {
	pools := []pool.Pool{
		cpPool(t, "pool1", USDC, USDT, "1000000000", "1000000000", 30),
		cpPool(t, "pool2", USDT, DAI, "1000000000", "1000000000", 30),
		cpPool(t, "pool3", USDC, DAI, "1000000000", "1000000000", 100),
		cpPool(t, "pool4", USDC, DAI, "500000000", "500000000", 30),
		cpPool(t, "pool5", USDC, USDT, "800000000", "800000000", 5),
		cpPool(t, "pool6", USDT, DAI, "300000000", "300000000", 5),
		cpPool(t, "pool7", USDC, WETH, "900000000", "900000000", 30),
		cpPool(t, "pool8", WETH, DAI, "900000000", "900000000", 30),
	}
	amount := bi("50000000")

	for _, strategy := range []CutStrategy{CutQuadratic, CutLinear} {
		t.Run(string(strategy), func(t *testing.T) {
			r := newTestRouter(t, pools, func(c *Config) {
				c.CutStrategy = strategy
				c.MinRoutesToCheck = 1
			})

			in, err := r.GetCompleteRouteGivenAmountIn(USDC, amount, DAI, RouteOptions{})
			if err != nil {
				t.Fatalf("amount in: %v", err)
			}
			checkRouteShape(t, in, DefaultMaxRouteLength)
			if got := sumRoutes(in.Routes, false); got.Cmp(amount) != 0 {
				t.Errorf("amount in: route inputs %s, want %s", got, amount)
			}
			if got := sumRoutes(in.Routes, true); got.Cmp(in.CoinOut.Amount) != 0 {
				t.Errorf("amount in: route outputs %s, want %s", got, in.CoinOut.Amount)
			}

			out, err := r.GetCompleteRouteGivenAmountOut(USDC, DAI, amount, RouteOptions{})
			if err != nil {
				t.Fatalf("amount out: %v", err)
			}
			checkRouteShape(t, out, DefaultMaxRouteLength)
			if got := sumRoutes(out.Routes, true); got.Cmp(amount) != 0 {
				t.Errorf("amount out: route outputs %s, want %s", got, amount)
			}
			if got := sumRoutes(out.Routes, false); got.Cmp(out.CoinIn.Amount) != 0 {
				t.Errorf("amount out: route inputs %s, want %s", got, out.CoinIn.Amount)
			}
		})
	}
}
