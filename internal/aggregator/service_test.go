package aggregator

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hxuan190/swap-router/internal/adapters/snapshot"
	"github.com/hxuan190/swap-router/internal/aggregator/mock"
	"github.com/hxuan190/swap-router/internal/config"
	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/pool"
	"github.com/hxuan190/swap-router/internal/services/router"
)

const (
	usdc = "0xdba::usdc::USDC"
	usdt = "0xc06::usdt::USDT"
	dai  = "0xa1e::dai::DAI"
)

func cpSpec(uid, a, b string, fee uint32) pool.Spec {
	return pool.Spec{
		UID:      uid,
		Protocol: "cpmm",
		Coins:    []string{a, b},
		FeeBps:   fee,
		Reserves: []string{"1000000000000", "1000000000000"},
	}
}

func stableSpecs() []pool.Spec {
	return []pool.Spec{
		cpSpec("pool1", usdc, usdt, 30),
		cpSpec("pool2", usdt, dai, 30),
		cpSpec("pool3", usdc, dai, 100),
	}
}

func testConfig() *config.AggregatorConfig {
	return &config.AggregatorConfig{QuoteCacheSize: 16, QuoteTimeoutMs: 2000}
}

func quoteReq(amount int64) QuoteRequest {
	return QuoteRequest{
		CoinIn:   usdc,
		CoinOut:  dai,
		Amount:   big.NewInt(amount),
		SwapMode: domain.SwapModeExactIn,
	}
}

func TestQuoteNotReady(t *testing.T) {
	t.Parallel()

	svc := NewService(testConfig(), router.DefaultConfig(), nil)
	_, err := svc.Quote(context.Background(), quoteReq(1000))
	require.ErrorIs(t, err, ErrNotReady)
	require.Equal(t, Stats{}, svc.Stats())
	require.Nil(t, svc.Coins())
}

func TestReplacePoolsAndQuote(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mock.NewMockPoolStore(ctrl)
	store.EXPECT().SavePoolBatch(stableSpecs(), uint64(1)).Return(nil)

	svc := NewService(testConfig(), router.DefaultConfig(), store)
	require.NoError(t, svc.ReplacePools(stableSpecs()))

	first, err := svc.Quote(context.Background(), quoteReq(1_000_000))
	require.NoError(t, err)
	require.Positive(t, first.CoinOut.Amount.Sign())
	require.Equal(t, domain.CoinType(usdc), first.CoinIn.Type)

	second, err := svc.Quote(context.Background(), quoteReq(1_000_000))
	require.NoError(t, err)
	require.Same(t, first, second, "second quote should be served from cache")

	require.Equal(t, Stats{Pools: 3, Coins: 3, Version: 1, CacheSize: 1}, svc.Stats())
	require.Equal(t, []CoinInfo{
		{Coin: dai, Neighbours: []domain.CoinType{usdt, usdc}},
		{Coin: usdt, Neighbours: []domain.CoinType{dai, usdc}},
		{Coin: usdc, Neighbours: []domain.CoinType{dai, usdt}},
	}, svc.Coins())

	exactOut := quoteReq(1_000_000)
	exactOut.SwapMode = domain.SwapModeExactOut
	out, err := svc.Quote(context.Background(), exactOut)
	require.NoError(t, err)
	require.Equal(t, "1000000", out.CoinOut.Amount.String())
}

func TestUpsertPoolsMerges(t *testing.T) {
	t.Parallel()

	svc := NewService(testConfig(), router.DefaultConfig(), nil)
	require.NoError(t, svc.ReplacePools(stableSpecs()[:2]))

	_, err := svc.Quote(context.Background(), quoteReq(1000))
	require.NoError(t, err)
	require.Equal(t, 1, svc.Stats().CacheSize)

	cheaper := cpSpec("pool1", usdc, usdt, 5)
	require.NoError(t, svc.UpsertPools([]pool.Spec{cheaper, stableSpecs()[2]}))

	pools := svc.Pools()
	require.Len(t, pools, 3)
	require.Equal(t, []string{"pool1", "pool2", "pool3"}, []string{pools[0].UID, pools[1].UID, pools[2].UID})

	got, ok := svc.Pool("pool1")
	require.True(t, ok)
	require.Equal(t, uint32(5), got.FeeBps)

	_, ok = svc.Pool("missing")
	require.False(t, ok)

	stats := svc.Stats()
	require.Equal(t, uint64(2), stats.Version)
	require.Zero(t, stats.CacheSize)
}

func TestRebuildFailuresKeepSnapshot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mock.NewMockPoolStore(ctrl)
	gomock.InOrder(
		store.EXPECT().SavePoolBatch(gomock.Any(), uint64(1)).Return(nil),
		store.EXPECT().SavePoolBatch(gomock.Any(), uint64(2)).Return(errors.New("disk full")),
	)

	svc := NewService(testConfig(), router.DefaultConfig(), store)
	require.NoError(t, svc.ReplacePools(stableSpecs()))

	err := svc.UpsertPools([]pool.Spec{cpSpec("pool4", usdt, dai, 5)})
	require.ErrorContains(t, err, "disk full")

	err = svc.ReplacePools([]pool.Spec{{UID: "bad", Protocol: "cpmm", Coins: []string{usdc}}})
	require.ErrorIs(t, err, pool.ErrInvalidSpec)

	require.ErrorIs(t, svc.ReplacePools(nil), ErrEmptyRequest)

	require.Len(t, svc.Pools(), 3)
	require.Equal(t, uint64(1), svc.Stats().Version)
}

func TestStartMergesStoreAndSnapshotFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pools.yaml")
	override := cpSpec("pool1", usdc, usdt, 5)
	require.NoError(t, snapshot.WriteFile(path, []pool.Spec{override, stableSpecs()[2]}))

	ctrl := gomock.NewController(t)
	store := mock.NewMockPoolStore(ctrl)
	store.EXPECT().LoadAllPools().Return(stableSpecs()[:2], nil)
	store.EXPECT().SavePoolBatch(
		[]pool.Spec{override, stableSpecs()[1], stableSpecs()[2]},
		uint64(1),
	).Return(nil)
	store.EXPECT().Close().Return(nil)

	cfg := testConfig()
	cfg.SnapshotPath = path
	svc := NewService(cfg, router.DefaultConfig(), store)
	require.NoError(t, svc.Start())

	got, ok := svc.Pool("pool1")
	require.True(t, ok)
	require.Equal(t, override, got)
	require.Equal(t, 3, svc.Stats().Pools)

	require.NoError(t, svc.Stop())
}

func TestStartWithoutPools(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	store := mock.NewMockPoolStore(ctrl)
	store.EXPECT().LoadAllPools().Return(nil, nil)

	svc := NewService(testConfig(), router.DefaultConfig(), store)
	require.NoError(t, svc.Start())
	require.Zero(t, svc.Stats().Version)
}

func TestQuoteErrors(t *testing.T) {
	t.Parallel()

	svc := NewService(testConfig(), router.DefaultConfig(), nil)
	require.NoError(t, svc.ReplacePools(stableSpecs()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Quote(ctx, quoteReq(1000))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, "timeout", quoteStatus(err))

	req := quoteReq(1000)
	req.CoinOut = "0x1::unknown::X"
	_, err = svc.Quote(context.Background(), req)
	require.ErrorIs(t, err, router.ErrNoRoutesFound)
	require.Equal(t, "no_route", quoteStatus(err))

	req = quoteReq(1000)
	req.ExternalFee = &domain.ExternalFee{Recipient: "0xfee", FeePercentage: 0.9}
	_, err = svc.Quote(context.Background(), req)
	require.ErrorIs(t, err, router.ErrExternalFeeTooHigh)
	require.Zero(t, svc.Stats().CacheSize)
}

func TestCacheKeyDistinguishesRequests(t *testing.T) {
	t.Parallel()

	base := quoteReq(1000)
	withFee := base
	withFee.ExternalFee = &domain.ExternalFee{Recipient: "0xfee", FeePercentage: 0.01}
	exactOut := base
	exactOut.SwapMode = domain.SwapModeExactOut

	keys := map[string]struct{}{
		base.cacheKey(1):     {},
		base.cacheKey(2):     {},
		withFee.cacheKey(1):  {},
		exactOut.cacheKey(1): {},
	}
	require.Len(t, keys, 4)
	require.Equal(t, base.cacheKey(1), quoteReq(1000).cacheKey(1))
}

func TestMergeSpecs(t *testing.T) {
	t.Parallel()

	a, b, c := cpSpec("a", usdc, usdt, 1), cpSpec("b", usdc, usdt, 1), cpSpec("c", usdc, usdt, 1)
	a2 := cpSpec("a", usdc, dai, 9)

	got := mergeSpecs([]pool.Spec{a, b}, []pool.Spec{c, a2})
	require.Equal(t, []pool.Spec{a2, b, c}, got)
	require.Empty(t, mergeSpecs(nil, nil))
}
