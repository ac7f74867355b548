package pool

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/hxuan190/swap-router/internal/domain"
)

func q64(shift uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), shift)
}

func newTestConcentrated(t *testing.T, feeBps uint32) *Concentrated {
	t.Helper()
	// price 1, range [0.25, 4]
	p, err := NewConcentrated("clmm", "A", "B", q64(64), bi("1000000000000"), q64(63), q64(65), feeBps, 0)
	require.NoError(t, err)
	return p
}

func TestConcentratedAmountOut(t *testing.T) {
	t.Parallel()

	p := newTestConcentrated(t, 0)

	for _, dir := range [][2]domain.CoinType{{"A", "B"}, {"B", "A"}} {
		out, err := p.TradeAmountOut(dir[0], dir[1], big.NewInt(1_000_000), "")
		require.NoError(t, err)
		// price 1 with 1e-6 of liquidity moved: at most a couple of units lost
		require.True(t, out.Cmp(big.NewInt(999_997)) >= 0, "%s->%s out %s", dir[0], dir[1], out)
		require.True(t, out.Cmp(big.NewInt(1_000_000)) < 0, "%s->%s out %s", dir[0], dir[1], out)
	}
}

func TestConcentratedAmountInRoundTrip(t *testing.T) {
	t.Parallel()

	p := newTestConcentrated(t, 30)

	for _, dir := range [][2]domain.CoinType{{"A", "B"}, {"B", "A"}} {
		want := big.NewInt(5_000_000)
		in, err := p.TradeAmountIn(dir[0], dir[1], want, "")
		require.NoError(t, err)
		require.True(t, in.Cmp(want) > 0)

		out, err := p.TradeAmountOut(dir[0], dir[1], in, "")
		require.NoError(t, err)
		diff := new(big.Int).Sub(want, out)
		require.True(t, diff.Cmp(big.NewInt(2)) <= 0, "%s->%s want %s got %s", dir[0], dir[1], want, out)
	}
}

func TestConcentratedRangeExhausted(t *testing.T) {
	t.Parallel()

	p := newTestConcentrated(t, 0)

	_, err := p.TradeAmountOut("A", "B", bi("2000000000000"), "")
	require.True(t, errors.Is(err, ErrInsufficientLiquidity))

	_, err = p.TradeAmountIn("B", "A", bi("1000000000000"), "")
	require.True(t, errors.Is(err, ErrInsufficientLiquidity))
}

func TestConcentratedSpotPrice(t *testing.T) {
	t.Parallel()

	// price 4 B per A
	p, err := NewConcentrated("clmm", "A", "B", q64(65), bi("1000000000000"), q64(64), q64(66), 100, 0)
	require.NoError(t, err)

	require.InDelta(t, 0.25, p.SpotPrice("A", "B", false), 1e-12)
	require.InDelta(t, 4.0, p.SpotPrice("B", "A", false), 1e-12)
	require.InDelta(t, 4.0/0.99, p.SpotPrice("B", "A", true), 1e-9)
	require.Zero(t, p.SpotPrice("A", "C", false))
}

func TestConcentratedUpdatedPool(t *testing.T) {
	t.Parallel()

	p := newTestConcentrated(t, 30)
	before := p.SqrtPriceX64()

	amountIn := big.NewInt(10_000_000)
	out, err := p.TradeAmountOut("A", "B", amountIn, "")
	require.NoError(t, err)

	next, err := p.UpdatedPoolAfterTrade("A", amountIn, "B", out)
	require.NoError(t, err)

	require.Zero(t, before.Cmp(p.SqrtPriceX64()))
	require.True(t, next.(*Concentrated).SqrtPriceX64().Cmp(before) < 0)

	// selling more A into the moved pool gets a worse price
	again, err := next.TradeAmountOut("A", "B", amountIn, "")
	require.NoError(t, err)
	require.True(t, again.Cmp(out) < 0)
}

func TestNewConcentratedInvalid(t *testing.T) {
	t.Parallel()

	_, err := NewConcentrated("clmm", "A", "B", q64(62), bi("1"), q64(63), q64(65), 0, 0)
	require.True(t, errors.Is(err, ErrInvalidSpec))

	_, err = NewConcentrated("clmm", "A", "B", q64(300), bi("1"), q64(63), q64(301), 0, 0)
	require.True(t, errors.Is(err, ErrInvalidSpec))
}
