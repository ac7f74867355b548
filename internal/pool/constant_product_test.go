package pool

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func bi(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad big int " + s)
	}
	return v
}

func requireBig(t *testing.T, want string, got *big.Int) {
	t.Helper()
	require.NotNil(t, got)
	require.Equal(t, want, got.String())
}

func TestConstantProduct(t *testing.T) {
	t.Parallel()

	p, err := NewConstantProduct("cp", "A", "B", bi("1000000"), bi("1000000"), 30, 0)
	require.NoError(t, err)
	require.Equal(t, DefaultConstantProductGas, p.ExpectedGasCostPerHop())

	t.Run("amount out", func(t *testing.T) {
		t.Parallel()

		out, err := p.TradeAmountOut("A", "B", big.NewInt(1000), "")
		require.NoError(t, err)
		requireBig(t, "996", out)
	})

	t.Run("amount in", func(t *testing.T) {
		t.Parallel()

		in, err := p.TradeAmountIn("A", "B", big.NewInt(996), "")
		require.NoError(t, err)
		requireBig(t, "1000", in)
	})

	t.Run("amount in covers requested out", func(t *testing.T) {
		t.Parallel()

		for _, want := range []int64{1, 7, 999, 12345, 500000} {
			in, err := p.TradeAmountIn("B", "A", big.NewInt(want), "")
			require.NoError(t, err)
			out, err := p.TradeAmountOut("B", "A", in, "")
			require.NoError(t, err)
			require.True(t, out.Cmp(big.NewInt(want)) >= 0, "want %d got %s", want, out)
		}
	})

	t.Run("out exceeds reserve", func(t *testing.T) {
		t.Parallel()

		_, err := p.TradeAmountIn("A", "B", bi("1000000"), "")
		require.True(t, errors.Is(err, ErrInsufficientLiquidity))
	})

	t.Run("unsupported coin", func(t *testing.T) {
		t.Parallel()

		_, err := p.TradeAmountOut("A", "C", big.NewInt(10), "")
		require.True(t, errors.Is(err, ErrUnsupportedCoin))
	})

	t.Run("invalid amount", func(t *testing.T) {
		t.Parallel()

		_, err := p.TradeAmountOut("A", "B", big.NewInt(0), "")
		require.True(t, errors.Is(err, ErrInvalidAmount))
		_, err = p.TradeAmountIn("A", "B", nil, "")
		require.True(t, errors.Is(err, ErrInvalidAmount))
	})

	t.Run("update leaves receiver untouched", func(t *testing.T) {
		t.Parallel()

		next, err := p.UpdatedPoolAfterTrade("A", big.NewInt(1000), "B", big.NewInt(996))
		require.NoError(t, err)

		ra, rb := next.(*ConstantProduct).Reserves()
		requireBig(t, "1000997", ra)
		requireBig(t, "999004", rb)

		oa, ob := p.Reserves()
		requireBig(t, "1000000", oa)
		requireBig(t, "1000000", ob)
	})
}

func TestConstantProductZeroLiquidity(t *testing.T) {
	t.Parallel()

	p, err := NewConstantProduct("dry", "A", "B", bi("1000000"), big.NewInt(0), 30, 0)
	require.NoError(t, err)

	_, err = p.TradeAmountOut("A", "B", big.NewInt(1), "")
	require.True(t, errors.Is(err, ErrInsufficientLiquidity))
	require.Zero(t, p.SpotPrice("A", "B", false))
}

func TestConstantProductSpotPrice(t *testing.T) {
	t.Parallel()

	p, err := NewConstantProduct("cp", "A", "B", bi("1000000"), bi("2000000"), 30, 0)
	require.NoError(t, err)

	require.InDelta(t, 0.5, p.SpotPrice("A", "B", false), 1e-12)
	require.InDelta(t, 2.0, p.SpotPrice("B", "A", false), 1e-12)
	require.InDelta(t, 0.5/0.997, p.SpotPrice("A", "B", true), 1e-12)

	feeIn, feeOut := p.TradeFees("A", "B")
	require.InDelta(t, 0.003, feeIn, 1e-12)
	require.Zero(t, feeOut)
}

func TestNewConstantProductInvalid(t *testing.T) {
	t.Parallel()

	_, err := NewConstantProduct("cp", "A", "A", bi("1"), bi("1"), 30, 0)
	require.True(t, errors.Is(err, ErrInvalidSpec))

	_, err = NewConstantProduct("cp", "A", "B", bi("1"), bi("1"), BpsDenom, 0)
	require.True(t, errors.Is(err, ErrInvalidSpec))

	_, err = NewConstantProduct("cp", "A", "B", big.NewInt(-1), bi("1"), 30, 0)
	require.True(t, errors.Is(err, ErrInvalidSpec))
}
