package pool

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/hxuan190/swap-router/internal/domain"
)

// Spec is the serialisable form of a pool. Big integers are decimal strings
// so snapshots survive JSON and YAML round trips without precision loss.
type Spec struct {
	UID      string   `json:"uid" yaml:"uid"`
	Protocol string   `json:"protocol" yaml:"protocol"`
	Coins    []string `json:"coins" yaml:"coins"`
	FeeBps   uint32   `json:"feeBps" yaml:"fee_bps"`
	GasCost  int64    `json:"gasCost,omitempty" yaml:"gas_cost,omitempty"`

	// ConstantProduct
	Reserves []string `json:"reserves,omitempty" yaml:"reserves,omitempty"`

	// Concentrated
	SqrtPriceX64      string `json:"sqrtPriceX64,omitempty" yaml:"sqrt_price_x64,omitempty"`
	Liquidity         string `json:"liquidity,omitempty" yaml:"liquidity,omitempty"`
	SqrtPriceLowerX64 string `json:"sqrtPriceLowerX64,omitempty" yaml:"sqrt_price_lower_x64,omitempty"`
	SqrtPriceUpperX64 string `json:"sqrtPriceUpperX64,omitempty" yaml:"sqrt_price_upper_x64,omitempty"`

	// OrderBook, Coins[0] is base and Coins[1] is quote
	Bids []LevelSpec `json:"bids,omitempty" yaml:"bids,omitempty"`
	Asks []LevelSpec `json:"asks,omitempty" yaml:"asks,omitempty"`
}

type LevelSpec struct {
	Price    string `json:"price" yaml:"price"`
	Quantity string `json:"quantity" yaml:"quantity"`
}

// FromSpec builds the pool variant named by spec.Protocol.
func FromSpec(spec Spec) (Pool, error) {
	protocol, err := ParseProtocol(spec.Protocol)
	if err != nil {
		return nil, err
	}
	if len(spec.Coins) != 2 {
		return nil, fmt.Errorf("%w: pool %q has %d coins, want 2", ErrInvalidSpec, spec.UID, len(spec.Coins))
	}
	uid := domain.PoolUID(spec.UID)
	coinA, coinB := domain.CoinType(spec.Coins[0]), domain.CoinType(spec.Coins[1])

	switch protocol {
	case ProtocolConstantProduct:
		if len(spec.Reserves) != 2 {
			return nil, fmt.Errorf("%w: pool %q needs 2 reserves", ErrInvalidSpec, spec.UID)
		}
		ra, err := parseBig(spec.UID, "reserves[0]", spec.Reserves[0])
		if err != nil {
			return nil, err
		}
		rb, err := parseBig(spec.UID, "reserves[1]", spec.Reserves[1])
		if err != nil {
			return nil, err
		}
		return NewConstantProduct(uid, coinA, coinB, ra, rb, spec.FeeBps, spec.GasCost)

	case ProtocolConcentrated:
		fields := []struct{ name, value string }{
			{"sqrtPriceX64", spec.SqrtPriceX64},
			{"liquidity", spec.Liquidity},
			{"sqrtPriceLowerX64", spec.SqrtPriceLowerX64},
			{"sqrtPriceUpperX64", spec.SqrtPriceUpperX64},
		}
		vals := make([]*big.Int, len(fields))
		for i, f := range fields {
			v, err := parseBig(spec.UID, f.name, f.value)
			if err != nil {
				return nil, err
			}
			vals[i] = v
		}
		return NewConcentrated(uid, coinA, coinB, vals[0], vals[1], vals[2], vals[3], spec.FeeBps, spec.GasCost)

	case ProtocolOrderBook:
		bids, err := parseLevels(spec.UID, spec.Bids)
		if err != nil {
			return nil, err
		}
		asks, err := parseLevels(spec.UID, spec.Asks)
		if err != nil {
			return nil, err
		}
		return NewOrderBook(uid, coinA, coinB, bids, asks, spec.FeeBps, spec.GasCost)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedProtocol, protocol)
}

func parseBig(uid, field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: pool %q field %s=%q", ErrInvalidSpec, uid, field, s)
	}
	return v, nil
}

func parseLevels(uid string, specs []LevelSpec) ([]Level, error) {
	levels := make([]Level, 0, len(specs))
	for _, s := range specs {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: pool %q level price %q", ErrInvalidSpec, uid, s.Price)
		}
		qty, err := decimal.NewFromString(s.Quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: pool %q level quantity %q", ErrInvalidSpec, uid, s.Quantity)
		}
		levels = append(levels, Level{Price: price, Quantity: qty})
	}
	return levels, nil
}
