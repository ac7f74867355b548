// Package pool holds the liquidity venue adapters the router trades through.
package pool

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/hxuan190/swap-router/internal/domain"
)

//go:generate mockgen -source=pool.go -destination=mock/pool.go -package=mock

var (
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrUnsupportedCoin       = errors.New("coin not supported by pool")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrUnsupportedProtocol   = errors.New("unsupported protocol")
	ErrInvalidSpec           = errors.New("invalid pool spec")
)

type Protocol uint8

const (
	ProtocolConstantProduct Protocol = iota
	ProtocolConcentrated
	ProtocolOrderBook
)

func (p Protocol) String() string {
	switch p {
	case ProtocolConstantProduct:
		return "ConstantProduct"
	case ProtocolConcentrated:
		return "Concentrated"
	case ProtocolOrderBook:
		return "OrderBook"
	default:
		return "UNKNOWN"
	}
}

func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(s) {
	case "constantproduct", "constant_product", "cpmm":
		return ProtocolConstantProduct, nil
	case "concentrated", "clmm":
		return ProtocolConcentrated, nil
	case "orderbook", "order_book", "clob":
		return ProtocolOrderBook, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedProtocol, s)
	}
}

// Pool is the capability set the router consumes. Implementations are value
// objects: UpdatedPoolAfterTrade returns a new pool and leaves the receiver
// untouched.
type Pool interface {
	UID() domain.PoolUID
	Protocol() Protocol
	CoinTypes() []domain.CoinType
	ExpectedGasCostPerHop() int64

	// TradeFees returns the fee rates charged on the input and output side.
	TradeFees(coinIn, coinOut domain.CoinType) (feeIn, feeOut float64)

	// SpotPrice is the marginal price of coinOut in units of coinIn.
	SpotPrice(coinIn, coinOut domain.CoinType, withFees bool) float64

	TradeAmountOut(coinIn, coinOut domain.CoinType, amountIn *big.Int, referrer domain.Address) (*big.Int, error)
	TradeAmountIn(coinIn, coinOut domain.CoinType, amountOut *big.Int, referrer domain.Address) (*big.Int, error)

	UpdatedPoolAfterTrade(coinIn domain.CoinType, amountIn *big.Int, coinOut domain.CoinType, amountOut *big.Int) (Pool, error)
}

// pairIndex resolves the direction of a two-coin pool. aToB is true when
// coinIn is the pool's first coin.
func pairIndex(coins [2]domain.CoinType, coinIn, coinOut domain.CoinType) (aToB bool, err error) {
	switch {
	case coinIn == coins[0] && coinOut == coins[1]:
		return true, nil
	case coinIn == coins[1] && coinOut == coins[0]:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s -> %s", ErrUnsupportedCoin, coinIn, coinOut)
	}
}

func validAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func feeRate(feeBps uint32) float64 {
	return float64(feeBps) / float64(BpsDenom)
}
