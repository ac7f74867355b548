package pool

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"

	"github.com/hxuan190/swap-router/internal/domain"
)

const DefaultConcentratedGas int64 = 2_500_000

// Concentrated is a concentrated-liquidity pool reduced to its active range.
// sqrtPriceX64 is sqrt(B per A) in Q64.64. A trade that would push the price
// outside [sqrtLowerX64, sqrtUpperX64] fails with ErrInsufficientLiquidity.
type Concentrated struct {
	uid          domain.PoolUID
	coins        [2]domain.CoinType
	sqrtPriceX64 *uint256.Int
	liquidity    *uint256.Int
	sqrtLowerX64 *uint256.Int
	sqrtUpperX64 *uint256.Int
	feeBps       uint32
	gasCost      int64
}

func NewConcentrated(
	uid domain.PoolUID,
	coinA, coinB domain.CoinType,
	sqrtPriceX64, liquidity, sqrtLowerX64, sqrtUpperX64 *big.Int,
	feeBps uint32,
	gasCost int64,
) (*Concentrated, error) {
	if uid == "" || coinA == "" || coinB == "" || coinA == coinB {
		return nil, fmt.Errorf("%w: concentrated pool %q needs two distinct coins", ErrInvalidSpec, uid)
	}
	if feeBps >= BpsDenom {
		return nil, fmt.Errorf("%w: concentrated pool %q fee %d bps", ErrInvalidSpec, uid, feeBps)
	}

	sqrtP, o1 := u256FromBig(sqrtPriceX64)
	liq, o2 := u256FromBig(liquidity)
	lower, o3 := u256FromBig(sqrtLowerX64)
	upper, o4 := u256FromBig(sqrtUpperX64)
	if o1 || o2 || o3 || o4 {
		return nil, fmt.Errorf("%w: concentrated pool %q has out of range state", ErrInvalidSpec, uid)
	}
	if sqrtP.IsZero() || lower.Gt(sqrtP) || upper.Lt(sqrtP) {
		return nil, fmt.Errorf("%w: concentrated pool %q sqrt price outside its range", ErrInvalidSpec, uid)
	}
	if gasCost <= 0 {
		gasCost = DefaultConcentratedGas
	}

	return &Concentrated{
		uid:          uid,
		coins:        [2]domain.CoinType{coinA, coinB},
		sqrtPriceX64: sqrtP,
		liquidity:    liq,
		sqrtLowerX64: lower,
		sqrtUpperX64: upper,
		feeBps:       feeBps,
		gasCost:      gasCost,
	}, nil
}

func (p *Concentrated) UID() domain.PoolUID          { return p.uid }
func (p *Concentrated) Protocol() Protocol           { return ProtocolConcentrated }
func (p *Concentrated) CoinTypes() []domain.CoinType { return []domain.CoinType{p.coins[0], p.coins[1]} }
func (p *Concentrated) ExpectedGasCostPerHop() int64 { return p.gasCost }

func (p *Concentrated) SqrtPriceX64() *big.Int { return p.sqrtPriceX64.ToBig() }

func (p *Concentrated) TradeFees(coinIn, coinOut domain.CoinType) (float64, float64) {
	return feeRate(p.feeBps), 0
}

func (p *Concentrated) SpotPrice(coinIn, coinOut domain.CoinType, withFees bool) float64 {
	aToB, err := pairIndex(p.coins, coinIn, coinOut)
	if err != nil {
		return 0
	}
	priceBPerA := sqrtX64ToPrice(p.sqrtPriceX64)
	if priceBPerA == 0 {
		return 0
	}

	price := priceBPerA
	if aToB {
		price = 1 / priceBPerA
	}
	if withFees {
		price /= 1 - feeRate(p.feeBps)
	}
	return price
}

func (p *Concentrated) TradeAmountOut(coinIn, coinOut domain.CoinType, amountIn *big.Int, _ domain.Address) (*big.Int, error) {
	aToB, err := pairIndex(p.coins, coinIn, coinOut)
	if err != nil {
		return nil, err
	}
	if err := validAmount(amountIn); err != nil {
		return nil, err
	}

	inEff, overflow := u256FromBig(amountAfterFee(amountIn, p.feeBps))
	if overflow {
		return nil, ErrInsufficientLiquidity
	}
	_, out, err := p.swapExactIn(inEff, aToB)
	if err != nil {
		return nil, err
	}
	return out.ToBig(), nil
}

func (p *Concentrated) TradeAmountIn(coinIn, coinOut domain.CoinType, amountOut *big.Int, _ domain.Address) (*big.Int, error) {
	aToB, err := pairIndex(p.coins, coinIn, coinOut)
	if err != nil {
		return nil, err
	}
	if err := validAmount(amountOut); err != nil {
		return nil, err
	}

	out, overflow := u256FromBig(amountOut)
	if overflow {
		return nil, ErrInsufficientLiquidity
	}
	inEff, err := p.swapExactOut(out, aToB)
	if err != nil {
		return nil, err
	}
	return amountBeforeFee(inEff.ToBig(), p.feeBps), nil
}

func (p *Concentrated) UpdatedPoolAfterTrade(coinIn domain.CoinType, amountIn *big.Int, coinOut domain.CoinType, amountOut *big.Int) (Pool, error) {
	aToB, err := pairIndex(p.coins, coinIn, coinOut)
	if err != nil {
		return nil, err
	}
	if amountIn == nil || amountOut == nil || amountIn.Sign() < 0 || amountOut.Sign() < 0 {
		return nil, ErrInvalidAmount
	}

	next := *p
	inEff, overflow := u256FromBig(amountAfterFee(amountIn, p.feeBps))
	if overflow {
		return nil, ErrInsufficientLiquidity
	}
	if inEff.IsZero() {
		return &next, nil
	}
	sqrtNext, _, err := p.swapExactIn(inEff, aToB)
	if err != nil {
		return nil, err
	}
	next.sqrtPriceX64 = sqrtNext
	return &next, nil
}

// swapExactIn moves the price by a net input and returns the new sqrt price
// and the output. Rounding always favours the pool.
func (p *Concentrated) swapExactIn(inEff *uint256.Int, aToB bool) (*uint256.Int, *uint256.Int, error) {
	if p.liquidity.IsZero() {
		return nil, nil, ErrInsufficientLiquidity
	}
	L, sqrtP := p.liquidity, p.sqrtPriceX64

	if aToB {
		// sqrtNext = L * sqrtP / (L + inEff * sqrtP / 2^64)
		delta, overflow := mulDiv(inEff, sqrtP, u256Q64)
		if overflow {
			return nil, nil, ErrInsufficientLiquidity
		}
		denom, carry := new(uint256.Int).AddOverflow(L, delta)
		if carry {
			return nil, nil, ErrInsufficientLiquidity
		}
		sqrtNext, overflow := mulDivRoundingUp(L, sqrtP, denom)
		if overflow || sqrtNext.Lt(p.sqrtLowerX64) {
			return nil, nil, ErrInsufficientLiquidity
		}
		out, _ := mulDiv(L, new(uint256.Int).Sub(sqrtP, sqrtNext), u256Q64)
		return sqrtNext, out, nil
	}

	// sqrtNext = sqrtP + inEff * 2^64 / L
	delta, overflow := mulDiv(inEff, u256Q64, L)
	if overflow {
		return nil, nil, ErrInsufficientLiquidity
	}
	sqrtNext, carry := new(uint256.Int).AddOverflow(sqrtP, delta)
	if carry || sqrtNext.Gt(p.sqrtUpperX64) {
		return nil, nil, ErrInsufficientLiquidity
	}
	// out = L * (sqrtNext - sqrtP) * 2^64 / (sqrtNext * sqrtP)
	tmp, _ := mulDiv(L, new(uint256.Int).Sub(sqrtNext, sqrtP), sqrtNext)
	out, _ := mulDiv(tmp, u256Q64, sqrtP)
	return sqrtNext, out, nil
}

// swapExactOut returns the net input (before fees) needed to take out.
func (p *Concentrated) swapExactOut(out *uint256.Int, aToB bool) (*uint256.Int, error) {
	if p.liquidity.IsZero() {
		return nil, ErrInsufficientLiquidity
	}
	L, sqrtP := p.liquidity, p.sqrtPriceX64

	if aToB {
		delta, overflow := mulDivRoundingUp(out, u256Q64, L)
		if overflow || !delta.Lt(sqrtP) {
			return nil, ErrInsufficientLiquidity
		}
		sqrtNext := new(uint256.Int).Sub(sqrtP, delta)
		if sqrtNext.Lt(p.sqrtLowerX64) || sqrtNext.IsZero() {
			return nil, ErrInsufficientLiquidity
		}
		tmp, _ := mulDivRoundingUp(L, new(uint256.Int).Sub(sqrtP, sqrtNext), sqrtNext)
		inEff, overflow := mulDivRoundingUp(tmp, u256Q64, sqrtP)
		if overflow {
			return nil, ErrInsufficientLiquidity
		}
		return inEff, nil
	}

	sub, overflow := mulDivRoundingUp(out, sqrtP, u256Q64)
	if overflow || !sub.Lt(L) {
		return nil, ErrInsufficientLiquidity
	}
	denom := new(uint256.Int).Sub(L, sub)
	sqrtNext, overflow := mulDivRoundingUp(L, sqrtP, denom)
	if overflow || sqrtNext.Gt(p.sqrtUpperX64) {
		return nil, ErrInsufficientLiquidity
	}
	inEff, overflow := mulDivRoundingUp(L, new(uint256.Int).Sub(sqrtNext, sqrtP), u256Q64)
	if overflow {
		return nil, ErrInsufficientLiquidity
	}
	return inEff, nil
}
