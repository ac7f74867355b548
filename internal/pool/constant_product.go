package pool

import (
	"fmt"
	"math/big"

	"github.com/hxuan190/swap-router/internal/domain"
)

const DefaultConstantProductGas int64 = 1_000_000

// ConstantProduct is an x*y=k pool. The fee is taken from the input and
// does not stay in the reserves.
type ConstantProduct struct {
	uid      domain.PoolUID
	coins    [2]domain.CoinType
	reserves [2]*big.Int
	feeBps   uint32
	gasCost  int64
}

func NewConstantProduct(uid domain.PoolUID, coinA, coinB domain.CoinType, reserveA, reserveB *big.Int, feeBps uint32, gasCost int64) (*ConstantProduct, error) {
	if uid == "" || coinA == "" || coinB == "" || coinA == coinB {
		return nil, fmt.Errorf("%w: constant product pool %q needs two distinct coins", ErrInvalidSpec, uid)
	}
	if reserveA == nil || reserveB == nil || reserveA.Sign() < 0 || reserveB.Sign() < 0 {
		return nil, fmt.Errorf("%w: constant product pool %q has invalid reserves", ErrInvalidSpec, uid)
	}
	if feeBps >= BpsDenom {
		return nil, fmt.Errorf("%w: constant product pool %q fee %d bps", ErrInvalidSpec, uid, feeBps)
	}
	if gasCost <= 0 {
		gasCost = DefaultConstantProductGas
	}
	return &ConstantProduct{
		uid:      uid,
		coins:    [2]domain.CoinType{coinA, coinB},
		reserves: [2]*big.Int{new(big.Int).Set(reserveA), new(big.Int).Set(reserveB)},
		feeBps:   feeBps,
		gasCost:  gasCost,
	}, nil
}

func (p *ConstantProduct) UID() domain.PoolUID          { return p.uid }
func (p *ConstantProduct) Protocol() Protocol           { return ProtocolConstantProduct }
func (p *ConstantProduct) CoinTypes() []domain.CoinType { return []domain.CoinType{p.coins[0], p.coins[1]} }
func (p *ConstantProduct) ExpectedGasCostPerHop() int64 { return p.gasCost }

// Reserves returns copies of the current reserves in coin order.
func (p *ConstantProduct) Reserves() (*big.Int, *big.Int) {
	return new(big.Int).Set(p.reserves[0]), new(big.Int).Set(p.reserves[1])
}

func (p *ConstantProduct) TradeFees(coinIn, coinOut domain.CoinType) (float64, float64) {
	return feeRate(p.feeBps), 0
}

func (p *ConstantProduct) sides(coinIn, coinOut domain.CoinType) (in, out int, err error) {
	aToB, err := pairIndex(p.coins, coinIn, coinOut)
	if err != nil {
		return 0, 0, err
	}
	if aToB {
		return 0, 1, nil
	}
	return 1, 0, nil
}

func (p *ConstantProduct) SpotPrice(coinIn, coinOut domain.CoinType, withFees bool) float64 {
	in, out, err := p.sides(coinIn, coinOut)
	if err != nil || p.reserves[out].Sign() == 0 {
		return 0
	}
	price, _ := new(big.Rat).SetFrac(p.reserves[in], p.reserves[out]).Float64()
	if withFees {
		price /= 1 - feeRate(p.feeBps)
	}
	return price
}

func (p *ConstantProduct) TradeAmountOut(coinIn, coinOut domain.CoinType, amountIn *big.Int, _ domain.Address) (*big.Int, error) {
	in, out, err := p.sides(coinIn, coinOut)
	if err != nil {
		return nil, err
	}
	if err := validAmount(amountIn); err != nil {
		return nil, err
	}
	rIn, rOut := p.reserves[in], p.reserves[out]
	if rIn.Sign() == 0 || rOut.Sign() == 0 {
		return nil, ErrInsufficientLiquidity
	}

	inEff := amountAfterFee(amountIn, p.feeBps)
	num := new(big.Int).Mul(rOut, inEff)
	den := new(big.Int).Add(rIn, inEff)
	return num.Quo(num, den), nil
}

func (p *ConstantProduct) TradeAmountIn(coinIn, coinOut domain.CoinType, amountOut *big.Int, _ domain.Address) (*big.Int, error) {
	in, out, err := p.sides(coinIn, coinOut)
	if err != nil {
		return nil, err
	}
	if err := validAmount(amountOut); err != nil {
		return nil, err
	}
	rIn, rOut := p.reserves[in], p.reserves[out]
	if rIn.Sign() == 0 || amountOut.Cmp(rOut) >= 0 {
		return nil, ErrInsufficientLiquidity
	}

	num := new(big.Int).Mul(rIn, amountOut)
	inEff := ceilDiv(num, new(big.Int).Sub(rOut, amountOut))
	return amountBeforeFee(inEff, p.feeBps), nil
}

func (p *ConstantProduct) UpdatedPoolAfterTrade(coinIn domain.CoinType, amountIn *big.Int, coinOut domain.CoinType, amountOut *big.Int) (Pool, error) {
	in, out, err := p.sides(coinIn, coinOut)
	if err != nil {
		return nil, err
	}
	if amountIn == nil || amountOut == nil || amountIn.Sign() < 0 || amountOut.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	if amountOut.Cmp(p.reserves[out]) > 0 {
		return nil, ErrInsufficientLiquidity
	}

	next := *p
	next.reserves[in] = new(big.Int).Add(p.reserves[in], amountAfterFee(amountIn, p.feeBps))
	next.reserves[out] = new(big.Int).Sub(p.reserves[out], amountOut)
	return &next, nil
}
