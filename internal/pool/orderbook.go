package pool

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/hxuan190/swap-router/internal/domain"
)

const DefaultOrderBookGas int64 = 3_000_000

// Level is one price level. Price is quote units per base unit and Quantity
// is in base units.
type Level struct {
	Price    decimal.Decimal
	Quantity decimal.Decimal
}

// OrderBook trades against resting bids (base -> quote) and asks
// (quote -> base). The taker fee is charged on the input.
type OrderBook struct {
	uid     domain.PoolUID
	base    domain.CoinType
	quote   domain.CoinType
	bids    []Level // best (highest) first
	asks    []Level // best (lowest) first
	feeBps  uint32
	gasCost int64
}

func NewOrderBook(uid domain.PoolUID, base, quote domain.CoinType, bids, asks []Level, feeBps uint32, gasCost int64) (*OrderBook, error) {
	if uid == "" || base == "" || quote == "" || base == quote {
		return nil, fmt.Errorf("%w: order book %q needs distinct base and quote", ErrInvalidSpec, uid)
	}
	if feeBps >= BpsDenom {
		return nil, fmt.Errorf("%w: order book %q fee %d bps", ErrInvalidSpec, uid, feeBps)
	}
	levels := func(in []Level, desc bool) ([]Level, error) {
		out := make([]Level, 0, len(in))
		for _, l := range in {
			if !l.Price.IsPositive() || l.Quantity.IsNegative() {
				return nil, fmt.Errorf("%w: order book %q has level %s@%s", ErrInvalidSpec, uid, l.Quantity, l.Price)
			}
			if l.Quantity.IsZero() {
				continue
			}
			out = append(out, l)
		}
		sort.SliceStable(out, func(i, j int) bool {
			if desc {
				return out[i].Price.GreaterThan(out[j].Price)
			}
			return out[i].Price.LessThan(out[j].Price)
		})
		return out, nil
	}

	b, err := levels(bids, true)
	if err != nil {
		return nil, err
	}
	a, err := levels(asks, false)
	if err != nil {
		return nil, err
	}
	if gasCost <= 0 {
		gasCost = DefaultOrderBookGas
	}
	return &OrderBook{uid: uid, base: base, quote: quote, bids: b, asks: a, feeBps: feeBps, gasCost: gasCost}, nil
}

func (p *OrderBook) UID() domain.PoolUID          { return p.uid }
func (p *OrderBook) Protocol() Protocol           { return ProtocolOrderBook }
func (p *OrderBook) CoinTypes() []domain.CoinType { return []domain.CoinType{p.base, p.quote} }
func (p *OrderBook) ExpectedGasCostPerHop() int64 { return p.gasCost }

func (p *OrderBook) Bids() []Level { return append([]Level(nil), p.bids...) }
func (p *OrderBook) Asks() []Level { return append([]Level(nil), p.asks...) }

func (p *OrderBook) TradeFees(coinIn, coinOut domain.CoinType) (float64, float64) {
	return feeRate(p.feeBps), 0
}

// sellBase reports whether coinIn is the base coin.
func (p *OrderBook) sellBase(coinIn, coinOut domain.CoinType) (bool, error) {
	return pairIndex([2]domain.CoinType{p.base, p.quote}, coinIn, coinOut)
}

func (p *OrderBook) SpotPrice(coinIn, coinOut domain.CoinType, withFees bool) float64 {
	sellBase, err := p.sellBase(coinIn, coinOut)
	if err != nil {
		return 0
	}

	var price float64
	if sellBase {
		if len(p.bids) == 0 {
			return 0
		}
		price = decimal.NewFromInt(1).Div(p.bids[0].Price).InexactFloat64()
	} else {
		if len(p.asks) == 0 {
			return 0
		}
		price = p.asks[0].Price.InexactFloat64()
	}
	if withFees {
		price /= 1 - feeRate(p.feeBps)
	}
	return price
}

func (p *OrderBook) TradeAmountOut(coinIn, coinOut domain.CoinType, amountIn *big.Int, _ domain.Address) (*big.Int, error) {
	sellBase, err := p.sellBase(coinIn, coinOut)
	if err != nil {
		return nil, err
	}
	if err := validAmount(amountIn); err != nil {
		return nil, err
	}

	inEff := decimal.NewFromBigInt(amountAfterFee(amountIn, p.feeBps), 0)
	out, _, err := p.fill(inEff, sellBase)
	if err != nil {
		return nil, err
	}
	return out.Floor().BigInt(), nil
}

func (p *OrderBook) TradeAmountIn(coinIn, coinOut domain.CoinType, amountOut *big.Int, _ domain.Address) (*big.Int, error) {
	sellBase, err := p.sellBase(coinIn, coinOut)
	if err != nil {
		return nil, err
	}
	if err := validAmount(amountOut); err != nil {
		return nil, err
	}

	remaining := decimal.NewFromBigInt(amountOut, 0)
	in := decimal.Zero
	if sellBase {
		// want quote out: walk bids, paying base
		for _, l := range p.bids {
			value := l.Quantity.Mul(l.Price)
			if remaining.GreaterThanOrEqual(value) {
				in = in.Add(l.Quantity)
				remaining = remaining.Sub(value)
			} else {
				in = in.Add(remaining.Div(l.Price))
				remaining = decimal.Zero
			}
			if remaining.IsZero() {
				break
			}
		}
	} else {
		// want base out: walk asks, paying quote
		for _, l := range p.asks {
			take := decimal.Min(remaining, l.Quantity)
			in = in.Add(take.Mul(l.Price))
			remaining = remaining.Sub(take)
			if remaining.IsZero() {
				break
			}
		}
	}
	if remaining.IsPositive() {
		return nil, ErrInsufficientLiquidity
	}
	return amountBeforeFee(in.Ceil().BigInt(), p.feeBps), nil
}

func (p *OrderBook) UpdatedPoolAfterTrade(coinIn domain.CoinType, amountIn *big.Int, coinOut domain.CoinType, amountOut *big.Int) (Pool, error) {
	sellBase, err := p.sellBase(coinIn, coinOut)
	if err != nil {
		return nil, err
	}
	if amountIn == nil || amountOut == nil || amountIn.Sign() < 0 || amountOut.Sign() < 0 {
		return nil, ErrInvalidAmount
	}

	inEff := decimal.NewFromBigInt(amountAfterFee(amountIn, p.feeBps), 0)
	_, remainingLevels, err := p.fill(inEff, sellBase)
	if err != nil {
		return nil, err
	}

	next := *p
	if sellBase {
		next.bids = remainingLevels
		next.asks = append([]Level(nil), p.asks...)
	} else {
		next.asks = remainingLevels
		next.bids = append([]Level(nil), p.bids...)
	}
	return &next, nil
}

// fill walks the opposite side of the book with a net input and returns the
// unrounded output plus the levels left afterwards.
func (p *OrderBook) fill(inEff decimal.Decimal, sellBase bool) (decimal.Decimal, []Level, error) {
	book := p.asks
	if sellBase {
		book = p.bids
	}

	out := decimal.Zero
	remaining := inEff
	left := make([]Level, 0, len(book))
	for i, l := range book {
		if remaining.IsZero() {
			left = append(left, book[i:]...)
			break
		}

		var take decimal.Decimal
		if sellBase {
			take = decimal.Min(remaining, l.Quantity)
			out = out.Add(take.Mul(l.Price))
			remaining = remaining.Sub(take)
		} else {
			cost := l.Quantity.Mul(l.Price)
			if remaining.GreaterThanOrEqual(cost) {
				take = l.Quantity
				remaining = remaining.Sub(cost)
			} else {
				take = remaining.Div(l.Price)
				remaining = decimal.Zero
			}
			out = out.Add(take)
		}

		if rest := l.Quantity.Sub(take); rest.IsPositive() {
			left = append(left, Level{Price: l.Price, Quantity: rest})
		}
	}
	if remaining.IsPositive() {
		return decimal.Zero, nil, ErrInsufficientLiquidity
	}
	return out, left, nil
}
