package domain

import (
	"math/big"
)

type CoinAmount struct {
	Type     CoinType
	Amount   *big.Int
	TradeFee float64
}

func (c CoinAmount) Clone() CoinAmount {
	out := c
	if c.Amount != nil {
		out.Amount = new(big.Int).Set(c.Amount)
	}
	return out
}

// TradePath is a single hop through one pool.
type TradePath struct {
	PoolUID   PoolUID
	Protocol  string
	CoinIn    CoinAmount
	CoinOut   CoinAmount
	SpotPrice float64
	GasCost   int64
}

func (p TradePath) Clone() TradePath {
	out := p
	out.CoinIn = p.CoinIn.Clone()
	out.CoinOut = p.CoinOut.Clone()
	return out
}

// TradeRoute is an ordered list of hops from the overall coin in to the
// overall coin out. CoinIn/CoinOut hold the route's own net amounts.
type TradeRoute struct {
	Paths     []TradePath
	CoinIn    CoinAmount
	CoinOut   CoinAmount
	SpotPrice float64
	GasCost   int64
}

func (r TradeRoute) Clone() TradeRoute {
	out := r
	out.Paths = make([]TradePath, len(r.Paths))
	for i := range r.Paths {
		out.Paths[i] = r.Paths[i].Clone()
	}
	out.CoinIn = r.CoinIn.Clone()
	out.CoinOut = r.CoinOut.Clone()
	return out
}

// Reversed returns a copy with hop order flipped and coin in/out swapped on
// the route and on every hop. Applying it twice yields the original route.
func (r TradeRoute) Reversed() TradeRoute {
	out := r.Clone()
	n := len(out.Paths)
	for i := 0; i < n/2; i++ {
		out.Paths[i], out.Paths[n-1-i] = out.Paths[n-1-i], out.Paths[i]
	}
	for i := range out.Paths {
		out.Paths[i].CoinIn, out.Paths[i].CoinOut = out.Paths[i].CoinOut, out.Paths[i].CoinIn
	}
	out.CoinIn, out.CoinOut = out.CoinOut, out.CoinIn
	return out
}

// PoolUIDs lists the pools used by the route in hop order.
func (r TradeRoute) PoolUIDs() []PoolUID {
	uids := make([]PoolUID, len(r.Paths))
	for i := range r.Paths {
		uids[i] = r.Paths[i].PoolUID
	}
	return uids
}

// CompleteTradeRoute is the full trade plan handed to callers and to the
// transaction builder.
//
// CoinOut.Amount is net of ExternalFeeAmount in both swap modes. Routes keep
// their gross outputs, so with an external fee the routes' CoinOut amounts
// sum to CoinOut.Amount + ExternalFeeAmount. For exact-out requests the
// routed amount is grossed up first, so CoinOut.Amount is at least the
// requested amount.
type CompleteTradeRoute struct {
	CoinIn    CoinAmount
	CoinOut   CoinAmount
	Routes    []TradeRoute
	SpotPrice float64
	GasCost   int64

	Referrer          Address
	ExternalFee       *ExternalFee
	ExternalFeeAmount *big.Int

	// ExceedsMaxGasCost is set when at least one slice had to be placed on a
	// route over the gas ceiling because no in-budget route could take it.
	ExceedsMaxGasCost bool
	PriceImpactBps    uint16
}
