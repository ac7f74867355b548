package router

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/hxuan190/swap-router/internal/domain"
)

type assembleParams struct {
	mode        domain.SwapMode
	coinIn      domain.CoinType
	coinOut     domain.CoinType
	referrer    domain.Address
	externalFee *domain.ExternalFee
}

// assemble folds the splitter output into one trade plan. Amounts are summed
// in the splitter's frame (given side first) and flipped back to execution
// order for exact-out requests.
func assemble(res *splitResult, params assembleParams) (*domain.CompleteTradeRoute, error) {
	routes := make([]domain.TradeRoute, 0, len(res.routes))
	for _, r := range res.routes {
		if r.CoinIn.Amount != nil && r.CoinIn.Amount.Sign() > 0 {
			routes = append(routes, r)
		}
	}
	if len(routes) == 0 {
		return nil, ErrUnableToFindRoute
	}

	given, derived := new(big.Int), new(big.Int)
	var gas int64
	for _, r := range routes {
		given.Add(given, r.CoinIn.Amount)
		derived.Add(derived, r.CoinOut.Amount)
		gas += r.GasCost
	}

	givenF := new(big.Float).SetInt(given)
	var spot, feeGiven, feeDerived float64
	for _, r := range routes {
		share, _ := new(big.Float).Quo(new(big.Float).SetInt(r.CoinIn.Amount), givenF).Float64()
		spot += share * r.SpotPrice
		feeGiven += share * r.CoinIn.TradeFee
		feeDerived += share * r.CoinOut.TradeFee
	}

	amountIn, amountOut := given, derived
	feeIn, feeOut := feeGiven, feeDerived
	if params.mode == domain.SwapModeExactOut {
		for i := range routes {
			routes[i] = routes[i].Reversed()
		}
		amountIn, amountOut = derived, given
		feeIn, feeOut = feeDerived, feeGiven
	}

	complete := &domain.CompleteTradeRoute{
		CoinIn:            domain.CoinAmount{Type: params.coinIn, Amount: amountIn, TradeFee: feeIn},
		CoinOut:           domain.CoinAmount{Type: params.coinOut, Amount: new(big.Int).Set(amountOut), TradeFee: feeOut},
		Routes:            routes,
		SpotPrice:         spot,
		GasCost:           gas,
		Referrer:          params.referrer,
		ExceedsMaxGasCost: res.exceedsMaxGasCost,
		PriceImpactBps:    CalculatePriceImpact(spot, amountIn, amountOut),
	}

	if params.externalFee != nil {
		fee := *params.externalFee
		complete.ExternalFee = &fee
		complete.ExternalFeeAmount = externalFeeAmount(amountOut, fee.FeePercentage)
		complete.CoinOut.Amount.Sub(complete.CoinOut.Amount, complete.ExternalFeeAmount)
	}
	return complete, nil
}

// externalFeeAmount returns floor(feePercentage * amount).
func externalFeeAmount(amount *big.Int, feePercentage float64) *big.Int {
	return decimal.NewFromFloat(feePercentage).
		Mul(decimal.NewFromBigInt(amount, 0)).
		Floor().
		BigInt()
}

// grossUpForFee returns ceil(amount / (1 - feePercentage)), the amount to
// route so that deducting the external fee still leaves amount.
func grossUpForFee(amount *big.Int, feePercentage float64) *big.Int {
	if feePercentage <= 0 {
		return new(big.Int).Set(amount)
	}
	net := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(feePercentage)).Rat()
	num := new(big.Int).Mul(amount, net.Denom())
	q, r := new(big.Int).QuoRem(num, net.Num(), new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}
