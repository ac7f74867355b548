package router

import (
	"math"
	"math/big"
)

// Price impact thresholds in basis points (bps)
const (
	PriceImpactLow      uint16 = 100  // 1%
	PriceImpactModerate uint16 = 300  // 3%
	PriceImpactHigh     uint16 = 500  // 5%
	PriceImpactExtreme  uint16 = 1000 // 10%
)

// PriceImpactSeverity represents the severity level of price impact
type PriceImpactSeverity string

const (
	SeverityNone     PriceImpactSeverity = "none"     // < 1%
	SeverityLow      PriceImpactSeverity = "low"      // 1-3%
	SeverityModerate PriceImpactSeverity = "moderate" // 3-5%
	SeverityHigh     PriceImpactSeverity = "high"     // 5-10%
	SeverityExtreme  PriceImpactSeverity = "extreme"  // > 10%
)

// GetPriceImpactSeverity returns the severity level based on price impact bps
func GetPriceImpactSeverity(priceImpactBps uint16) PriceImpactSeverity {
	switch {
	case priceImpactBps < PriceImpactLow:
		return SeverityNone
	case priceImpactBps < PriceImpactModerate:
		return SeverityLow
	case priceImpactBps < PriceImpactHigh:
		return SeverityModerate
	case priceImpactBps < PriceImpactExtreme:
		return SeverityHigh
	default:
		return SeverityExtreme
	}
}

// CalculatePriceImpact compares the executed price with the fee-less spot
// price, both in units of coin in per unit of coin out:
// impact = (1 - spot * amountOut / amountIn) * 10000
// Fees therefore count as impact. Positive slippage reports 0.
func CalculatePriceImpact(spotPrice float64, amountIn, amountOut *big.Int) uint16 {
	if amountIn == nil || amountOut == nil || amountIn.Sign() <= 0 || amountOut.Sign() <= 0 {
		return 0
	}
	if spotPrice <= 0 || math.IsInf(spotPrice, 0) || math.IsNaN(spotPrice) {
		return 0
	}

	ratio, _ := new(big.Rat).SetFrac(amountOut, amountIn).Float64()
	impact := (1 - spotPrice*ratio) * 10000
	if impact <= 0 {
		return 0
	}
	if impact >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(impact)
}

// GetPriceImpactWarning returns a user-friendly warning message based on impact
func GetPriceImpactWarning(priceImpactBps uint16) string {
	switch GetPriceImpactSeverity(priceImpactBps) {
	case SeverityLow:
		return "Low price impact"
	case SeverityModerate:
		return "Moderate price impact - consider reducing trade size"
	case SeverityHigh:
		return "High price impact - you may receive significantly less tokens"
	case SeverityExtreme:
		return "EXTREME price impact - this trade will severely impact the market price"
	default:
		return ""
	}
}
