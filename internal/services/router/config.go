package router

import (
	"fmt"
	"strings"
)

// CutStrategy decides how fast the candidate list shrinks between slices.
type CutStrategy string

const (
	// CutQuadratic keeps half of the tail past the boundary every slice.
	CutQuadratic CutStrategy = "quadratic"
	// CutLinear trims the tail evenly so only the boundary is left for the
	// last slice.
	CutLinear CutStrategy = "linear"
)

func ParseCutStrategy(s string) (CutStrategy, error) {
	switch CutStrategy(strings.ToLower(s)) {
	case CutQuadratic, "":
		return CutQuadratic, nil
	case CutLinear:
		return CutLinear, nil
	default:
		return "", fmt.Errorf("%w: unknown cut strategy %q", ErrInvalidConfig, s)
	}
}

const (
	DefaultTradePartitionCount      = 10
	DefaultMinRoutesToCheck         = 20
	DefaultMaxGasCost         int64 = 500_000_000
	DefaultMaxRouteLength           = 3
	DefaultMaxExternalFee           = 0.5
)

type Config struct {
	// TradePartitionCount is the number of slices the total amount is cut into.
	TradePartitionCount int
	// MinRoutesToCheck is the floor of never-used routes kept when pruning.
	MinRoutesToCheck int
	// MaxGasCost is the aggregate gas ceiling of a complete route.
	MaxGasCost int64
	// MaxRouteLength is the hop bound used when a request does not set one.
	MaxRouteLength           int
	MaxExternalFeePercentage float64
	CutStrategy              CutStrategy
}

func DefaultConfig() Config {
	return Config{
		TradePartitionCount:      DefaultTradePartitionCount,
		MinRoutesToCheck:         DefaultMinRoutesToCheck,
		MaxGasCost:               DefaultMaxGasCost,
		MaxRouteLength:           DefaultMaxRouteLength,
		MaxExternalFeePercentage: DefaultMaxExternalFee,
		CutStrategy:              CutQuadratic,
	}
}

func (c Config) Validate() error {
	switch {
	case c.TradePartitionCount < 1:
		return fmt.Errorf("%w: trade partition count %d", ErrInvalidConfig, c.TradePartitionCount)
	case c.MinRoutesToCheck < 0:
		return fmt.Errorf("%w: min routes to check %d", ErrInvalidConfig, c.MinRoutesToCheck)
	case c.MaxGasCost <= 0:
		return fmt.Errorf("%w: max gas cost %d", ErrInvalidConfig, c.MaxGasCost)
	case c.MaxRouteLength < 1:
		return fmt.Errorf("%w: max route length %d", ErrInvalidConfig, c.MaxRouteLength)
	case c.MaxExternalFeePercentage <= 0 || c.MaxExternalFeePercentage > 1:
		return fmt.Errorf("%w: max external fee %v", ErrInvalidConfig, c.MaxExternalFeePercentage)
	}
	if _, err := ParseCutStrategy(string(c.CutStrategy)); err != nil {
		return err
	}
	return nil
}
