package domain

import (
	"fmt"
	"strings"
)

// CoinType is the fully qualified type name of a coin, e.g. "0x2::sui::SUI".
type CoinType string

// PoolUID identifies a pool inside one pool snapshot.
type PoolUID string

// Address is an on-chain account address.
type Address string

type SwapMode uint8

const (
	SwapModeExactIn SwapMode = iota
	SwapModeExactOut
)

func (m SwapMode) String() string {
	switch m {
	case SwapModeExactIn:
		return "ExactIn"
	case SwapModeExactOut:
		return "ExactOut"
	default:
		return "UNKNOWN"
	}
}

func ParseSwapMode(s string) (SwapMode, error) {
	switch strings.ToLower(s) {
	case "exactin", "exact_in", "in":
		return SwapModeExactIn, nil
	case "exactout", "exact_out", "out":
		return SwapModeExactOut, nil
	default:
		return 0, fmt.Errorf("unknown swap mode %q", s)
	}
}

// ExternalFee is an integrator fee taken from the final coin out.
type ExternalFee struct {
	Recipient     Address `json:"recipient" yaml:"recipient"`
	FeePercentage float64 `json:"feePercentage" yaml:"fee_percentage"`
}
