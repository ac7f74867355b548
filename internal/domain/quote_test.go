package domain

import (
	"math/big"
	"reflect"
	"testing"
)

func amt(c CoinType, v int64) CoinAmount {
	return CoinAmount{Type: c, Amount: big.NewInt(v)}
}

func twoHopRoute() TradeRoute {
	return TradeRoute{
		Paths: []TradePath{
			{PoolUID: "p1", CoinIn: amt("A", 100), CoinOut: amt("B", 90), GasCost: 1},
			{PoolUID: "p2", CoinIn: amt("B", 90), CoinOut: amt("C", 80), GasCost: 2},
		},
		CoinIn:  amt("A", 100),
		CoinOut: amt("C", 80),
		GasCost: 3,
	}
}

func TestTradeRouteReversed(t *testing.T) {
	r := twoHopRoute()
	rev := r.Reversed()

	if got := rev.PoolUIDs(); !reflect.DeepEqual(got, []PoolUID{"p2", "p1"}) {
		t.Fatalf("reversed pool order = %v", got)
	}
	if rev.CoinIn.Type != "C" || rev.CoinOut.Type != "A" {
		t.Errorf("reversed route coins = %s -> %s", rev.CoinIn.Type, rev.CoinOut.Type)
	}
	first := rev.Paths[0]
	if first.CoinIn.Type != "C" || first.CoinOut.Type != "B" {
		t.Errorf("first reversed hop = %s -> %s", first.CoinIn.Type, first.CoinOut.Type)
	}
	if !reflect.DeepEqual(rev.Reversed(), r) {
		t.Errorf("double reversal should restore the route")
	}
}

func TestTradeRouteCloneIsDeep(t *testing.T) {
	r := twoHopRoute()
	c := r.Clone()

	c.Paths[0].CoinIn.Amount.SetInt64(1)
	c.CoinOut.Amount.SetInt64(1)
	c.Paths[1].PoolUID = "changed"

	if r.Paths[0].CoinIn.Amount.Int64() != 100 {
		t.Errorf("clone shares hop amounts")
	}
	if r.CoinOut.Amount.Int64() != 80 {
		t.Errorf("clone shares route amounts")
	}
	if r.Paths[1].PoolUID != "p2" {
		t.Errorf("clone shares paths slice")
	}

	var empty CoinAmount
	if empty.Clone().Amount != nil {
		t.Errorf("nil amount should stay nil")
	}
}

func TestParseSwapMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SwapMode
		wantErr bool
	}{
		{"ExactIn", SwapModeExactIn, false},
		{"exact_out", SwapModeExactOut, false},
		{"OUT", SwapModeExactOut, false},
		{"sideways", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseSwapMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseSwapMode(%q) err = %v", tt.in, err)
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseSwapMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if SwapMode(9).String() != "UNKNOWN" {
		t.Errorf("unexpected string for invalid mode")
	}
}
