package pool

import (
	"math/big"
	"sync"

	"github.com/holiman/uint256"
)

const BpsDenom uint32 = 10000

var (
	bigBpsDenom = big.NewInt(int64(BpsDenom))
	bigOne      = big.NewInt(1)

	// Q64 = 2^64 for fixed-point sqrt prices
	u256Q64 = new(uint256.Int).Lsh(uint256.NewInt(1), 64)
	q64F    = new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), 64))
)

var uint256Pool = sync.Pool{
	New: func() interface{} {
		return new(uint256.Int)
	},
}

func getU256() *uint256.Int {
	return uint256Pool.Get().(*uint256.Int)
}

func putU256(vs ...*uint256.Int) {
	for _, v := range vs {
		v.Clear()
		uint256Pool.Put(v)
	}
}

// ceilDiv returns ceil(a / b) for non-negative a and positive b.
func ceilDiv(a, b *big.Int) *big.Int {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, bigOne)
	}
	return q
}

// amountAfterFee returns floor(amount * (10000 - feeBps) / 10000).
func amountAfterFee(amount *big.Int, feeBps uint32) *big.Int {
	out := new(big.Int).Mul(amount, big.NewInt(int64(BpsDenom-feeBps)))
	return out.Quo(out, bigBpsDenom)
}

// amountBeforeFee is the smallest gross amount whose amountAfterFee is at
// least net.
func amountBeforeFee(net *big.Int, feeBps uint32) *big.Int {
	num := new(big.Int).Mul(net, bigBpsDenom)
	return ceilDiv(num, big.NewInt(int64(BpsDenom-feeBps)))
}

// mulDiv computes floor(x * y / d) with a 512-bit intermediate.
func mulDiv(x, y, d *uint256.Int) (*uint256.Int, bool) {
	if d.IsZero() {
		return new(uint256.Int), true
	}
	return new(uint256.Int).MulDivOverflow(x, y, d)
}

// mulDivRoundingUp computes ceil(x * y / d) with a 512-bit intermediate.
func mulDivRoundingUp(x, y, d *uint256.Int) (*uint256.Int, bool) {
	z, overflow := mulDiv(x, y, d)
	if overflow {
		return z, true
	}
	rem := getU256()
	defer putU256(rem)
	if !rem.MulMod(x, y, d).IsZero() {
		if z.Eq(maxU256) {
			return z, true
		}
		z.AddUint64(z, 1)
	}
	return z, false
}

var maxU256 = new(uint256.Int).SetAllOne()

// u256FromBig converts b, reporting overflow for values that need more
// than 256 bits or are negative.
func u256FromBig(b *big.Int) (*uint256.Int, bool) {
	if b == nil || b.Sign() < 0 {
		return new(uint256.Int), true
	}
	return uint256.FromBig(b)
}

// sqrtX64ToPrice converts a Q64.64 sqrt price into price = (sqrt / 2^64)^2.
func sqrtX64ToPrice(sqrtPriceX64 *uint256.Int) float64 {
	f := new(big.Float).SetInt(sqrtPriceX64.ToBig())
	f.Quo(f, q64F)
	f.Mul(f, f)
	price, _ := f.Float64()
	return price
}
