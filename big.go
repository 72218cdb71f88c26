package rational

import (
	"math"
	"math/big"
	"math/bits"
)

// BigRat returns r as a new big.Rat.
func (r Rational) BigRat() *big.Rat {
	return big.NewRat(r.num, r.Den())
}

// FromBigRat converts x to a Rational if both of its parts fit in 64 bits.
func FromBigRat(x *big.Rat) (Rational, error) {
	num, den := x.Num(), x.Denom()
	if !num.IsInt64() || !den.IsInt64() {
		return Rational{}, ErrOverflow
	}
	return normalize(num.Int64(), den.Int64())
}

// Float64 returns the nearest float64 to r and whether it is exact.
func (r Rational) Float64() (f float64, exact bool) {
	f, exact = r.BigRat().Float64()
	return f, exact
}

// FromFloat64 returns the exact value of v. It returns ErrOverflow if v is
// not finite or its exact fraction needs more than 63 bits in either part.
func FromFloat64(v float64) (Rational, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Rational{}, ErrOverflow
	}
	if v == 0 {
		return normalize(0, 1)
	}
	// v = f * 2^e with |f| in [0.5, 1), scaled to an integer mantissa.
	f, e := math.Frexp(v)
	neg := f < 0
	if neg {
		f = -f
	}
	m := uint64(f * (1 << 53))
	e -= 53
	tz := bits.TrailingZeros64(m)
	m >>= tz
	e += tz
	prec := bits.Len64(m)
	var num, den int64
	switch {
	case e >= 0:
		if prec+e > 63 {
			return Rational{}, ErrOverflow
		}
		num, den = int64(m<<e), 1
	case e <= -63:
		return Rational{}, ErrOverflow
	default:
		num, den = int64(m), 1<<-e
	}
	if neg {
		num = -num
	}
	return normalize(num, den)
}
