package rational

import "math/bits"

// Add returns x+y. It returns ErrOverflow if the reduced sum does not fit.
func (x Rational) Add(y Rational) (Rational, error) {
	a, b := x.num, x.Den()
	c, d := y.num, y.Den()
	var ck checked
	g := int64(gcd(uint64(b), uint64(d)))
	if g == 1 {
		n := ck.add(ck.mul(a, d), ck.mul(c, b))
		den := ck.mul(b, d)
		if ck.overflow {
			return Rational{}, ErrOverflow
		}
		return normalize(n, den)
	}
	// Knuth, TAOCP Vol 2, 4.5.1: keep intermediates divided by gcd(b, d).
	t := ck.add(ck.mul(a, d/g), ck.mul(c, b/g))
	if ck.overflow {
		return Rational{}, ErrOverflow
	}
	g2 := int64(gcd(abs64(t), uint64(g)))
	den := ck.mul(b/g, d/g2)
	if ck.overflow {
		return Rational{}, ErrOverflow
	}
	return normalize(t/g2, den)
}

// Sub returns x-y.
func (x Rational) Sub(y Rational) (Rational, error) {
	return x.Add(y.Neg())
}

// Mul returns x*y. It returns ErrOverflow if the reduced product does not fit.
func (x Rational) Mul(y Rational) (Rational, error) {
	a, b := x.num, x.Den()
	c, d := y.num, y.Den()
	// Cross-reduce so a/g1 * c/g2 is already in lowest terms.
	g1 := int64(gcd(abs64(a), uint64(d)))
	g2 := int64(gcd(abs64(c), uint64(b)))
	var ck checked
	n := ck.mul(a/g1, c/g2)
	den := ck.mul(b/g2, d/g1)
	if ck.overflow {
		return Rational{}, ErrOverflow
	}
	return normalize(n, den)
}

// Div returns x/y. It returns ErrDivisionByZero if y is zero.
func (x Rational) Div(y Rational) (Rational, error) {
	if y.num == 0 {
		return Rational{}, ErrDivisionByZero
	}
	inv, err := y.Inv()
	if err != nil {
		return Rational{}, err
	}
	return x.Mul(inv)
}

// Pow returns r raised to the integer power n. Pow(0) is 1 for every r,
// negative powers of zero return ErrDivisionByZero.
func (r Rational) Pow(n int) (Rational, error) {
	base := r
	e := uint(n)
	if n < 0 {
		inv, err := r.Inv()
		if err != nil {
			return Rational{}, err
		}
		base = inv
		e = uint(-(n + 1)) + 1 // Magnitude of n, math.MinInt included.
	}
	result := MustNew(1, 1)
	var err error
	for e > 0 {
		if e&1 == 1 {
			result, err = result.Mul(base)
			if err != nil {
				return Rational{}, err
			}
		}
		e >>= 1
		if e > 0 {
			base, err = base.Mul(base)
			if err != nil {
				return Rational{}, err
			}
		}
	}
	return result, nil
}

// Cmp returns -1 if x < y, 0 if x == y and 1 if x > y.
// The cross products are computed with 128 bits so Cmp never overflows.
func (x Rational) Cmp(y Rational) int {
	sx, sy := x.Sign(), y.Sign()
	if sx != sy {
		if sx < sy {
			return -1
		}
		return 1
	}
	if sx == 0 {
		return 0
	}
	lh, ll := bits.Mul64(abs64(x.num), uint64(y.Den()))
	rh, rl := bits.Mul64(abs64(y.num), uint64(x.Den()))
	var c int
	switch {
	case lh < rh || (lh == rh && ll < rl):
		c = -1
	case lh > rh || ll > rl:
		c = 1
	}
	return c * sx
}

// Equal reports whether x and y have the same value.
func (x Rational) Equal(y Rational) bool { return x == y }

func (x Rational) Less(y Rational) bool           { return x.Cmp(y) < 0 }
func (x Rational) LessOrEqual(y Rational) bool    { return x.Cmp(y) <= 0 }
func (x Rational) Greater(y Rational) bool        { return x.Cmp(y) > 0 }
func (x Rational) GreaterOrEqual(y Rational) bool { return x.Cmp(y) >= 0 }

// checked records whether any operation in a chain of int64 operations
// overflowed. Results after an overflow are meaningless.
type checked struct {
	overflow bool
}

func (c *checked) mul(x, y int64) int64 {
	hi, lo := bits.Mul64(abs64(x), abs64(y))
	neg := (x < 0) != (y < 0)
	switch {
	case hi != 0 || lo > 1<<63 || (lo == 1<<63 && !neg):
		c.overflow = true
		return 0
	case neg:
		return int64(-lo)
	}
	return int64(lo)
}

func (c *checked) add(x, y int64) int64 {
	s := x + y
	if (x > 0 && y > 0 && s < 0) || (x < 0 && y < 0 && s >= 0) {
		c.overflow = true
		return 0
	}
	return s
}
