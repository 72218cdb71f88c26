// Package rational implements exact rational numbers with fixed-width
// numerator and denominator.
//
// A Rational is always stored in lowest terms with a positive denominator,
// so two values are equal exactly when their fields are equal and the ==
// operator may be used on them directly. The zero value is 0/1.
package rational

import (
	"errors"
	"math"
)

var (
	// ErrDivideByZero is returned when a value is constructed with a zero denominator.
	ErrDivideByZero = errors.New("rational: zero denominator")
	// ErrDivisionByZero is returned when dividing by a zero-valued rational.
	ErrDivisionByZero = errors.New("rational: division by zero")
	// ErrOverflow is returned when a result does not fit in 64 bits.
	ErrOverflow = errors.New("rational: int64 overflow")
	// ErrSyntax is returned when text is not of the form N/D.
	ErrSyntax = errors.New("rational: invalid syntax")

	errShortBuf = errors.New("rational: buffer too short")
)

// Fraction is implemented by types that can be read as a
// numerator/denominator pair. Rational implements it.
type Fraction interface {
	Fraction() (numerator, denominator int64)
}

// Rational is an exact fraction in canonical form.
//
// The denominator is stored minus one so the zero value is the valid 0/1.
// The numerator never holds math.MinInt64, so Neg cannot overflow.
type Rational struct {
	num         int64
	denMinusOne int64
}

// New returns num/den reduced to lowest terms with the sign on the numerator.
// It returns ErrDivideByZero if den is zero.
func New(num, den int64) (Rational, error) {
	return normalize(num, den)
}

// MustNew is like New but panics on error.
func MustNew(num, den int64) Rational {
	r, err := normalize(num, den)
	if err != nil {
		panic(err)
	}
	return r
}

// FromInt returns the integer i as i/1. It panics with ErrOverflow if i is
// math.MinInt64.
func FromInt(i int64) Rational {
	return MustNew(i, 1)
}

// Normalize returns the canonical Rational for any numerator/denominator pair.
func Normalize(f Fraction) (Rational, error) {
	return normalize(f.Fraction())
}

// normalize is the single place canonical values are produced.
func normalize(n, d int64) (Rational, error) {
	if d == 0 {
		return Rational{}, ErrDivideByZero
	}
	un, ud := abs64(n), abs64(d)
	g := gcd(un, ud)
	un, ud = un/g, ud/g
	if un > math.MaxInt64 || ud > math.MaxInt64 {
		return Rational{}, ErrOverflow
	}
	num := int64(un)
	if (n < 0) != (d < 0) {
		num = -num
	}
	return Rational{num: num, denMinusOne: int64(ud) - 1}, nil
}

// gcd returns the greatest common divisor of a and b. gcd(a, 0) == a.
func gcd(a, b uint64) uint64 {
	if b == 0 {
		return a
	}
	return gcd(b, a%b)
}

func abs64(x int64) uint64 {
	if x < 0 {
		return uint64(-x) // -MinInt64 wraps to MinInt64 which converts to 1<<63.
	}
	return uint64(x)
}

// Num returns the numerator of r. Its sign is the sign of r.
func (r Rational) Num() int64 { return r.num }

// Den returns the denominator of r, always positive.
func (r Rational) Den() int64 { return r.denMinusOne + 1 }

// Fraction returns the numerator and denominator of r.
func (r Rational) Fraction() (numerator, denominator int64) {
	return r.num, r.Den()
}

// Sign returns -1, 0 or 1 depending on the sign of r.
func (r Rational) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	}
	return 0
}

func (r Rational) IsZero() bool { return r.num == 0 }

// IsInt reports whether the denominator of r is 1.
func (r Rational) IsInt() bool { return r.denMinusOne == 0 }

// Pos returns r unchanged.
func (r Rational) Pos() Rational { return r }

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{num: -r.num, denMinusOne: r.denMinusOne}
}

// Abs returns |r|.
func (r Rational) Abs() Rational {
	if r.num < 0 {
		return r.Neg()
	}
	return r
}

// Inv returns 1/r or ErrDivisionByZero if r is zero.
func (r Rational) Inv() (Rational, error) {
	if r.num == 0 {
		return Rational{}, ErrDivisionByZero
	}
	return normalize(r.Den(), r.num)
}
