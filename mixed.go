package rational

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Integer operands are promoted to i/1 and the rational operation is applied,
// so mixed expressions are reduced exactly like rational-only ones.

func AddInt[T constraints.Integer](r Rational, i T) (Rational, error) {
	return withRight(Rational.Add, r, i)
}

func IntAdd[T constraints.Integer](i T, r Rational) (Rational, error) {
	return withLeft(Rational.Add, i, r)
}

func SubInt[T constraints.Integer](r Rational, i T) (Rational, error) {
	return withRight(Rational.Sub, r, i)
}

func IntSub[T constraints.Integer](i T, r Rational) (Rational, error) {
	return withLeft(Rational.Sub, i, r)
}

func MulInt[T constraints.Integer](r Rational, i T) (Rational, error) {
	return withRight(Rational.Mul, r, i)
}

func IntMul[T constraints.Integer](i T, r Rational) (Rational, error) {
	return withLeft(Rational.Mul, i, r)
}

// DivInt returns r/i or ErrDivisionByZero if i is zero.
func DivInt[T constraints.Integer](r Rational, i T) (Rational, error) {
	return withRight(Rational.Div, r, i)
}

// IntDiv returns i/r or ErrDivisionByZero if r is zero.
func IntDiv[T constraints.Integer](i T, r Rational) (Rational, error) {
	return withLeft(Rational.Div, i, r)
}

// Promote returns i/1. Unsigned values above math.MaxInt64 and math.MinInt64
// return ErrOverflow.
func Promote[T constraints.Integer](i T) (Rational, error) {
	if i > 0 && uint64(i) > math.MaxInt64 {
		return Rational{}, ErrOverflow
	}
	return normalize(int64(i), 1)
}

type binop func(x, y Rational) (Rational, error)

func withRight[T constraints.Integer](op binop, r Rational, i T) (Rational, error) {
	y, err := Promote(i)
	if err != nil {
		return Rational{}, err
	}
	return op(r, y)
}

func withLeft[T constraints.Integer](op binop, i T, r Rational) (Rational, error) {
	x, err := Promote(i)
	if err != nil {
		return Rational{}, err
	}
	return op(x, r)
}
