package rational

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// DivisionPrecision is the number of decimal places Decimal keeps for a
// rational whose decimal expansion does not terminate.
const DivisionPrecision int32 = 16

// Decimal returns r as a decimal. Fractions whose denominator is a product of
// 2s and 5s are exact, others are rounded to DivisionPrecision places.
func (r Rational) Decimal() decimal.Decimal {
	places := DivisionPrecision
	if k, ok := terminatingPlaces(r.Den()); ok && k > places {
		places = k
	}
	return r.DecimalPrec(places)
}

// DecimalPrec returns r rounded half away from zero to places decimal places.
func (r Rational) DecimalPrec(places int32) decimal.Decimal {
	return decimal.New(r.num, 0).DivRound(decimal.New(r.Den(), 0), places)
}

// terminatingPlaces returns the number of decimal places of 1/den if its
// expansion terminates.
func terminatingPlaces(den int64) (int32, bool) {
	var twos, fives int32
	for den%2 == 0 {
		den /= 2
		twos++
	}
	for den%5 == 0 {
		den /= 5
		fives++
	}
	return max(twos, fives), den == 1
}

// FromDecimal returns the exact value of d. It returns ErrOverflow if the
// reduced fraction does not fit in 64 bits.
func FromDecimal(d decimal.Decimal) (Rational, error) {
	num := d.Coefficient()
	den := big.NewInt(1)
	exp := int64(d.Exponent())
	if exp != 0 {
		pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(abs(exp)), nil)
		if exp > 0 {
			num.Mul(num, pow)
		} else {
			den = pow
		}
	}
	return FromBigRat(new(big.Rat).SetFrac(num, den))
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
