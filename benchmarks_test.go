package rational_test

import (
	"math/big"
	"testing"

	"github.com/soypat/rational"
)

// Step accumulates dt 1/60 the way a fixed step simulation does.

func BenchmarkThisPackage_Step(b *testing.B) {
	dt := rational.MustNew(1, 60)
	for i := 0; i < b.N; i++ {
		var t rational.Rational
		var err error
		for s := 0; s < 600; s++ {
			t, err = t.Add(dt)
			if err != nil {
				b.Fatal(err)
			}
		}
		if t != rational.FromInt(10) {
			b.Fatal(t)
		}
	}
}

func BenchmarkBigRat_Step(b *testing.B) {
	dt := big.NewRat(1, 60)
	want := big.NewRat(10, 1)
	for i := 0; i < b.N; i++ {
		t := new(big.Rat)
		for s := 0; s < 600; s++ {
			t.Add(t, dt)
		}
		if t.Cmp(want) != 0 {
			b.Fatal(t)
		}
	}
}

func BenchmarkThisPackage_Cmp(b *testing.B) {
	x := rational.MustNew(9223372036854775807, 9223372036854775806)
	y := rational.MustNew(9223372036854775806, 9223372036854775805)
	for i := 0; i < b.N; i++ {
		if x.Cmp(y) >= 0 {
			b.Fatal("bad order")
		}
	}
}

func BenchmarkBigRat_Cmp(b *testing.B) {
	x := big.NewRat(9223372036854775807, 9223372036854775806)
	y := big.NewRat(9223372036854775806, 9223372036854775805)
	for i := 0; i < b.N; i++ {
		if x.Cmp(y) >= 0 {
			b.Fatal("bad order")
		}
	}
}
