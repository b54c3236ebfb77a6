// Package calculator holds the trip money math: per-traveler balances,
// settlement planning and daily spend summaries.
//
// Everything here is pure. Callers load expenses and shares from storage,
// pass them in, and get fresh values back. Amounts cross the package
// boundary as float64 (what the wire and SQLite carry) but are summed and
// compared as decimals so that every call site agrees to the cent.
package calculator

import (
	"github.com/shopspring/decimal"
)

// Tolerance is the band around zero inside which a balance counts as settled.
const Tolerance = 0.01

var (
	tolerance  = decimal.NewFromFloat(Tolerance)
	hundred    = decimal.NewFromInt(100)
	centFactor = int32(2)
)

// Round2 rounds x to cents, half away from zero.
func Round2(x float64) float64 {
	return toFloat(decimal.NewFromFloat(x))
}

// SplitEvenly divides amount into n shares that add up to amount exactly.
// Leftover cents go to the last shares, so 10.00 over 3 is
// [3.33, 3.33, 3.34]. Returns nil when n <= 0.
func SplitEvenly(amount float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	cents := decimal.NewFromFloat(amount).Round(centFactor).Mul(hundred).IntPart()
	negative := cents < 0
	if negative {
		cents = -cents
	}

	base := cents / int64(n)
	rem := cents % int64(n)

	shares := make([]float64, n)
	for i := range shares {
		c := base
		if int64(i) >= int64(n)-rem {
			c++
		}
		if negative {
			c = -c
		}
		shares[i] = decimal.New(c, -centFactor).InexactFloat64()
	}
	return shares
}

// dec converts a wire amount into a decimal.
func dec(x float64) decimal.Decimal {
	return decimal.NewFromFloat(x)
}

// toFloat rounds d to cents and converts it back for the wire.
func toFloat(d decimal.Decimal) float64 {
	return d.Round(centFactor).InexactFloat64()
}
