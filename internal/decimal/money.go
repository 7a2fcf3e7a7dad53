package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromFloat creates decimal from float
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// FromString parses decimal from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Abs returns the absolute value
func Abs(d decimal.Decimal) decimal.Decimal {
	return d.Abs()
}

// Max returns the larger of two decimals
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Tolerance computes the reconciliation bound for a reported total:
// the looser of the absolute bound and the relative bound applied to
// the total. Filings round to the nearest hundred-thousand or million
// and accumulate rounding drift across line items.
func Tolerance(absBound, relBound, total decimal.Decimal) decimal.Decimal {
	return Max(absBound, relBound.Mul(total.Abs()))
}

// WithinTolerance reports whether expected and actual agree within the
// given bound.
func WithinTolerance(expected, actual, bound decimal.Decimal) bool {
	return expected.Sub(actual).Abs().LessThanOrEqual(bound)
}

// Rescale converts an amount by a power-of-ten factor, e.g. thousands
// to millions with exp -3. Decimal arithmetic keeps 1,250,000 thousands
// landing exactly on 1250 millions with no float drift.
func Rescale(d decimal.Decimal, exp int32) decimal.Decimal {
	return d.Shift(exp)
}
