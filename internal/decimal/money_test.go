package decimal_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/revenue-extractor/internal/decimal"
)

func TestFromString(t *testing.T) {
	d, err := decimal.FromString("1234.5")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("1234.5")))

	_, err = decimal.FromString("not-a-number")
	require.Error(t, err)
}

func TestMustFromString(t *testing.T) {
	d := decimal.MustFromString("999.99")
	assert.True(t, d.Equal(dec.RequireFromString("999.99")))

	assert.Panics(t, func() {
		decimal.MustFromString("invalid")
	})
}

func TestSum(t *testing.T) {
	values := []dec.Decimal{
		dec.NewFromInt(500),
		dec.NewFromInt(300),
		dec.RequireFromString("-1.5"),
	}
	assert.True(t, decimal.Sum(values).Equal(dec.RequireFromString("798.5")))

	assert.True(t, decimal.Sum(nil).IsZero())
}

func TestTolerance(t *testing.T) {
	abs := dec.RequireFromString("0.1")
	rel := dec.RequireFromString("0.001")

	// Small total: absolute bound is looser.
	bound := decimal.Tolerance(abs, rel, dec.NewFromInt(50))
	assert.True(t, bound.Equal(abs), "expected 0.1, got %s", bound.String())

	// Large total: relative bound is looser. 0.1% of 200,000 = 200.
	bound = decimal.Tolerance(abs, rel, dec.NewFromInt(200000))
	assert.True(t, bound.Equal(dec.NewFromInt(200)), "expected 200, got %s", bound.String())

	// Negative totals use magnitude.
	bound = decimal.Tolerance(abs, rel, dec.NewFromInt(-200000))
	assert.True(t, bound.Equal(dec.NewFromInt(200)))
}

func TestWithinTolerance(t *testing.T) {
	bound := dec.RequireFromString("0.1")

	assert.True(t, decimal.WithinTolerance(dec.NewFromInt(800), dec.NewFromInt(800), bound))
	assert.True(t, decimal.WithinTolerance(dec.RequireFromString("800.1"), dec.NewFromInt(800), bound))
	assert.False(t, decimal.WithinTolerance(dec.RequireFromString("800.11"), dec.NewFromInt(800), bound))
}

func TestRescale(t *testing.T) {
	// 1,250,000 thousands -> 1,250 millions, exactly.
	d := decimal.Rescale(dec.NewFromInt(1250000), -3)
	assert.True(t, d.Equal(dec.NewFromInt(1250)))

	// 1.25 billions -> 1,250 millions.
	d = decimal.Rescale(dec.RequireFromString("1.25"), 3)
	assert.True(t, d.Equal(dec.NewFromInt(1250)))
}
