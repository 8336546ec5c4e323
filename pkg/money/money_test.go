package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

func TestNewFromString(t *testing.T) {
	t.Run("valid amount", func(t *testing.T) {
		m, err := money.NewFromString("1250.75")
		require.NoError(t, err)
		assert.Equal(t, "1250.75", m.String())
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := money.NewFromString("not-a-number")
		require.Error(t, err)
	})
}

func TestArithmetic(t *testing.T) {
	a := money.NewFromInt(100)
	b := money.NewFromInt(40)

	assert.Equal(t, "140.00", a.Add(b).String())
	assert.Equal(t, "60.00", a.Sub(b).String())
	assert.Equal(t, "-100.00", a.Neg().String())
	assert.Equal(t, "100.00", a.Neg().Abs().String())
}

func TestMulRate(t *testing.T) {
	principal := money.NewFromInt(120_000)

	// 10% per period.
	interest := principal.MulRate(decimal.NewFromInt(10)).Round()
	assert.Equal(t, "12000.00", interest.String())

	// Fractional rate keeps precision until rounded.
	m := money.NewFromInt(1000).MulRate(decimal.NewFromFloat(3.5)).Round()
	assert.Equal(t, "35.00", m.String())
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"-10.005", "-10.01"},
		{"10.004", "10.00"},
		{"0.125", "0.13"},
	}
	for _, tc := range cases {
		m, err := money.NewFromString(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, m.Round().String(), "rounding %s", tc.in)
	}
}

func TestSplit(t *testing.T) {
	t.Run("exact division", func(t *testing.T) {
		parts, err := money.NewFromInt(120_000).Split(12)
		require.NoError(t, err)
		require.Len(t, parts, 12)
		for _, p := range parts {
			assert.Equal(t, "10000.00", p.String())
		}
	})

	t.Run("remainder absorbed by last part", func(t *testing.T) {
		total := money.NewFromInt(100)
		parts, err := total.Split(3)
		require.NoError(t, err)
		require.Len(t, parts, 3)

		assert.Equal(t, "33.33", parts[0].String())
		assert.Equal(t, "33.33", parts[1].String())
		assert.Equal(t, "33.34", parts[2].String())

		sum := money.Zero()
		for _, p := range parts {
			sum = sum.Add(p)
		}
		assert.True(t, sum.Equal(total), "parts must sum to the original exactly")
	})

	t.Run("sum is exact across awkward divisions", func(t *testing.T) {
		for n := 1; n <= 60; n++ {
			total, err := money.NewFromString("99999.97")
			require.NoError(t, err)

			parts, err := total.Split(n)
			require.NoError(t, err)

			sum := money.Zero()
			for _, p := range parts {
				sum = sum.Add(p)
			}
			assert.True(t, sum.Equal(total), "split into %d parts drifted: %s", n, sum)
		}
	})

	t.Run("invalid part count", func(t *testing.T) {
		_, err := money.NewFromInt(100).Split(0)
		require.Error(t, err)
	})
}

func TestWithinEpsilon(t *testing.T) {
	a := money.NewFromInt(5000)

	b, err := money.NewFromString("5000.01")
	require.NoError(t, err)
	assert.True(t, a.WithinEpsilon(b))

	c, err := money.NewFromString("5000.02")
	require.NoError(t, err)
	assert.False(t, a.WithinEpsilon(c))
}

func TestPredicates(t *testing.T) {
	assert.True(t, money.Zero().IsZero())
	assert.True(t, money.NewFromInt(1).IsPositive())
	assert.True(t, money.NewFromInt(-1).IsNegative())
	assert.True(t, money.NewFromInt(1).LessThan(money.NewFromInt(2)))
	assert.True(t, money.NewFromInt(2).GreaterThanOrEqual(money.NewFromInt(2)))
	assert.Equal(t, -1, money.NewFromInt(1).Cmp(money.NewFromInt(2)))
}
