// Package money provides an exact decimal monetary value for the lending
// platform. All loan, installment and cash-book amounts flow through this
// type; binary floating point is never used for money.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// scale is the number of decimal places amounts are rounded to when they are
// persisted or displayed. Intermediate arithmetic keeps full precision.
const scale = 2

var (
	oneHundred = decimal.NewFromInt(100)

	// AllocationEpsilon is the tolerance used when checking that a payment's
	// capital and interest portions add up to the paid amount.
	AllocationEpsilon = decimal.New(1, -scale) // 0.01
)

// Money is an immutable monetary amount. The zero value is zero money.
type Money struct {
	amount decimal.Decimal
}

// New creates a Money value from a decimal amount.
func New(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewFromString parses an amount string into a Money value.
func NewFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

// NewFromInt creates a Money value from whole units.
func NewFromInt(n int64) Money {
	return Money{amount: decimal.NewFromInt(n)}
}

// Zero returns a zero Money value.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// Neg returns m with the sign flipped.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg()}
}

// Abs returns the absolute value of m.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs()}
}

// MulRate applies a percentage rate to m. A rate of 10 yields 10% of m.
// The result keeps full precision; round at the persistence boundary.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Div(oneHundred)}
}

// Mul returns m multiplied by the given factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor)}
}

// Round rounds to the persistence scale, half away from zero.
func (m Money) Round() Money {
	return Money{amount: m.amount.Round(scale)}
}

// Split divides m into n parts rounded to the persistence scale whose sum is
// exactly m rounded. The last part absorbs the rounding remainder.
func (m Money) Split(n int) ([]Money, error) {
	if n <= 0 {
		return nil, fmt.Errorf("cannot split %s into %d parts", m, n)
	}

	whole := m.Round()
	part := whole.amount.Div(decimal.NewFromInt(int64(n))).Round(scale)

	parts := make([]Money, n)
	running := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = Money{amount: part}
		running = running.Add(part)
	}
	parts[n-1] = Money{amount: whole.amount.Sub(running)}
	return parts, nil
}

// Cmp compares m and other: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal reports whether m and other represent the same amount.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// WithinEpsilon reports whether m and other differ by no more than the
// allocation epsilon.
func (m Money) WithinEpsilon(other Money) bool {
	return m.amount.Sub(other.amount).Abs().LessThanOrEqual(AllocationEpsilon)
}

// IsZero reports whether m is zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// IsPositive reports whether m is strictly greater than zero.
func (m Money) IsPositive() bool { return m.amount.IsPositive() }

// IsNegative reports whether m is strictly less than zero.
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// LessThanOrEqual reports whether m <= other.
func (m Money) LessThanOrEqual(other Money) bool {
	return m.amount.LessThanOrEqual(other.amount)
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// String formats the amount at the persistence scale, e.g. "1200.50".
func (m Money) String() string {
	return m.amount.StringFixed(scale)
}
