package valueobject

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the repayment cadence of a loan. Each variant fixes how many
// periods a term produces, what fraction of the stored periodic rate applies
// per period, and how due dates step.
//
// The stored rate is interpreted as a flat periodic percentage: a rate of 10
// on a Monthly loan charges 10% of the principal every month; Biweekly and
// Weekly loans charge half and a quarter of that per period. It is never
// annualized.
type Frequency struct {
	value string
}

const (
	frequencyMonthly      = "MONTHLY"
	frequencyBiweekly     = "BIWEEKLY"
	frequencyWeekly       = "WEEKLY"
	frequencyBullet       = "BULLET"
	frequencyInterestOnly = "INTEREST_ONLY"
)

var (
	FrequencyMonthly      = Frequency{value: frequencyMonthly}
	FrequencyBiweekly     = Frequency{value: frequencyBiweekly}
	FrequencyWeekly       = Frequency{value: frequencyWeekly}
	FrequencyBullet       = Frequency{value: frequencyBullet}
	FrequencyInterestOnly = Frequency{value: frequencyInterestOnly}
)

var validFrequencies = map[string]Frequency{
	frequencyMonthly:      FrequencyMonthly,
	frequencyBiweekly:     FrequencyBiweekly,
	frequencyWeekly:       FrequencyWeekly,
	frequencyBullet:       FrequencyBullet,
	frequencyInterestOnly: FrequencyInterestOnly,
}

// NewFrequency creates a Frequency from a raw string.
func NewFrequency(s string) (Frequency, error) {
	v, ok := validFrequencies[s]
	if !ok {
		return Frequency{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
	}
	return v, nil
}

// String returns the string representation of the frequency.
func (f Frequency) String() string { return f.value }

// IsZero returns true if the frequency has not been initialised.
func (f Frequency) IsZero() bool { return f.value == "" }

// Equal returns true when both frequencies carry the same value.
func (f Frequency) Equal(other Frequency) bool { return f.value == other.value }

// Periods returns the number of installments a term of the given months
// produces under this frequency.
func (f Frequency) Periods(termMonths int) (int, error) {
	switch f.value {
	case frequencyMonthly, frequencyBullet, frequencyInterestOnly:
		return termMonths, nil
	case frequencyBiweekly:
		return termMonths * 2, nil
	case frequencyWeekly:
		return termMonths * 4, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFrequency, f.value)
	}
}

// PeriodicRate returns the percentage rate charged per period given the
// loan's stored monthly-equivalent rate.
func (f Frequency) PeriodicRate(rate decimal.Decimal) (decimal.Decimal, error) {
	switch f.value {
	case frequencyMonthly, frequencyBullet, frequencyInterestOnly:
		return rate, nil
	case frequencyBiweekly:
		return rate.Div(decimal.NewFromInt(2)), nil
	case frequencyWeekly:
		return rate.Div(decimal.NewFromInt(4)), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, f.value)
	}
}

// StepDueDate advances a due date by one period. Monthly-cadence frequencies
// clamp the day of month to 28 before stepping so dates never drift across
// month boundaries.
func (f Frequency) StepDueDate(d time.Time) (time.Time, error) {
	switch f.value {
	case frequencyMonthly, frequencyBullet, frequencyInterestOnly:
		return ClampToDay28(d).AddDate(0, 1, 0), nil
	case frequencyBiweekly:
		return d.AddDate(0, 0, 15), nil
	case frequencyWeekly:
		return d.AddDate(0, 0, 7), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownFrequency, f.value)
	}
}

// ClampToDay28 caps the day of month at 28, leaving earlier days untouched.
func ClampToDay28(d time.Time) time.Time {
	if d.Day() <= 28 {
		return d
	}
	return time.Date(d.Year(), d.Month(), 28, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}
