package valueobject

import "fmt"

// PaymentKind classifies how a payment is applied.
type PaymentKind struct {
	value string
}

const (
	paymentKindNormal        = "NORMAL"
	paymentKindExtraordinary = "EXTRAORDINARY"
	paymentKindCapitalAbono  = "CAPITAL_ABONO"
	paymentKindInterestOnly  = "INTEREST_ONLY"
)

var (
	// PaymentKindNormal settles (part of) a scheduled installment.
	PaymentKindNormal = PaymentKind{value: paymentKindNormal}
	// PaymentKindExtraordinary is an off-schedule payment whose capital
	// portion reduces the loan principal.
	PaymentKindExtraordinary = PaymentKind{value: paymentKindExtraordinary}
	// PaymentKindCapitalAbono applies the full amount directly against
	// outstanding principal.
	PaymentKindCapitalAbono = PaymentKind{value: paymentKindCapitalAbono}
	// PaymentKindInterestOnly covers accrued interest without touching
	// principal.
	PaymentKindInterestOnly = PaymentKind{value: paymentKindInterestOnly}
)

var validPaymentKinds = map[string]PaymentKind{
	paymentKindNormal:        PaymentKindNormal,
	paymentKindExtraordinary: PaymentKindExtraordinary,
	paymentKindCapitalAbono:  PaymentKindCapitalAbono,
	paymentKindInterestOnly:  PaymentKindInterestOnly,
}

// NewPaymentKind creates a PaymentKind from a raw string.
func NewPaymentKind(s string) (PaymentKind, error) {
	v, ok := validPaymentKinds[s]
	if !ok {
		return PaymentKind{}, fmt.Errorf("invalid payment kind: %q", s)
	}
	return v, nil
}

// String returns the string representation of the kind.
func (k PaymentKind) String() string { return k.value }

// Equal returns true when both kinds carry the same value.
func (k PaymentKind) Equal(other PaymentKind) bool { return k.value == other.value }

// ReducesPrincipal reports whether the capital portion of a payment of this
// kind is applied against the loan's outstanding principal, triggering a
// schedule recalculation.
func (k PaymentKind) ReducesPrincipal() bool {
	return k.value == paymentKindExtraordinary || k.value == paymentKindCapitalAbono
}
