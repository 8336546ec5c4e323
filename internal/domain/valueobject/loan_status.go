package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive    = "ACTIVE"
	loanStatusPaused    = "PAUSED"
	loanStatusCancelled = "CANCELLED"
	loanStatusFinished  = "FINISHED"
	loanStatusPaid      = "PAID"
)

var (
	LoanStatusActive    = LoanStatus{value: loanStatusActive}
	LoanStatusPaused    = LoanStatus{value: loanStatusPaused}
	LoanStatusCancelled = LoanStatus{value: loanStatusCancelled}
	LoanStatusFinished  = LoanStatus{value: loanStatusFinished}
	LoanStatusPaid      = LoanStatus{value: loanStatusPaid}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:    LoanStatusActive,
	loanStatusPaused:    LoanStatusPaused,
	loanStatusCancelled: LoanStatusCancelled,
	loanStatusFinished:  LoanStatusFinished,
	loanStatusPaid:      LoanStatusPaid,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsSettled reports whether the loan can no longer accept payments or
// schedule regeneration.
func (s LoanStatus) IsSettled() bool {
	return s.value == loanStatusPaid || s.value == loanStatusCancelled
}

// CanTransitionManuallyTo reports whether an operator may move the loan from
// s to target. PAID is reserved for the payment allocator: it is reached
// automatically when principal hits zero and is irreversible. CANCELLED is
// terminal as well; a cancelled loan is written off, not reactivated.
func (s LoanStatus) CanTransitionManuallyTo(target LoanStatus) bool {
	if s.IsSettled() || target.value == loanStatusPaid {
		return false
	}
	switch target.value {
	case loanStatusActive, loanStatusPaused, loanStatusCancelled, loanStatusFinished:
		return s.value != target.value
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// InstallmentStatus – immutable value object
// ---------------------------------------------------------------------------

// InstallmentStatus represents the settlement state of one installment.
// It only moves forward (Pending → Partial → Paid); the sole exception is an
// explicit payment reversal.
type InstallmentStatus struct {
	value string
}

const (
	installmentStatusPending = "PENDING"
	installmentStatusPartial = "PARTIAL"
	installmentStatusPaid    = "PAID"
)

var (
	InstallmentStatusPending = InstallmentStatus{value: installmentStatusPending}
	InstallmentStatusPartial = InstallmentStatus{value: installmentStatusPartial}
	InstallmentStatusPaid    = InstallmentStatus{value: installmentStatusPaid}
)

var validInstallmentStatuses = map[string]InstallmentStatus{
	installmentStatusPending: InstallmentStatusPending,
	installmentStatusPartial: InstallmentStatusPartial,
	installmentStatusPaid:    InstallmentStatusPaid,
}

// NewInstallmentStatus creates an InstallmentStatus from a raw string.
func NewInstallmentStatus(s string) (InstallmentStatus, error) {
	v, ok := validInstallmentStatuses[s]
	if !ok {
		return InstallmentStatus{}, fmt.Errorf("invalid installment status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s InstallmentStatus) String() string { return s.value }

// Equal returns true when both statuses carry the same value.
func (s InstallmentStatus) Equal(other InstallmentStatus) bool { return s.value == other.value }

// IsPaid reports whether the installment is fully settled.
func (s InstallmentStatus) IsPaid() bool { return s.value == installmentStatusPaid }

// ---------------------------------------------------------------------------
// CollateralStatus – immutable value object
// ---------------------------------------------------------------------------

// CollateralStatus tracks the custody state of a loan's collateral.
type CollateralStatus struct {
	value string
}

const (
	collateralStatusInCustody = "IN_CUSTODY"
	collateralStatusReturned  = "RETURNED"
	collateralStatusSeized    = "SEIZED"
)

var (
	CollateralStatusInCustody = CollateralStatus{value: collateralStatusInCustody}
	CollateralStatusReturned  = CollateralStatus{value: collateralStatusReturned}
	CollateralStatusSeized    = CollateralStatus{value: collateralStatusSeized}
)

var validCollateralStatuses = map[string]CollateralStatus{
	collateralStatusInCustody: CollateralStatusInCustody,
	collateralStatusReturned:  CollateralStatusReturned,
	collateralStatusSeized:    CollateralStatusSeized,
}

// NewCollateralStatus creates a CollateralStatus from a raw string.
func NewCollateralStatus(s string) (CollateralStatus, error) {
	v, ok := validCollateralStatuses[s]
	if !ok {
		return CollateralStatus{}, fmt.Errorf("invalid collateral status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s CollateralStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s CollateralStatus) IsZero() bool { return s.value == "" }
