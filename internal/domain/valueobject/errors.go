package valueobject

import "errors"

// Sentinel errors for the lending core. Callers are expected to match these
// with errors.Is; none of the operations that return them are retried, since
// financial mutations must never be applied twice.
var (
	// ErrInvalidAllocation is returned when a payment's capital and interest
	// portions do not add up to the paid amount within the rounding epsilon.
	ErrInvalidAllocation = errors.New("capital and interest portions do not add up to the paid amount")

	// ErrNegativePrincipal is returned when an operation would drive a loan's
	// principal below zero outside of the automatic Paid transition.
	ErrNegativePrincipal = errors.New("operation would drive loan principal below zero")

	// ErrUnknownFrequency indicates an unsupported frequency value reached the
	// schedule generator. This is a programmer error.
	ErrUnknownFrequency = errors.New("unknown payment frequency")

	// ErrLedgerInconsistency is returned when the cash book's recomputed
	// balance diverges from the stored running balance. Further mutation must
	// halt until the book is reconciled manually.
	ErrLedgerInconsistency = errors.New("cash book balance diverges from entry log")

	// ErrScheduleRegenerationConflict is returned when recalculation is
	// requested for a loan that is already paid or cancelled.
	ErrScheduleRegenerationConflict = errors.New("cannot regenerate schedule for a settled or cancelled loan")

	// ErrInvalidStatusTransition is returned for disallowed manual status
	// changes.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
