package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CollateralRequest carries optional collateral attached at loan creation.
type CollateralRequest struct {
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
}

// CreateLoanRequest carries the data needed to create and disburse a loan.
type CreateLoanRequest struct {
	ClientID     string             `json:"client_id"`
	Principal    decimal.Decimal    `json:"principal"`
	Rate         decimal.Decimal    `json:"rate"`
	TermMonths   int                `json:"term_months"`
	Frequency    string             `json:"frequency"`
	FirstDueDate time.Time          `json:"first_due_date"`
	Collateral   *CollateralRequest `json:"collateral,omitempty"`
	RecordedBy   string             `json:"recorded_by"`
}

// ApplyPaymentRequest carries a payment to allocate against a loan.
type ApplyPaymentRequest struct {
	LoanID            string          `json:"loan_id"`
	InstallmentNumber *int            `json:"installment_number,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Capital           decimal.Decimal `json:"capital"`
	Interest          decimal.Decimal `json:"interest"`
	Kind              string          `json:"kind"`
	RecordedBy        string          `json:"recorded_by"`
}

// ReversePaymentRequest identifies a payment to undo.
type ReversePaymentRequest struct {
	LoanID     string `json:"loan_id"`
	PaymentID  string `json:"payment_id"`
	RecordedBy string `json:"recorded_by"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	LoanID string `json:"loan_id"`
}

// ListInstallmentsRequest identifies a loan whose schedule to list.
type ListInstallmentsRequest struct {
	LoanID string `json:"loan_id"`
}

// LoanSummaryRequest identifies a loan to summarize.
type LoanSummaryRequest struct {
	LoanID string    `json:"loan_id"`
	AsOf   time.Time `json:"as_of,omitempty"`
}

// ChangeLoanStatusRequest carries a manual loan status transition.
type ChangeLoanStatusRequest struct {
	LoanID string `json:"loan_id"`
	Status string `json:"status"`
}

// RecordCashEntryRequest carries a manual cash book entry. Amount follows the
// book's sign convention: positive for money out, negative for money in.
type RecordCashEntryRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	RecordedBy  string          `json:"recorded_by"`
}

// ListCashEntriesRequest filters the cash book by category and date range.
// Limit is clamped server-side; zero means the default page size.
type ListCashEntriesRequest struct {
	Category string    `json:"category,omitempty"`
	From     time.Time `json:"from,omitempty"`
	To       time.Time `json:"to,omitempty"`
	Limit    int       `json:"limit,omitempty"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// InstallmentResponse is the external representation of one schedule entry.
type InstallmentResponse struct {
	Number             int             `json:"number"`
	DueDate            time.Time       `json:"due_date"`
	Capital            decimal.Decimal `json:"capital"`
	Interest           decimal.Decimal `json:"interest"`
	Total              decimal.Decimal `json:"total"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
	CapitalPaid        decimal.Decimal `json:"capital_paid"`
	InterestPaid       decimal.Decimal `json:"interest_paid"`
	Status             string          `json:"status"`
	DaysLate           int             `json:"days_late,omitempty"`
}

// CollateralResponse is the external representation of loan collateral.
type CollateralResponse struct {
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Value       decimal.Decimal `json:"value"`
	Status      string          `json:"status"`
}

// LoanResponse is the external representation of a loan.
type LoanResponse struct {
	ID           string                `json:"id"`
	ClientID     string                `json:"client_id"`
	Principal    decimal.Decimal       `json:"principal"`
	Rate         decimal.Decimal       `json:"rate"`
	TermMonths   int                   `json:"term_months"`
	Frequency    string                `json:"frequency"`
	FirstDueDate time.Time             `json:"first_due_date"`
	Status       string                `json:"status"`
	Collateral   *CollateralResponse   `json:"collateral,omitempty"`
	Schedule     []InstallmentResponse `json:"schedule,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// PaymentResponse is the external representation of an applied payment.
type PaymentResponse struct {
	PaymentID          string          `json:"payment_id"`
	LoanID             string          `json:"loan_id"`
	InstallmentNumber  *int            `json:"installment_number,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Capital            decimal.Decimal `json:"capital"`
	Interest           decimal.Decimal `json:"interest"`
	Kind               string          `json:"kind"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
	LoanStatus         string          `json:"loan_status"`
	PaidAt             time.Time       `json:"paid_at"`
}

// LoanSummaryResponse aggregates a loan's repayment state.
type LoanSummaryResponse struct {
	LoanID            string          `json:"loan_id"`
	Status            string          `json:"status"`
	Principal         decimal.Decimal `json:"principal"`
	TotalDue          decimal.Decimal `json:"total_due"`
	Paid              decimal.Decimal `json:"paid"`
	Pending           decimal.Decimal `json:"pending"`
	TotalInstallments int             `json:"total_installments"`
	PaidCount         int             `json:"paid_count"`
	PendingCount      int             `json:"pending_count"`
	OverdueCount      int             `json:"overdue_count"`
}

// CashEntryResponse is the external representation of one cash book line.
type CashEntryResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	LoanID      string          `json:"loan_id,omitempty"`
	PaymentID   string          `json:"payment_id,omitempty"`
	RecordedBy  string          `json:"recorded_by"`
	RecordedAt  time.Time       `json:"recorded_at"`
}

// CashPositionResponse is the aggregated state of the cash book.
type CashPositionResponse struct {
	Balance      decimal.Decimal `json:"balance"`
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	EntryCount   int             `json:"entry_count"`
	Reconciled   bool            `json:"reconciled"`
}
