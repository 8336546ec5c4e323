package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
)

// LoanSummaryUseCase computes a loan's repayment totals and overdue counts.
type LoanSummaryUseCase struct {
	loanRepo port.LoanRepository
}

// NewLoanSummaryUseCase wires dependencies.
func NewLoanSummaryUseCase(loanRepo port.LoanRepository) *LoanSummaryUseCase {
	return &LoanSummaryUseCase{loanRepo: loanRepo}
}

// Execute summarizes a loan as of the requested time, defaulting to now.
func (uc *LoanSummaryUseCase) Execute(ctx context.Context, req dto.LoanSummaryRequest) (dto.LoanSummaryResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanSummaryResponse{}, fmt.Errorf("find loan: %w", err)
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	s := loan.Summary(asOf)

	return dto.LoanSummaryResponse{
		LoanID:            loan.ID(),
		Status:            loan.Status().String(),
		Principal:         loan.Principal().Amount(),
		TotalDue:          s.TotalDue.Amount(),
		Paid:              s.Paid.Amount(),
		Pending:           s.Pending.Amount(),
		TotalInstallments: s.TotalInstallments,
		PaidCount:         s.PaidCount,
		PendingCount:      s.PendingCount,
		OverdueCount:      s.OverdueCount,
	}, nil
}
