package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
)

// ListInstallmentsUseCase lists a loan's schedule ordered by installment
// number, with lateness as of now.
type ListInstallmentsUseCase struct {
	loanRepo port.LoanRepository
}

// NewListInstallmentsUseCase wires dependencies.
func NewListInstallmentsUseCase(loanRepo port.LoanRepository) *ListInstallmentsUseCase {
	return &ListInstallmentsUseCase{loanRepo: loanRepo}
}

// Execute lists the installments of a loan.
func (uc *ListInstallmentsUseCase) Execute(ctx context.Context, req dto.ListInstallmentsRequest) ([]dto.InstallmentResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return nil, fmt.Errorf("find loan: %w", err)
	}
	return toInstallmentResponses(loan.Schedule(), time.Now().UTC()), nil
}
