package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
)

// ChangeLoanStatusUseCase performs a manual loan status transition.
type ChangeLoanStatusUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	locks     *LoanLocks
}

// NewChangeLoanStatusUseCase wires dependencies. The lock table is shared
// with the other mutating use cases.
func NewChangeLoanStatusUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher, locks *LoanLocks) *ChangeLoanStatusUseCase {
	return &ChangeLoanStatusUseCase{loanRepo: loanRepo, publisher: publisher, locks: locks}
}

// Execute transitions a loan to the requested status.
func (uc *ChangeLoanStatusUseCase) Execute(ctx context.Context, req dto.ChangeLoanStatusRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	target, err := valueobject.NewLoanStatus(req.Status)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	unlock := uc.locks.Lock(req.LoanID)
	defer unlock()

	loan, err := uc.loanRepo.FindByID(ctx, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	changed, err := loan.ChangeStatus(target, now)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	if err := uc.loanRepo.Save(ctx, changed); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}
	if err := uc.publisher.Publish(ctx, changed.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(changed), nil
}
