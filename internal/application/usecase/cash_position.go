package usecase

import (
	"context"
	"fmt"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
)

// GetCashPositionUseCase reports the cash book's balance and totals, and
// verifies the stored balance against the entry fold.
type GetCashPositionUseCase struct {
	cashRepo port.CashBookRepository
}

// NewGetCashPositionUseCase wires dependencies.
func NewGetCashPositionUseCase(cashRepo port.CashBookRepository) *GetCashPositionUseCase {
	return &GetCashPositionUseCase{cashRepo: cashRepo}
}

// Execute returns the current cash position. A reconciliation failure is
// reported in the response, not returned as an error, so operators can still
// see the diverging numbers.
func (uc *GetCashPositionUseCase) Execute(ctx context.Context) (dto.CashPositionResponse, error) {
	book, err := uc.cashRepo.Get(ctx)
	if err != nil {
		return dto.CashPositionResponse{}, fmt.Errorf("load cash book: %w", err)
	}

	pos := book.Position()
	return dto.CashPositionResponse{
		Balance:      pos.Balance.Amount(),
		TotalInflow:  pos.TotalInflow.Amount(),
		TotalOutflow: pos.TotalOutflow.Amount(),
		EntryCount:   pos.EntryCount,
		Reconciled:   book.Reconcile() == nil,
	}, nil
}
