package usecase

import (
	"context"
	"fmt"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
)

// ListCashEntriesUseCase lists cash book entries filtered by category and
// date range.
type ListCashEntriesUseCase struct {
	cashRepo port.CashBookRepository
}

// NewListCashEntriesUseCase wires dependencies.
func NewListCashEntriesUseCase(cashRepo port.CashBookRepository) *ListCashEntriesUseCase {
	return &ListCashEntriesUseCase{cashRepo: cashRepo}
}

// Execute lists matching cash entries in insertion order.
func (uc *ListCashEntriesUseCase) Execute(ctx context.Context, req dto.ListCashEntriesRequest) ([]dto.CashEntryResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}

	entries, err := uc.cashRepo.FindEntries(ctx, req.From, req.To, req.Category, limit)
	if err != nil {
		return nil, fmt.Errorf("find cash entries: %w", err)
	}

	out := make([]dto.CashEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = toCashEntryResponse(e)
	}
	return out, nil
}
