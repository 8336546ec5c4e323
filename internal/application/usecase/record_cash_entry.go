package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/model"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

// RecordCashEntryUseCase appends a manual entry to the cash book: operating
// expenses, capital injections, adjustments. Loan flows do not come through
// here; those entries are written by the payment and loan use cases.
type RecordCashEntryUseCase struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
}

// NewRecordCashEntryUseCase wires dependencies.
func NewRecordCashEntryUseCase(uow port.UnitOfWork, publisher port.EventPublisher) *RecordCashEntryUseCase {
	return &RecordCashEntryUseCase{uow: uow, publisher: publisher}
}

// Execute records a manual cash entry.
func (uc *RecordCashEntryUseCase) Execute(ctx context.Context, req dto.RecordCashEntryRequest) (dto.CashEntryResponse, error) {
	now := time.Now().UTC()

	var entry model.CashEntry
	var book model.CashBook
	err := uc.uow.Execute(ctx, func(r port.Repositories) error {
		var err error
		book, err = r.CashBook.Get(ctx)
		if err != nil {
			return fmt.Errorf("load cash book: %w", err)
		}
		book, entry, err = book.Record(
			money.New(req.Amount), req.Category, req.Description, "", "", req.RecordedBy, now,
		)
		if err != nil {
			return fmt.Errorf("record entry: %w", err)
		}
		if err := r.CashBook.Save(ctx, book); err != nil {
			return fmt.Errorf("save cash book: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.CashEntryResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, book.DomainEvents()...); err != nil {
		return dto.CashEntryResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toCashEntryResponse(entry), nil
}

func toCashEntryResponse(e model.CashEntry) dto.CashEntryResponse {
	return dto.CashEntryResponse{
		ID:          e.ID(),
		Amount:      e.Amount().Amount(),
		Category:    e.Category(),
		Description: e.Description(),
		LoanID:      e.LoanID(),
		PaymentID:   e.PaymentID(),
		RecordedBy:  e.RecordedBy(),
		RecordedAt:  e.RecordedAt(),
	}
}
