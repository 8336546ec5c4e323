package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/usecase"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/infrastructure/postgres"
)

// LendingHandler exposes the loan and cash book use cases over gRPC.
type LendingHandler struct {
	UnimplementedLendingServiceServer

	createLoan       *usecase.CreateLoanUseCase
	getLoan          *usecase.GetLoanUseCase
	listInstallments *usecase.ListInstallmentsUseCase
	applyPayment     *usecase.ApplyPaymentUseCase
	reversePayment   *usecase.ReversePaymentUseCase
	loanSummary      *usecase.LoanSummaryUseCase
	changeStatus     *usecase.ChangeLoanStatusUseCase
	recordCashEntry  *usecase.RecordCashEntryUseCase
	cashPosition     *usecase.GetCashPositionUseCase
	listCashEntries  *usecase.ListCashEntriesUseCase
	logger           *slog.Logger
}

// NewLendingHandler wires the use cases into the gRPC surface.
func NewLendingHandler(
	createLoan *usecase.CreateLoanUseCase,
	getLoan *usecase.GetLoanUseCase,
	listInstallments *usecase.ListInstallmentsUseCase,
	applyPayment *usecase.ApplyPaymentUseCase,
	reversePayment *usecase.ReversePaymentUseCase,
	loanSummary *usecase.LoanSummaryUseCase,
	changeStatus *usecase.ChangeLoanStatusUseCase,
	recordCashEntry *usecase.RecordCashEntryUseCase,
	cashPosition *usecase.GetCashPositionUseCase,
	listCashEntries *usecase.ListCashEntriesUseCase,
	logger *slog.Logger,
) *LendingHandler {
	return &LendingHandler{
		createLoan:       createLoan,
		getLoan:          getLoan,
		listInstallments: listInstallments,
		applyPayment:     applyPayment,
		reversePayment:   reversePayment,
		loanSummary:      loanSummary,
		changeStatus:     changeStatus,
		recordCashEntry:  recordCashEntry,
		cashPosition:     cashPosition,
		listCashEntries:  listCashEntries,
		logger:           logger,
	}
}

func (h *LendingHandler) CreateLoan(ctx context.Context, req *CreateLoanRequest) (*LoanResponse, error) {
	resp, err := h.createLoan.Execute(ctx, *req)
	if err != nil {
		h.logger.ErrorContext(ctx, "create loan failed", "client_id", req.ClientID, "error", err)
		return nil, mapError(err)
	}
	return &resp, nil
}

func (h *LendingHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*LoanResponse, error) {
	resp, err := h.getLoan.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

func (h *LendingHandler) ListInstallments(ctx context.Context, req *ListInstallmentsRequest) (*ListInstallmentsResponse, error) {
	installments, err := h.listInstallments.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &ListInstallmentsResponse{Installments: installments}, nil
}

func (h *LendingHandler) ApplyPayment(ctx context.Context, req *ApplyPaymentRequest) (*PaymentResponse, error) {
	resp, err := h.applyPayment.Execute(ctx, *req)
	if err != nil {
		h.logger.ErrorContext(ctx, "apply payment failed", "loan_id", req.LoanID, "error", err)
		return nil, mapError(err)
	}
	return &resp, nil
}

func (h *LendingHandler) ReversePayment(ctx context.Context, req *ReversePaymentRequest) (*LoanResponse, error) {
	resp, err := h.reversePayment.Execute(ctx, *req)
	if err != nil {
		h.logger.ErrorContext(ctx, "reverse payment failed", "payment_id", req.PaymentID, "error", err)
		return nil, mapError(err)
	}
	return &resp, nil
}

func (h *LendingHandler) GetLoanSummary(ctx context.Context, req *LoanSummaryRequest) (*LoanSummaryResponse, error) {
	resp, err := h.loanSummary.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

func (h *LendingHandler) ChangeLoanStatus(ctx context.Context, req *ChangeLoanStatusRequest) (*LoanResponse, error) {
	resp, err := h.changeStatus.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

func (h *LendingHandler) RecordCashEntry(ctx context.Context, req *RecordCashEntryRequest) (*CashEntryResponse, error) {
	resp, err := h.recordCashEntry.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

func (h *LendingHandler) GetCashPosition(ctx context.Context, _ *GetCashPositionRequest) (*CashPositionResponse, error) {
	resp, err := h.cashPosition.Execute(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &resp, nil
}

func (h *LendingHandler) ListCashEntries(ctx context.Context, req *ListCashEntriesRequest) (*ListCashEntriesResponse, error) {
	entries, err := h.listCashEntries.Execute(ctx, *req)
	if err != nil {
		return nil, mapError(err)
	}
	return &ListCashEntriesResponse{Entries: entries}, nil
}

// mapError translates domain and persistence errors into gRPC status codes.
func mapError(err error) error {
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, postgres.ErrVersionConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, valueobject.ErrInvalidAllocation),
		errors.Is(err, valueobject.ErrUnknownFrequency):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, valueobject.ErrNegativePrincipal),
		errors.Is(err, valueobject.ErrInvalidStatusTransition),
		errors.Is(err, valueobject.ErrScheduleRegenerationConflict):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrLedgerInconsistency):
		return status.Error(codes.DataLoss, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
