package grpc

// proto.go defines the gRPC server interface derived from
// prestamos/lending/v1/lending.proto. This file serves as a stand-in for
// buf-generated code; the JSON codec carries the messages until the proto
// definitions are generated.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
)

// Message types mirror the wire messages; the application DTOs already carry
// the JSON field tags.
type (
	CreateLoanRequest       = dto.CreateLoanRequest
	GetLoanRequest          = dto.GetLoanRequest
	ListInstallmentsRequest = dto.ListInstallmentsRequest
	ApplyPaymentRequest     = dto.ApplyPaymentRequest
	ReversePaymentRequest   = dto.ReversePaymentRequest
	LoanSummaryRequest      = dto.LoanSummaryRequest
	ChangeLoanStatusRequest = dto.ChangeLoanStatusRequest
	RecordCashEntryRequest  = dto.RecordCashEntryRequest
	ListCashEntriesRequest  = dto.ListCashEntriesRequest

	LoanResponse         = dto.LoanResponse
	PaymentResponse      = dto.PaymentResponse
	LoanSummaryResponse  = dto.LoanSummaryResponse
	CashEntryResponse    = dto.CashEntryResponse
	CashPositionResponse = dto.CashPositionResponse
)

// GetCashPositionRequest has no parameters.
type GetCashPositionRequest struct{}

// ListInstallmentsResponse wraps the ordered schedule of a loan.
type ListInstallmentsResponse struct {
	Installments []dto.InstallmentResponse `json:"installments"`
}

// ListCashEntriesResponse wraps the matching cash book entries.
type ListCashEntriesResponse struct {
	Entries []dto.CashEntryResponse `json:"entries"`
}

// LendingServiceServer is the server API for LendingService.
// It mirrors the proto-generated interface from prestamos.lending.v1.LendingService.
type LendingServiceServer interface {
	CreateLoan(context.Context, *CreateLoanRequest) (*LoanResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*LoanResponse, error)
	ListInstallments(context.Context, *ListInstallmentsRequest) (*ListInstallmentsResponse, error)
	ApplyPayment(context.Context, *ApplyPaymentRequest) (*PaymentResponse, error)
	ReversePayment(context.Context, *ReversePaymentRequest) (*LoanResponse, error)
	GetLoanSummary(context.Context, *LoanSummaryRequest) (*LoanSummaryResponse, error)
	ChangeLoanStatus(context.Context, *ChangeLoanStatusRequest) (*LoanResponse, error)
	RecordCashEntry(context.Context, *RecordCashEntryRequest) (*CashEntryResponse, error)
	GetCashPosition(context.Context, *GetCashPositionRequest) (*CashPositionResponse, error)
	ListCashEntries(context.Context, *ListCashEntriesRequest) (*ListCashEntriesResponse, error)
	mustEmbedUnimplementedLendingServiceServer()
}

// UnimplementedLendingServiceServer provides forward-compatible default implementations.
type UnimplementedLendingServiceServer struct{}

func (UnimplementedLendingServiceServer) CreateLoan(context.Context, *CreateLoanRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateLoan not implemented")
}
func (UnimplementedLendingServiceServer) GetLoan(context.Context, *GetLoanRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedLendingServiceServer) ListInstallments(context.Context, *ListInstallmentsRequest) (*ListInstallmentsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListInstallments not implemented")
}
func (UnimplementedLendingServiceServer) ApplyPayment(context.Context, *ApplyPaymentRequest) (*PaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplyPayment not implemented")
}
func (UnimplementedLendingServiceServer) ReversePayment(context.Context, *ReversePaymentRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReversePayment not implemented")
}
func (UnimplementedLendingServiceServer) GetLoanSummary(context.Context, *LoanSummaryRequest) (*LoanSummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoanSummary not implemented")
}
func (UnimplementedLendingServiceServer) ChangeLoanStatus(context.Context, *ChangeLoanStatusRequest) (*LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ChangeLoanStatus not implemented")
}
func (UnimplementedLendingServiceServer) RecordCashEntry(context.Context, *RecordCashEntryRequest) (*CashEntryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordCashEntry not implemented")
}
func (UnimplementedLendingServiceServer) GetCashPosition(context.Context, *GetCashPositionRequest) (*CashPositionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCashPosition not implemented")
}
func (UnimplementedLendingServiceServer) ListCashEntries(context.Context, *ListCashEntriesRequest) (*ListCashEntriesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListCashEntries not implemented")
}
func (UnimplementedLendingServiceServer) mustEmbedUnimplementedLendingServiceServer() {}

// RegisterLendingServiceServer registers the LendingServiceServer with the gRPC server.
func RegisterLendingServiceServer(s *grpclib.Server, srv LendingServiceServer) {
	s.RegisterService(&_LendingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _LendingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "prestamos.lending.v1.LendingService",
	HandlerType: (*LendingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CreateLoan", Handler: _LendingService_CreateLoan_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _LendingService_GetLoan_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "ListInstallments", Handler: _LendingService_ListInstallments_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ApplyPayment", Handler: _LendingService_ApplyPayment_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "ReversePayment", Handler: _LendingService_ReversePayment_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "GetLoanSummary", Handler: _LendingService_GetLoanSummary_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "ChangeLoanStatus", Handler: _LendingService_ChangeLoanStatus_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "RecordCashEntry", Handler: _LendingService_RecordCashEntry_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "GetCashPosition", Handler: _LendingService_GetCashPosition_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "ListCashEntries", Handler: _LendingService_ListCashEntries_Handler},   //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_CreateLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).CreateLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/CreateLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).CreateLoan(ctx, req.(*CreateLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_ListInstallments_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListInstallmentsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).ListInstallments(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/ListInstallments",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).ListInstallments(ctx, req.(*ListInstallmentsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_ApplyPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApplyPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).ApplyPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/ApplyPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).ApplyPayment(ctx, req.(*ApplyPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_ReversePayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ReversePaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).ReversePayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/ReversePayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).ReversePayment(ctx, req.(*ReversePaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_GetLoanSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(LoanSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).GetLoanSummary(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/GetLoanSummary",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).GetLoanSummary(ctx, req.(*LoanSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_ChangeLoanStatus_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ChangeLoanStatusRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).ChangeLoanStatus(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/ChangeLoanStatus",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).ChangeLoanStatus(ctx, req.(*ChangeLoanStatusRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_RecordCashEntry_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordCashEntryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).RecordCashEntry(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/RecordCashEntry",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).RecordCashEntry(ctx, req.(*RecordCashEntryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_GetCashPosition_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCashPositionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).GetCashPosition(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/GetCashPosition",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).GetCashPosition(ctx, req.(*GetCashPositionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LendingService_ListCashEntries_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListCashEntriesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingServiceServer).ListCashEntries(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/prestamos.lending.v1.LendingService/ListCashEntries",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LendingServiceServer).ListCashEntries(ctx, req.(*ListCashEntriesRequest))
	}
	return interceptor(ctx, in, info, handler)
}
