package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/cuptrip/pkg/api"
)

// PathPrefix starts the path of every procedure in this package.
const PathPrefix = "/cuptrip.v1."

const (
	TravelerServiceName = "cuptrip.v1.TravelerService"
	ExpenseServiceName  = "cuptrip.v1.ExpenseService"
	BudgetServiceName   = "cuptrip.v1.BudgetService"
	AuthServiceName     = "cuptrip.v1.AuthService"
)

const (
	TravelerServiceCreateTravelerProcedure = "/" + TravelerServiceName + "/CreateTraveler"
	TravelerServiceListTravelersProcedure  = "/" + TravelerServiceName + "/ListTravelers"
	TravelerServiceDeleteTravelerProcedure = "/" + TravelerServiceName + "/DeleteTraveler"

	ExpenseServiceCreateExpenseProcedure      = "/" + ExpenseServiceName + "/CreateExpense"
	ExpenseServiceGetExpenseProcedure         = "/" + ExpenseServiceName + "/GetExpense"
	ExpenseServiceListExpensesProcedure       = "/" + ExpenseServiceName + "/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure      = "/" + ExpenseServiceName + "/DeleteExpense"
	ExpenseServiceSetSplitSettledProcedure    = "/" + ExpenseServiceName + "/SetSplitSettled"
	ExpenseServiceSetTransferSettledProcedure = "/" + ExpenseServiceName + "/SetTransferSettled"

	BudgetServiceGetSettlementProcedure     = "/" + BudgetServiceName + "/GetSettlement"
	BudgetServicePreviewSettlementProcedure = "/" + BudgetServiceName + "/PreviewSettlement"
	BudgetServiceGetDailySummaryProcedure   = "/" + BudgetServiceName + "/GetDailySummary"

	AuthServiceLoginProcedure = "/" + AuthServiceName + "/Login"
)

// Procedures lists every procedure served by this package.
var Procedures = []string{
	TravelerServiceCreateTravelerProcedure,
	TravelerServiceListTravelersProcedure,
	TravelerServiceDeleteTravelerProcedure,
	ExpenseServiceCreateExpenseProcedure,
	ExpenseServiceGetExpenseProcedure,
	ExpenseServiceListExpensesProcedure,
	ExpenseServiceDeleteExpenseProcedure,
	ExpenseServiceSetSplitSettledProcedure,
	ExpenseServiceSetTransferSettledProcedure,
	BudgetServiceGetSettlementProcedure,
	BudgetServicePreviewSettlementProcedure,
	BudgetServiceGetDailySummaryProcedure,
	AuthServiceLoginProcedure,
}

// TravelerServiceHandler manages trip members.
type TravelerServiceHandler interface {
	CreateTraveler(context.Context, *connect.Request[api.CreateTravelerRequest]) (*connect.Response[api.CreateTravelerResponse], error)
	ListTravelers(context.Context, *connect.Request[api.ListTravelersRequest]) (*connect.Response[api.ListTravelersResponse], error)
	DeleteTraveler(context.Context, *connect.Request[api.DeleteTravelerRequest]) (*connect.Response[api.DeleteTravelerResponse], error)
}

// ExpenseServiceHandler records expenses and their settled flags.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	SetSplitSettled(context.Context, *connect.Request[api.SetSplitSettledRequest]) (*connect.Response[api.SetSplitSettledResponse], error)
	SetTransferSettled(context.Context, *connect.Request[api.SetTransferSettledRequest]) (*connect.Response[api.SetTransferSettledResponse], error)
}

// BudgetServiceHandler serves balances, settlement plans and daily recaps.
type BudgetServiceHandler interface {
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.SettlementReport], error)
	PreviewSettlement(context.Context, *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.SettlementReport], error)
	GetDailySummary(context.Context, *connect.Request[api.GetDailySummaryRequest]) (*connect.Response[api.DailySummary], error)
}

// AuthServiceHandler exchanges the trip passphrase for a session token.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
}

// NewTravelerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewTravelerServiceHandler(svc TravelerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + TravelerServiceName + "/", route(map[string]http.Handler{
		TravelerServiceCreateTravelerProcedure: connect.NewUnaryHandler(TravelerServiceCreateTravelerProcedure, svc.CreateTraveler, opts...),
		TravelerServiceListTravelersProcedure:  connect.NewUnaryHandler(TravelerServiceListTravelersProcedure, svc.ListTravelers, opts...),
		TravelerServiceDeleteTravelerProcedure: connect.NewUnaryHandler(TravelerServiceDeleteTravelerProcedure, svc.DeleteTraveler, opts...),
	})
}

// NewExpenseServiceHandler builds an HTTP handler for ExpenseService.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ExpenseServiceName + "/", route(map[string]http.Handler{
		ExpenseServiceCreateExpenseProcedure:      connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:         connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceListExpensesProcedure:       connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...),
		ExpenseServiceDeleteExpenseProcedure:      connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ExpenseServiceSetSplitSettledProcedure:    connect.NewUnaryHandler(ExpenseServiceSetSplitSettledProcedure, svc.SetSplitSettled, opts...),
		ExpenseServiceSetTransferSettledProcedure: connect.NewUnaryHandler(ExpenseServiceSetTransferSettledProcedure, svc.SetTransferSettled, opts...),
	})
}

// NewBudgetServiceHandler builds an HTTP handler for BudgetService.
func NewBudgetServiceHandler(svc BudgetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	readOnly := append(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))
	return "/" + BudgetServiceName + "/", route(map[string]http.Handler{
		BudgetServiceGetSettlementProcedure:     connect.NewUnaryHandler(BudgetServiceGetSettlementProcedure, svc.GetSettlement, readOnly...),
		BudgetServicePreviewSettlementProcedure: connect.NewUnaryHandler(BudgetServicePreviewSettlementProcedure, svc.PreviewSettlement, opts...),
		BudgetServiceGetDailySummaryProcedure:   connect.NewUnaryHandler(BudgetServiceGetDailySummaryProcedure, svc.GetDailySummary, readOnly...),
	})
}

// NewAuthServiceHandler builds an HTTP handler for AuthService.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + AuthServiceName + "/", route(map[string]http.Handler{
		AuthServiceLoginProcedure: connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
	})
}
