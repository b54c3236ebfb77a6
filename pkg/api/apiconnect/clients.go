package apiconnect

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/cuptrip/pkg/api"
)

// TravelerServiceClient is a client for cuptrip.v1.TravelerService.
type TravelerServiceClient struct {
	createTraveler *connect.Client[api.CreateTravelerRequest, api.CreateTravelerResponse]
	listTravelers  *connect.Client[api.ListTravelersRequest, api.ListTravelersResponse]
	deleteTraveler *connect.Client[api.DeleteTravelerRequest, api.DeleteTravelerResponse]
}

// NewTravelerServiceClient constructs a client for TravelerService. baseURL
// is the server root, e.g. http://localhost:8080.
func NewTravelerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TravelerServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &TravelerServiceClient{
		createTraveler: connect.NewClient[api.CreateTravelerRequest, api.CreateTravelerResponse](httpClient, baseURL+TravelerServiceCreateTravelerProcedure, opts...),
		listTravelers:  connect.NewClient[api.ListTravelersRequest, api.ListTravelersResponse](httpClient, baseURL+TravelerServiceListTravelersProcedure, opts...),
		deleteTraveler: connect.NewClient[api.DeleteTravelerRequest, api.DeleteTravelerResponse](httpClient, baseURL+TravelerServiceDeleteTravelerProcedure, opts...),
	}
}

func (c *TravelerServiceClient) CreateTraveler(ctx context.Context, req *connect.Request[api.CreateTravelerRequest]) (*connect.Response[api.CreateTravelerResponse], error) {
	return c.createTraveler.CallUnary(ctx, req)
}

func (c *TravelerServiceClient) ListTravelers(ctx context.Context, req *connect.Request[api.ListTravelersRequest]) (*connect.Response[api.ListTravelersResponse], error) {
	return c.listTravelers.CallUnary(ctx, req)
}

func (c *TravelerServiceClient) DeleteTraveler(ctx context.Context, req *connect.Request[api.DeleteTravelerRequest]) (*connect.Response[api.DeleteTravelerResponse], error) {
	return c.deleteTraveler.CallUnary(ctx, req)
}

// ExpenseServiceClient is a client for cuptrip.v1.ExpenseService.
type ExpenseServiceClient struct {
	createExpense      *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	getExpense         *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listExpenses       *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	deleteExpense      *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	setSplitSettled    *connect.Client[api.SetSplitSettledRequest, api.SetSplitSettledResponse]
	setTransferSettled *connect.Client[api.SetTransferSettledRequest, api.SetTransferSettledResponse]
}

// NewExpenseServiceClient constructs a client for ExpenseService.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &ExpenseServiceClient{
		createExpense:      connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:         connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:       connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		deleteExpense:      connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		setSplitSettled:    connect.NewClient[api.SetSplitSettledRequest, api.SetSplitSettledResponse](httpClient, baseURL+ExpenseServiceSetSplitSettledProcedure, opts...),
		setTransferSettled: connect.NewClient[api.SetTransferSettledRequest, api.SetTransferSettledResponse](httpClient, baseURL+ExpenseServiceSetTransferSettledProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) SetSplitSettled(ctx context.Context, req *connect.Request[api.SetSplitSettledRequest]) (*connect.Response[api.SetSplitSettledResponse], error) {
	return c.setSplitSettled.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) SetTransferSettled(ctx context.Context, req *connect.Request[api.SetTransferSettledRequest]) (*connect.Response[api.SetTransferSettledResponse], error) {
	return c.setTransferSettled.CallUnary(ctx, req)
}

// BudgetServiceClient is a client for cuptrip.v1.BudgetService.
type BudgetServiceClient struct {
	getSettlement     *connect.Client[api.GetSettlementRequest, api.SettlementReport]
	previewSettlement *connect.Client[api.PreviewSettlementRequest, api.SettlementReport]
	getDailySummary   *connect.Client[api.GetDailySummaryRequest, api.DailySummary]
}

// NewBudgetServiceClient constructs a client for BudgetService.
func NewBudgetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BudgetServiceClient {
	baseURL = trimBase(baseURL)
	opts = clientOptions(opts)
	return &BudgetServiceClient{
		getSettlement:     connect.NewClient[api.GetSettlementRequest, api.SettlementReport](httpClient, baseURL+BudgetServiceGetSettlementProcedure, opts...),
		previewSettlement: connect.NewClient[api.PreviewSettlementRequest, api.SettlementReport](httpClient, baseURL+BudgetServicePreviewSettlementProcedure, opts...),
		getDailySummary:   connect.NewClient[api.GetDailySummaryRequest, api.DailySummary](httpClient, baseURL+BudgetServiceGetDailySummaryProcedure, opts...),
	}
}

func (c *BudgetServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.SettlementReport], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) PreviewSettlement(ctx context.Context, req *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.SettlementReport], error) {
	return c.previewSettlement.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) GetDailySummary(ctx context.Context, req *connect.Request[api.GetDailySummaryRequest]) (*connect.Response[api.DailySummary], error) {
	return c.getDailySummary.CallUnary(ctx, req)
}

// AuthServiceClient is a client for cuptrip.v1.AuthService.
type AuthServiceClient struct {
	login *connect.Client[api.LoginRequest, api.LoginResponse]
}

// NewAuthServiceClient constructs a client for AuthService.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = trimBase(baseURL)
	return &AuthServiceClient{
		login: connect.NewClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, clientOptions(opts)...),
	}
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}
