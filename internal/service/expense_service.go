package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/cuptrip/internal/calculator"
	"github.com/mmynk/cuptrip/internal/middleware"
	"github.com/mmynk/cuptrip/internal/models"
	"github.com/mmynk/cuptrip/internal/storage"
	"github.com/mmynk/cuptrip/pkg/api"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// normalizeCategory lowercases the category; blank becomes "other".
func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return calculator.CategoryOther
	}
	return category
}

func validateDate(date string) error {
	if _, err := time.Parse(calculator.DateLayout, date); err != nil {
		return fmt.Errorf("date %q must be YYYY-MM-DD", date)
	}
	return nil
}

// buildSplits turns the request into stored splits. Explicit shares must be
// whole cents and add up to the stored (rounded) amount; otherwise the
// amount is divided evenly among splitWith, or among every traveler when
// splitWith is empty.
func buildSplits(req *api.CreateExpenseRequest, travelers []*models.Traveler) ([]models.ExpenseSplit, error) {
	known := make(map[string]bool, len(travelers))
	for _, t := range travelers {
		known[t.ID] = true
	}

	if len(req.Splits) > 0 {
		seen := make(map[string]bool, len(req.Splits))
		sum := decimal.Zero
		splits := make([]models.ExpenseSplit, 0, len(req.Splits))
		for _, in := range req.Splits {
			if !known[in.TravelerID] {
				return nil, fmt.Errorf("split traveler '%s' does not exist", in.TravelerID)
			}
			if seen[in.TravelerID] {
				return nil, fmt.Errorf("traveler '%s' appears in more than one split", in.TravelerID)
			}
			if in.Share < 0 {
				return nil, fmt.Errorf("share for '%s' must not be negative", in.TravelerID)
			}
			share := decimal.NewFromFloat(in.Share)
			if !share.Round(2).Equal(share) {
				return nil, fmt.Errorf("share for '%s' must be a whole number of cents", in.TravelerID)
			}
			seen[in.TravelerID] = true
			sum = sum.Add(share)
			splits = append(splits, models.ExpenseSplit{TravelerID: in.TravelerID, Share: share.InexactFloat64()})
		}
		amount := decimal.NewFromFloat(calculator.Round2(req.Amount))
		if sum.Sub(amount).Abs().GreaterThan(decimal.NewFromFloat(calculator.Tolerance)) {
			return nil, fmt.Errorf("shares add up to %s, expected %s", sum.StringFixed(2), amount.StringFixed(2))
		}
		return splits, nil
	}

	ids := make([]string, 0, len(travelers))
	if len(req.SplitWith) > 0 {
		seen := make(map[string]bool, len(req.SplitWith))
		for _, id := range req.SplitWith {
			if !known[id] {
				return nil, fmt.Errorf("split traveler '%s' does not exist", id)
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	} else {
		for _, t := range travelers {
			ids = append(ids, t.ID)
		}
	}

	shares := calculator.SplitEvenly(req.Amount, len(ids))
	splits := make([]models.ExpenseSplit, len(ids))
	for i, id := range ids {
		splits[i] = models.ExpenseSplit{TravelerID: id, Share: shares[i]}
	}
	return splits, nil
}

// CreateExpense records a payment and how it is shared.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg

	if msg.Amount < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("amount must not be negative"))
	}
	if err := validateDate(msg.Date); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	payerID := msg.PayerID
	if payerID == "" {
		payerID = middleware.GetTravelerID(ctx)
	}
	if payerID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("payer_id is required"))
	}

	travelers, err := s.store.ListTravelers(ctx)
	if err != nil {
		slog.Error("CreateExpense: failed to list travelers", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	payerKnown := false
	for _, t := range travelers {
		if t.ID == payerID {
			payerKnown = true
			break
		}
	}
	if !payerKnown {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("payer '%s' does not exist", payerID))
	}

	splits, err := buildSplits(msg, travelers)
	if err != nil {
		slog.Warn("CreateExpense split validation failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if len(splits) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("expense must be split among at least one traveler"))
	}

	expense := &models.Expense{
		Description: strings.TrimSpace(msg.Description),
		Amount:      calculator.Round2(msg.Amount),
		PayerID:     payerID,
		Category:    normalizeCategory(msg.Category),
		Date:        msg.Date,
		Splits:      splits,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"payer_id", expense.PayerID,
		"amount", expense.Amount,
		"category", expense.Category,
		"splits", len(expense.Splits),
	)
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// GetExpense retrieves an expense with its splits.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, storageError("GetExpense", err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// ListExpenses returns every expense, or one day's when a date is given.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if req.Msg.Date != "" {
		if err := validateDate(req.Msg.Date); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	expenses, err := s.store.ListExpenses(ctx, req.Msg.Date)
	if err != nil {
		return nil, storageError("ListExpenses", err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToAPI(e)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense and its splits.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		return nil, storageError("DeleteExpense", err)
	}
	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// SetSplitSettled marks one traveler's share of one expense as paid back.
func (s *ExpenseService) SetSplitSettled(ctx context.Context, req *connect.Request[api.SetSplitSettledRequest]) (*connect.Response[api.SetSplitSettledResponse], error) {
	if err := s.store.SetSplitSettled(ctx, req.Msg.ExpenseID, req.Msg.TravelerID, req.Msg.Settled); err != nil {
		return nil, storageError("SetSplitSettled", err)
	}
	return connect.NewResponse(&api.SetSplitSettledResponse{}), nil
}

// SetTransferSettled marks every share From owes on expenses paid by To,
// which is what the settled flag on a suggested transfer reads back.
func (s *ExpenseService) SetTransferSettled(ctx context.Context, req *connect.Request[api.SetTransferSettledRequest]) (*connect.Response[api.SetTransferSettledResponse], error) {
	if req.Msg.FromID == "" || req.Msg.ToID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("from_id and to_id are required"))
	}
	if req.Msg.FromID == req.Msg.ToID {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("from_id and to_id must differ"))
	}

	updated, err := s.store.SetTransferSettled(ctx, req.Msg.FromID, req.Msg.ToID, req.Msg.Settled)
	if err != nil {
		return nil, storageError("SetTransferSettled", err)
	}

	slog.Info("Transfer settled flag updated",
		"from_id", req.Msg.FromID,
		"to_id", req.Msg.ToID,
		"settled", req.Msg.Settled,
		"updated", updated,
	)
	return connect.NewResponse(&api.SetTransferSettledResponse{Updated: updated}), nil
}

// storageError maps a store error to a Connect error, logging the
// unexpected ones.
func storageError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, err)
}
