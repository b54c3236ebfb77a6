package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/cuptrip/internal/calculator"
	"github.com/mmynk/cuptrip/internal/metrics"
	"github.com/mmynk/cuptrip/internal/storage"
	"github.com/mmynk/cuptrip/pkg/api"
)

// ErrInvalidDate is returned (wrapped) for a date that is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// BudgetService serves balances, the settlement plan and daily recaps.
// Report, Preview and DailySummary are shared with the REST routes.
type BudgetService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

// NewBudgetService creates a BudgetService. m may be nil.
func NewBudgetService(store storage.Store, m *metrics.Metrics) *BudgetService {
	return &BudgetService{store: store, metrics: m}
}

// Report builds the settlement report from stored data.
func (s *BudgetService) Report(ctx context.Context) (*api.SettlementReport, error) {
	ledger, err := s.store.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	report := snapshotFromLedger(ledger.Travelers, ledger.Expenses).report()
	s.metrics.ObserveReport(metrics.SourceStored, len(report.Settlements))
	slog.Debug("Settlement report built",
		"source", metrics.SourceStored,
		"travelers", len(report.Travelers),
		"settlements", len(report.Settlements),
		"total", report.TotalGroupSpend,
	)
	return report, nil
}

// Preview builds the report from data the caller already holds.
func (s *BudgetService) Preview(req *api.PreviewSettlementRequest) *api.SettlementReport {
	report := snapshotFromPreview(req).report()
	s.metrics.ObserveReport(metrics.SourcePreview, len(report.Settlements))
	return report
}

// DailySummary totals one day of spending.
func (s *BudgetService) DailySummary(ctx context.Context, date string) (*api.DailySummary, error) {
	if err := validateDate(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	ledger, err := s.store.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	snap := snapshotFromLedger(ledger.Travelers, ledger.Expenses)

	day := calculator.SummarizeDay(snap.expenses, date, len(snap.participants))
	return &api.DailySummary{
		Date:       day.Date,
		Count:      day.Count,
		Total:      day.Total,
		PerPerson:  day.PerPerson,
		ByCategory: day.ByCategory,
		Text:       day.Text(snap.names()),
	}, nil
}

// GetSettlement implements BudgetServiceHandler.
func (s *BudgetService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.SettlementReport], error) {
	report, err := s.Report(ctx)
	if err != nil {
		slog.Error("GetSettlement failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(report), nil
}

// PreviewSettlement implements BudgetServiceHandler.
func (s *BudgetService) PreviewSettlement(ctx context.Context, req *connect.Request[api.PreviewSettlementRequest]) (*connect.Response[api.SettlementReport], error) {
	return connect.NewResponse(s.Preview(req.Msg)), nil
}

// GetDailySummary implements BudgetServiceHandler.
func (s *BudgetService) GetDailySummary(ctx context.Context, req *connect.Request[api.GetDailySummaryRequest]) (*connect.Response[api.DailySummary], error) {
	summary, err := s.DailySummary(ctx, req.Msg.Date)
	if errors.Is(err, ErrInvalidDate) {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err != nil {
		slog.Error("GetDailySummary failed", "date", req.Msg.Date, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(summary), nil
}
