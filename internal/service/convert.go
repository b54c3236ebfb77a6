package service

import (
	"github.com/mmynk/cuptrip/internal/calculator"
	"github.com/mmynk/cuptrip/internal/models"
	"github.com/mmynk/cuptrip/pkg/api"
)

func travelerToAPI(t *models.Traveler) *api.Traveler {
	return &api.Traveler{
		ID:        t.ID,
		Name:      t.Name,
		Emoji:     t.Emoji,
		Color:     t.Color,
		CreatedAt: t.CreatedAt,
	}
}

func expenseToAPI(e *models.Expense) *api.Expense {
	splits := make([]api.ExpenseSplit, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = api.ExpenseSplit{
			ExpenseID:  s.ExpenseID,
			TravelerID: s.TravelerID,
			Share:      s.Share,
			Settled:    s.Settled,
		}
	}
	return &api.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		PayerID:     e.PayerID,
		Category:    e.Category,
		Date:        e.Date,
		Splits:      splits,
		CreatedAt:   e.CreatedAt,
	}
}

// snapshot is the calculator's view of one ledger, plus the traveler
// details needed to decorate the result.
type snapshot struct {
	travelers    []api.Traveler
	participants []calculator.Participant
	expenses     []calculator.Expense
	shares       []calculator.Share
}

func snapshotFromLedger(travelers []*models.Traveler, expenses []*models.Expense) snapshot {
	var snap snapshot
	for _, t := range travelers {
		snap.travelers = append(snap.travelers, *travelerToAPI(t))
		snap.participants = append(snap.participants, calculator.Participant{ID: t.ID, Name: t.Name})
	}
	for _, e := range expenses {
		snap.expenses = append(snap.expenses, calculator.Expense{
			ID:       e.ID,
			Amount:   e.Amount,
			PayerID:  e.PayerID,
			Category: e.Category,
			Date:     e.Date,
		})
		for _, s := range e.Splits {
			snap.shares = append(snap.shares, calculator.Share{
				ExpenseID:     e.ID,
				ParticipantID: s.TravelerID,
				Amount:        s.Share,
				Settled:       s.Settled,
			})
		}
	}
	return snap
}

// snapshotFromPreview reads a client-supplied snapshot. Splits may arrive
// nested in their expense, in the top-level list, or both; a share is
// counted once per (expense, traveler), nested copies first.
func snapshotFromPreview(req *api.PreviewSettlementRequest) snapshot {
	type shareKey struct{ expenseID, travelerID string }

	var snap snapshot
	seen := make(map[shareKey]bool)
	addShare := func(expenseID string, s api.ExpenseSplit) {
		key := shareKey{expenseID, s.TravelerID}
		if seen[key] {
			return
		}
		seen[key] = true
		snap.shares = append(snap.shares, calculator.Share{
			ExpenseID:     expenseID,
			ParticipantID: s.TravelerID,
			Amount:        s.Share,
			Settled:       s.Settled,
		})
	}

	for _, t := range req.Travelers {
		snap.travelers = append(snap.travelers, t)
		snap.participants = append(snap.participants, calculator.Participant{ID: t.ID, Name: t.Name})
	}
	for _, e := range req.Expenses {
		snap.expenses = append(snap.expenses, calculator.Expense{
			ID:       e.ID,
			Amount:   e.Amount,
			PayerID:  e.PayerID,
			Category: e.Category,
			Date:     e.Date,
		})
		for _, s := range e.Splits {
			addShare(e.ID, s)
		}
	}
	for _, s := range req.Splits {
		addShare(s.ExpenseID, s)
	}
	return snap
}

// report runs the calculator and shapes the result for the budget page.
func (snap snapshot) report() *api.SettlementReport {
	r := calculator.BuildReport(snap.participants, snap.expenses, snap.shares)

	byID := make(map[string]api.Traveler, len(snap.travelers))
	for _, t := range snap.travelers {
		byID[t.ID] = t
	}

	out := &api.SettlementReport{
		Travelers:        make([]api.TravelerBalance, len(r.Balances)),
		Settlements:      make([]api.Settlement, len(r.Transfers)),
		TotalGroupSpend:  r.TotalGroupSpend,
		PerPersonAverage: r.PerPersonAverage,
	}
	for i, b := range r.Balances {
		t := byID[b.ParticipantID]
		byCategory := make(map[string]api.CategoryTotals, len(b.ByCategory))
		for c, amounts := range b.ByCategory {
			byCategory[c] = api.CategoryTotals{Paid: amounts.Paid, Owed: amounts.Owed}
		}
		out.Travelers[i] = api.TravelerBalance{
			ID:         b.ParticipantID,
			Name:       t.Name,
			Emoji:      t.Emoji,
			Color:      t.Color,
			TotalPaid:  b.TotalPaid,
			TotalOwes:  b.TotalOwed,
			Balance:    b.Net,
			ByCategory: byCategory,
		}
	}
	for i, tr := range r.Transfers {
		out.Settlements[i] = api.Settlement{
			From:    byID[tr.From].Name,
			FromID:  tr.From,
			To:      byID[tr.To].Name,
			ToID:    tr.To,
			Amount:  tr.Amount,
			Settled: tr.Settled,
		}
	}
	return out
}

func (snap snapshot) names() map[string]string {
	names := make(map[string]string, len(snap.travelers))
	for _, t := range snap.travelers {
		names[t.ID] = t.Name
	}
	return names
}
