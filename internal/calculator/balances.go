package calculator

import (
	"slices"

	"github.com/shopspring/decimal"
)

// CategoryOther is the bucket for shares whose expense cannot be found and
// for expenses saved without a category.
const CategoryOther = "other"

// Participant is a trip member as the engine sees it.
type Participant struct {
	ID   string
	Name string
}

// Expense is a payment made by one participant.
type Expense struct {
	ID       string
	Amount   float64
	PayerID  string
	Category string
	Date     string // YYYY-MM-DD
}

// Share is the portion of an expense a participant is responsible for.
type Share struct {
	ExpenseID     string
	ParticipantID string
	Amount        float64
	Settled       bool
}

// CategoryAmounts is one row of a per-category breakdown.
type CategoryAmounts struct {
	Paid float64
	Owed float64
}

// Balance is one participant's position across all expenses.
type Balance struct {
	ParticipantID string
	TotalPaid     float64
	TotalOwed     float64
	Net           float64 // Positive = owed money, Negative = owes money
	ByCategory    map[string]CategoryAmounts
}

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	From    string // Participant who owes
	To      string // Participant who is owed
	Amount  float64
	Settled bool
}

type categoryTotals struct {
	paid decimal.Decimal
	owed decimal.Decimal
}

type accumulator struct {
	paid       decimal.Decimal
	owed       decimal.Decimal
	byCategory map[string]*categoryTotals
}

func (a *accumulator) bucket(category string) *categoryTotals {
	ct, ok := a.byCategory[category]
	if !ok {
		ct = &categoryTotals{}
		a.byCategory[category] = ct
	}
	return ct
}

func normalizeCategory(category string) string {
	if category == "" {
		return CategoryOther
	}
	return category
}

// ComputeBalances returns one Balance per participant, in participant order.
//
// Algorithm:
//   - Payer of each expense: TotalPaid += amount (and byCategory[category].Paid)
//   - Each share: TotalOwed += share (and byCategory[expense category].Owed)
//   - Net = TotalPaid - TotalOwed, everything rounded to cents at the end
//
// Expenses paid by, and shares owed by, someone outside participants are
// ignored. A share whose expense is missing is booked under "other".
func ComputeBalances(participants []Participant, expenses []Expense, shares []Share) []Balance {
	acc := make(map[string]*accumulator, len(participants))
	for _, p := range participants {
		acc[p.ID] = &accumulator{byCategory: make(map[string]*categoryTotals)}
	}

	categoryOf := make(map[string]string, len(expenses))
	for _, e := range expenses {
		category := normalizeCategory(e.Category)
		categoryOf[e.ID] = category

		a, ok := acc[e.PayerID]
		if !ok {
			continue
		}
		amount := dec(e.Amount)
		a.paid = a.paid.Add(amount)
		ct := a.bucket(category)
		ct.paid = ct.paid.Add(amount)
	}

	for _, s := range shares {
		a, ok := acc[s.ParticipantID]
		if !ok {
			continue
		}
		category, ok := categoryOf[s.ExpenseID]
		if !ok {
			category = CategoryOther
		}
		amount := dec(s.Amount)
		a.owed = a.owed.Add(amount)
		ct := a.bucket(category)
		ct.owed = ct.owed.Add(amount)
	}

	balances := make([]Balance, 0, len(participants))
	for _, p := range participants {
		a := acc[p.ID]
		byCategory := make(map[string]CategoryAmounts, len(a.byCategory))
		for category, ct := range a.byCategory {
			byCategory[category] = CategoryAmounts{
				Paid: toFloat(ct.paid),
				Owed: toFloat(ct.owed),
			}
		}
		balances = append(balances, Balance{
			ParticipantID: p.ID,
			TotalPaid:     toFloat(a.paid),
			TotalOwed:     toFloat(a.owed),
			Net:           toFloat(a.paid.Sub(a.owed)),
			ByCategory:    byCategory,
		})
	}
	return balances
}

type position struct {
	id  string
	net decimal.Decimal
}

// PlanSettlement turns net balances into a short list of transfers.
//
// Debtors (net < -0.01) are sorted most-negative first and creditors
// (net > 0.01) largest first, then matched greedily with two cursors. This
// pairs the biggest imbalances first, which keeps the transfer count low but
// is not a guaranteed global minimum. If total debt and total credit do not
// match, the transfers found before either side runs out are returned.
func PlanSettlement(balances []Balance) []Transfer {
	var debtors, creditors []position
	for _, b := range balances {
		net := dec(b.Net)
		switch {
		case net.LessThan(tolerance.Neg()):
			debtors = append(debtors, position{id: b.ParticipantID, net: net})
		case net.GreaterThan(tolerance):
			creditors = append(creditors, position{id: b.ParticipantID, net: net})
		}
	}

	slices.SortStableFunc(debtors, func(a, b position) int { return a.net.Cmp(b.net) })
	slices.SortStableFunc(creditors, func(a, b position) int { return b.net.Cmp(a.net) })

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.net.Abs(), creditor.net)
		if amount.GreaterThan(tolerance) {
			transfers = append(transfers, Transfer{
				From:   debtor.id,
				To:     creditor.id,
				Amount: toFloat(amount),
			})
		}

		debtor.net = debtor.net.Add(amount)
		creditor.net = creditor.net.Sub(amount)

		if debtor.net.Abs().LessThan(tolerance) {
			i++
		}
		if creditor.net.LessThan(tolerance) {
			j++
		}
	}
	return transfers
}

// AnnotateSettledStatus marks each transfer settled when every share owed by
// From on an expense paid by To is settled. No such shares means unsettled.
//
// A transfer can net out debts that never ran directly between its two
// participants, so the flag is a display hint rather than a payment record.
func AnnotateSettledStatus(transfers []Transfer, shares []Share, expenses []Expense) []Transfer {
	payerOf := make(map[string]string, len(expenses))
	for _, e := range expenses {
		payerOf[e.ID] = e.PayerID
	}

	annotated := make([]Transfer, len(transfers))
	for i, t := range transfers {
		matched, allSettled := 0, true
		for _, s := range shares {
			payer, ok := payerOf[s.ExpenseID]
			if !ok || s.ParticipantID != t.From || payer != t.To {
				continue
			}
			matched++
			if !s.Settled {
				allSettled = false
			}
		}
		t.Settled = matched > 0 && allSettled
		annotated[i] = t
	}
	return annotated
}
