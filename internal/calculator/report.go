package calculator

import "github.com/shopspring/decimal"

// Report is everything the budget views need: balances, the annotated
// settlement plan and group totals.
type Report struct {
	Balances         []Balance
	Transfers        []Transfer
	TotalGroupSpend  float64
	PerPersonAverage float64
}

// BuildReport runs the full pipeline over one snapshot of trip data.
// Both the stored-data endpoint and the client preview go through here.
func BuildReport(participants []Participant, expenses []Expense, shares []Share) Report {
	balances := ComputeBalances(participants, expenses, shares)
	transfers := AnnotateSettledStatus(PlanSettlement(balances), shares, expenses)

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(dec(e.Amount))
	}

	return Report{
		Balances:         balances,
		Transfers:        transfers,
		TotalGroupSpend:  toFloat(total),
		PerPersonAverage: perPerson(total, len(participants)),
	}
}

// perPerson divides total by max(count, 1) and rounds to cents.
func perPerson(total decimal.Decimal, count int) float64 {
	if count < 1 {
		count = 1
	}
	return toFloat(total.Div(decimal.NewFromInt(int64(count))))
}
