package calculator

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the format of expense dates.
const DateLayout = "2006-01-02"

// DaySummary aggregates the expenses logged on one date.
type DaySummary struct {
	Date       string
	Count      int
	Total      float64
	PerPerson  float64
	ByCategory map[string]float64
	ByPayer    map[string]float64
}

// SummarizeDay totals the expenses dated date. The per-person figure divides
// by max(participantCount, 1).
func SummarizeDay(expenses []Expense, date string, participantCount int) DaySummary {
	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	byPayer := make(map[string]decimal.Decimal)
	count := 0

	for _, e := range expenses {
		if e.Date != date {
			continue
		}
		amount := dec(e.Amount)
		category := normalizeCategory(e.Category)

		count++
		total = total.Add(amount)
		byCategory[category] = byCategory[category].Add(amount)
		byPayer[e.PayerID] = byPayer[e.PayerID].Add(amount)
	}

	return DaySummary{
		Date:       date,
		Count:      count,
		Total:      toFloat(total),
		PerPerson:  perPerson(total, participantCount),
		ByCategory: roundAll(byCategory),
		ByPayer:    roundAll(byPayer),
	}
}

func roundAll(m map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = toFloat(v)
	}
	return out
}

// Text renders the summary as the short message shown on the daily recap
// card. names maps participant ids to display names; unknown ids are shown
// as-is.
func (s DaySummary) Text(names map[string]string) string {
	label := s.Date
	if t, err := time.Parse(DateLayout, s.Date); err == nil {
		label = t.Format("Monday, January 2")
	}

	if s.Count == 0 {
		return fmt.Sprintf("%s: no expenses logged.", label)
	}

	noun := "expenses"
	if s.Count == 1 {
		noun = "expense"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d %s totaling $%.2f ($%.2f per person).", label, s.Count, noun, s.Total, s.PerPerson)

	if category, amount, ok := largest(s.ByCategory); ok {
		fmt.Fprintf(&b, " Biggest category: %s ($%.2f).", category, amount)
	}
	if payer, amount, ok := largest(s.ByPayer); ok {
		name := payer
		if n, found := names[payer]; found && n != "" {
			name = n
		}
		fmt.Fprintf(&b, " Top spender: %s ($%.2f).", name, amount)
	}
	return b.String()
}

// largest returns the key with the highest value, breaking ties by key so
// the text is stable.
func largest(m map[string]float64) (string, float64, bool) {
	if len(m) == 0 {
		return "", 0, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if m[k] > m[best] {
			best = k
		}
	}
	return best, m[best], true
}
