// Package api defines the wire messages shared by the Connect services and
// the REST routes. Field names are the JSON names the web client reads.
package api

// Paths of the plain JSON routes.
const (
	RouteSettlement        = "/api/settlement"
	RouteSettlementPreview = "/api/settlement/preview"
	RouteDailySummary      = "/api/summary/daily"
	RouteHealth            = "/healthz"
	RouteMetrics           = "/metrics"
)

// Traveler is a trip member.
type Traveler struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Emoji     string `json:"emoji"`
	Color     string `json:"color"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// ExpenseSplit is one traveler's share of an expense.
type ExpenseSplit struct {
	ExpenseID  string  `json:"expenseId,omitempty"`
	TravelerID string  `json:"travelerId"`
	Share      float64 `json:"share"`
	Settled    bool    `json:"settled"`
}

// Expense is a payment made by one traveler.
type Expense struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	PayerID     string         `json:"payerId"`
	Category    string         `json:"category"`
	Date        string         `json:"date"`
	Splits      []ExpenseSplit `json:"splits,omitempty"`
	CreatedAt   int64          `json:"createdAt,omitempty"`
}

// CategoryTotals is one row of a traveler's per-category breakdown.
type CategoryTotals struct {
	Paid float64 `json:"paid"`
	Owed float64 `json:"owed"`
}

// TravelerBalance is a traveler's position on the budget page.
// TotalOwes and Balance carry total owed and net (paid minus owed).
type TravelerBalance struct {
	ID         string                    `json:"id"`
	Name       string                    `json:"name"`
	Emoji      string                    `json:"emoji"`
	Color      string                    `json:"color"`
	TotalPaid  float64                   `json:"totalPaid"`
	TotalOwes  float64                   `json:"totalOwes"`
	Balance    float64                   `json:"balance"`
	ByCategory map[string]CategoryTotals `json:"byCategory"`
}

// Settlement is one suggested payment.
type Settlement struct {
	From    string  `json:"from"`
	FromID  string  `json:"fromId"`
	To      string  `json:"to"`
	ToID    string  `json:"toId"`
	Amount  float64 `json:"amount"`
	Settled bool    `json:"settled"`
}

// SettlementReport is the body of GET /api/settlement.
type SettlementReport struct {
	Travelers        []TravelerBalance `json:"travelers"`
	Settlements      []Settlement      `json:"settlements"`
	TotalGroupSpend  float64           `json:"totalGroupSpend"`
	PerPersonAverage float64           `json:"perPersonAverage"`
}

// DailySummary is the recap of one day of spending.
type DailySummary struct {
	Date       string             `json:"date"`
	Count      int                `json:"count"`
	Total      float64            `json:"total"`
	PerPerson  float64            `json:"perPerson"`
	ByCategory map[string]float64 `json:"byCategory"`
	Text       string             `json:"text"`
}

// ErrorResponse is the body of every non-2xx REST response.
type ErrorResponse struct {
	Error string `json:"error"`
}
