package api

// CreateTravelerRequest adds a traveler to the trip.
type CreateTravelerRequest struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// CreateTravelerResponse returns the stored traveler with its new id.
type CreateTravelerResponse struct {
	Traveler *Traveler `json:"traveler"`
}

// ListTravelersRequest asks for every traveler on the trip.
type ListTravelersRequest struct{}

// ListTravelersResponse lists travelers in join order.
type ListTravelersResponse struct {
	Travelers []*Traveler `json:"travelers"`
}

// DeleteTravelerRequest removes a traveler who has no expenses.
type DeleteTravelerRequest struct {
	TravelerID string `json:"travelerId"`
}

// DeleteTravelerResponse is empty.
type DeleteTravelerResponse struct{}

// SplitInput is an explicit share on a new expense.
type SplitInput struct {
	TravelerID string  `json:"travelerId"`
	Share      float64 `json:"share"`
}

// CreateExpenseRequest records an expense. Give either Splits (explicit
// shares) or SplitWith (even split among those travelers). With neither,
// the amount is split evenly among every traveler. An empty PayerID means
// the signed-in traveler.
type CreateExpenseRequest struct {
	Description string       `json:"description"`
	Amount      float64      `json:"amount"`
	PayerID     string       `json:"payerId"`
	Category    string       `json:"category"`
	Date        string       `json:"date"`
	SplitWith   []string     `json:"splitWith,omitempty"`
	Splits      []SplitInput `json:"splits,omitempty"`
}

// CreateExpenseResponse returns the stored expense with its splits.
type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// GetExpenseRequest looks up one expense by id.
type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

// GetExpenseResponse carries the expense and its splits.
type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// ListExpensesRequest lists every expense, or one day's when Date is set.
type ListExpensesRequest struct {
	Date string `json:"date,omitempty"`
}

// ListExpensesResponse lists expenses with their splits.
type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// DeleteExpenseRequest removes an expense and its splits.
type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

// DeleteExpenseResponse is empty.
type DeleteExpenseResponse struct{}

// SetSplitSettledRequest flags one traveler's share of one expense as paid back.
type SetSplitSettledRequest struct {
	ExpenseID  string `json:"expenseId"`
	TravelerID string `json:"travelerId"`
	Settled    bool   `json:"settled"`
}

// SetSplitSettledResponse is empty.
type SetSplitSettledResponse struct{}

// SetTransferSettledRequest marks every share FromID owes on expenses paid
// by ToID.
type SetTransferSettledRequest struct {
	FromID  string `json:"fromId"`
	ToID    string `json:"toId"`
	Settled bool   `json:"settled"`
}

// SetTransferSettledResponse reports how many shares changed.
type SetTransferSettledResponse struct {
	Updated int64 `json:"updated"`
}

// GetSettlementRequest asks for the report over stored data.
type GetSettlementRequest struct{}

// PreviewSettlementRequest carries data the client already has so the
// report can be recomputed without reading storage.
type PreviewSettlementRequest struct {
	Travelers []Traveler     `json:"travelers"`
	Expenses  []Expense      `json:"expenses"`
	Splits    []ExpenseSplit `json:"splits"`
}

// GetDailySummaryRequest names the day to summarize as YYYY-MM-DD.
type GetDailySummaryRequest struct {
	Date string `json:"date"`
}

// LoginRequest exchanges the trip passphrase for a session.
type LoginRequest struct {
	TravelerID string `json:"travelerId"`
	Passphrase string `json:"passphrase"`
}

// LoginResponse carries the session token and the signed-in traveler.
type LoginResponse struct {
	Token    string    `json:"token"`
	Traveler *Traveler `json:"traveler"`
}
