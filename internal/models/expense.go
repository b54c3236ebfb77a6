package models

// Expense represents money one traveler spent on behalf of the group
// (or themselves).
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is a short note (e.g., "Uber to MetLife").
	Description string

	// Amount is the total paid, always non-negative.
	Amount float64

	// PayerID is the traveler who paid.
	PayerID string

	// Category groups expenses on the budget page (food, transport, ...).
	Category string

	// Date is the day the money was spent, formatted YYYY-MM-DD.
	Date string

	// Splits say how Amount is divided among travelers.
	// Their shares should add up to Amount.
	Splits []ExpenseSplit

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseSplit is one traveler's share of an expense.
type ExpenseSplit struct {
	ExpenseID  string
	TravelerID string
	Share      float64

	// Settled marks the share as paid back in real life.
	Settled bool
}
