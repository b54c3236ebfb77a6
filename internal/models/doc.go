// Package models defines the persisted domain models for cuptrip.
//
// # Models
//
//   - Traveler: a trip member who can pay for or owe a share of expenses
//   - Expense: a single payment made by one traveler, categorized and dated
//   - ExpenseSplit: the portion of an expense a traveler is responsible for
//
// Relationships use ID strings rather than pointers. Money amounts are
// float64 dollars with two decimals; the calculator package does the cent
// arithmetic.
package models
