// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/cuptrip/internal/models"
)

var (
	// ErrNotFound is returned (wrapped) when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInUse is returned when deleting a traveler that expenses still reference.
	ErrInUse = errors.New("still referenced")
)

// Ledger is a consistent snapshot of everything the budget views read.
type Ledger struct {
	Travelers []*models.Traveler
	Expenses  []*models.Expense // Splits are populated
}

// Store defines the interface for trip storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTraveler persists a new traveler.
	// The ID and CreatedAt fields will be populated by the store if empty.
	CreateTraveler(ctx context.Context, traveler *models.Traveler) error

	// GetTraveler retrieves a traveler by ID.
	GetTraveler(ctx context.Context, travelerID string) (*models.Traveler, error)

	// ListTravelers returns all travelers in the order they joined.
	ListTravelers(ctx context.Context) ([]*models.Traveler, error)

	// DeleteTraveler removes a traveler. Fails with ErrInUse while any
	// expense or split references them.
	DeleteTraveler(ctx context.Context, travelerID string) error

	// CreateExpense persists an expense and its splits atomically.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns expenses with splits ordered by date.
	// A non-empty date restricts the result to that day.
	ListExpenses(ctx context.Context, date string) ([]*models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// SetSplitSettled flips the settled flag of one split.
	SetSplitSettled(ctx context.Context, expenseID, travelerID string, settled bool) error

	// SetTransferSettled flips the settled flag of every split owed by
	// fromID on an expense paid by toID and returns how many changed.
	SetTransferSettled(ctx context.Context, fromID, toID string, settled bool) (int64, error)

	// LoadLedger reads travelers, expenses and splits in one transaction.
	LoadLedger(ctx context.Context) (*Ledger, error)

	// Close releases any resources held by the store.
	Close() error
}
