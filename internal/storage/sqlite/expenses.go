package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/cuptrip/internal/models"
	"github.com/mmynk/cuptrip/internal/storage"
)

// CreateExpense persists a new expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, description, amount, payer_id, category, spent_on, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Description, expense.Amount, expense.PayerID,
		expense.Category, expense.Date, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Splits {
		split := &expense.Splits[i]
		split.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (expense_id, traveler_id, share, settled) VALUES (?, ?, ?, ?)`,
			split.ExpenseID, split.TravelerID, split.Share, split.Settled,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, description, amount, payer_id, category, spent_on, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.Description, &expense.Amount, &expense.PayerID,
		&expense.Category, &expense.Date, &expense.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT expense_id, traveler_id, share, settled FROM expense_splits
		 WHERE expense_id = ? ORDER BY rowid`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.ExpenseSplit
		if err := rows.Scan(&split.ExpenseID, &split.TravelerID, &split.Share, &split.Settled); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		expense.Splits = append(expense.Splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return expense, nil
}

// ListExpenses returns expenses (with splits) ordered by date, optionally
// limited to one day.
func (s *SQLiteStore) ListExpenses(ctx context.Context, date string) ([]*models.Expense, error) {
	return listExpenses(ctx, s.db, date)
}

func listExpenses(ctx context.Context, q querier, date string) ([]*models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, description, amount, payer_id, category, spent_on, created_at
		 FROM expenses WHERE (? = '' OR spent_on = ?)
		 ORDER BY spent_on, created_at, id`,
		date, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	byID := make(map[string]*models.Expense)
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.Description, &expense.Amount, &expense.PayerID,
			&expense.Category, &expense.Date, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
		byID[expense.ID] = expense
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	splitRows, err := q.QueryContext(ctx,
		`SELECT s.expense_id, s.traveler_id, s.share, s.settled
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE (? = '' OR e.spent_on = ?)
		 ORDER BY s.rowid`,
		date, date,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var split models.ExpenseSplit
		if err := splitRows.Scan(&split.ExpenseID, &split.TravelerID, &split.Share, &split.Settled); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if expense, ok := byID[split.ExpenseID]; ok {
			expense.Splits = append(expense.Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return expenses, nil
}

// DeleteExpense removes an expense by ID. Splits go with it.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// SetSplitSettled marks a single split as paid or unpaid.
func (s *SQLiteStore) SetSplitSettled(ctx context.Context, expenseID, travelerID string, settled bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expense_splits SET settled = ? WHERE expense_id = ? AND traveler_id = ?",
		settled, expenseID, travelerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update split: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("split %s/%s: %w", expenseID, travelerID, storage.ErrNotFound)
	}
	return nil
}

// SetTransferSettled marks every split fromID owes on expenses paid by toID.
func (s *SQLiteStore) SetTransferSettled(ctx context.Context, fromID, toID string, settled bool) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expense_splits SET settled = ?
		 WHERE traveler_id = ?
		   AND expense_id IN (SELECT id FROM expenses WHERE payer_id = ?)`,
		settled, fromID, toID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update splits: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated splits: %w", err)
	}
	return n, nil
}
