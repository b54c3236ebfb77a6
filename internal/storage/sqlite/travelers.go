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

// CreateTraveler inserts a new traveler into the database.
func (s *SQLiteStore) CreateTraveler(ctx context.Context, traveler *models.Traveler) error {
	if traveler.ID == "" {
		traveler.ID = uuid.New().String()
	}
	if traveler.CreatedAt == 0 {
		traveler.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO travelers (id, name, emoji, color, created_at) VALUES (?, ?, ?, ?, ?)`,
		traveler.ID, traveler.Name, traveler.Emoji, traveler.Color, traveler.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create traveler: %w", err)
	}

	return nil
}

// GetTraveler retrieves a traveler by ID.
func (s *SQLiteStore) GetTraveler(ctx context.Context, travelerID string) (*models.Traveler, error) {
	traveler := &models.Traveler{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, emoji, color, created_at FROM travelers WHERE id = ?`,
		travelerID,
	).Scan(&traveler.ID, &traveler.Name, &traveler.Emoji, &traveler.Color, &traveler.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("traveler %s: %w", travelerID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get traveler: %w", err)
	}

	return traveler, nil
}

// ListTravelers returns every traveler in join order.
func (s *SQLiteStore) ListTravelers(ctx context.Context) ([]*models.Traveler, error) {
	return listTravelers(ctx, s.db)
}

func listTravelers(ctx context.Context, q querier) ([]*models.Traveler, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, name, emoji, color, created_at FROM travelers ORDER BY created_at, name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list travelers: %w", err)
	}
	defer rows.Close()

	travelers := []*models.Traveler{}
	for rows.Next() {
		traveler := &models.Traveler{}
		if err := rows.Scan(&traveler.ID, &traveler.Name, &traveler.Emoji, &traveler.Color, &traveler.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan traveler: %w", err)
		}
		travelers = append(travelers, traveler)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating travelers: %w", err)
	}

	return travelers, nil
}

// DeleteTraveler removes a traveler who has no expenses or splits.
func (s *SQLiteStore) DeleteTraveler(ctx context.Context, travelerID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var refs int
	err = tx.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM expenses WHERE payer_id = ?)
		      + (SELECT COUNT(*) FROM expense_splits WHERE traveler_id = ?)`,
		travelerID, travelerID,
	).Scan(&refs)
	if err != nil {
		return fmt.Errorf("failed to check traveler references: %w", err)
	}
	if refs > 0 {
		return fmt.Errorf("traveler %s: %w", travelerID, storage.ErrInUse)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM travelers WHERE id = ?", travelerID)
	if err != nil {
		return fmt.Errorf("failed to delete traveler: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("traveler %s: %w", travelerID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
