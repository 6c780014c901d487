package repository

import (
	"database/sql"
	"fmt"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/models"
)

type SavingsRepository struct {
	db *sql.DB
}

func NewSavingsRepository(db *sql.DB) *SavingsRepository {
	return &SavingsRepository{db: db}
}

func (r *SavingsRepository) Create(savings *models.Savings) error {
	query := `
		INSERT INTO savings (id, total, user_id)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(query, savings.ID, savings.Total, savings.UserID)
	if err != nil {
		return fmt.Errorf("failed to create savings: %w", err)
	}
	return nil
}

func (r *SavingsRepository) ListByUser(userID string) ([]models.Savings, error) {
	rows, err := r.db.Query(`SELECT id, total, user_id FROM savings WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings: %w", err)
	}
	defer rows.Close()

	savings := []models.Savings{}
	for rows.Next() {
		var s models.Savings
		if err := rows.Scan(&s.ID, &s.Total, &s.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan savings: %w", err)
		}
		savings = append(savings, s)
	}
	return savings, rows.Err()
}

func (r *SavingsRepository) GetByIDAndUser(id, userID string) (*models.Savings, error) {
	var s models.Savings
	err := r.db.QueryRow(
		`SELECT id, total, user_id FROM savings WHERE id = $1 AND user_id = $2`, id, userID,
	).Scan(&s.ID, &s.Total, &s.UserID)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get savings: %w", err)
	}
	return &s, nil
}

// UpdateTotal writes a freshly recomputed snapshot total back.
func (r *SavingsRepository) UpdateTotal(id, userID string, total float64) error {
	result, err := r.db.Exec(
		`UPDATE savings SET total = $3 WHERE id = $1 AND user_id = $2`, id, userID, total,
	)
	if err != nil {
		return fmt.Errorf("failed to update savings: %w", err)
	}
	return requireRow(result)
}

func (r *SavingsRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM savings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete savings: %w", err)
	}
	return requireRow(result)
}
