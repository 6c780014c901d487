package repository

import (
	"database/sql"
	"fmt"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/models"
)

type IncomeRepository struct {
	db *sql.DB
}

func NewIncomeRepository(db *sql.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Create(income *models.Income) error {
	query := `
		INSERT INTO income (id, name, description, amount, date, category_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		income.ID, income.Name, income.Description, income.Amount,
		income.Date, income.CategoryID, income.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

func (r *IncomeRepository) ListByUser(userID string) ([]models.Income, error) {
	query := `
		SELECT id, name, description, amount, date, category_id, user_id
		FROM income
		WHERE user_id = $1
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		var in models.Income
		if err := rows.Scan(&in.ID, &in.Name, &in.Description, &in.Amount, &in.Date, &in.CategoryID, &in.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

func (r *IncomeRepository) GetByIDAndUser(id, userID string) (*models.Income, error) {
	query := `
		SELECT id, name, description, amount, date, category_id, user_id
		FROM income
		WHERE id = $1 AND user_id = $2
	`
	var in models.Income
	err := r.db.QueryRow(query, id, userID).Scan(
		&in.ID, &in.Name, &in.Description, &in.Amount, &in.Date, &in.CategoryID, &in.UserID,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get income: %w", err)
	}
	return &in, nil
}

func (r *IncomeRepository) Update(income *models.Income) error {
	query := `
		UPDATE income
		SET name = $3, description = $4, amount = $5, date = $6, category_id = $7
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.Exec(query,
		income.ID, income.UserID, income.Name, income.Description,
		income.Amount, income.Date, income.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return requireRow(result)
}

func (r *IncomeRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM income WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return requireRow(result)
}

// SumByUser returns the total income for a user, 0 for no rows.
func (r *IncomeRepository) SumByUser(userID string) (float64, error) {
	var total float64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM income WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum income: %w", err)
	}
	return total, nil
}
