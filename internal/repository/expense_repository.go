package repository

import (
	"database/sql"
	"fmt"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/models"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(expense *models.Expense) error {
	query := `
		INSERT INTO expenses (id, name, description, amount, date, category_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		expense.ID, expense.Name, expense.Description, expense.Amount,
		expense.Date, expense.CategoryID, expense.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) ListByUser(userID string) ([]models.Expense, error) {
	query := `
		SELECT id, name, description, amount, date, category_id, user_id
		FROM expenses
		WHERE user_id = $1
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var ex models.Expense
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Description, &ex.Amount, &ex.Date, &ex.CategoryID, &ex.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, ex)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) GetByIDAndUser(id, userID string) (*models.Expense, error) {
	query := `
		SELECT id, name, description, amount, date, category_id, user_id
		FROM expenses
		WHERE id = $1 AND user_id = $2
	`
	var ex models.Expense
	err := r.db.QueryRow(query, id, userID).Scan(
		&ex.ID, &ex.Name, &ex.Description, &ex.Amount, &ex.Date, &ex.CategoryID, &ex.UserID,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &ex, nil
}

func (r *ExpenseRepository) Update(expense *models.Expense) error {
	query := `
		UPDATE expenses
		SET name = $3, description = $4, amount = $5, date = $6, category_id = $7
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.Exec(query,
		expense.ID, expense.UserID, expense.Name, expense.Description,
		expense.Amount, expense.Date, expense.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return requireRow(result)
}

func (r *ExpenseRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return requireRow(result)
}

// SumByUser returns the total expenses for a user, 0 for no rows.
func (r *ExpenseRepository) SumByUser(userID string) (float64, error) {
	var total float64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum expenses: %w", err)
	}
	return total, nil
}
