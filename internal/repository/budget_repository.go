package repository

import (
	"database/sql"
	"fmt"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/utils"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Create(budget *models.Budget) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO budgets (id, name, description, target_amount, current_amount, start_date, end_date, period, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.Exec(query,
		budget.ID, budget.Name, budget.Description, budget.TargetAmount, budget.CurrentAmount,
		budget.StartDate, budget.EndDate, budget.Period, budget.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create budget: %w", err)
	}

	if err := insertItems(tx, budget.ID, budget.Items); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit budget: %w", err)
	}
	return nil
}

func (r *BudgetRepository) ListByUser(userID string) ([]models.Budget, error) {
	query := `
		SELECT id, name, description, target_amount, current_amount, start_date, end_date, period, user_id
		FROM budgets
		WHERE user_id = $1
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.TargetAmount, &b.CurrentAmount,
			&b.StartDate, &b.EndDate, &b.Period, &b.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range budgets {
		items, err := r.listItems(budgets[i].ID)
		if err != nil {
			return nil, err
		}
		budgets[i].Items = items
	}
	return budgets, nil
}

func (r *BudgetRepository) GetByIDAndUser(id, userID string) (*models.Budget, error) {
	query := `
		SELECT id, name, description, target_amount, current_amount, start_date, end_date, period, user_id
		FROM budgets
		WHERE id = $1 AND user_id = $2
	`
	var b models.Budget
	err := r.db.QueryRow(query, id, userID).Scan(
		&b.ID, &b.Name, &b.Description, &b.TargetAmount, &b.CurrentAmount,
		&b.StartDate, &b.EndDate, &b.Period, &b.UserID,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	items, err := r.listItems(b.ID)
	if err != nil {
		return nil, err
	}
	b.Items = items
	return &b, nil
}

// Update writes the budget row and, when replaceItems is set, swaps the
// full child set for the supplied one. Both happen in one transaction so
// no reader ever observes a budget with a transient empty item set.
func (r *BudgetRepository) Update(budget *models.Budget, replaceItems bool) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE budgets
		SET name = $3, description = $4, target_amount = $5, current_amount = $6,
		    start_date = $7, end_date = $8, period = $9
		WHERE id = $1 AND user_id = $2
	`
	result, err := tx.Exec(query,
		budget.ID, budget.UserID, budget.Name, budget.Description,
		budget.TargetAmount, budget.CurrentAmount,
		budget.StartDate, budget.EndDate, budget.Period,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	if err := requireRow(result); err != nil {
		return err
	}

	if replaceItems {
		if _, err := tx.Exec(`DELETE FROM budget_items WHERE budget_id = $1`, budget.ID); err != nil {
			return fmt.Errorf("failed to clear budget items: %w", err)
		}
		if err := insertItems(tx, budget.ID, budget.Items); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit budget update: %w", err)
	}
	return nil
}

func (r *BudgetRepository) Delete(id, userID string) error {
	// budget_items rows go with the budget via ON DELETE CASCADE.
	result, err := r.db.Exec(`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return requireRow(result)
}

func (r *BudgetRepository) listItems(budgetID string) ([]models.BudgetItem, error) {
	query := `
		SELECT id, budget_id, category, planned, actual, color
		FROM budget_items
		WHERE budget_id = $1
		ORDER BY position
	`
	rows, err := r.db.Query(query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budget items: %w", err)
	}
	defer rows.Close()

	items := []models.BudgetItem{}
	for rows.Next() {
		var it models.BudgetItem
		if err := rows.Scan(&it.ID, &it.BudgetID, &it.Category, &it.Planned, &it.Actual, &it.Color); err != nil {
			return nil, fmt.Errorf("failed to scan budget item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func insertItems(tx *sql.Tx, budgetID string, items []models.BudgetItem) error {
	query := `
		INSERT INTO budget_items (id, budget_id, category, planned, actual, color, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = utils.GenerateID("bgi")
		}
		items[i].BudgetID = budgetID
		if _, err := tx.Exec(query,
			items[i].ID, budgetID, items[i].Category,
			items[i].Planned, items[i].Actual, items[i].Color, i,
		); err != nil {
			return fmt.Errorf("failed to insert budget item: %w", err)
		}
	}
	return nil
}
