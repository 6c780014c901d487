package repository

import (
	"database/sql"
	"fmt"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/models"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(goal *models.Goal) error {
	query := `
		INSERT INTO goals (id, name, description, target_amount, current_amount, deadline, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		goal.ID, goal.Name, goal.Description, goal.TargetAmount,
		goal.CurrentAmount, goal.Deadline, goal.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) ListByUser(userID string) ([]models.Goal, error) {
	query := `
		SELECT id, name, description, target_amount, current_amount, deadline, user_id
		FROM goals
		WHERE user_id = $1
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.TargetAmount,
			&g.CurrentAmount, &g.Deadline, &g.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *GoalRepository) GetByIDAndUser(id, userID string) (*models.Goal, error) {
	query := `
		SELECT id, name, description, target_amount, current_amount, deadline, user_id
		FROM goals
		WHERE id = $1 AND user_id = $2
	`
	var g models.Goal
	err := r.db.QueryRow(query, id, userID).Scan(
		&g.ID, &g.Name, &g.Description, &g.TargetAmount,
		&g.CurrentAmount, &g.Deadline, &g.UserID,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &g, nil
}

func (r *GoalRepository) Update(goal *models.Goal) error {
	query := `
		UPDATE goals
		SET name = $3, description = $4, target_amount = $5, current_amount = $6, deadline = $7
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.Exec(query,
		goal.ID, goal.UserID, goal.Name, goal.Description,
		goal.TargetAmount, goal.CurrentAmount, goal.Deadline,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return requireRow(result)
}

func (r *GoalRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return requireRow(result)
}
