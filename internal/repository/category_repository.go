package repository

import (
	"database/sql"
	"fmt"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/models"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(category *models.Category) error {
	query := `
		INSERT INTO categories (id, name, cat_type, user_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(query, category.ID, category.Name, category.CatType, category.UserID)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListByUser(userID string) ([]models.Category, error) {
	query := `
		SELECT id, name, cat_type, user_id
		FROM categories
		WHERE user_id = $1
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CatType, &c.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetByIDAndUser filters by owner in the query itself: a non-owner gets
// the same not-found as a missing row.
func (r *CategoryRepository) GetByIDAndUser(id, userID string) (*models.Category, error) {
	query := `
		SELECT id, name, cat_type, user_id
		FROM categories
		WHERE id = $1 AND user_id = $2
	`
	var c models.Category
	err := r.db.QueryRow(query, id, userID).Scan(&c.ID, &c.Name, &c.CatType, &c.UserID)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Update(category *models.Category) error {
	query := `
		UPDATE categories
		SET name = $3, cat_type = $4
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.db.Exec(query, category.ID, category.UserID, category.Name, category.CatType)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return requireRow(result)
}

func (r *CategoryRepository) Delete(id, userID string) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return requireRow(result)
}

// requireRow converts a zero-row write into ErrNotFound.
func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
