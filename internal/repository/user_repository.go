package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (id, email, username, full_name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		user.ID, user.Email, user.Username, user.FullName,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return apperr.NewFieldError(field, apperr.ErrConflict,
				"A user with this "+field+" already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getOne(`
		SELECT id, email, username, full_name, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL
	`, email)
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	return r.getOne(`
		SELECT id, email, username, full_name, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
}

func (r *UserRepository) getOne(query string, arg any) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Email, &user.Username, &user.FullName,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// uniqueViolationField maps a Postgres unique-constraint violation to the
// offending column so registration can return per-field errors.
func uniqueViolationField(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return "", false
	}
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return "email", true
	case strings.Contains(pqErr.Constraint, "username"):
		return "username", true
	default:
		return "identity", true
	}
}
