package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/repository"
	"github.com/financeflow/api/internal/token"
	"github.com/financeflow/api/internal/utils"
)

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	Email    string
	Username string
	FullName string
	Password string
}

// Seeder is the post-registration hook. It runs synchronously inside the
// registration flow; a failure is reported to the caller as a warning but
// never rolls the new account back.
type Seeder interface {
	SeedDefaults(user *models.User) error
}

// AuthService owns the credential and session lifecycle: registration,
// login, refresh rotation and logout.
type AuthService struct {
	users  *repository.UserRepository
	tokens *token.Manager
	seeder Seeder
	log    *logrus.Logger
}

func NewAuthService(users *repository.UserRepository, tokens *token.Manager, seeder Seeder, log *logrus.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, seeder: seeder, log: log}
}

// Register creates the account, seeds its default data and issues the
// first token pair. The plaintext password is hashed and discarded.
func (s *AuthService) Register(input RegisterInput) (*models.User, *token.Pair, error) {
	if err := utils.ValidatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           utils.GenerateID("usr"),
		Email:        input.Email,
		Username:     input.Username,
		FullName:     input.FullName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, nil, err
	}

	if err := s.seeder.SeedDefaults(user); err != nil {
		s.log.WithError(err).WithField("user", user.ID).Error("failed to seed default data")
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(email, password string) (*models.User, *token.Pair, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		// Burn a hash comparison anyway to keep response timing flat.
		utils.CheckPassword(password, "$2a$10$0000000000000000000000000000000000000000000000000000")
		return nil, nil, apperr.ErrInvalidCredentials
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, nil, apperr.ErrInvalidCredentials
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates a refresh token: the consumed token is blacklisted and a
// new pair is issued for the same account.
func (s *AuthService) Refresh(ctx context.Context, raw string) (*token.Pair, error) {
	userID, err := s.tokens.Subject(raw)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, apperr.ErrTokenInvalid
	}
	return s.tokens.Rotate(ctx, raw, user)
}

// Logout revokes the refresh token. Revoking twice succeeds.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	return s.tokens.Revoke(ctx, raw)
}

// CurrentUser resolves an authenticated identity to its account record.
func (s *AuthService) CurrentUser(identity token.Identity) (*models.User, error) {
	return s.users.GetByID(identity.UserID)
}
