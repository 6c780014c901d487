// Package token implements the access/refresh token lifecycle: issuing
// signed pairs, stateless access-token validation, and stateful refresh
// rotation backed by a revocation store.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/models"
)

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// Identity is the authenticated principal resolved from an access token.
// It is passed explicitly from the middleware down to every service call.
type Identity struct {
	UserID string
	Email  string
}

// Claims is the JWT payload for both token types.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair is a freshly issued access/refresh token pair.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Blacklist tracks revoked refresh tokens by JTI. Revoke must be atomic:
// it reports whether this call created the entry, and only one of any set
// of concurrent callers may see true for the same JTI.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

// Manager issues and validates tokens. The signing key and lifetimes are
// fixed at construction; only HS256 signatures are ever accepted.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	blacklist  Blacklist
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration, blacklist Blacklist) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		blacklist:  blacklist,
		now:        time.Now,
	}
}

// Issue creates a new signed token pair for the user.
func (m *Manager) Issue(user *models.User) (*Pair, error) {
	now := m.now()

	access, err := m.sign(Claims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: typeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refresh, err := m.sign(Claims{
		UserID:    user.ID,
		TokenType: typeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &Pair{Access: access, Refresh: refresh}, nil
}

// ValidateAccess checks signature and expiry of an access token and returns
// the embedded identity. No storage round-trip: validity is a pure function
// of the token and the server key.
func (m *Manager) ValidateAccess(raw string) (*Identity, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != typeAccess {
		return nil, apperr.ErrTokenInvalid
	}
	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// Rotate consumes a refresh token and issues a new pair. Claiming the
// consumed JTI is a single atomic blacklist write, so of two concurrent
// rotations of the same token exactly one succeeds and the other sees
// the token as already revoked.
func (m *Manager) Rotate(ctx context.Context, raw string, user *models.User) (*Pair, error) {
	claims, err := m.parseRefresh(raw)
	if err != nil {
		return nil, err
	}

	first, err := m.blacklist.Revoke(ctx, claims.ID, m.remaining(claims))
	if err != nil {
		return nil, fmt.Errorf("failed to revoke consumed token: %w", err)
	}
	if !first {
		return nil, apperr.ErrTokenRevoked
	}

	return m.Issue(user)
}

// Subject resolves a refresh token to the user ID it was issued for,
// without touching the revocation store.
func (m *Manager) Subject(raw string) (string, error) {
	claims, err := m.parseRefresh(raw)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// Revoke blacklists a refresh token. Revoking an already-revoked token is
// a no-op success so logout stays idempotent. Expiry is deliberately not
// checked here: an expired-but-parseable token also revokes cleanly, and
// needs no blacklist entry since expiry alone already ends it.
func (m *Manager) Revoke(ctx context.Context, raw string) error {
	claims, err := m.parseUnverifiedExpiry(raw)
	if err != nil {
		return err
	}
	if claims.TokenType != typeRefresh || claims.ID == "" {
		return apperr.ErrTokenInvalid
	}
	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
		return nil
	}
	_, err = m.blacklist.Revoke(ctx, claims.ID, m.remaining(claims))
	return err
}

func (m *Manager) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrTokenExpired
		}
		return nil, apperr.ErrTokenInvalid
	}
	return claims, nil
}

// parseUnverifiedExpiry checks the signature but skips claim validation,
// so an expired token still parses. Callers must not treat the result as
// proof of a live session.
func (m *Manager) parseUnverifiedExpiry(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, apperr.ErrTokenInvalid
	}
	return claims, nil
}

func (m *Manager) parseRefresh(raw string) (*Claims, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != typeRefresh || claims.ID == "" {
		return nil, apperr.ErrTokenInvalid
	}
	return claims, nil
}

// remaining returns how long a blacklist entry must outlive the token.
func (m *Manager) remaining(claims *Claims) time.Duration {
	if claims.ExpiresAt == nil {
		return m.refreshTTL
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < time.Minute {
		ttl = time.Minute
	}
	return ttl
}
