package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/middleware"
	"github.com/financeflow/api/internal/models"
	"github.com/financeflow/api/internal/service"
	"github.com/financeflow/api/internal/token"
)

// AuthServicer defines the session-lifecycle operations used by AuthHandler.
type AuthServicer interface {
	Register(service.RegisterInput) (*models.User, *token.Pair, error)
	Login(email, password string) (*models.User, *token.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (*token.Pair, error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(token.Identity) (*models.User, error)
}

type AuthHandler struct {
	auth AuthServicer
}

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,min=3,max=150"`
	FullName  string `json:"full_name" validate:"required,max=255"`
	Password  string `json:"password" validate:"required"`
	Password2 string `json:"password2" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type TokenResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *models.User `json:"user,omitempty"`
}

func NewAuthHandler(auth AuthServicer) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}
	if req.Password != req.Password2 {
		respondError(c, apperr.NewFieldError("password2", apperr.ErrPasswordMismatch,
			"Passwords do not match"))
		return
	}

	user, pair, err := h.auth.Register(service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, TokenResponse{Access: pair.Access, Refresh: pair.Refresh, User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, pair, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Access: pair.Access, Refresh: pair.Refresh, User: user})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{Access: pair.Access, Refresh: pair.Refresh})
}

// Logout revokes the supplied refresh token. A missing or malformed token
// is a client error, never an internal one.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Refresh == "" {
		middleware.RespondWithError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.Refresh); err != nil {
		if errorIsClient(err) {
			middleware.RespondWithError(c, http.StatusBadRequest, "Invalid refresh token")
			return
		}
		respondError(c, err)
		return
	}

	c.Status(http.StatusResetContent)
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		middleware.RespondWithError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.auth.CurrentUser(identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func errorIsClient(err error) bool {
	return errors.Is(err, apperr.ErrTokenInvalid) ||
		errors.Is(err, apperr.ErrTokenExpired) ||
		errors.Is(err, apperr.ErrTokenRevoked)
}
