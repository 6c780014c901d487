package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/api/internal/apperr"
	"github.com/financeflow/api/internal/middleware"
)

// respondError maps an error to its HTTP response. Ownership mismatches
// surface as the same 404 as missing records; anything outside the known
// taxonomy becomes an opaque 500.
func respondError(c *gin.Context, err error) {
	var fieldErr *apperr.FieldError
	if errors.As(err, &fieldErr) {
		middleware.RespondWithValidationError(c, []middleware.ValidationError{{
			Field:   fieldErr.Field,
			Message: fieldErr.Msg,
			Type:    kindName(fieldErr.Err),
		}})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, apperr.ErrTokenExpired),
		errors.Is(err, apperr.ErrTokenInvalid),
		errors.Is(err, apperr.ErrTokenRevoked):
		middleware.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, apperr.ErrConflict),
		errors.Is(err, apperr.ErrWeakPassword),
		errors.Is(err, apperr.ErrPasswordMismatch):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		// Full detail stays server-side: the request logger picks it up
		// from the gin error list while the caller sees an opaque body.
		_ = c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

func kindName(kind error) string {
	switch {
	case errors.Is(kind, apperr.ErrConflict):
		return "conflict"
	case errors.Is(kind, apperr.ErrWeakPassword):
		return "weak_password"
	case errors.Is(kind, apperr.ErrPasswordMismatch):
		return "mismatch"
	default:
		return "invalid"
	}
}

// parseDate accepts both bare dates and full RFC3339 timestamps; clients
// send either.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
