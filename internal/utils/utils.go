package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/financeflow/api/internal/apperr"
)

// GenerateID generates a unique ID with the given prefix
func GenerateID(prefix string) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 10

	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[num.Int64()]
	}

	return fmt.Sprintf("%s-%s", prefix, string(result))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword checks if a password matches a hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword enforces the complexity rules: at least 8 characters
// and not entirely numeric.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return apperr.NewFieldError("password", apperr.ErrWeakPassword,
			"Password must be at least 8 characters")
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return apperr.NewFieldError("password", apperr.ErrWeakPassword,
			"Password cannot be entirely numeric")
	}
	return nil
}
