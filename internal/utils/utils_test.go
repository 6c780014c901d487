package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/financeflow/api/internal/apperr"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID("usr")
	if !strings.HasPrefix(id, "usr-") {
		t.Errorf("expected usr- prefix, got %q", id)
	}
	if len(id) != len("usr-")+10 {
		t.Errorf("unexpected length for %q", id)
	}
	if GenerateID("usr") == GenerateID("usr") {
		t.Error("expected distinct IDs")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("securepass123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "securepass123" {
		t.Error("hash must not equal the plaintext")
	}
	if !CheckPassword("securepass123", hash) {
		t.Error("correct password rejected")
	}
	if CheckPassword("wrongpass", hash) {
		t.Error("wrong password accepted")
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "securepass123", false},
		{"too short", "short1", true},
		{"entirely numeric", "123456789", true},
		{"numeric but long enough", "12345678", true},
		{"eight mixed characters", "pass1234", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				if !errors.Is(err, apperr.ErrWeakPassword) {
					t.Errorf("expected weak password error, got %v", err)
				}
				var fieldErr *apperr.FieldError
				if !errors.As(err, &fieldErr) || fieldErr.Field != "password" {
					t.Errorf("expected field error on password, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
