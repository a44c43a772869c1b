package service

import (
	"errors"
	"testing"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		value   string
		wantErr error
	}{
		{"email", ValidateEmail, " a.b@mail.kz ", nil},
		{"email without domain dot", ValidateEmail, "a@mail", ErrInvalidEmail},
		{"email with space", ValidateEmail, "a b@mail.kz", ErrInvalidEmail},
		{"password", ValidatePassword, "qwerty", nil},
		{"password cyrillic", ValidatePassword, "құпиясөз", nil},
		{"password too short", ValidatePassword, "12345", ErrInvalidPassword},
		{"password too long", ValidatePassword, "1234567890123456789012345", ErrInvalidPassword},
		{"password with space", ValidatePassword, "qwe rty", ErrInvalidPassword},
		{"username", ValidateUsername, "aigerim_01", nil},
		{"username too short", ValidateUsername, "ai", ErrInvalidUsername},
		{"username cyrillic", ValidateUsername, "айгерим", ErrInvalidUsername},
		{"name", ValidateName, "Жанна-Мари", nil},
		{"name latin", ValidateName, "O'Neil", nil},
		{"name digits", ValidateName, "R2D2", ErrInvalidName},
		{"name too short", ValidateName, "А", ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.check(tt.value); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormatName(t *testing.T) {
	tests := map[string]string{
		"айгерим":          "Айгерим",
		"  иван   петров ": "Иван Петров",
		"анна-мария":       "Анна Мария",
		"JOHN":             "John",
	}

	for in, want := range tests {
		if got := FormatName(in); got != want {
			t.Fatalf("FormatName(%q) = %q, want %q", in, got, want)
		}
	}
}
