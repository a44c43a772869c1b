package service

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aliskhannn/talup-bot/internal/infra/talupapi"
)

const (
	minPasswordLen  = 6
	maxPasswordLen  = 24
	birthDateLayout = "02.01.2006"
)

var (
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidProfile  = errors.New("invalid registration option")
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,20}$`)
	namePattern     = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё\s\-']{2,20}$`)
)

// Allowed registration option values.
var (
	Genders       = []string{"male", "female"}
	CurrentLevels = []string{"firsttime", "start", "medium", "advanced"}
	AimLevels     = []string{"A1", "A2", "B1", "B2", "C1", "C2"}
	StudyTimes    = []string{"one", "two", "three", "more"}
	Goals         = []string{"fun", "business", "movies", "education", "travel", "other"}
)

// ValidateEmail checks the address shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword accepts 6 to 24 characters without whitespace.
func ValidatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLen || n > maxPasswordLen || strings.ContainsFunc(password, unicode.IsSpace) {
		return ErrInvalidPassword
	}
	return nil
}

// ValidateUsername accepts 3 to 20 latin letters, digits, dots, underscores and dashes.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateName accepts 2 to 20 latin or cyrillic letters, spaces, dashes and apostrophes.
func ValidateName(name string) error {
	if !namePattern.MatchString(strings.TrimSpace(name)) {
		return ErrInvalidName
	}
	return nil
}

// FormatName capitalizes every word of a name. Dashes separate words like spaces.
func FormatName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	title := cases.Title(language.Russian)
	for i, w := range words {
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}

// ValidateRegistration checks the credentials and the optional profile fields.
func ValidateRegistration(reg talupapi.Registration) error {
	if err := ValidateEmail(reg.Email); err != nil {
		return err
	}
	if err := ValidatePassword(reg.Password); err != nil {
		return err
	}
	if err := ValidateUsername(reg.Username); err != nil {
		return err
	}
	if reg.Name != "" {
		if err := ValidateName(reg.Name); err != nil {
			return err
		}
	}

	options := []struct {
		field   string
		value   string
		allowed []string
	}{
		{"gender", reg.Gender, Genders},
		{"level", reg.CurrentLevel, CurrentLevels},
		{"aim", reg.AimLevel, AimLevels},
		{"time", reg.Time, StudyTimes},
	}
	for _, o := range options {
		if o.value != "" && !slices.Contains(o.allowed, o.value) {
			return fmt.Errorf("%w: %s=%s", ErrInvalidProfile, o.field, o.value)
		}
	}
	for _, g := range reg.Goals {
		if !slices.Contains(Goals, g) {
			return fmt.Errorf("%w: goals=%s", ErrInvalidProfile, g)
		}
	}

	if reg.BirthDate != "" {
		birth, err := time.Parse(birthDateLayout, reg.BirthDate)
		if err != nil || birth.After(time.Now()) {
			return fmt.Errorf("%w: birth=%s", ErrInvalidProfile, reg.BirthDate)
		}
	}

	return nil
}
