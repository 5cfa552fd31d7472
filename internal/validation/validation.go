// Package validation holds request field checks shared by the services.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"devhub/internal/models"
)

const (
	MinPasswordLength = 6
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

	githubUsernameRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,37}[A-Za-z0-9])?$`)
)

// Errors collects every violated field so a request reports all of them at once.
type Errors struct {
	fields []models.FieldError
}

// Add records msg against param.
func (e *Errors) Add(param, msg string) {
	e.fields = append(e.fields, models.FieldError{Msg: msg, Param: param})
}

// Required records msg when value is blank.
func (e *Errors) Required(param, value, msg string) {
	if strings.TrimSpace(value) == "" {
		e.Add(param, msg)
	}
}

// Empty reports whether no violation was recorded.
func (e *Errors) Empty() bool {
	return len(e.fields) == 0
}

// Err returns nil or a validation AppError listing every field.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return models.NewFieldValidationError(e.fields)
}

// IsEmail reports whether s looks like a deliverable address.
func IsEmail(s string) bool {
	return len(s) <= 254 && emailRegex.MatchString(s)
}

// NormalizeEmail trims and lower-cases an address for lookup and storage.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidatePassword enforces the registration length limits.
func ValidatePassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return errors.New("Please enter a password of minimum length 6")
	}
	if len(password) > MaxPasswordBytes {
		return errors.New("Password must be at most 72 bytes")
	}
	return nil
}

// ValidateGitHubUsername applies GitHub's login charset: alphanumerics and
// single hyphens, not leading or trailing, at most 39 characters.
func ValidateGitHubUsername(username string) error {
	if !githubUsernameRegex.MatchString(username) || strings.Contains(username, "--") {
		return errors.New("Invalid GitHub username")
	}
	return nil
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// SplitSkills splits a comma-delimited list, trimming entries and dropping blanks.
func SplitSkills(raw string) []string {
	out := []string{}
	for _, skill := range strings.Split(raw, ",") {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}
