package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrInvalidUsername = errors.New("username must start with a letter and contain 6-30 letters, digits or underscores")
	ErrInvalidEmail    = errors.New("email address is not valid")
	ErrInvalidName     = errors.New("name must contain letters only")
	ErrWeakPassword    = errors.New("password must be at least 8 characters")
	ErrInvalidTagName  = errors.New("tag name must be 1-50 characters and not blank")
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{5,29}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateUsername checks the account-name format.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidateEmail checks rough email shape. Deliverability is not verified.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateName checks that a first or last name is non-empty and alphabetic.
func ValidateName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return ErrInvalidName
		}
	}
	return nil
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// NormalizeTagName lowercases and trims a tag name, rejecting blanks and
// over-long names.
func NormalizeTagName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || len(name) > 50 {
		return "", ErrInvalidTagName
	}
	return name, nil
}

// NormalizeTagNames applies NormalizeTagName to each name, deduplicating
// while preserving first-seen order.
func NormalizeTagNames(names []string) ([]string, error) {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		name, err := NormalizeTagName(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}
