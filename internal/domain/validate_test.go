package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	valid := []string{"alice1", "Bob_Smith", "zzzzzz", "a12345", "UserName_30_chars_long_exactly"}
	for _, u := range valid {
		assert.NoError(t, ValidateUsername(u), "username=%q", u)
	}

	invalid := []string{"", "short", "1starts_with_digit", "_underscore_start", "has space1", "way_too_long_username_that_goes_over_thirty"}
	for _, u := range invalid {
		assert.ErrorIs(t, ValidateUsername(u), ErrInvalidUsername, "username=%q", u)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("alice@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.domain.org"))

	for _, e := range []string{"", "plain", "a@b", "a b@c.com", "@example.com"} {
		assert.ErrorIs(t, ValidateEmail(e), ErrInvalidEmail, "email=%q", e)
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice"))
	assert.NoError(t, ValidateName("Zoë"))

	for _, n := range []string{"", "Alice1", "Mary Jane", "O'Brien"} {
		assert.ErrorIs(t, ValidateName(n), ErrInvalidName, "name=%q", n)
	}
}

func TestNormalizeTagNames(t *testing.T) {
	tags, err := NormalizeTagNames([]string{"  Go ", "go", "Databases"})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "databases"}, tags)

	_, err = NormalizeTagNames([]string{"go", "   "})
	assert.ErrorIs(t, err, ErrInvalidTagName)
}
