package phone

import (
	"errors"
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number carries no explicit country code.
const DefaultRegion = "US"

// ErrInvalidPhone is returned for numbers that cannot be parsed or are not
// possible numbers.
var ErrInvalidPhone = errors.New("invalid phone number")

// Normalize parses a phone number and returns it in the canonical
// "+<country>.<national>" form used as the unique phone key.
func Normalize(raw string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidPhone, raw, err)
	}

	if !phonenumbers.IsPossibleNumber(parsed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}

	return fmt.Sprintf("+%d.%d", parsed.GetCountryCode(), parsed.GetNationalNumber()), nil
}

// IsValid reports whether the number is a valid, assigned number.
func IsValid(raw string) bool {
	parsed, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(parsed)
}
