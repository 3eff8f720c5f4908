package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "us number with dashes", raw: "202-555-0147", want: "+1.2025550147"},
		{name: "us number with country code", raw: "+1 202 555 0147", want: "+1.2025550147"},
		{name: "uk number", raw: "+44 20 7946 0958", want: "+44.2079460958"},
		{name: "parenthesized", raw: "(202) 555-0147", want: "+1.2025550147"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeInvalid(t *testing.T) {
	for _, raw := range []string{"", "hello", "12"} {
		_, err := Normalize(raw)
		assert.ErrorIs(t, err, ErrInvalidPhone, "raw=%q", raw)
	}
}
