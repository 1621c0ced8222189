package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "hyphenated lowercase", in: "abc-123", want: "ABC123"},
		{name: "space and suffix", in: "ABC-123 x", want: "ABC123X"},
		{name: "already normalized", in: "XYZ100", want: "XYZ100"},
		{name: "empty", in: "", want: ""},
		{name: "punctuation only", in: "-_ ./", want: ""},
		{name: "non-ascii letters stripped", in: "äbc-12é", want: "BC12"},
		{name: "digits only", in: "00 12", want: "0012"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"", "abc-123", "Ab C-9 z", "ÄÖÜ-77", "x_y_z-0001 q", "🌶️ABC12"}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
