package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLabels(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name: "basic labels",
			raw: `Water Stain
Drywall
Couch`,
			expected: []string{"Water Stain", "Drywall", "Couch"},
		},
		{
			name: "skips preamble and blanks",
			raw: `Here are the visible objects:

Water Stain
Ceiling`,
			expected: []string{"Water Stain", "Ceiling"},
		},
		{
			name: "strips bullet markers",
			raw: `- Mold
* Carpet`,
			expected: []string{"Mold", "Carpet"},
		},
		{
			name: "dedupes case-insensitively keeping first",
			raw: `Water Stain
water stain
Drywall`,
			expected: []string{"Water Stain", "Drywall"},
		},
		{
			name:     "no labels",
			raw:      "Here are the items:",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLabels(tt.raw))
		})
	}
}
