package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Acme", "acme"},
		{"spaces become hyphens", "Acme Coffee", "acme-coffee"},
		{"collapses runs of whitespace", "Acme   Coffee  Co", "acme-coffee-co"},
		{"trims surrounding whitespace", "  Acme Coffee ", "acme-coffee"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}
