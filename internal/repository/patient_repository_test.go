package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"smith", "%smith%"},
		{"_", `%\_%`},
		{"50%", `%50\%%`},
		{`a\b`, `%a\\b%`},
		{`\_%`, `%\\\_\%%`},
		{"", "%%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, containsPattern(tt.term), tt.term)
	}
}
