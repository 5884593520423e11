package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsFold(t *testing.T) {
	tests := []struct {
		name     string
		s        string
		query    string
		expected bool
	}{
		{name: "empty query", s: "John Doe", query: "", expected: true},
		{name: "exact case", s: "John Doe", query: "John", expected: true},
		{name: "upper query", s: "Backend developer", query: "BACKEND", expected: true},
		{name: "lower query", s: "UI/UX Designer", query: "ux", expected: true},
		{name: "no match", s: "Jane Doe", query: "john", expected: false},
		{name: "digits", s: "20", query: "2", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContainsFold(tt.s, tt.query))
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{name: "empty string", query: "", expected: ""},
		{name: "normal string", query: "john", expected: "john"},
		{name: "percent wildcard", query: "john%", expected: `john\%`},
		{name: "underscore wildcard", query: "john_doe", expected: `john\_doe`},
		{name: "backslash", query: `a\b`, expected: `a\\b`},
		{name: "multiple wildcards", query: "%john_%", expected: `\%john\_\%`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EscapeLike(tt.query))
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%%", LikePattern(""))
	assert.Equal(t, `%ui/ux\_%`, LikePattern("UI/UX_"))
}
