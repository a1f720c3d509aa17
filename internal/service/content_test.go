package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation stripped", "Go: The Good Parts!", "go-the-good-parts"},
		{"already a slug", "already-a-slug", "already-a-slug"},
		{"mixed case and digits", "Top 10 Tips", "top-10-tips"},
		{"unicode stripped", "Café Culture", "caf-culture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.in))
		})
	}
}

func TestRenderContent(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "blank lines become paragraphs",
			in:       "Hello\n\nWorld",
			expected: "<p>Hello</p><p>World</p>",
		},
		{
			name:     "single newline becomes a line break",
			in:       "line one\nline two",
			expected: "<p>line one<br>line two</p>",
		},
		{
			name:     "existing markup passes through verbatim",
			in:       "<p>x</p>",
			expected: "<p>x</p>",
		},
		{
			name:     "crlf is normalized",
			in:       "Hello\r\n\r\nWorld",
			expected: "<p>Hello</p><p>World</p>",
		},
		{
			name:     "surrounding whitespace is trimmed",
			in:       "\n\nHello\n\n\n",
			expected: "<p>Hello</p>",
		},
		{
			name:     "empty input stays empty",
			in:       "",
			expected: "",
		},
		{
			name:     "whitespace only input collapses to empty",
			in:       "\n\n  \n",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderContent(tt.in))
		})
	}
}
