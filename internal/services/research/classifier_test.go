package research

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scout/internal/domain/research"
)

func TestDetectInputType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  research.InputType
	}{
		{"https url", "https://example.com/product", research.InputTypeURL},
		{"http url", "http://example.com", research.InputTypeURL},
		{"www prefix without scheme", "www.example.com", research.InputTypeURL},
		{"leading whitespace url", "  https://example.com  ", research.InputTypeURL},
		{"plain text", "eco-friendly water bottles", research.InputTypeText},
		{"text mentioning a domain", "check out example.com for details", research.InputTypeText},
		{"bare scheme is still a url", "https://", research.InputTypeURL},
		{"ftp url is text", "ftp://example.com/file", research.InputTypeText},
		{"empty string", "", research.InputTypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectInputType(tt.input))
		})
	}
}

func TestClassify_ExplicitTypeWins(t *testing.T) {
	// An explicit valid type overrides detection, even when it contradicts
	// the input's shape.
	assert.Equal(t, research.InputTypeText, Classify("https://example.com", research.InputTypeText))
	assert.Equal(t, research.InputTypeURL, Classify("just some text", research.InputTypeURL))
}

func TestClassify_InvalidExplicitFallsBack(t *testing.T) {
	assert.Equal(t, research.InputTypeURL, Classify("https://example.com", research.InputType("bogus")))
	assert.Equal(t, research.InputTypeText, Classify("just some text", research.InputType("")))
}
