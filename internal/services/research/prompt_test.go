package research

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"scout/internal/domain/research"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	focus := []research.FocusArea{research.FocusProduct, research.FocusMarket}

	a := BuildPrompt("https://example.com", research.InputTypeURL, focus)
	b := BuildPrompt("https://example.com", research.InputTypeURL, focus)

	assert.Equal(t, a, b)
}

func TestBuildPrompt_OnlyRequestedSections(t *testing.T) {
	tests := []struct {
		name    string
		focus   []research.FocusArea
		present []string
		absent  []string
	}{
		{
			name:    "product only",
			focus:   []research.FocusArea{research.FocusProduct},
			present: []string{`"product"`},
			absent:  []string{`"company"`, `"market"`},
		},
		{
			name:    "company and market",
			focus:   []research.FocusArea{research.FocusCompany, research.FocusMarket},
			present: []string{`"company"`, `"market"`},
			absent:  []string{`"product"`},
		},
		{
			name:    "all sections",
			focus:   research.DefaultFocus(),
			present: []string{`"product"`, `"company"`, `"market"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BuildPrompt("acme widgets", research.InputTypeText, tt.focus)

			for _, s := range tt.present {
				assert.Contains(t, req.Prompt, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, req.Prompt, s)
			}
			// Ad recommendations are always part of the schema.
			assert.Contains(t, req.Prompt, `"ad_recommendations"`)
		})
	}
}

func TestBuildPrompt_CarriesInputAndType(t *testing.T) {
	req := BuildPrompt("https://example.com/product", research.InputTypeURL, research.DefaultFocus())

	assert.Contains(t, req.Prompt, "https://example.com/product")
	assert.Contains(t, req.Prompt, "Input type: url")
	assert.True(t, strings.Contains(req.Prompt, "JSON"), "prompt should demand JSON output")
}
