package research

import (
	"fmt"
	"strings"

	"scout/internal/adapters/ai"
	"scout/internal/domain/research"
)

// Section skeletons the provider is asked to fill. Only sections in the
// requested focus set are included in the prompt.
const (
	productSection = `    "product": {
        "name": "Product name",
        "description": "What it does",
        "features": ["Feature 1", "Feature 2"],
        "pricing": "Pricing info",
        "usp": "Unique selling proposition",
        "target_audience": "Who it's for"
    }`

	companySection = `    "company": {
        "name": "Company name",
        "about": "What the company does",
        "founded": "Year",
        "headquarters": "Location",
        "mission": "Mission statement",
        "social_presence": {"instagram": "@handle", "youtube": "channel"}
    }`

	marketSection = `    "market": {
        "competitors": [{"name": "Competitor", "positioning": "How positioned"}],
        "trends": ["Trend 1", "Trend 2"],
        "audience_insights": "Demographics and behavior",
        "market_size": "Market info"
    }`
)

// BuildPrompt composes the grounded generation request for the given input
// and focus areas. Output is deterministic for identical inputs: no
// timestamps and no randomness enter the prompt.
func BuildPrompt(inputValue string, inputType research.InputType, focus []research.FocusArea) ai.GroundedRequest {
	var sections []string
	var names []string

	for _, f := range focus {
		switch f {
		case research.FocusProduct:
			sections = append(sections, productSection)
			names = append(names, string(research.FocusProduct))
		case research.FocusCompany:
			sections = append(sections, companySection)
			names = append(names, string(research.FocusCompany))
		case research.FocusMarket:
			sections = append(sections, marketSection)
			names = append(names, string(research.FocusMarket))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Perform comprehensive research on the following:\n")
	fmt.Fprintf(&b, "Input type: %s\n", inputType)
	fmt.Fprintf(&b, "Query: %s\n\n", inputValue)
	fmt.Fprintf(&b, "Research this thoroughly using internet search and return a JSON object with this structure:\n")
	b.WriteString("{\n")
	for _, s := range sections {
		b.WriteString(s)
		b.WriteString(",\n")
	}
	b.WriteString(`    "ad_recommendations": {
        "key_messages": ["Message 1", "Message 2"],
        "emotional_hooks": ["Hook 1", "Hook 2"],
        "visual_themes": ["Theme 1", "Theme 2"],
        "cta_suggestions": ["CTA 1", "CTA 2"]
    }
}`)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Only include these research sections: %s. Omit sections that were not requested.\n", strings.Join(names, ", "))
	b.WriteString("Be thorough and accurate. Include real, verifiable information.\n")
	b.WriteString("Only return the JSON object, no other text or markdown.\n")

	return ai.GroundedRequest{Prompt: b.String()}
}
