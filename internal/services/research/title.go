package research

import (
	"net/url"
	"strings"

	"scout/internal/domain/research"
)

// placeholder names the model falls back to when it found nothing useful;
// never worth putting in a title.
func isPlaceholderName(name string) bool {
	return name == "" || name == "Unknown" || name == "Parse error"
}

// DeriveTitle builds a display title for a research entry: product name
// first, then company name, then the URL's domain, then the truncated input.
func DeriveTitle(inputValue string, inputType research.InputType, analysis *research.AnalysisResult) string {
	if analysis != nil {
		if !isPlaceholderName(analysis.Product.Name) {
			return "Research: " + analysis.Product.Name
		}
		if !isPlaceholderName(analysis.Company.Name) {
			return "Research: " + analysis.Company.Name
		}
	}

	if inputType == research.InputTypeURL {
		if domain := domainOf(inputValue); domain != "" {
			return "Research: " + domain
		}
	}

	if len(inputValue) > 50 {
		return "Research: " + inputValue[:47] + "..."
	}
	return "Research: " + inputValue
}

func domainOf(inputValue string) string {
	v := strings.TrimSpace(inputValue)
	if strings.HasPrefix(v, "www.") {
		v = "https://" + v
	}
	parsed, err := url.Parse(v)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
