package research

import (
	"net/url"
	"strings"

	"scout/internal/domain/research"
)

// DetectInputType decides whether the input is a URL or free text using a
// purely syntactic check. Nothing is fetched; ambiguous input is text.
func DetectInputType(inputValue string) research.InputType {
	v := strings.TrimSpace(inputValue)

	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") || strings.HasPrefix(v, "www.") {
		return research.InputTypeURL
	}

	if parsed, err := url.Parse(v); err == nil {
		if (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != "" {
			return research.InputTypeURL
		}
	}

	return research.InputTypeText
}

// Classify applies the caller's explicit type when valid, otherwise falls
// back to detection. Classification never fails.
func Classify(inputValue string, explicit research.InputType) research.InputType {
	if explicit.Valid() {
		return explicit
	}
	return DetectInputType(inputValue)
}
