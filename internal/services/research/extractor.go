package research

import (
	"encoding/json"
	"strings"
	"time"

	"scout/internal/adapters/ai"
	"scout/internal/domain/research"
	"scout/pkg/errors"
)

// ExtractAnalysis parses the provider's raw output into the canonical
// analysis schema. The provider is instructed to emit bare JSON but often
// wraps it in prose or markdown fencing, so the first well-formed JSON
// object in the text is used. Sources come from the executor's citation
// list, never from the model text; generated_at is stamped here.
func ExtractAnalysis(raw string, citations []ai.Citation) (*research.AnalysisResult, error) {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return nil, errWithRaw(raw)
	}

	var analysis research.AnalysisResult
	if err := json.Unmarshal([]byte(obj), &analysis); err != nil {
		return nil, errWithRaw(raw)
	}

	// The model is not the authority on its own citations or timing.
	analysis.Sources = make([]research.Source, 0, len(citations))
	for _, c := range citations {
		analysis.Sources = append(analysis.Sources, research.Source{URL: c.URL, Title: c.Title})
	}
	analysis.GeneratedAt = time.Now().UTC()

	return &analysis, nil
}

func errWithRaw(raw string) error {
	snippet := raw
	if len(snippet) > 500 {
		snippet = snippet[:500]
	}
	return errors.Wrapf(errors.ErrExtractionFailed, "no parseable analysis object in provider output: %q", snippet)
}

// firstJSONObject scans the text for the first balanced-brace substring that
// parses as a JSON object. Markdown fences are stripped first so a fenced
// block whose braces are intact parses on the fast path.
func firstJSONObject(text string) (string, bool) {
	s := stripFences(strings.TrimSpace(text))

	for start := strings.IndexByte(s, '{'); start != -1; {
		if candidate, ok := balancedObject(s[start:]); ok && json.Valid([]byte(candidate)) {
			return candidate, true
		}
		// Balanced-but-invalid or unterminated; resume after this brace.
		next := strings.IndexByte(s[start+1:], '{')
		if next == -1 {
			return "", false
		}
		start = start + 1 + next
	}
	return "", false
}

// stripFences removes a leading ```/```json fence and its closing fence.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	}
	if end := strings.LastIndex(s, "```"); end != -1 {
		s = s[:end]
	}
	return strings.TrimSpace(s)
}

// balancedObject returns the shortest prefix of s (which must start with
// '{') whose braces balance, tracking JSON string literals and escapes.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
