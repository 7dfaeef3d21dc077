package research

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"scout/pkg/errors"
)

// InputType describes how the caller's input should be researched.
type InputType string

const (
	InputTypeURL  InputType = "url"
	InputTypeText InputType = "text"
)

// Valid reports whether the input type is one of the known values.
func (t InputType) Valid() bool {
	return t == InputTypeURL || t == InputTypeText
}

// SourceType returns the persisted source type derived from the input type.
func (t InputType) SourceType() SourceType {
	if t == InputTypeURL {
		return SourceTypeURL
	}
	return SourceTypeText
}

// SourceType labels a persisted record with the kind of research performed.
type SourceType string

const (
	SourceTypeURL  SourceType = "url_research"
	SourceTypeText SourceType = "text_research"
)

// FocusArea is an analysis section the caller wants populated.
type FocusArea string

const (
	FocusProduct FocusArea = "product"
	FocusCompany FocusArea = "company"
	FocusMarket  FocusArea = "market"
)

// Valid reports whether the focus area is a known section.
func (f FocusArea) Valid() bool {
	return f == FocusProduct || f == FocusCompany || f == FocusMarket
}

// DefaultFocus returns the focus set used when the caller supplies none.
func DefaultFocus() []FocusArea {
	return []FocusArea{FocusProduct, FocusCompany, FocusMarket}
}

// ProductAnalysis holds the product section of an analysis.
type ProductAnalysis struct {
	Name           string   `json:"name,omitempty"`
	Description    string   `json:"description,omitempty"`
	Features       []string `json:"features,omitempty"`
	Pricing        string   `json:"pricing,omitempty"`
	USP            string   `json:"usp,omitempty"`
	TargetAudience string   `json:"target_audience,omitempty"`
}

// CompanyAnalysis holds the company section of an analysis.
type CompanyAnalysis struct {
	Name           string            `json:"name,omitempty"`
	About          string            `json:"about,omitempty"`
	Founded        string            `json:"founded,omitempty"`
	Headquarters   string            `json:"headquarters,omitempty"`
	Mission        string            `json:"mission,omitempty"`
	SocialPresence map[string]string `json:"social_presence,omitempty"`
}

// Competitor is a single market competitor entry.
type Competitor struct {
	Name        string `json:"name,omitempty"`
	Positioning string `json:"positioning,omitempty"`
}

// MarketAnalysis holds the market section of an analysis.
type MarketAnalysis struct {
	Competitors      []Competitor `json:"competitors,omitempty"`
	Trends           []string     `json:"trends,omitempty"`
	AudienceInsights string       `json:"audience_insights,omitempty"`
	MarketSize       string       `json:"market_size,omitempty"`
}

// AdRecommendations holds advertising suggestions derived from the research.
type AdRecommendations struct {
	KeyMessages    []string `json:"key_messages,omitempty"`
	EmotionalHooks []string `json:"emotional_hooks,omitempty"`
	VisualThemes   []string `json:"visual_themes,omitempty"`
	CTASuggestions []string `json:"cta_suggestions,omitempty"`
}

// Source is a citation returned by the grounding provider.
// Order reflects provider relevance and is preserved as-is.
type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// AnalysisResult is the canonical structured research output.
// GeneratedAt is stamped once at extraction time and never changed.
type AnalysisResult struct {
	Product           ProductAnalysis   `json:"product"`
	Company           CompanyAnalysis   `json:"company"`
	Market            MarketAnalysis    `json:"market"`
	AdRecommendations AdRecommendations `json:"ad_recommendations"`
	Sources           []Source          `json:"sources"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

// Value serializes the analysis for a JSONB column.
func (a AnalysisResult) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan deserializes the analysis from a JSONB column.
func (a *AnalysisResult) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = AnalysisResult{}
		return nil
	default:
		return errors.Newf("cannot scan %T into AnalysisResult", src)
	}
}

// ResearchRecord is a persisted research entry.
// ID, ProjectID, UserID, SourceType and SourceInput are immutable after
// creation; Title and AnalysisData may be replaced via Update.
type ResearchRecord struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	ProjectID    string         `db:"project_id" json:"project_id"`
	UserID       string         `db:"user_id" json:"user_id"`
	SourceType   SourceType     `db:"source_type" json:"source_type"`
	SourceInput  string         `db:"source_input" json:"source_input"`
	Title        string         `db:"title" json:"title"`
	AnalysisData AnalysisResult `db:"analysis_data" json:"analysis_data"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}
