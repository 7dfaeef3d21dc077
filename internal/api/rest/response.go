package rest

import (
	"fmt"
	"time"

	"scout/internal/domain/research"
	researchsvc "scout/internal/services/research"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ResearchMetadata summarizes how a research request was interpreted.
type ResearchMetadata struct {
	InputType     string   `json:"input_type"`
	SourceType    string   `json:"source_type"`
	ResearchFocus []string `json:"research_focus"`
	Title         string   `json:"title"`
}

// CreateResearchResponse is returned when the pipeline completes.
type CreateResearchResponse struct {
	Success        bool                     `json:"success"`
	ResearchID     string                   `json:"research_id"`
	AnalysisData   *research.AnalysisResult `json:"analysis_data"`
	SourcesCount   int                      `json:"sources_count"`
	ProcessingTime string                   `json:"processing_time"`
	Metadata       ResearchMetadata         `json:"metadata"`
}

// ResearchSummary is the list-view projection of a record. The analysis
// payload is deliberately absent; fetch the item endpoint for it.
type ResearchSummary struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	UserID      string    `json:"user_id"`
	SourceType  string    `json:"source_type"`
	SourceInput string    `json:"source_input"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ResearchDetail is the full record, analysis included.
type ResearchDetail struct {
	ResearchSummary
	AnalysisData research.AnalysisResult `json:"analysis_data"`
}

// ListResearchResponse wraps project listings.
type ListResearchResponse struct {
	Success   bool              `json:"success"`
	ProjectID string            `json:"project_id"`
	Count     int               `json:"count"`
	Research  []ResearchSummary `json:"research"`
}

// GetResearchResponse wraps a single record.
type GetResearchResponse struct {
	Success  bool           `json:"success"`
	Research ResearchDetail `json:"research"`
}

// UpdateResearchResponse acknowledges a PATCH.
type UpdateResearchResponse struct {
	Success    bool      `json:"success"`
	ResearchID string    `json:"research_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DeleteResearchResponse acknowledges a DELETE.
type DeleteResearchResponse struct {
	Success bool   `json:"success"`
	Deleted string `json:"deleted"`
}

func newCreateResponse(out *researchsvc.Outcome) CreateResearchResponse {
	focus := make([]string, 0, len(out.ResearchFocus))
	for _, f := range out.ResearchFocus {
		focus = append(focus, string(f))
	}
	return CreateResearchResponse{
		Success:        true,
		ResearchID:     out.ResearchID.String(),
		AnalysisData:   out.Analysis,
		SourcesCount:   out.SourcesCount,
		ProcessingTime: fmt.Sprintf("%.2fs", out.ProcessingTime.Seconds()),
		Metadata: ResearchMetadata{
			InputType:     string(out.InputType),
			SourceType:    string(out.SourceType),
			ResearchFocus: focus,
			Title:         out.Title,
		},
	}
}

func newSummary(rec research.ResearchRecord) ResearchSummary {
	return ResearchSummary{
		ID:          rec.ID.String(),
		ProjectID:   rec.ProjectID,
		UserID:      rec.UserID,
		SourceType:  string(rec.SourceType),
		SourceInput: rec.SourceInput,
		Title:       rec.Title,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func newDetail(rec *research.ResearchRecord) ResearchDetail {
	return ResearchDetail{
		ResearchSummary: newSummary(*rec),
		AnalysisData:    rec.AnalysisData,
	}
}
