package research

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"scout/internal/adapters/ai"
	"scout/internal/domain/research"
	"scout/internal/metrics"
	"scout/pkg/errors"
	"scout/pkg/logger"
)

// Service orchestrates the research pipeline: classify the input, compose
// the grounded request, execute it, extract the structured analysis, and
// persist the record. It holds no cross-request state, so any number of
// requests may run concurrently.
type Service struct {
	provider ai.Provider
	repo     research.Repository
	log      *logger.Logger
}

// NewService creates a research orchestrator.
func NewService(provider ai.Provider, repo research.Repository) *Service {
	return &Service{
		provider: provider,
		repo:     repo,
		log:      logger.Get().With("component", "research_service"),
	}
}

// Params describes one research request. InputType and ResearchFocus are
// optional; the classifier and the default focus set fill them in.
type Params struct {
	ProjectID     string
	UserID        string
	InputValue    string
	InputType     research.InputType
	ResearchFocus []research.FocusArea
}

// Outcome is returned on successful pipeline completion.
type Outcome struct {
	ResearchID     uuid.UUID
	Analysis       *research.AnalysisResult
	SourcesCount   int
	ProcessingTime time.Duration
	InputType      research.InputType
	SourceType     research.SourceType
	ResearchFocus  []research.FocusArea
	Title          string
}

// Research runs the full pipeline. Persistence happens only after
// extraction succeeds, so no failure leaves a dangling record. The single
// automatic retry applies to transient provider failures only.
func (s *Service) Research(ctx context.Context, params Params) (*Outcome, error) {
	start := time.Now()

	params.InputValue = strings.TrimSpace(params.InputValue)
	if params.ProjectID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "project_id is required")
	}
	if params.UserID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "user_id is required")
	}
	if params.InputValue == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "input_value is required")
	}

	inputType := Classify(params.InputValue, params.InputType)

	focus := params.ResearchFocus
	if len(focus) == 0 {
		focus = research.DefaultFocus()
	}
	for _, f := range focus {
		if !f.Valid() {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown research focus %q", f)
		}
	}

	s.log.Infow("Starting research",
		"project_id", params.ProjectID,
		"input_type", inputType,
		"focus", focus,
	)

	req := BuildPrompt(params.InputValue, inputType, focus)

	resp, err := s.executeWithRetry(ctx, req)
	if err != nil {
		metrics.RecordResearch(string(inputType), time.Since(start), err)
		return nil, err
	}

	analysis, err := ExtractAnalysis(resp.Text, resp.Citations)
	if err != nil {
		// Keep the raw output around; unparsable responses are the main
		// diagnostic headache with grounded generation.
		s.log.Errorw("Extraction failed", "raw_output", resp.Text, "error", err)
		metrics.RecordResearch(string(inputType), time.Since(start), err)
		return nil, err
	}

	title := DeriveTitle(params.InputValue, inputType, analysis)

	record := &research.ResearchRecord{
		ProjectID:    params.ProjectID,
		UserID:       params.UserID,
		SourceType:   inputType.SourceType(),
		SourceInput:  params.InputValue,
		Title:        title,
		AnalysisData: *analysis,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		metrics.RecordResearch(string(inputType), time.Since(start), err)
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.RecordResearch(string(inputType), elapsed, nil)

	s.log.Infow("Research completed",
		"research_id", record.ID,
		"sources", len(analysis.Sources),
		"elapsed", elapsed,
	)

	return &Outcome{
		ResearchID:     record.ID,
		Analysis:       analysis,
		SourcesCount:   len(analysis.Sources),
		ProcessingTime: elapsed,
		InputType:      inputType,
		SourceType:     record.SourceType,
		ResearchFocus:  focus,
		Title:          title,
	}, nil
}

// executeWithRetry performs the grounded call with at most one retry, and
// only when the failure was transient. Rejections are caller-input-driven,
// so retrying them is futile.
func (s *Service) executeWithRetry(ctx context.Context, req ai.GroundedRequest) (*ai.ProviderResponse, error) {
	resp, err := s.provider.Execute(ctx, req)
	if err == nil {
		metrics.RecordProviderCall(s.provider.Name(), "success", resp.Elapsed)
		return resp, nil
	}
	if !errors.Is(err, errors.ErrProviderUnavailable) {
		status := "error"
		if errors.Is(err, errors.ErrProviderRejected) {
			status = "rejected"
		}
		metrics.ProviderCalls.WithLabelValues(s.provider.Name(), status).Inc()
		return nil, err
	}

	metrics.ProviderCalls.WithLabelValues(s.provider.Name(), "unavailable").Inc()
	metrics.ProviderRetries.Inc()
	s.log.Warnw("Provider unavailable, retrying once", "error", err)

	resp, err = s.provider.Execute(ctx, req)
	if err != nil {
		metrics.ProviderCalls.WithLabelValues(s.provider.Name(), "unavailable").Inc()
		return nil, err
	}

	metrics.RecordProviderCall(s.provider.Name(), "success", resp.Elapsed)
	return resp, nil
}

// List returns records for a project, newest first, without failing on an
// empty project.
func (s *Service) List(ctx context.Context, projectID string, limit int) ([]research.ResearchRecord, error) {
	if projectID == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "project_id is required")
	}
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListByProject(ctx, projectID, limit)
}

// Get returns a single record by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*research.ResearchRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the patched fields after an ownership check.
func (s *Service) Update(ctx context.Context, id uuid.UUID, userID string, patch research.UpdatePatch) (time.Time, error) {
	if userID == "" {
		return time.Time{}, errors.Wrap(errors.ErrInvalidInput, "user_id is required")
	}
	if patch.Empty() {
		return time.Time{}, errors.Wrap(errors.ErrInvalidInput, "no fields to update")
	}
	return s.repo.Update(ctx, id, userID, patch)
}

// Delete removes a record after an ownership check.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	if userID == "" {
		return errors.Wrap(errors.ErrInvalidInput, "user_id is required")
	}
	return s.repo.Delete(ctx, id, userID)
}
