package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"scout/internal/domain/research"
	researchsvc "scout/internal/services/research"
	"scout/pkg/errors"
	"scout/pkg/logger"
)

// Handler exposes the research pipeline over HTTP.
type Handler struct {
	svc *researchsvc.Service
	log *logger.Logger
}

// NewHandler creates the REST handler.
func NewHandler(svc *researchsvc.Service) *Handler {
	return &Handler{
		svc: svc,
		log: logger.Get().With("component", "rest"),
	}
}

// CreateResearchRequest is the POST /research body.
type CreateResearchRequest struct {
	ProjectID     string   `json:"project_id"`
	UserID        string   `json:"user_id"`
	InputValue    string   `json:"input_value"`
	InputType     string   `json:"input_type"`
	ResearchFocus []string `json:"research_focus"`
}

// UpdateResearchRequest is the PATCH /research/:research_id body. Absent
// fields are left untouched.
type UpdateResearchRequest struct {
	UserID       string                   `json:"user_id"`
	Title        *string                  `json:"title"`
	AnalysisData *research.AnalysisResult `json:"analysis_data"`
}

// CreateResearch runs the full pipeline and persists the result.
func (h *Handler) CreateResearch(c *gin.Context) {
	var req CreateResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	focus := make([]research.FocusArea, 0, len(req.ResearchFocus))
	for _, f := range req.ResearchFocus {
		focus = append(focus, research.FocusArea(f))
	}

	out, err := h.svc.Research(c.Request.Context(), researchsvc.Params{
		ProjectID:     req.ProjectID,
		UserID:        req.UserID,
		InputValue:    req.InputValue,
		InputType:     research.InputType(req.InputType),
		ResearchFocus: focus,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCreateResponse(out))
}

// ListResearch returns record summaries for a project, newest first.
func (h *Handler) ListResearch(c *gin.Context) {
	projectID := c.Param("project_id")

	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := h.svc.List(c.Request.Context(), projectID, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	summaries := make([]ResearchSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, newSummary(rec))
	}

	c.JSON(http.StatusOK, ListResearchResponse{
		Success:   true,
		ProjectID: projectID,
		Count:     len(summaries),
		Research:  summaries,
	})
}

// GetResearch returns a single record with its analysis.
func (h *Handler) GetResearch(c *gin.Context) {
	id, ok := h.researchID(c)
	if !ok {
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, GetResearchResponse{Success: true, Research: newDetail(rec)})
}

// UpdateResearch patches title and/or analysis data after an ownership check.
func (h *Handler) UpdateResearch(c *gin.Context) {
	id, ok := h.researchID(c)
	if !ok {
		return
	}

	var req UpdateResearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updatedAt, err := h.svc.Update(c.Request.Context(), id, req.UserID, research.UpdatePatch{
		Title:        req.Title,
		AnalysisData: req.AnalysisData,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UpdateResearchResponse{
		Success:    true,
		ResearchID: id.String(),
		UpdatedAt:  updatedAt,
	})
}

// DeleteResearch removes a record after an ownership check.
func (h *Handler) DeleteResearch(c *gin.Context) {
	id, ok := h.researchID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, c.Query("user_id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DeleteResearchResponse{Success: true, Deleted: id.String()})
}

// researchID parses the path id. A malformed id cannot name any record, so
// it reads as not found rather than a validation failure.
func (h *Handler) researchID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("research_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "research not found"})
		return uuid.UUID{}, false
	}
	return id, true
}

// respondError maps pipeline errors to HTTP statuses. Forbidden hides behind
// 404 so record existence never leaks across users; provider, extraction and
// store failures all surface as 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrNotFound), errors.Is(err, errors.ErrForbidden):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrRateLimitExceeded):
		status = http.StatusTooManyRequests
	}

	msg := err.Error()
	switch {
	case status >= http.StatusInternalServerError:
		// Provider output and store errors stay in the logs; the body
		// carries a stable message only.
		h.log.ErrorWithContext(c.Request.Context(), err, map[string]string{"path": c.FullPath()})
		msg = "research failed"
	case errors.Is(err, errors.ErrForbidden):
		msg = "research not found"
	}

	c.JSON(status, ErrorResponse{Error: msg})
}
