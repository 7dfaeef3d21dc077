package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"scout/internal/domain/research"
	"scout/internal/metrics"
	"scout/pkg/errors"
)

// Compile-time check
var _ research.Repository = (*ResearchRepository)(nil)

// ResearchRepository implements research.Repository using sqlx
type ResearchRepository struct {
	db *sqlx.DB
}

// NewResearchRepository creates a new research repository
func NewResearchRepository(db *sqlx.DB) *ResearchRepository {
	return &ResearchRepository{db: db}
}

// Create inserts a new research record, assigning its id and timestamps.
func (r *ResearchRepository) Create(ctx context.Context, record *research.ResearchRecord) error {
	start := time.Now()

	record.ID = uuid.New()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	query := `
		INSERT INTO project_research (
			id, project_id, user_id, source_type, source_input,
			title, analysis_data, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.ProjectID, record.UserID, record.SourceType, record.SourceInput,
		record.Title, record.AnalysisData, record.CreatedAt, record.UpdatedAt,
	)
	metrics.RecordStoreOperation("create", time.Since(start), err)
	if err != nil {
		return errors.Wrapf(errors.ErrStoreUnavailable, "insert research: %v", err)
	}

	return nil
}

// ListByProject retrieves records for a project, newest first.
func (r *ResearchRepository) ListByProject(ctx context.Context, projectID string, limit int) ([]research.ResearchRecord, error) {
	start := time.Now()

	var records []research.ResearchRecord

	query := `
		SELECT * FROM project_research
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	err := r.db.SelectContext(ctx, &records, query, projectID, limit)
	metrics.RecordStoreOperation("list", time.Since(start), err)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrStoreUnavailable, "list research: %v", err)
	}

	return records, nil
}

// GetByID retrieves a research record by ID
func (r *ResearchRepository) GetByID(ctx context.Context, id uuid.UUID) (*research.ResearchRecord, error) {
	start := time.Now()

	var record research.ResearchRecord

	query := `SELECT * FROM project_research WHERE id = $1`

	err := r.db.GetContext(ctx, &record, query, id)
	metrics.RecordStoreOperation("get", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(errors.ErrNotFound, "research %s", id)
		}
		return nil, errors.Wrapf(errors.ErrStoreUnavailable, "get research: %v", err)
	}

	return &record, nil
}

// Update applies the patch to a record owned by userID and returns the new
// updated_at. A record owned by someone else yields ErrForbidden, a missing
// one ErrNotFound.
func (r *ResearchRepository) Update(ctx context.Context, id uuid.UUID, userID string, patch research.UpdatePatch) (time.Time, error) {
	start := time.Now()

	query := `
		UPDATE project_research
		SET title = COALESCE($3, title),
		    analysis_data = COALESCE($4, analysis_data),
		    updated_at = $5
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at`

	var updatedAt time.Time
	err := r.db.GetContext(ctx, &updatedAt, query,
		id, userID, patch.Title, patch.AnalysisData, time.Now().UTC(),
	)
	metrics.RecordStoreOperation("update", time.Since(start), err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, r.ownershipError(ctx, id)
		}
		return time.Time{}, errors.Wrapf(errors.ErrStoreUnavailable, "update research: %v", err)
	}

	return updatedAt, nil
}

// Delete removes a record owned by userID.
func (r *ResearchRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	start := time.Now()

	query := `DELETE FROM project_research WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	metrics.RecordStoreOperation("delete", time.Since(start), err)
	if err != nil {
		return errors.Wrapf(errors.ErrStoreUnavailable, "delete research: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(errors.ErrStoreUnavailable, "delete research: %v", err)
	}
	if affected == 0 {
		return r.ownershipError(ctx, id)
	}

	return nil
}

// ownershipError distinguishes a record that does not exist from one owned
// by another user after a zero-row write.
func (r *ResearchRepository) ownershipError(ctx context.Context, id uuid.UUID) error {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM project_research WHERE id = $1)`

	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return errors.Wrapf(errors.ErrStoreUnavailable, "check research: %v", err)
	}
	if exists {
		return errors.Wrapf(errors.ErrForbidden, "research %s belongs to another user", id)
	}
	return errors.Wrapf(errors.ErrNotFound, "research %s", id)
}
