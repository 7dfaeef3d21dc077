package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"scout/internal/domain/research"
	"scout/pkg/errors"
)

// Compile-time check
var _ research.Repository = (*ResearchRepository)(nil)

// ResearchRepository is an in-memory research.Repository used in tests and
// for local runs without a database. Records are deep-enough copies; callers
// never share memory with the store.
type ResearchRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]research.ResearchRecord
}

// NewResearchRepository creates an empty in-memory repository.
func NewResearchRepository() *ResearchRepository {
	return &ResearchRepository{
		records: make(map[uuid.UUID]research.ResearchRecord),
	}
}

// Create stores a copy of the record, assigning its id and timestamps.
func (r *ResearchRepository) Create(_ context.Context, record *research.ResearchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = uuid.New()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	r.records[record.ID] = *record
	return nil
}

// ListByProject returns records for a project, newest first.
func (r *ResearchRepository) ListByProject(_ context.Context, projectID string, limit int) ([]research.ResearchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []research.ResearchRecord
	for _, rec := range r.records {
		if rec.ProjectID == projectID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetByID returns the record or ErrNotFound.
func (r *ResearchRepository) GetByID(_ context.Context, id uuid.UUID) (*research.ResearchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "research %s", id)
	}
	return &rec, nil
}

// Update applies the patch to a record owned by userID.
func (r *ResearchRepository) Update(_ context.Context, id uuid.UUID, userID string, patch research.UpdatePatch) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return time.Time{}, errors.Wrapf(errors.ErrNotFound, "research %s", id)
	}
	if rec.UserID != userID {
		return time.Time{}, errors.Wrapf(errors.ErrForbidden, "research %s belongs to another user", id)
	}

	if patch.Title != nil {
		rec.Title = *patch.Title
	}
	if patch.AnalysisData != nil {
		rec.AnalysisData = *patch.AnalysisData
	}
	rec.UpdatedAt = time.Now().UTC()

	r.records[id] = rec
	return rec.UpdatedAt, nil
}

// Delete removes a record owned by userID.
func (r *ResearchRepository) Delete(_ context.Context, id uuid.UUID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "research %s", id)
	}
	if rec.UserID != userID {
		return errors.Wrapf(errors.ErrForbidden, "research %s belongs to another user", id)
	}

	delete(r.records, id)
	return nil
}
