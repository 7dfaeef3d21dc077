package research

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UpdatePatch carries the mutable fields of a record. Nil fields are left
// untouched; a non-nil AnalysisData replaces the stored analysis wholesale,
// never merging nested fields.
type UpdatePatch struct {
	Title        *string
	AnalysisData *AnalysisResult
}

// Empty reports whether the patch changes nothing.
func (p UpdatePatch) Empty() bool {
	return p.Title == nil && p.AnalysisData == nil
}

// Repository defines the interface for research record storage.
// The repository owns identifier generation: Create assigns the record ID
// and both timestamps before persisting.
type Repository interface {
	Create(ctx context.Context, record *ResearchRecord) error
	ListByProject(ctx context.Context, projectID string, limit int) ([]ResearchRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ResearchRecord, error)

	// Update replaces the patched fields and bumps updated_at, returning the
	// new timestamp. The record's owner must match userID.
	Update(ctx context.Context, id uuid.UUID, userID string, patch UpdatePatch) (time.Time, error)

	// Delete removes the record after the same ownership check as Update.
	Delete(ctx context.Context, id uuid.UUID, userID string) error
}
