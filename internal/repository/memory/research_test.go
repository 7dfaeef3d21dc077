package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout/internal/domain/research"
	"scout/pkg/errors"
)

func newRecord(projectID, userID, title string) *research.ResearchRecord {
	return &research.ResearchRecord{
		ProjectID:   projectID,
		UserID:      userID,
		SourceType:  research.SourceTypeText,
		SourceInput: "some input",
		Title:       title,
		AnalysisData: research.AnalysisResult{
			Product:     research.ProductAnalysis{Name: "Widget"},
			GeneratedAt: time.Now().UTC(),
		},
	}
}

func TestCreateAssignsIdentity(t *testing.T) {
	repo := NewResearchRepository()
	rec := newRecord("p1", "u1", "t1")

	require.NoError(t, repo.Create(context.Background(), rec))

	assert.NotEqual(t, uuid.UUID{}, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
}

func TestGetByID(t *testing.T) {
	repo := NewResearchRepository()
	rec := newRecord("p1", "u1", "t1")
	require.NoError(t, repo.Create(context.Background(), rec))

	got, err := repo.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.Title, got.Title)
	assert.Equal(t, "Widget", got.AnalysisData.Product.Name)

	// Reads do not mutate; a second read sees the same record.
	again, err := repo.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestListByProject(t *testing.T) {
	repo := NewResearchRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newRecord("p1", "u1", "t")))
	}
	require.NoError(t, repo.Create(ctx, newRecord("p2", "u1", "other project")))

	records, err := repo.ListByProject(ctx, "p1", 50)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i-1].CreatedAt.Before(records[i].CreatedAt), "expected newest first")
	}

	limited, err := repo.ListByProject(ctx, "p1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	empty, err := repo.ListByProject(ctx, "nope", 50)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestUpdateOwnership(t *testing.T) {
	repo := NewResearchRepository()
	ctx := context.Background()

	rec := newRecord("p1", "u1", "before")
	require.NoError(t, repo.Create(ctx, rec))

	title := "after"
	updatedAt, err := repo.Update(ctx, rec.ID, "u1", research.UpdatePatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, updatedAt.Before(rec.CreatedAt))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, "Widget", got.AnalysisData.Product.Name, "untouched fields survive")

	_, err = repo.Update(ctx, rec.ID, "intruder", research.UpdatePatch{Title: &title})
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	_, err = repo.Update(ctx, uuid.New(), "u1", research.UpdatePatch{Title: &title})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestUpdateReplacesAnalysisWholesale(t *testing.T) {
	repo := NewResearchRepository()
	ctx := context.Background()

	rec := newRecord("p1", "u1", "t")
	require.NoError(t, repo.Create(ctx, rec))

	replacement := research.AnalysisResult{
		Company: research.CompanyAnalysis{Name: "Acme"},
	}
	_, err := repo.Update(ctx, rec.ID, "u1", research.UpdatePatch{AnalysisData: &replacement})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.AnalysisData.Company.Name)
	assert.Empty(t, got.AnalysisData.Product.Name, "old analysis is not merged in")
}

func TestDeleteOwnership(t *testing.T) {
	repo := NewResearchRepository()
	ctx := context.Background()

	rec := newRecord("p1", "u1", "t")
	require.NoError(t, repo.Create(ctx, rec))

	err := repo.Delete(ctx, rec.ID, "intruder")
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	require.NoError(t, repo.Delete(ctx, rec.ID, "u1"))

	_, err = repo.GetByID(ctx, rec.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	err = repo.Delete(ctx, rec.ID, "u1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
