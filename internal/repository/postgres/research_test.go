package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout/internal/domain/research"
	"scout/internal/testsupport"
	"scout/pkg/errors"
)

func sampleRecord(projectID, userID string) *research.ResearchRecord {
	return &research.ResearchRecord{
		ProjectID:   projectID,
		UserID:      userID,
		SourceType:  research.SourceTypeURL,
		SourceInput: "https://example.com",
		Title:       "Research: Widget",
		AnalysisData: research.AnalysisResult{
			Product:     research.ProductAnalysis{Name: "Widget", Description: "A widget"},
			Sources:     []research.Source{{URL: "https://example.com/about", Title: "About"}},
			GeneratedAt: time.Now().UTC(),
		},
	}
}

func cleanup(t *testing.T, repo *ResearchRepository, rec *research.ResearchRecord) {
	t.Cleanup(func() {
		_ = repo.Delete(context.Background(), rec.ID, rec.UserID)
	})
}

func TestResearchRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	repo := NewResearchRepository(testDB.DB())
	ctx := context.Background()

	rec := sampleRecord("p-it-1", "u-it-1")
	require.NoError(t, repo.Create(ctx, rec))
	cleanup(t, repo, rec)

	assert.NotEqual(t, uuid.UUID{}, rec.ID)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Research: Widget", got.Title)
	assert.Equal(t, research.SourceTypeURL, got.SourceType)
	assert.Equal(t, "Widget", got.AnalysisData.Product.Name)
	require.Len(t, got.AnalysisData.Sources, 1)
	assert.Equal(t, "https://example.com/about", got.AnalysisData.Sources[0].URL)
}

func TestResearchRepository_GetByID_NotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	repo := NewResearchRepository(testDB.DB())

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestResearchRepository_ListByProject(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	repo := NewResearchRepository(testDB.DB())
	ctx := context.Background()

	projectID := "p-it-list-" + uuid.NewString()
	for i := 0; i < 3; i++ {
		rec := sampleRecord(projectID, "u-it-1")
		require.NoError(t, repo.Create(ctx, rec))
		cleanup(t, repo, rec)
	}

	records, err := repo.ListByProject(ctx, projectID, 50)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i-1].CreatedAt.Before(records[i].CreatedAt), "expected newest first")
	}

	limited, err := repo.ListByProject(ctx, projectID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestResearchRepository_UpdateOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	repo := NewResearchRepository(testDB.DB())
	ctx := context.Background()

	rec := sampleRecord("p-it-upd", "u-owner")
	require.NoError(t, repo.Create(ctx, rec))
	cleanup(t, repo, rec)

	title := "Research: Renamed"
	updatedAt, err := repo.Update(ctx, rec.ID, "u-owner", research.UpdatePatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, updatedAt.Before(rec.CreatedAt))

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, "Widget", got.AnalysisData.Product.Name, "analysis untouched by title patch")

	_, err = repo.Update(ctx, rec.ID, "u-intruder", research.UpdatePatch{Title: &title})
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	_, err = repo.Update(ctx, uuid.New(), "u-owner", research.UpdatePatch{Title: &title})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestResearchRepository_DeleteOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	repo := NewResearchRepository(testDB.DB())
	ctx := context.Background()

	rec := sampleRecord("p-it-del", "u-owner")
	require.NoError(t, repo.Create(ctx, rec))

	err := repo.Delete(ctx, rec.ID, "u-intruder")
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	require.NoError(t, repo.Delete(ctx, rec.ID, "u-owner"))

	_, err = repo.GetByID(ctx, rec.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	err = repo.Delete(ctx, rec.ID, "u-owner")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
