package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apidrift/apidrift/internal/domain/change"
)

func sampleReport() *change.Report {
	return change.NewReport([]change.BreakingChange{
		{
			Type:        change.TypeFunctionRemoved,
			Name:        "greet",
			Description: "Function 'greet' was removed",
			Severity:    change.SeverityCritical,
		},
	}, nil)
}

func newTestRepo(t *testing.T) *FileReportRepository {
	t.Helper()
	repo, err := NewFileReportRepository(t.TempDir())
	require.NoError(t, err)
	return repo
}

func TestSaveAndFindByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	stored := &StoredReport{
		FilePath:   "src/index.ts",
		OldVersion: "v1.2.3",
		NewVersion: "HEAD",
		Report:     sampleReport(),
	}

	require.NoError(t, repo.Save(ctx, stored))
	require.NotEmpty(t, stored.ID, "Save should assign an ID")
	require.False(t, stored.CreatedAt.IsZero(), "Save should assign CreatedAt")

	found, err := repo.FindByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "src/index.ts", found.FilePath)
	assert.True(t, found.Report.HasBreakingChanges)
	assert.Equal(t, change.BumpMajor, found.Report.SuggestedVersionBump)
}

func TestSaveRejectsEmptyPayload(t *testing.T) {
	repo := newTestRepo(t)
	err := repo.Save(context.Background(), &StoredReport{FilePath: "f.ts"})
	assert.Error(t, err, "nil report payload must be rejected")
}

func TestFindByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := &StoredReport{FilePath: "a.ts", CreatedAt: time.Now().Add(-time.Hour), Report: sampleReport()}
	newer := &StoredReport{FilePath: "b.ts", CreatedAt: time.Now(), Report: sampleReport()}
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	reports, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "b.ts", reports[0].FilePath)
}

func TestListSkipsMalformedFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileReportRepository(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &StoredReport{FilePath: "a.ts", Report: sampleReport()}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("not json"), 0o600))

	reports, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 1, "malformed file should be skipped")
}

func TestFindLatestForFile(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &StoredReport{FilePath: "src/api.ts", CreatedAt: time.Now().Add(-time.Minute), Report: sampleReport()}
	second := &StoredReport{FilePath: "src/api.ts", CreatedAt: time.Now(), Report: sampleReport()}
	other := &StoredReport{FilePath: "src/other.ts", CreatedAt: time.Now(), Report: sampleReport()}
	for _, s := range []*StoredReport{first, second, other} {
		require.NoError(t, repo.Save(ctx, s))
	}

	found, err := repo.FindLatestForFile(ctx, "src/api.ts")
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)

	_, err = repo.FindLatestForFile(ctx, "src/unknown.ts")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	stored := &StoredReport{FilePath: "a.ts", Report: sampleReport()}
	require.NoError(t, repo.Save(ctx, stored))
	require.NoError(t, repo.Delete(ctx, stored.ID))

	_, err := repo.FindByID(ctx, stored.ID)
	assert.ErrorIs(t, err, ErrReportNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, stored.ID), ErrReportNotFound)
}

func TestCanceledContext(t *testing.T) {
	repo := newTestRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, repo.Save(ctx, &StoredReport{FilePath: "a.ts", Report: sampleReport()}))
	_, err := repo.List(ctx)
	assert.Error(t, err)
}
