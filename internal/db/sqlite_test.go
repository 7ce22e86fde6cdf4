package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/types"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "history", "analyses.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func sampleAnalysis(score float64, created time.Time) *Analysis {
	result := &types.MatchResult{
		OverallScore:  score,
		MatchedSkills: []string{"python"},
		MissingSkills: []string{"docker"},
		ExtraSkills:   []string{},
	}
	a := NewAnalysis("Python developer with 4 years of experience", "Python and Docker required", "resume.txt", "job.txt", result, 42*time.Millisecond)
	a.CreatedAt = created
	return a
}

func TestSQLite_SaveAndGet(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	a := sampleAnalysis(66.7, created)
	require.NoError(t, s.SaveAnalysis(ctx, a))

	got, err := s.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.ResumePreview, got.ResumePreview)
	assert.Equal(t, a.JobPreview, got.JobPreview)
	assert.Equal(t, "resume.txt", got.ResumeFile)
	assert.Equal(t, 66.7, got.OverallScore)
	assert.Equal(t, int64(42), got.ProcessingTimeMS)
	assert.True(t, created.Equal(got.CreatedAt))
	require.NotNil(t, got.Result)
	assert.Equal(t, []string{"python"}, got.Result.MatchedSkills)
	assert.Equal(t, []string{"docker"}, got.Result.MissingSkills)
}

func TestSQLite_GetMissingReturnsNil(t *testing.T) {
	s := newTestSQLite(t)

	got, err := s.GetAnalysis(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_ListNewestFirst(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		a := sampleAnalysis(float64(10*(i+1)), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, s.SaveAnalysis(ctx, a))
		ids = append(ids, a.ID)
	}

	list, err := s.ListAnalyses(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
	assert.Equal(t, ids[0], list[2].ID)
	for _, a := range list {
		assert.Nil(t, a.Result, "list entries should not carry full results")
	}

	page, err := s.ListAnalyses(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)

	empty, err := s.ListAnalyses(ctx, 10, 5)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSQLite_Delete(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	a := sampleAnalysis(50, time.Now().UTC())
	require.NoError(t, s.SaveAnalysis(ctx, a))

	require.NoError(t, s.DeleteAnalysis(ctx, a.ID))
	got, err := s.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, s.DeleteAnalysis(ctx, a.ID), ErrNotFound)
}

func TestSQLite_Statistics(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	stats, err := s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, Statistics{}, *stats)

	now := time.Now().UTC()
	for _, score := range []float64{40, 50, 61} {
		require.NoError(t, s.SaveAnalysis(ctx, sampleAnalysis(score, now)))
	}

	stats, err = s.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 50.3, stats.AverageScore)
	assert.Equal(t, 61.0, stats.BestScore)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyses.db")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	a := sampleAnalysis(70, time.Now().UTC())
	require.NoError(t, s.SaveAnalysis(ctx, a))
	s.Close()

	s, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetAnalysis(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 70.0, got.OverallScore)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "")
	assert.Error(t, err)

	for _, dsn := range []string{
		filepath.Join(t.TempDir(), "plain.db"),
		"sqlite:" + filepath.Join(t.TempDir(), "prefixed.db"),
		"sqlite://" + filepath.Join(t.TempDir(), "url.db"),
	} {
		store, err := Open(ctx, dsn)
		require.NoError(t, err, dsn)
		_, ok := store.(*SQLite)
		assert.True(t, ok, dsn)
		store.Close()
	}
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	assert.Error(t, err)
}
