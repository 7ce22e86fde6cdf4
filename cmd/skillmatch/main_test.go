package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/analysis"
	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/types"
)

func TestCommands_RequiredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "extract without --in", args: []string{"extract"}},
		{name: "match without --job", args: []string{"match", "--resume", "resume.txt"}},
		{name: "recommend without --resume", args: []string{"recommend", "--job", "job.txt"}},
		{name: "learning-path without --target", args: []string{"learning-path", "--current", "go"}},
		{name: "validate without --schema", args: []string{"validate", "--in", "x.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "required")
		})
	}
}

func TestExtractCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "resume.txt", resumeText)

	stdout, _, err := execute(t, "extract", "--in", in, "--insights")
	require.NoError(t, err)

	out := decodeJSON[map[string]any](t, stdout)
	skills, ok := out["skills"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, skills, "python")
	assert.Contains(t, skills, "django")
	assert.Contains(t, out, "insights")

	experience := out["experience"].(map[string]any)
	assert.Equal(t, float64(4), experience["total_years"])
}

func TestExtractCommand_HTMLToFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "job.html",
		"<html><body><nav>Jobs Home</nav><main><p>Experience with Kubernetes and Terraform.</p></main></body></html>")
	outPath := filepath.Join(dir, "out.json")

	stdout, _, err := execute(t, "extract", "--in", in, "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	result := decodeJSON[types.ExtractionResult](t, string(data))
	assert.Contains(t, result.Skills, "kubernetes")
	assert.Contains(t, result.Skills, "terraform")
	assert.NotContains(t, string(data), "insights")
}

func TestExtractCommand_MissingFile(t *testing.T) {
	_, _, err := execute(t, "extract", "--in", filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load")
}

func TestMatchCommand_RecordsHistory(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", resumeText)
	job := writeFile(t, dir, "job.txt", jobText)
	dbPath := filepath.Join(dir, "history.db")

	stdout, _, err := execute(t, "match", "--resume", resume, "--job", job, "--db", dbPath)
	require.NoError(t, err)

	result := decodeJSON[types.MatchResult](t, stdout)
	assert.Contains(t, result.MatchedSkills, "python")
	assert.Contains(t, result.MissingSkills, "docker")
	assert.NotEmpty(t, result.Recommendations)

	stdout, _, err = execute(t, "history", "list", "--db", dbPath)
	require.NoError(t, err)
	analyses := decodeJSON[[]db.Analysis](t, stdout)
	require.Len(t, analyses, 1)
	assert.Equal(t, resume, analyses[0].ResumeFile)
	assert.Equal(t, result.OverallScore, analyses[0].OverallScore)

	id := analyses[0].ID.String()
	stdout, _, err = execute(t, "history", "show", id, "--db", dbPath)
	require.NoError(t, err)
	shown := decodeJSON[db.Analysis](t, stdout)
	require.NotNil(t, shown.Result)
	assert.Equal(t, result.MatchedSkills, shown.Result.MatchedSkills)

	stdout, _, err = execute(t, "history", "stats", "--db", dbPath)
	require.NoError(t, err)
	stats := decodeJSON[db.Statistics](t, stdout)
	assert.Equal(t, 1, stats.Count)

	stdout, _, err = execute(t, "history", "delete", id, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "deleted "+id)

	_, _, err = execute(t, "history", "delete", id, "--db", dbPath)
	require.ErrorIs(t, err, db.ErrNotFound)
}

func TestMatchCommand_NoHistory(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", resumeText)
	job := writeFile(t, dir, "job.txt", jobText)
	dbPath := filepath.Join(dir, "history.db")

	_, _, err := execute(t, "match", "--resume", resume, "--job", job, "--db", dbPath, "--no-history")
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))
}

func TestMatchCommand_EmptyInputs(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", "   ")
	job := writeFile(t, dir, "job.txt", "")

	_, _, err := execute(t, "match", "--resume", resume, "--job", job)
	require.Error(t, err)
	assert.True(t, analysis.IsReason(err, analysis.ReasonEmptyInput))
}

func TestHistoryCommand_NoDatabase(t *testing.T) {
	t.Setenv("SKILLMATCH_DATABASE_URL", "")

	_, _, err := execute(t, "history", "list")
	require.ErrorIs(t, err, errNoDatabase)
}

func TestHistoryCommand_InvalidID(t *testing.T) {
	_, _, err := execute(t, "history", "show", "not-a-uuid", "--db", filepath.Join(t.TempDir(), "h.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid analysis ID")
}

func TestRecommendCommand(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", resumeText)
	job := writeFile(t, dir, "job.txt", jobText)

	stdout, stderr, err := execute(t, "recommend", "--resume", resume, "--job", job, "--verbose")
	require.NoError(t, err)

	out := decodeJSON[recommendOutput](t, stdout)
	assert.NotEmpty(t, out.Recommendations)
	assert.NotEmpty(t, out.SkillGaps)
	require.NotNil(t, out.LearningPath)
	assert.Contains(t, out.LearningPath.ImmediateFocus, "docker")
	assert.NotContains(t, out.LearningPath.ImmediateFocus, "python")
	require.NotNil(t, out.Insights)
	assert.NotEmpty(t, stderr)
}

func TestLearningPathCommand(t *testing.T) {
	stdout, _, err := execute(t, "learning-path", "--current", "Python", "--target", "python,docker,kubernetes")
	require.NoError(t, err)

	path := decodeJSON[types.LearningPath](t, stdout)
	assert.NotContains(t, path.ImmediateFocus, "python")
	assert.Contains(t, path.ImmediateFocus, "docker")
}

func TestRankJobsCommand(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", resumeText)
	near := writeFile(t, dir, "close.txt", "Python and Django developer with PostgreSQL.")
	far := writeFile(t, dir, "far.txt", "Kubernetes, Terraform and AWS platform engineer.")

	stdout, _, err := execute(t, "rank-jobs", "--resume", resume, "--workers", "2", far, near)
	require.NoError(t, err)

	ranked := decodeJSON[[]analysis.RankedJob](t, stdout)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, near, ranked[0].ID)
	assert.Equal(t, far, ranked[1].ID)
	assert.GreaterOrEqual(t, ranked[0].Result.OverallScore, ranked[1].Result.OverallScore)
}

func TestRankJobsCommand_NoJobs(t *testing.T) {
	_, _, err := execute(t, "rank-jobs", "--resume", "resume.txt")
	require.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	resume := writeFile(t, dir, "resume.txt", resumeText)
	outPath := filepath.Join(dir, "extraction.json")

	_, _, err := execute(t, "extract", "--in", resume, "--out", outPath)
	require.NoError(t, err)

	stdout, _, err := execute(t, "validate", "--schema", "extraction_result", "--in", outPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "is a valid extraction_result")

	bad := writeFile(t, dir, "bad.json", `{"skills": {}}`)
	_, _, err = execute(t, "validate", "--schema", "extraction_result", "--in", bad)
	require.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "custom.yaml", "server:\n  port: 0\n")

	_, _, err := execute(t, "--config", cfgPath, "learning-path", "--target", "go")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "config error"), err.Error())
}
