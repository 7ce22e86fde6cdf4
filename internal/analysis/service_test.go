package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/extraction"
	"github.com/jonathan/skill-matcher/internal/matching"
	"github.com/jonathan/skill-matcher/internal/recommend"
	"github.com/jonathan/skill-matcher/internal/taxonomy"
	"github.com/jonathan/skill-matcher/internal/types"
)

func newTestService(opts ...Option) *Service {
	tax := taxonomy.Default()
	return NewService(
		extraction.New(tax, extraction.DefaultOptions()),
		matching.New(tax, matching.DefaultWeights()),
		recommend.New(tax, recommend.DefaultOptions()),
		zap.NewNop(),
		opts...,
	)
}

const (
	resumeText = `Backend engineer with 4 years of experience building services in Python and Django.
Comfortable with PostgreSQL, Docker and Git. Strong communication and teamwork.`
	jobText = `We are hiring a senior engineer with 8+ years of experience.
Required: Python, Django, AWS, Kubernetes, Docker, PostgreSQL. Expert knowledge of Kafka is a plus.`
)

func TestExtractText(t *testing.T) {
	svc := newTestService()

	result, err := svc.ExtractText(context.Background(), resumeText)

	require.NoError(t, err)
	assert.Contains(t, result.Skills, "python")
	assert.Contains(t, result.Skills, "docker")
	assert.Equal(t, 4, result.Experience.TotalYears)
	assert.Equal(t, types.LevelMid, result.Experience.Level)
}

func TestExtractText_EmptyIsNotAnError(t *testing.T) {
	svc := newTestService()

	result, err := svc.ExtractText(context.Background(), "  ")

	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalSkills)
}

func TestExtractText_TooLarge(t *testing.T) {
	svc := newTestService(WithMaxTextBytes(10))

	_, err := svc.ExtractText(context.Background(), strings.Repeat("python ", 5))

	require.Error(t, err)
	assert.True(t, IsReason(err, ReasonInputTooLarge))
}

func TestExtractText_Canceled(t *testing.T) {
	svc := newTestService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ExtractText(ctx, resumeText)

	assert.True(t, IsReason(err, ReasonCanceled))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractText_RecoversPanic(t *testing.T) {
	tax := taxonomy.Default()
	// a missing extractor makes the core panic on non-empty input
	svc := NewService(nil, matching.New(tax, matching.DefaultWeights()), recommend.New(tax, recommend.DefaultOptions()), nil)

	result, err := svc.ExtractText(context.Background(), "python")

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, IsReason(err, ReasonInternal))
	assert.Equal(t, ReasonInternal, ReasonOf(err))
}

func TestMatch(t *testing.T) {
	svc := newTestService()

	result, err := svc.Match(context.Background(), resumeText, jobText)

	require.NoError(t, err)
	assert.Contains(t, result.MatchedSkills, "python")
	assert.Contains(t, result.MissingSkills, "aws")
	assert.Contains(t, result.MissingSkills, "kubernetes")
	assert.Equal(t, 50.0, result.DetailedScores.ExperienceMatch)
	assert.GreaterOrEqual(t, result.OverallScore, 0.0)
	assert.LessOrEqual(t, result.OverallScore, 100.0)

	require.NotEmpty(t, result.Recommendations)
	last := result.Recommendations[len(result.Recommendations)-1]
	assert.Equal(t, types.KindExperienceGap, last.Kind)
	assert.Equal(t, "Gain more experience (current: 4 years, required: 8 years)", last.Reason)
}

func TestMatch_BothEmpty(t *testing.T) {
	svc := newTestService()

	_, err := svc.Match(context.Background(), "", "\n")

	assert.True(t, IsReason(err, ReasonEmptyInput))
}

func TestMatch_OneSideEmpty(t *testing.T) {
	svc := newTestService()

	result, err := svc.Match(context.Background(), resumeText, "")

	require.NoError(t, err)
	assert.Equal(t, 100.0, result.DetailedScores.CategoryMatch)
	assert.Equal(t, 0.0, result.DetailedScores.WeightedScore)
}

func TestRecommendAndLearningPath(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	resume, err := svc.ExtractText(ctx, resumeText)
	require.NoError(t, err)
	job, err := svc.ExtractText(ctx, jobText)
	require.NoError(t, err)
	match, err := svc.MatchExtractions(ctx, resume, job)
	require.NoError(t, err)

	recs, err := svc.Recommend(ctx, match, resume, job)
	require.NoError(t, err)
	assert.Equal(t, match.Recommendations, recs)

	path, err := svc.LearningPath(ctx, resume.SkillNames(), job.SkillNames())
	require.NoError(t, err)
	staged := append(append(append([]string{}, path.ImmediateFocus...), path.ShortTerm...), path.LongTerm...)
	assert.ElementsMatch(t, match.MissingSkills, staged)

	insights, err := svc.Insights(ctx, resume, resumeText)
	require.NoError(t, err)
	assert.NotEmpty(t, insights.ProfileLevel)
}

func TestErrorFormatting(t *testing.T) {
	err := &Error{Reason: ReasonCanceled, Message: "request canceled", Cause: context.Canceled}
	assert.Equal(t, "analysis canceled: request canceled: context canceled", err.Error())

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, IsReason(wrapped, ReasonCanceled))
	assert.False(t, IsReason(errors.New("plain"), ReasonCanceled))
	assert.Equal(t, Reason(""), ReasonOf(errors.New("plain")))
}
