// Package analysis is the boundary around the skill extraction, matching and
// recommendation core. It adds input limits, cancellation checks, panic
// containment and structured logging, and reports every failure as *Error.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/extraction"
	"github.com/jonathan/skill-matcher/internal/matching"
	"github.com/jonathan/skill-matcher/internal/recommend"
	"github.com/jonathan/skill-matcher/internal/types"
)

// DefaultMaxTextBytes bounds a single input document.
const DefaultMaxTextBytes = 1 << 20

// Service runs analyses. It is safe for concurrent use.
type Service struct {
	extractor    *extraction.Extractor
	matcher      *matching.Matcher
	recommender  *recommend.Generator
	logger       *zap.Logger
	maxTextBytes int
}

// Option configures a Service.
type Option func(*Service)

// WithMaxTextBytes sets the per-document size limit. Zero or less disables it.
func WithMaxTextBytes(n int) Option {
	return func(s *Service) {
		s.maxTextBytes = n
	}
}

// NewService wires the core components together. A nil logger disables logging.
func NewService(ext *extraction.Extractor, matcher *matching.Matcher, rec *recommend.Generator, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		extractor:    ext,
		matcher:      matcher,
		recommender:  rec,
		logger:       logger,
		maxTextBytes: DefaultMaxTextBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractText extracts skills from text. Empty text is not an error: it yields
// an empty result.
func (s *Service) ExtractText(ctx context.Context, text string) (*types.ExtractionResult, error) {
	if err := s.precheck(ctx, text); err != nil {
		return nil, err
	}

	start := time.Now()
	var result *types.ExtractionResult
	if err := s.guard("extract", func() {
		result = s.extractor.Extract(text)
	}); err != nil {
		return nil, err
	}

	s.logger.Debug("extracted skills",
		zap.Int("bytes", len(text)),
		zap.Int("skills", result.TotalSkills),
		zap.Int("total_years", result.Experience.TotalYears),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

// Match extracts both documents and scores the resume against the job.
// It fails with ReasonEmptyInput only when both documents are blank.
func (s *Service) Match(ctx context.Context, resumeText, jobText string) (*types.MatchResult, error) {
	if strings.TrimSpace(resumeText) == "" && strings.TrimSpace(jobText) == "" {
		return nil, &Error{Reason: ReasonEmptyInput, Message: "resume and job description are both empty"}
	}

	resume, err := s.ExtractText(ctx, resumeText)
	if err != nil {
		return nil, err
	}
	job, err := s.ExtractText(ctx, jobText)
	if err != nil {
		return nil, err
	}
	return s.MatchExtractions(ctx, resume, job)
}

// MatchExtractions scores two existing extraction results and attaches recommendations.
func (s *Service) MatchExtractions(ctx context.Context, resume, job *types.ExtractionResult) (*types.MatchResult, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var result *types.MatchResult
	if err := s.guard("match", func() {
		result = s.matcher.Score(resume, job)
		result.Recommendations = s.recommender.FromMatch(result, resume, job)
	}); err != nil {
		return nil, err
	}

	s.logger.Debug("scored match",
		zap.Float64("overall_score", result.OverallScore),
		zap.Int("matched", len(result.MatchedSkills)),
		zap.Int("missing", len(result.MissingSkills)),
	)
	return result, nil
}

// Recommend regenerates recommendations for an existing match.
func (s *Service) Recommend(ctx context.Context, match *types.MatchResult, resume, job *types.ExtractionResult) ([]types.Recommendation, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var recs []types.Recommendation
	if err := s.guard("recommend", func() {
		recs = s.recommender.FromMatch(match, resume, job)
	}); err != nil {
		return nil, err
	}
	return recs, nil
}

// LearningPath stages the skills in target that current lacks.
func (s *Service) LearningPath(ctx context.Context, current, target []string) (*types.LearningPath, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var path *types.LearningPath
	if err := s.guard("learning_path", func() {
		path = s.recommender.LearningPath(current, target)
	}); err != nil {
		return nil, err
	}
	return path, nil
}

// Insights describes the skill profile of an extraction of text.
func (s *Service) Insights(ctx context.Context, result *types.ExtractionResult, text string) (*types.SkillInsights, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	var insights *types.SkillInsights
	if err := s.guard("insights", func() {
		insights = s.recommender.Insights(result, text)
	}); err != nil {
		return nil, err
	}
	return insights, nil
}

func (s *Service) precheck(ctx context.Context, text string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if s.maxTextBytes > 0 && len(text) > s.maxTextBytes {
		return &Error{
			Reason:  ReasonInputTooLarge,
			Message: fmt.Sprintf("document is %d bytes, limit is %d", len(text), s.maxTextBytes),
		}
	}
	return nil
}

// guard runs fn and converts a panic into an internal error.
func (s *Service) guard(op string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("recovered panic in analysis",
				zap.String("operation", op),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			err = &Error{Reason: ReasonInternal, Message: op + " failed", Cause: fmt.Errorf("panic: %v", r)}
		}
	}()
	fn()
	return nil
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &Error{Reason: ReasonCanceled, Message: "request canceled", Cause: err}
	}
	return nil
}
