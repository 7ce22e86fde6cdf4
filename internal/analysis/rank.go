package analysis

import (
	"context"
	"runtime"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Document is a named input text.
type Document struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// RankedJob is one job description scored against a resume.
type RankedJob struct {
	Rank   int                `json:"rank"`
	ID     string             `json:"id"`
	Result *types.MatchResult `json:"result"`
}

// RankJobs scores every job against the resume and orders them best first,
// ties broken by ID. Each job extraction is one unit of work; at most workers
// run at once (GOMAXPROCS when workers <= 0). The first failure cancels the rest.
func (s *Service) RankJobs(ctx context.Context, resumeText string, jobs []Document, workers int) ([]RankedJob, error) {
	start := time.Now()
	resume, err := s.ExtractText(ctx, resumeText)
	if err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ranked := make([]RankedJob, len(jobs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		g.Go(func() error {
			extracted, err := s.ExtractText(gCtx, job.Text)
			if err != nil {
				return err
			}
			result, err := s.MatchExtractions(gCtx, resume, extracted)
			if err != nil {
				return err
			}
			// each goroutine owns its slot
			ranked[i] = RankedJob{ID: job.ID, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	sort.SliceStable(ranked, func(i, k int) bool {
		if ranked[i].Result.OverallScore != ranked[k].Result.OverallScore {
			return ranked[i].Result.OverallScore > ranked[k].Result.OverallScore
		}
		return ranked[i].ID < ranked[k].ID
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	s.logger.Info("ranked jobs",
		zap.Int("jobs", len(jobs)),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ranked, nil
}
