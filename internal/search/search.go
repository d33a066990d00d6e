package search

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/scout/internal/candidate"
)

// Search parses the query and names it in parallel, then evaluates the pool.
// It fails when either of the first two steps fails. A title failure takes
// precedence, so an unreachable provider never reads as ErrNoCriteria.
func (s *Service) Search(ctx context.Context, query string, pool []candidate.Candidate) (*Result, error) {
	var (
		criteria    []Criterion
		title       string
		criteriaErr error
		titleErr    error
	)

	var g errgroup.Group
	g.Go(func() error {
		criteria, criteriaErr = s.ParseCriteria(ctx, query)
		return nil
	})
	g.Go(func() error {
		title, titleErr = s.SummarizeTitle(ctx, query)
		return nil
	})
	_ = g.Wait()

	if titleErr != nil {
		return nil, titleErr
	}
	if criteriaErr != nil {
		return nil, criteriaErr
	}

	return &Result{
		Title:       title,
		Criteria:    criteria,
		Evaluations: s.EvaluateAll(ctx, pool, criteria),
	}, nil
}

// Insights builds the profile panel for one candidate. It never fails.
func (s *Service) Insights(ctx context.Context, c candidate.Candidate, labels []string) Insights {
	var out Insights

	var g errgroup.Group
	g.Go(func() error {
		out.Summary = s.GenerateSummary(ctx, c)
		return nil
	})
	g.Go(func() error {
		out.Tags = s.GenerateTags(ctx, c)
		return nil
	})
	g.Go(func() error {
		out.Criteria = s.EvaluateProfile(ctx, c, labels)
		return nil
	})
	_ = g.Wait()

	return out
}
