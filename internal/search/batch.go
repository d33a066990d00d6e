package search

import (
	"cmp"
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/MikeSquared-Agency/scout/internal/candidate"
)

// EvaluateAll evaluates every candidate concurrently, drops candidates that
// met no criteria and orders the rest by MetCount, highest first. Ties keep
// the input order of candidates; callers should not rely on it.
func (s *Service) EvaluateAll(ctx context.Context, candidates []candidate.Candidate, criteria []Criterion) []Evaluation {
	evals := make([]Evaluation, len(candidates))

	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			results := s.EvaluateCandidate(ctx, c, criteria)
			evals[i] = newEvaluation(c, results, len(criteria))
			return nil
		})
	}
	_ = g.Wait()

	ranked := rank(evals)
	s.logger.Info("candidates evaluated",
		"candidates", len(candidates),
		"criteria", len(criteria),
		"matched", len(ranked),
	)
	return ranked
}

func rank(evals []Evaluation) []Evaluation {
	out := make([]Evaluation, 0, len(evals))
	for _, e := range evals {
		if e.MetCount > 0 {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Evaluation) int {
		return cmp.Compare(b.MetCount, a.MetCount)
	})
	return out
}
