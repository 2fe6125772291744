package match

import (
	"context"

	"go.uber.org/zap"
)

// CandidateSource supplies candidate names for search. The substring tier
// is expected to be a cheap indexed query; All is only hit on fuzzy fallback.
type CandidateSource interface {
	// SearchNames returns candidates containing query, case-insensitive
	SearchNames(ctx context.Context, query string) ([]string, error)
	// AllNames returns the full candidate set
	AllNames(ctx context.Context) ([]string, error)
}

// FuncSource adapts plain functions to a CandidateSource
type FuncSource struct {
	Substring func(ctx context.Context, query string) ([]string, error)
	All       func(ctx context.Context) ([]string, error)
}

func (f FuncSource) SearchNames(ctx context.Context, query string) ([]string, error) {
	return f.Substring(ctx, query)
}

func (f FuncSource) AllNames(ctx context.Context) ([]string, error) {
	return f.All(ctx)
}

// Searcher implements the two-tier search strategy: an exact substring
// query first, and a fuzzy pass across the full candidate set only when
// the substring tier returns zero results.
type Searcher struct {
	source CandidateSource
	logger *zap.Logger
}

func NewSearcher(source CandidateSource, logger *zap.Logger) *Searcher {
	return &Searcher{source: source, logger: logger}
}

// Search runs the two-tier lookup and returns at most limit names.
// Substring hits are returned as-is in storage order; fuzzy hits are
// filtered by Threshold and ordered by score.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]string, error) {
	names, err := s.source.SearchNames(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(names) > 0 {
		if len(names) > limit {
			names = names[:limit]
		}
		return names, nil
	}

	// Fuzzy fallback across every candidate. O(n) comparisons, so it only
	// runs when the substring tier found nothing.
	all, err := s.source.AllNames(ctx)
	if err != nil {
		return nil, err
	}

	accepted := Accepted(Best(query, all, limit))
	s.logger.Debug("fuzzy fallback",
		zap.String("query", query),
		zap.Int("candidates", len(all)),
		zap.Int("accepted", len(accepted)),
	)

	result := make([]string, 0, len(accepted))
	for _, m := range accepted {
		result = append(result, m.Candidate)
	}
	return result, nil
}
