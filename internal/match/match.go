package match

import (
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Threshold is the minimum partial-ratio score for a candidate to count
// as a match. Callers filter on Score >= Threshold.
const Threshold = 85

// Match is a scored candidate. Score is a partial-ratio similarity in [0,100].
type Match struct {
	Candidate string
	Score     int
}

// Best scores query against every candidate and returns at most limit
// matches sorted by score descending. Ties keep the order candidates were
// supplied in; that ordering is not load-bearing for callers.
//
// An empty candidate list yields an empty result, never an error.
func Best(query string, candidates []string, limit int) []Match {
	if len(candidates) == 0 || limit <= 0 {
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score := fuzzy.PartialRatio(q, strings.ToLower(c))
		if score <= 0 {
			continue
		}
		matches = append(matches, Match{Candidate: c, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Accepted filters matches down to those at or above Threshold.
func Accepted(matches []Match) []Match {
	var out []Match
	for _, m := range matches {
		if m.Score >= Threshold {
			out = append(out, m)
		}
	}
	return out
}
