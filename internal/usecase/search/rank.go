package search

import (
	"sort"

	"github.com/carprompt/carsearch/internal/domain/search/result"
)

// rankResults orders scored candidates by descending score and truncates to
// limit. The sort is stable so equal scores keep their candidate order, which
// keeps repeated searches deterministic. Input is not mutated.
func rankResults(scored []result.ScoredResult, limit int) []result.ScoredResult {
	if limit <= 0 {
		return []result.ScoredResult{}
	}

	ranked := make([]result.ScoredResult, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
