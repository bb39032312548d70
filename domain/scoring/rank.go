package scoring

import (
	"sort"

	"modeladvisor/models"
)

// Rank sorts scored candidates descending by final score and truncates
// to TopN. The sort is stable; downstream role selection keys on scores
// and ids rather than order, so no further tie policy is needed here.
func Rank(candidates []models.ScoredCandidate) []models.ScoredCandidate {
	ranked := make([]models.ScoredCandidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	return ranked
}
