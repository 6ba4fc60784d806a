package match

import (
	"sort"

	"recruitdesk/internal/types"
)

// Rank orders results by match_percentage descending. Ties keep the
// original upload order. Pure fold over the batch, no state.
func Rank(results []types.MatchResult) []types.MatchResult {
	ranked := make([]types.MatchResult, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchPercentage != ranked[j].MatchPercentage {
			return ranked[i].MatchPercentage > ranked[j].MatchPercentage
		}
		return ranked[i].UploadIndex < ranked[j].UploadIndex
	})

	return ranked
}
