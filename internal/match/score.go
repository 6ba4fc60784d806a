package match

import "math"

// Blend weights. Fixed design constants, not tunable per request: the
// hybrid favors meaning-level match while still rewarding explicit skill
// presence.
const (
	semanticWeight = 0.6
	keywordWeight  = 0.4

	skillOverlapWeight   = 0.7
	lexicalOverlapWeight = 0.3
)

// Round2 rounds to 2 decimal places, the precision of every emitted score.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// SemanticScore rescales a cosine similarity in [-1, 1] to [0, 100].
// Negative similarity clamps to 0: no signal, never a negative score.
func SemanticScore(cosine float64) float64 {
	if cosine < 0 {
		cosine = 0
	}
	return Round2(cosine * 100)
}

// Combine merges the semantic and keyword scores into the final match
// percentage. Pure function, no failure modes.
func Combine(semantic, keyword float64) float64 {
	return Round2(semanticWeight*semantic + keywordWeight*keyword)
}
