package engine

import (
	"sort"

	"github.com/peterkuimelis/clasher/internal/game"
)

// FindBest returns up to k moves ordered by descending score. Moves with
// equal scores keep their generation order. The candidates slice itself is
// left untouched.
func FindBest(candidates []*game.Move, k int) []*game.Move {
	if len(candidates) == 0 || k <= 0 {
		return []*game.Move{}
	}

	ranked := make([]*game.Move, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
