package searcher

import (
	"context"
	"math"

	"mangala/game"

	"golang.org/x/sync/errgroup"
)

// searchRootParallel scores root moves concurrently. Each branch gets the full
// window so its score is exact and the choice matches the sequential search.
func (s *Searcher) searchRootParallel(ctx context.Context, pos game.Position, moves []int, depth int, evaluate game.Evaluate, prune bool) (int, bool, error) {
	root := pos.ToMove
	scores := make([]float64, len(moves))
	scored := make([]bool, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.goroutines)
	for i, pit := range moves {
		g.Go(func() error {
			score, err := s.child(gctx, pos, pit, depth-1, math.Inf(-1), math.Inf(1), root, evaluate, prune)
			if err != nil {
				return err
			}
			scores[i], scored[i] = score, true
			return nil
		})
	}
	err := g.Wait()

	best, bestScore, found := moves[0], math.Inf(-1), false
	for i, pit := range moves {
		if scored[i] && (!found || scores[i] > bestScore) {
			best, bestScore, found = pit, scores[i], true
		}
	}
	return best, found, err
}
