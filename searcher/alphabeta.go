package searcher

import (
	"context"
	"math"

	"mangala/game"
)

// alphaBeta is minimax with fail-soft alpha-beta pruning. A value inside
// (alpha, beta) is exact; outside it is only a bound, which never changes the
// move chosen at the root.
func (s *Searcher) alphaBeta(ctx context.Context, pos game.Position, finished bool, depth int, alpha, beta float64, root game.Player, evaluate game.Evaluate) (float64, error) {
	if err := s.checkpoint(ctx); err != nil {
		return 0, err
	}
	if finished || depth <= 0 {
		return evaluate(pos.Board, root), nil
	}

	if pos.ToMove == root {
		value := math.Inf(-1)
		for _, pit := range pos.LegalMoves() {
			score, err := s.child(ctx, pos, pit, depth-1, alpha, beta, root, evaluate, true)
			if err != nil {
				return 0, err
			}
			value = max(value, score)
			alpha = max(alpha, value)
			if alpha >= beta {
				break // Beta cut-off
			}
		}
		return value, nil
	}

	value := math.Inf(1)
	for _, pit := range pos.LegalMoves() {
		score, err := s.child(ctx, pos, pit, depth-1, alpha, beta, root, evaluate, true)
		if err != nil {
			return 0, err
		}
		value = min(value, score)
		beta = min(beta, value)
		if alpha >= beta {
			break // Alpha cut-off
		}
	}
	return value, nil
}
