package searcher

import (
	"context"
	"math"

	"mangala/game"
)

// minimax backs up the exact value of pos searched depth plies deep. Nodes
// where root is to move maximize, the others minimize; extra turns keep the
// same side on move.
func (s *Searcher) minimax(ctx context.Context, pos game.Position, finished bool, depth int, root game.Player, evaluate game.Evaluate) (float64, error) {
	if err := s.checkpoint(ctx); err != nil {
		return 0, err
	}
	if finished || depth <= 0 {
		return evaluate(pos.Board, root), nil
	}

	maximizing := pos.ToMove == root
	value := math.Inf(1)
	if maximizing {
		value = math.Inf(-1)
	}
	for _, pit := range pos.LegalMoves() {
		score, err := s.child(ctx, pos, pit, depth-1, 0, 0, root, evaluate, false)
		if err != nil {
			return 0, err
		}
		if maximizing {
			value = max(value, score)
		} else {
			value = min(value, score)
		}
	}
	return value, nil
}
