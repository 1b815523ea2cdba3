package engine

import (
	"context"
	"errors"

	"mangala/experiments/metrics"
	"mangala/game"
)

// MaxMoves bounds a single match.
const MaxMoves = 10000

var (
	ErrNoMove    = errors.New("agent passed with legal moves available")
	ErrMoveLimit = errors.New("move limit reached")
)

type Engine interface {
	// Run plays the match till it is finished, the context is done or an
	// agent fails.
	Run(ctx context.Context) (game.Winner, metrics.GameMetric, []metrics.MoveMetric, error)
}
