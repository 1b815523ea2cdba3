package searcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"mangala/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(s *Searcher)

// Searcher picks moves for a player. A Searcher is not safe for concurrent
// use; give each goroutine its own.
type Searcher struct {
	goroutines int
	duration   time.Duration
	rng        *rand.Rand
	metrics    Collector
}

// WithDuration bounds every ChooseMove call by a wall-clock budget.
func WithDuration(duration time.Duration) Option {
	return func(s *Searcher) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

// WithGoroutines spreads root moves over several goroutines.
func WithGoroutines(goroutines int) Option {
	return func(s *Searcher) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Searcher) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = NewCollector()
	}
}

func NewSearcher(options ...Option) *Searcher {
	s := &Searcher{ // Default values
		goroutines: 1,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:    NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// ChooseMove returns the pit player should sow on board, or NoMove when there
// is none. The board is never modified. The search stops early when ctx is
// done or the configured duration elapses, returning the best move of the
// deepest completed iteration.
func (s *Searcher) ChooseMove(ctx context.Context, board game.Board, player game.Player, strategy Strategy) (int, SearchMetric) {
	s.metrics.Start(strategy, s.goroutines)

	moves := game.ValidMoves(board, player)
	switch len(moves) {
	case 0:
		return NoMove, s.metrics.Complete()
	case 1:
		return moves[0], s.metrics.Complete()
	}

	if s.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.duration)
		defer cancel()
	}

	pos := game.NewPosition(board, player)
	var move int
	switch st := strategy.(type) {
	case Greedy:
		move = s.greedy(board, player, moves, st)
	case Minimax:
		move = s.deepen(ctx, pos, moves, st.Depth, evaluator(st.Evaluate, game.EvaluateBasic), false)
	case AlphaBeta:
		move = s.deepen(ctx, pos, moves, st.Depth, evaluator(st.Evaluate, game.EvaluateAdvanced), true)
	default:
		panic(fmt.Sprintf("unknown strategy %T", strategy))
	}
	return move, s.metrics.Complete()
}

func evaluator(evaluate, fallback game.Evaluate) game.Evaluate {
	if evaluate != nil {
		return evaluate
	}
	return fallback
}

// deepen runs searches of increasing depth while time remains. Without a
// deadline it goes straight to maxDepth.
func (s *Searcher) deepen(ctx context.Context, pos game.Position, moves []int, maxDepth int, evaluate game.Evaluate, prune bool) int {
	maxDepth = max(maxDepth, 1)
	depth := maxDepth
	if _, ok := ctx.Deadline(); ok {
		depth = 1
	}

	best := moves[0]
	completed := 0
	for ; depth <= maxDepth; depth++ {
		move, found, err := s.searchRoot(ctx, pos, moves, depth, evaluate, prune)
		if err != nil {
			s.metrics.Abort()
			if completed == 0 {
				if found {
					best = move
				}
				log.Warn().Err(err).Int("depth", depth).Msg("search aborted before completing an iteration")
			} else {
				log.Debug().Err(err).Int("depth", depth).Int("completed", completed).Msg("search deadline reached")
			}
			break
		}
		best = move
		completed = depth
		s.metrics.CompleteDepth(depth)
		log.Debug().Int("depth", depth).Int("move", move).Msg("search iteration complete")
	}
	return best
}

// searchRoot scores every root move at depth and returns the highest scoring
// one, the first in pit order on ties. When interrupted it returns the best
// move among the root moves already scored and whether there was one.
func (s *Searcher) searchRoot(ctx context.Context, pos game.Position, moves []int, depth int, evaluate game.Evaluate, prune bool) (int, bool, error) {
	if s.goroutines > 1 {
		return s.searchRootParallel(ctx, pos, moves, depth, evaluate, prune)
	}

	root := pos.ToMove
	best, bestScore, found := moves[0], math.Inf(-1), false
	alpha := math.Inf(-1)
	for _, pit := range moves {
		score, err := s.child(ctx, pos, pit, depth-1, alpha, math.Inf(1), root, evaluate, prune)
		if err != nil {
			return best, found, err
		}
		if !found || score > bestScore {
			best, bestScore, found = pit, score, true
		}
		if prune {
			alpha = max(alpha, score)
		}
	}
	return best, found, nil
}

func (s *Searcher) child(ctx context.Context, pos game.Position, pit, depth int, alpha, beta float64, root game.Player, evaluate game.Evaluate, prune bool) (float64, error) {
	next, res, err := pos.Play(pit)
	if err != nil {
		panic(fmt.Sprintf("illegal move %d in search: %v", pit, err))
	}
	if prune {
		return s.alphaBeta(ctx, next, res.SetFinished, depth, alpha, beta, root, evaluate)
	}
	return s.minimax(ctx, next, res.SetFinished, depth, root, evaluate)
}

var errInterrupted = errors.New("search interrupted")

// checkpoint counts the node and reports whether the search must stop.
func (s *Searcher) checkpoint(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errInterrupted, err)
	}
	s.metrics.AddNode()
	return nil
}
