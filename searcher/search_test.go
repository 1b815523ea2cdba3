package searcher

import (
	"context"
	"testing"
	"time"

	"mangala/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// samplePositions plays seeded random moves from the start to reach varied
// mid-game positions.
func samplePositions(t *testing.T, n int) []game.Position {
	t.Helper()
	rng := rand.New(rand.NewSource(7))
	positions := []game.Position{}
	pos := game.NewPosition(game.NewBoard(), game.PlayerA)
	for len(positions) < n {
		moves := pos.LegalMoves()
		next, res, err := pos.Play(moves[rng.Intn(len(moves))])
		require.NoError(t, err)
		if res.SetFinished {
			pos = game.NewPosition(game.NewBoard(), game.PlayerB)
			continue
		}
		if len(next.LegalMoves()) > 1 {
			positions = append(positions, next)
		}
		pos = next
	}
	return positions
}

func TestChooseMoveTrivialCases(t *testing.T) {
	t.Run("no legal move returns the sentinel", func(t *testing.T) {
		var b game.Board
		b[7] = 4
		b[game.StoreA] = 44

		move, _ := NewSearcher().ChooseMove(context.Background(), b, game.PlayerA, AlphaBeta{Depth: 3})

		require.Equal(t, NoMove, move)
	})

	t.Run("single legal move is returned without searching", func(t *testing.T) {
		var b game.Board
		b[3] = 2
		b[9] = 4
		s := NewSearcher(WithMetrics())

		move, metric := s.ChooseMove(context.Background(), b, game.PlayerA, Minimax{Depth: 5})

		require.Equal(t, 3, move)
		require.Zero(t, metric.Nodes, "Should not expand any node")
	})
}

func TestMinimax(t *testing.T) {
	t.Run("takes a double capture", func(t *testing.T) {
		b := game.NewBoard()
		b[5] = 7
		b[12] = 5

		move, _ := NewSearcher().ChooseMove(context.Background(), b, game.PlayerA, Minimax{Depth: 1})

		require.Equal(t, 5, move)
	})

	t.Run("depth below one searches one ply", func(t *testing.T) {
		b := game.NewBoard()
		b[5] = 7
		b[12] = 5

		move, _ := NewSearcher().ChooseMove(context.Background(), b, game.PlayerA, Minimax{Depth: 0})

		require.Equal(t, 5, move)
	})

	t.Run("is deterministic", func(t *testing.T) {
		for _, pos := range samplePositions(t, 5) {
			s := NewSearcher()
			first, _ := s.ChooseMove(context.Background(), pos.Board, pos.ToMove, Minimax{Depth: 4})
			second, _ := s.ChooseMove(context.Background(), pos.Board, pos.ToMove, Minimax{Depth: 4})
			require.Equal(t, first, second)
		}
	})

	t.Run("leaves the board untouched", func(t *testing.T) {
		b := game.NewBoard()
		before := b

		NewSearcher().ChooseMove(context.Background(), b, game.PlayerB, Minimax{Depth: 4})

		require.Equal(t, before, b)
	})

	t.Run("breaks ties by the lowest pit", func(t *testing.T) {
		zero := func(game.Board, game.Player) float64 { return 0 }

		move, _ := NewSearcher().ChooseMove(context.Background(), game.NewBoard(), game.PlayerB, Minimax{Depth: 2, Evaluate: zero})

		require.Equal(t, 7, move)
	})
}

func TestAlphaBeta(t *testing.T) {
	t.Run("chooses the same move as minimax", func(t *testing.T) {
		for _, depth := range []int{1, 2, 3, 4} {
			for _, pos := range samplePositions(t, 10) {
				mm, _ := NewSearcher().ChooseMove(context.Background(), pos.Board, pos.ToMove, Minimax{Depth: depth, Evaluate: game.EvaluateAdvanced})
				ab, _ := NewSearcher().ChooseMove(context.Background(), pos.Board, pos.ToMove, AlphaBeta{Depth: depth})
				require.Equal(t, mm, ab, "depth %d board %v", depth, pos.Board)
			}
		}
	})

	t.Run("visits fewer nodes than minimax", func(t *testing.T) {
		b := game.NewBoard()
		mm := NewSearcher(WithMetrics())
		ab := NewSearcher(WithMetrics())

		_, mmMetric := mm.ChooseMove(context.Background(), b, game.PlayerA, Minimax{Depth: 5, Evaluate: game.EvaluateAdvanced})
		_, abMetric := ab.ChooseMove(context.Background(), b, game.PlayerA, AlphaBeta{Depth: 5})

		require.Less(t, abMetric.Nodes, mmMetric.Nodes)
		require.Equal(t, 5, abMetric.Depth)
		require.False(t, abMetric.Aborted)
	})

	t.Run("parallel root search agrees with sequential", func(t *testing.T) {
		for _, pos := range samplePositions(t, 8) {
			seq, _ := NewSearcher().ChooseMove(context.Background(), pos.Board, pos.ToMove, AlphaBeta{Depth: 5})
			par, _ := NewSearcher(WithGoroutines(4)).ChooseMove(context.Background(), pos.Board, pos.ToMove, AlphaBeta{Depth: 5})
			require.Equal(t, seq, par)
		}
	})
}

func TestSearchInterruption(t *testing.T) {
	t.Run("cancelled context falls back to the first legal move", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		b := game.NewBoard()
		b[0] = 0
		s := NewSearcher(WithMetrics())

		move, metric := s.ChooseMove(ctx, b, game.PlayerA, AlphaBeta{Depth: 7})

		require.Equal(t, 1, move)
		require.True(t, metric.Aborted)
		require.Zero(t, metric.Depth)
	})

	t.Run("expired deadline stops inside the first iteration", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 0)
		defer cancel()
		s := NewSearcher(WithMetrics())

		move, metric := s.ChooseMove(ctx, game.NewBoard(), game.PlayerB, Minimax{Depth: 7})

		require.Equal(t, 7, move)
		require.True(t, metric.Aborted)
	})

	t.Run("duration budget returns a legal move in time", func(t *testing.T) {
		s := NewSearcher(WithDuration(20*time.Millisecond), WithMetrics())
		start := time.Now()

		move, metric := s.ChooseMove(context.Background(), game.NewBoard(), game.PlayerA, Minimax{Depth: 30})

		require.Contains(t, game.ValidMoves(game.NewBoard(), game.PlayerA), move)
		require.True(t, metric.Aborted)
		require.Less(t, time.Since(start), time.Second)
	})
}

func TestGreedy(t *testing.T) {
	t.Run("prefers an extra turn", func(t *testing.T) {
		move, _ := NewSearcher(WithSeed(1)).ChooseMove(context.Background(), game.NewBoard(), game.PlayerA, Greedy{RandomChance: 1, StoreBias: true})

		require.Equal(t, 2, move, "Pit 2 with 4 stones ends in the store")
	})

	t.Run("then the largest store gain", func(t *testing.T) {
		var b game.Board
		b[0] = 1
		b[3] = 5
		b[9] = 4

		move, _ := NewSearcher(WithSeed(1)).ChooseMove(context.Background(), b, game.PlayerA, Greedy{RandomChance: 1, StoreBias: true})

		require.Equal(t, 3, move)
	})

	t.Run("otherwise the fullest pit", func(t *testing.T) {
		b := game.NewBoard()
		b[10] = 9

		move, _ := NewSearcher(WithSeed(1)).ChooseMove(context.Background(), b, game.PlayerB, Greedy{RandomChance: 0})

		require.Equal(t, 10, move)
	})

	t.Run("random play covers every legal move", func(t *testing.T) {
		s := NewSearcher(WithSeed(42))
		seen := map[int]bool{}
		for i := 0; i < 300; i++ {
			move, _ := s.ChooseMove(context.Background(), game.NewBoard(), game.PlayerA, Greedy{RandomChance: 1})
			seen[move] = true
		}
		require.Len(t, seen, 6)
	})
}
