package searcher

import (
	"mangala/game"

	"github.com/samber/lo"
)

func (s *Searcher) greedy(board game.Board, player game.Player, moves []int, g Greedy) int {
	if g.StoreBias {
		// Extra turn first
		for _, pit := range moves {
			if game.Landing(player, pit, board[pit]) == player.Store() {
				return pit
			}
		}

		// Then the move feeding the most stones into the store
		best, bestGain := moves[0], 0
		for _, pit := range moves {
			if gain := game.StoreGain(player, pit, board[pit]); gain > bestGain {
				best, bestGain = pit, gain
			}
		}
		if bestGain > 0 {
			return best
		}
	}

	if s.rng.Float64() < g.RandomChance {
		return moves[s.rng.Intn(len(moves))]
	}
	return lo.MaxBy(moves, func(a, b int) bool {
		return board[a] > board[b]
	})
}
