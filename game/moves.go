package game

import "github.com/samber/lo"

// ValidMoves lists the player's non-empty pits in ascending order. An empty
// result means the player cannot move.
func ValidMoves(board Board, player Player) []int {
	if !player.Valid() {
		return nil
	}
	first := player.FirstPit()
	pits := lo.Range(PitsPerRow)
	return lo.FilterMap(pits, func(offset int, _ int) (int, bool) {
		return first + offset, board[first+offset] > 0
	})
}
