package game

// BasicWeights weigh the store and row differentials of EvaluateBasic.
type BasicWeights struct {
	Store float64
	Row   float64
}

// AdvancedWeights keep store >> proximity/potential > raw row count.
type AdvancedWeights struct {
	Store     float64
	Row       float64
	Proximity float64 // per stone in the two pits nearest the own store
	ExtraTurn float64 // per pit whose sowing ends in the own store
	Capture   float64 // per opponent stone facing an own empty pit
}

var (
	DefaultBasicWeights    = BasicWeights{Store: 20, Row: 1}
	DefaultAdvancedWeights = AdvancedWeights{Store: 50, Row: 3, Proximity: 5, ExtraTurn: 10, Capture: 8}
)

// EvaluateBasic scores a board by store and row differentials with the default weights.
func EvaluateBasic(board Board, player Player) float64 {
	return NewBasicEvaluator(DefaultBasicWeights)(board, player)
}

// EvaluateAdvanced adds extra-turn and capture potential on top of the differentials.
func EvaluateAdvanced(board Board, player Player) float64 {
	return NewAdvancedEvaluator(DefaultAdvancedWeights)(board, player)
}

func NewBasicEvaluator(w BasicWeights) Evaluate {
	return func(board Board, player Player) float64 {
		storeDiff, rowDiff := differentials(board, player)
		return storeDiff*w.Store + rowDiff*w.Row
	}
}

func NewAdvancedEvaluator(w AdvancedWeights) Evaluate {
	return func(board Board, player Player) float64 {
		storeDiff, rowDiff := differentials(board, player)
		score := storeDiff*w.Store + rowDiff*w.Row

		first := player.FirstPit()
		last := first + PitsPerRow - 1
		score += float64(board[last]+board[last-1]) * w.Proximity

		for pit := first; pit <= last; pit++ {
			stones := board[pit]
			if stones > 0 && Landing(player, pit, stones) == player.Store() {
				score += w.ExtraTurn
			}
			if stones == 0 {
				score += float64(board[Mirror(pit)]) * w.Capture
			}
		}
		return score
	}
}

func differentials(board Board, player Player) (storeDiff, rowDiff float64) {
	opponent := player.Opponent()
	storeDiff = float64(board.StoreStones(player) - board.StoreStones(opponent))
	rowDiff = float64(board.RowStones(player) - board.RowStones(opponent))
	return storeDiff, rowDiff
}
