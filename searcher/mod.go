package searcher

import (
	"fmt"

	"mangala/game"
)

// NoMove is returned when the player to move has no legal pit.
const NoMove = -1

// Strategy is a closed set of search algorithms: Greedy, Minimax and AlphaBeta.
type Strategy interface {
	fmt.Stringer
	strategy()
}

// Greedy plays a random pit with probability RandomChance and the fullest pit
// otherwise. With StoreBias it first prefers a move ending in the own store,
// then the move feeding the most stones into it.
type Greedy struct {
	RandomChance float64
	StoreBias    bool
}

// Minimax searches every line Depth plies deep.
type Minimax struct {
	Depth    int
	Evaluate game.Evaluate // defaults to game.EvaluateBasic
}

// AlphaBeta searches the same tree as Minimax with alpha-beta pruning.
type AlphaBeta struct {
	Depth    int
	Evaluate game.Evaluate // defaults to game.EvaluateAdvanced
}

func (Greedy) strategy()    {}
func (Minimax) strategy()   {}
func (AlphaBeta) strategy() {}

func (g Greedy) String() string    { return fmt.Sprintf("greedy(random=%.2f,bias=%t)", g.RandomChance, g.StoreBias) }
func (m Minimax) String() string   { return fmt.Sprintf("minimax(depth=%d)", m.Depth) }
func (a AlphaBeta) String() string { return fmt.Sprintf("alphabeta(depth=%d)", a.Depth) }
