package game

// Position is a board together with the side to move. Like the board it is a
// value; Play returns the successor and leaves the receiver untouched.
type Position struct {
	Board  Board
	ToMove Player
}

func NewPosition(board Board, toMove Player) Position {
	return Position{Board: board, ToMove: toMove}
}

func (p Position) LegalMoves() []int {
	return ValidMoves(p.Board, p.ToMove)
}

// Play applies pit for the side to move. When the move does not end the set
// but leaves the next player without a legal move, the set is settled: both
// rows go to their owners' stores and the result is marked finished.
func (p Position) Play(pit int) (Position, MoveResult, error) {
	res, err := ApplyMove(p.Board, p.ToMove, pit)
	if err != nil {
		return p, res, err
	}
	if !res.SetFinished && len(ValidMoves(res.Board, res.NextPlayer)) == 0 {
		res.Board, res.Winner = Settle(res.Board)
		res.SetFinished = true
	}
	return Position{Board: res.Board, ToMove: res.NextPlayer}, res, nil
}
