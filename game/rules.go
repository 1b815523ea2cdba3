package game

import (
	"errors"
	"fmt"
)

var (
	ErrNotYourRegion = errors.New("not your region")
	ErrEmptyPit      = errors.New("empty pit")
	ErrInvalidInput  = errors.New("invalid input")
)

// CaptureKind tells which capture rule, if any, resolved a move.
type CaptureKind int

const (
	NoCapture CaptureKind = iota
	DoubleCapture
	MirrorCapture
)

func (c CaptureKind) String() string {
	switch c {
	case DoubleCapture:
		return "double"
	case MirrorCapture:
		return "mirror"
	default:
		return "none"
	}
}

// MoveResult is the outcome of a successful ApplyMove.
type MoveResult struct {
	Board       Board
	NextPlayer  Player
	Landing     int
	Captured    int
	Capture     CaptureKind
	ExtraTurn   bool
	SetFinished bool
	Winner      Winner
}

// ApplyMove sows the stones of pit for player and resolves extra turns,
// captures and the end of the set. The input board is never modified; on
// error the returned result is the zero value.
func ApplyMove(board Board, player Player, pit int) (MoveResult, error) {
	if !player.Valid() {
		return MoveResult{}, fmt.Errorf("unknown player %d: %w", int(player), ErrInvalidInput)
	}
	if pit < 0 || pit >= NumSlots {
		return MoveResult{}, fmt.Errorf("pit %d out of range: %w", pit, ErrInvalidInput)
	}
	if err := board.Validate(); err != nil {
		return MoveResult{}, err
	}
	if !player.Owns(pit) {
		return MoveResult{}, fmt.Errorf("pit %d for %s: %w", pit, player, ErrNotYourRegion)
	}
	if board[pit] == 0 {
		return MoveResult{}, fmt.Errorf("pit %d: %w", pit, ErrEmptyPit)
	}

	b := board
	landing := sow(&b, player, pit)

	res := MoveResult{
		Landing:    landing,
		NextPlayer: player.Opponent(),
	}
	opponent := player.Opponent()
	store := player.Store()

	switch {
	case landing == store:
		res.ExtraTurn = true
		res.NextPlayer = player
	case opponent.Owns(landing) && b[landing]%2 == 0:
		res.Captured = b[landing]
		res.Capture = DoubleCapture
		b[store] += b[landing]
		b[landing] = 0
	case player.Owns(landing) && b[landing] == 1 && b[Mirror(landing)] > 0:
		res.Captured = 1 + b[Mirror(landing)]
		res.Capture = MirrorCapture
		b[store] += res.Captured
		b[landing] = 0
		b[Mirror(landing)] = 0
	}

	if b.RowStones(player) == 0 {
		b, res.Winner = Settle(b)
		res.SetFinished = true
	}
	res.Board = b
	return res, nil
}

// sow empties pit and drops one stone per following slot, skipping the
// opponent's store. It returns the slot that received the last stone.
func sow(b *Board, player Player, pit int) int {
	skip := player.Opponent().Store()
	stones := b[pit]
	b[pit] = 0
	idx := pit
	for stones > 0 {
		idx = (idx + 1) % NumSlots
		if idx == skip {
			continue
		}
		b[idx]++
		stones--
	}
	return idx
}

// Landing returns the slot where the last of stones sown from pit by player ends.
func Landing(player Player, pit, stones int) int {
	if stones <= 0 {
		return pit
	}
	skip := player.Opponent().Store()
	idx := pit
	for stones > 0 {
		idx = (idx + 1) % NumSlots
		if idx != skip {
			stones--
		}
	}
	return idx
}

// StoreGain counts how many of stones sown from pit reach the player's own store.
func StoreGain(player Player, pit, stones int) int {
	store := player.Store()
	skip := player.Opponent().Store()
	gain := 0
	idx := pit
	for stones > 0 {
		idx = (idx + 1) % NumSlots
		if idx == skip {
			continue
		}
		if idx == store {
			gain++
		}
		stones--
	}
	return gain
}

// Settle moves every row's stones into its owner's store and decides the
// winner by comparing stores.
func Settle(board Board) (Board, Winner) {
	b := board
	for _, p := range []Player{PlayerA, PlayerB} {
		first := p.FirstPit()
		for i := first; i < first+PitsPerRow; i++ {
			b[p.Store()] += b[i]
			b[i] = 0
		}
	}
	switch a, bb := b[StoreA], b[StoreB]; {
	case a > bb:
		return b, WinnerA
	case bb > a:
		return b, WinnerB
	default:
		return b, Draw
	}
}
