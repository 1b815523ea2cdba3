// Package game implements the Mangala board, its rules and the static
// evaluators used by the search. Everything here is pure: boards are values
// and every operation returns a new copy.
package game

import "fmt"

// Player identifies one of the two sides.
type Player int

const (
	PlayerA Player = iota
	PlayerB
)

func (p Player) Valid() bool {
	return p == PlayerA || p == PlayerB
}

func (p Player) Opponent() Player {
	if p == PlayerA {
		return PlayerB
	}
	return PlayerA
}

// Store returns the index of the player's store.
func (p Player) Store() int {
	if p == PlayerA {
		return StoreA
	}
	return StoreB
}

// FirstPit returns the lowest index of the player's row.
func (p Player) FirstPit() int {
	if p == PlayerA {
		return 0
	}
	return StoreA + 1
}

// Owns reports whether pit is one of the player's six sowable pits.
func (p Player) Owns(pit int) bool {
	first := p.FirstPit()
	return pit >= first && pit < first+PitsPerRow
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "playerA"
	case PlayerB:
		return "playerB"
	default:
		return fmt.Sprintf("player(%d)", int(p))
	}
}

// Winner is the outcome of a set or a match.
type Winner int

const (
	NoWinner Winner = iota
	WinnerA
	WinnerB
	Draw
)

// WinnerOf converts a player into the matching winner value.
func WinnerOf(p Player) Winner {
	if p == PlayerA {
		return WinnerA
	}
	return WinnerB
}

func (w Winner) String() string {
	switch w {
	case NoWinner:
		return "none"
	case WinnerA:
		return "playerA"
	case WinnerB:
		return "playerB"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("winner(%d)", int(w))
	}
}

// Evaluate scores a board from player's perspective, higher is better.
type Evaluate func(board Board, player Player) float64
