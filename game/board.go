package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const (
	NumSlots    = 14
	PitsPerRow  = 6
	SeedStones  = 4
	TotalStones = 2 * PitsPerRow * SeedStones

	StoreA = 6  // Player A's store
	StoreB = 13 // Player B's store
)

// Board holds the stone count of every slot: pits 0-5 and 7-12, stores 6 and 13.
// It is an array so that assignment copies it.
type Board [NumSlots]int

// NewBoard returns the starting board: 4 stones per pit, empty stores.
func NewBoard() Board {
	var b Board
	for i := range b {
		if i != StoreA && i != StoreB {
			b[i] = SeedStones
		}
	}
	return b
}

// ParseBoard builds a board from a slice, rejecting wrong lengths and negative counts.
func ParseBoard(pits []int) (Board, error) {
	var b Board
	if len(pits) != NumSlots {
		return b, fmt.Errorf("board has %d slots, want %d: %w", len(pits), NumSlots, ErrInvalidInput)
	}
	copy(b[:], pits)
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// Validate rejects boards holding negative counts.
func (b Board) Validate() error {
	for i, stones := range b {
		if stones < 0 {
			return fmt.Errorf("slot %d holds %d stones: %w", i, stones, ErrInvalidInput)
		}
	}
	return nil
}

// Row returns a copy of the player's six pits in ascending index order.
func (b Board) Row(p Player) []int {
	first := p.FirstPit()
	row := make([]int, PitsPerRow)
	copy(row, b[first:first+PitsPerRow])
	return row
}

// RowStones counts the stones left in the player's row.
func (b Board) RowStones(p Player) int {
	return lo.Sum(b.Row(p))
}

func (b Board) StoreStones(p Player) int {
	return b[p.Store()]
}

func (b Board) Sum() int {
	return lo.Sum(b[:])
}

// String draws B's row right to left above A's row, stores on the sides.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("    ")
	for i := StoreB - 1; i > StoreA; i-- {
		fmt.Fprintf(&sb, "%3d", b[i])
	}
	fmt.Fprintf(&sb, "\n%3d %s %3d\n    ", b[StoreB], strings.Repeat(" ", 3*PitsPerRow), b[StoreA])
	for i := 0; i < StoreA; i++ {
		fmt.Fprintf(&sb, "%3d", b[i])
	}
	return sb.String()
}

// Mirror returns the index across the board from a pit.
func Mirror(pit int) int {
	return 2*PitsPerRow - pit
}
