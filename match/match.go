// Package match owns the authoritative state of a best-of-five Mangala match.
package match

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mangala/bot"
	"mangala/game"
	"mangala/searcher"

	"github.com/google/uuid"
)

const MaxSets = 5

var (
	ErrSetFinished   = errors.New("set is finished")
	ErrMatchFinished = errors.New("match is finished")
)

type Mode int

const (
	PvP Mode = iota
	PvE
)

func (m Mode) String() string {
	if m == PvE {
		return "pve"
	}
	return "pvp"
}

type Status int

const (
	Active Status = iota
	Finished
)

func (s Status) String() string {
	if s == Finished {
		return "finished"
	}
	return "active"
}

// Config describes a new match. In PvE mode player B is the bot.
type Config struct {
	Mode          Mode
	Player1Name   string
	Player2Name   string
	BotDifficulty bot.Difficulty
	FirstPlayer   game.Player
}

// Move records one applied move.
type Move struct {
	Player    game.Player
	Pit       int
	Timestamp time.Time
	Board     game.Board
	Captured  int
	Capture   game.CaptureKind
	ExtraTurn bool
}

// Set is one play-through from the starting board until a row empties.
type Set struct {
	Board         game.Board
	CurrentPlayer game.Player
	Status        Status
	Winner        game.Winner
	Moves         []Move
}

func newSet(first game.Player) *Set {
	return &Set{
		Board:         game.NewBoard(),
		CurrentPlayer: first,
		Status:        Active,
	}
}

// Position returns the set's board and side to move.
func (s *Set) Position() game.Position {
	return game.NewPosition(s.Board, s.CurrentPlayer)
}

// Match is the state of one game session. It is not safe for concurrent
// use: callers apply one move at a time.
type Match struct {
	ID         uuid.UUID
	Config     Config
	Sets       []*Set
	CurrentSet int
	Scores     [2]float64 // indexed by game.Player
	Status     Status
	Winner     game.Winner

	now func() time.Time
}

// InitializeGame starts a match with its first set on the starting board.
func InitializeGame(cfg Config) *Match {
	if !cfg.FirstPlayer.Valid() {
		cfg.FirstPlayer = game.PlayerA
	}
	return &Match{
		ID:     uuid.New(),
		Config: cfg,
		Sets:   []*Set{newSet(cfg.FirstPlayer)},
		Status: Active,
		now:    time.Now,
	}
}

// ActiveSet returns the set currently being played.
func (m *Match) ActiveSet() *Set {
	return m.Sets[m.CurrentSet]
}

// ValidMoves lists the pits player may sow in set.
func ValidMoves(set *Set, player game.Player) []int {
	if set.Status == Finished {
		return nil
	}
	return game.ValidMoves(set.Board, player)
}

// ApplyMove plays pit for the active set's current player. Rule violations
// leave the match untouched and the same player to move. A move that ends
// the set also updates the score.
func (m *Match) ApplyMove(pit int) (game.MoveResult, error) {
	if m.Status == Finished {
		return game.MoveResult{}, ErrMatchFinished
	}
	set := m.ActiveSet()
	if set.Status == Finished {
		return game.MoveResult{}, ErrSetFinished
	}

	mover := set.CurrentPlayer
	next, res, err := set.Position().Play(pit)
	if err != nil {
		return res, err
	}

	set.Moves = append(set.Moves, Move{
		Player:    mover,
		Pit:       pit,
		Timestamp: m.now(),
		Board:     res.Board,
		Captured:  res.Captured,
		Capture:   res.Capture,
		ExtraTurn: res.ExtraTurn,
	})
	set.Board = next.Board
	set.CurrentPlayer = next.ToMove

	if res.SetFinished {
		if err := m.UpdateScore(res.Winner); err != nil {
			return res, err
		}
	}
	return res, nil
}

// UpdateScore closes the active set with winner, awards the points and
// either opens the next set or finishes the match after the fifth.
func (m *Match) UpdateScore(winner game.Winner) error {
	if m.Status == Finished {
		return ErrMatchFinished
	}
	switch winner {
	case game.WinnerA:
		m.Scores[game.PlayerA]++
	case game.WinnerB:
		m.Scores[game.PlayerB]++
	case game.Draw:
		m.Scores[game.PlayerA] += 0.5
		m.Scores[game.PlayerB] += 0.5
	default:
		return fmt.Errorf("set winner %s: %w", winner, game.ErrInvalidInput)
	}

	set := m.ActiveSet()
	set.Status = Finished
	set.Winner = winner

	if len(m.Sets) < MaxSets {
		m.Sets = append(m.Sets, newSet(m.Config.FirstPlayer))
		m.CurrentSet = len(m.Sets) - 1
		return nil
	}

	m.Status = Finished
	switch a, b := m.Scores[game.PlayerA], m.Scores[game.PlayerB]; {
	case a > b:
		m.Winner = game.WinnerA
	case b > a:
		m.Winner = game.WinnerB
	default:
		m.Winner = game.Draw
	}
	return nil
}

// BotMove asks policy for the move of the player to move in set setIndex.
// It returns searcher.NoMove when that player cannot move.
func (m *Match) BotMove(ctx context.Context, policy *bot.Policy, setIndex int, d bot.Difficulty, budget time.Duration) (int, searcher.SearchMetric, error) {
	if setIndex < 0 || setIndex >= len(m.Sets) {
		return searcher.NoMove, searcher.SearchMetric{}, fmt.Errorf("set %d of %d: %w", setIndex, len(m.Sets), game.ErrInvalidInput)
	}
	set := m.Sets[setIndex]
	if set.Status == Finished {
		return searcher.NoMove, searcher.SearchMetric{}, nil
	}
	return policy.Move(ctx, set.Board, set.CurrentPlayer, d, budget)
}
