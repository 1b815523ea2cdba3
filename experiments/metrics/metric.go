package metrics

import (
	"time"

	"mangala/game"
	"mangala/searcher"

	"github.com/google/uuid"
)

// AgentConfig describes one side of a tournament pairing.
type AgentConfig struct {
	ID         int
	Difficulty string
	Goroutines int
	Budget     time.Duration // zero uses the tier's default
}

type MoveMetric struct {
	Set       int
	Step      int
	Player    game.Player
	Pit       int
	Captured  int
	ExtraTurn bool
	searcher.SearchMetric
}

type GameMetric struct {
	MatchID        uuid.UUID
	StartingPlayer game.Player
	Winner         game.Winner
	Scores         [2]float64
	Sets           int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}
