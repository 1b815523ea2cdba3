package engine

import (
	"context"
	"fmt"
	"time"

	"mangala/agent"
	"mangala/experiments/metrics"
	"mangala/game"
	"mangala/match"
	"mangala/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Update describes one applied move for observers such as a UI picking
// sound cues from the capture kind or extra turn.
type Update struct {
	MatchID uuid.UUID
	Set     int
	Player  game.Player
	Pit     int
	Result  game.MoveResult
	Scores  [2]float64
}

type Option func(*Local)

// WithThinkDelay makes every move take at least d, search time included.
func WithThinkDelay(d time.Duration) Option {
	return func(l *Local) {
		l.thinkDelay = d
	}
}

// WithUpdates publishes every applied move on ch. Sends block, so the
// observer must keep reading until Run returns.
func WithUpdates(ch chan<- Update) Option {
	return func(l *Local) {
		l.updates = ch
	}
}

// Local plays a match between two in-process agents, one move at a time.
type Local struct {
	Match  *match.Match
	Agents [2]agent.Agent // indexed by game.Player

	thinkDelay time.Duration
	updates    chan<- Update
}

func NewLocal(m *match.Match, agents [2]agent.Agent, options ...Option) *Local {
	if agents[game.PlayerA] == nil || agents[game.PlayerB] == nil {
		panic("need an agent for both players")
	}
	l := &Local{
		Match:  m,
		Agents: agents,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *Local) Run(ctx context.Context) (game.Winner, metrics.GameMetric, []metrics.MoveMetric, error) {
	m := l.Match
	gameMetric := metrics.GameMetric{
		MatchID:        m.ID,
		StartingPlayer: m.ActiveSet().CurrentPlayer,
		StartTime:      time.Now(),
	}
	moveMetrics := []metrics.MoveMetric{}
	finish := func() {
		gameMetric.Winner = m.Winner
		gameMetric.Scores = m.Scores
		gameMetric.Sets = len(m.Sets)
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
	}

	log.Info().Str("match", m.ID.String()).Msgf("%s is starting", gameMetric.StartingPlayer)

	step := 1
	for m.Status == match.Active {
		if err := ctx.Err(); err != nil {
			finish()
			return game.NoWinner, gameMetric, moveMetrics, err
		}
		if step > MaxMoves {
			finish()
			return game.NoWinner, gameMetric, moveMetrics, ErrMoveLimit
		}

		setIndex := m.CurrentSet
		player := m.ActiveSet().CurrentPlayer
		started := time.Now()

		move, searchMetric, err := l.Agents[player].FindMove(ctx, m)
		if err != nil {
			finish()
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("%s in set %d: %w", player, setIndex+1, err)
		}
		if move == searcher.NoMove {
			finish()
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("%s in set %d: %w", player, setIndex+1, ErrNoMove)
		}

		if err := l.think(ctx, time.Since(started)); err != nil {
			finish()
			return game.NoWinner, gameMetric, moveMetrics, err
		}

		res, err := m.ApplyMove(move)
		if err != nil {
			finish()
			return game.NoWinner, gameMetric, moveMetrics, fmt.Errorf("%s played pit %d in set %d: %w", player, move, setIndex+1, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Set:          setIndex + 1,
			Step:         step,
			Player:       player,
			Pit:          move,
			Captured:     res.Captured,
			ExtraTurn:    res.ExtraTurn,
			SearchMetric: searchMetric,
		})
		log.Debug().Int("set", setIndex+1).Int("step", step).Stringer("player", player).Int("pit", move).
			Stringer("capture", res.Capture).Bool("extra_turn", res.ExtraTurn).Msg("move applied")

		if err := l.publish(ctx, Update{
			MatchID: m.ID,
			Set:     setIndex,
			Player:  player,
			Pit:     move,
			Result:  res,
			Scores:  m.Scores,
		}); err != nil {
			finish()
			return game.NoWinner, gameMetric, moveMetrics, err
		}

		if res.SetFinished {
			log.Info().Msgf("set %d of %d won by %s, score %.1f-%.1f", setIndex+1, match.MaxSets, res.Winner,
				m.Scores[game.PlayerA], m.Scores[game.PlayerB])
		}
		step++
	}

	finish()
	log.Info().Str("match", m.ID.String()).Msgf("match over after %d moves, winner: %s", gameMetric.TotalMoves, m.Winner)
	return m.Winner, gameMetric, moveMetrics, nil
}

func (l *Local) think(ctx context.Context, elapsed time.Duration) error {
	if l.thinkDelay <= elapsed {
		return nil
	}
	timer := time.NewTimer(l.thinkDelay - elapsed)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Local) publish(ctx context.Context, u Update) error {
	if l.updates == nil {
		return nil
	}
	select {
	case l.updates <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
