// Package bot maps difficulty tiers to search strategies and runs the search
// for the computer player.
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mangala/game"
	"mangala/searcher"

	"golang.org/x/exp/rand"
)

type Option func(p *Policy)

// WithSeed makes the random tiers reproducible.
func WithSeed(seed uint64) Option {
	return func(p *Policy) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

func WithGoroutines(goroutines int) Option {
	return func(p *Policy) {
		p.goroutines = goroutines
	}
}

// Policy chooses bot moves. It is safe for concurrent use.
type Policy struct {
	profiles   Profiles
	goroutines int

	mu  sync.Mutex
	rng *rand.Rand
}

// Decision is the single value sent by MoveAsync.
type Decision struct {
	Move   int
	Metric searcher.SearchMetric
	Err    error
}

func NewPolicy(profiles Profiles, options ...Option) *Policy {
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	p := &Policy{
		profiles:   profiles,
		goroutines: 1,
		rng:        rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *Policy) Profile(d Difficulty) (Profile, error) {
	profile, ok := p.profiles[d]
	if !ok {
		return Profile{}, fmt.Errorf("no profile for difficulty %s", d)
	}
	return profile, nil
}

// Move returns the pit the bot plays for player, or searcher.NoMove. A
// positive budget overrides the tier's own time budget.
func (p *Policy) Move(ctx context.Context, board game.Board, player game.Player, d Difficulty, budget time.Duration) (int, searcher.SearchMetric, error) {
	if err := board.Validate(); err != nil {
		return searcher.NoMove, searcher.SearchMetric{}, err
	}
	if !player.Valid() {
		return searcher.NoMove, searcher.SearchMetric{}, fmt.Errorf("unknown player %d: %w", int(player), game.ErrInvalidInput)
	}
	profile, err := p.Profile(d)
	if err != nil {
		return searcher.NoMove, searcher.SearchMetric{}, err
	}
	if budget <= 0 {
		budget = profile.Budget
	}

	s := searcher.NewSearcher(
		searcher.WithDuration(budget),
		searcher.WithGoroutines(p.goroutines),
		searcher.WithSeed(p.nextSeed()),
		searcher.WithMetrics(),
	)
	move, metric := s.ChooseMove(ctx, board, player, profile.Strategy)
	return move, metric, nil
}

// MoveAsync runs Move on its own goroutine. The board is copied by value, so
// the caller may keep playing with its own. The channel receives exactly one
// Decision and is then closed.
func (p *Policy) MoveAsync(ctx context.Context, board game.Board, player game.Player, d Difficulty, budget time.Duration) <-chan Decision {
	out := make(chan Decision, 1)
	go func() {
		defer close(out)
		move, metric, err := p.Move(ctx, board, player, d, budget)
		out <- Decision{Move: move, Metric: metric, Err: err}
	}()
	return out
}

func (p *Policy) nextSeed() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Uint64()
}
