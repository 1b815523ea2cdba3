// Package agent defines the players an engine asks for moves.
package agent

import (
	"context"
	"fmt"
	"time"

	"mangala/bot"
	"mangala/match"
	"mangala/searcher"
)

// Agent picks a pit for the player to move in the match's active set.
// Returning searcher.NoMove means the player cannot move.
type Agent interface {
	FindMove(ctx context.Context, m *match.Match) (int, searcher.SearchMetric, error)
}

// Bot plays with a difficulty tier of a shared policy.
type Bot struct {
	Policy     *bot.Policy
	Difficulty bot.Difficulty
	Budget     time.Duration // zero uses the tier's default
}

func NewBot(policy *bot.Policy, d bot.Difficulty, budget time.Duration) *Bot {
	if policy == nil {
		policy = bot.NewPolicy(nil)
	}
	return &Bot{Policy: policy, Difficulty: d, Budget: budget}
}

func (b *Bot) FindMove(ctx context.Context, m *match.Match) (int, searcher.SearchMetric, error) {
	return m.BotMove(ctx, b.Policy, m.CurrentSet, b.Difficulty, b.Budget)
}

func (b *Bot) String() string {
	return fmt.Sprintf("bot(%s)", b.Difficulty)
}

// Func adapts a plain function, such as a prompt for a human player, to Agent.
type Func func(ctx context.Context, m *match.Match) (int, error)

func (f Func) FindMove(ctx context.Context, m *match.Match) (int, searcher.SearchMetric, error) {
	move, err := f(ctx, m)
	return move, searcher.SearchMetric{}, err
}

// Script replays a fixed list of pits in order and then reports NoMove.
func Script(pits ...int) Func {
	next := 0
	return func(context.Context, *match.Match) (int, error) {
		if next >= len(pits) {
			return searcher.NoMove, nil
		}
		next++
		return pits[next-1], nil
	}
}
