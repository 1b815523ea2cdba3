package experiments

import (
	"context"
	"fmt"

	"mangala/agent"
	"mangala/bot"
	"mangala/engine"
	"mangala/experiments/metrics"
	"mangala/game"
	"mangala/match"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const NumGames = 10 // Per pairing

// Config describes a round robin between bot configurations.
type Config struct {
	Name     string
	Dir      string // CSV output root, nothing is written when empty
	Agents   []metrics.AgentConfig
	Games    int // per pairing, defaults to NumGames
	Profiles bot.Profiles
	Seed     uint64
}

type Result struct {
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Standings map[int]float64 // match points by AgentConfig.ID
	Dir       string
}

// RunTournament plays every pair of agents against each other. Sides swap
// every game so each agent opens as often as its opponent.
func RunTournament(ctx context.Context, cfg Config) (Result, error) {
	if len(cfg.Agents) < 2 {
		return Result{}, fmt.Errorf("need at least two agents, got %d", len(cfg.Agents))
	}
	if cfg.Games <= 0 {
		cfg.Games = NumGames
	}

	agents := map[int]agent.Agent{}
	for _, config := range cfg.Agents {
		d, err := bot.ParseDifficulty(config.Difficulty)
		if err != nil {
			return Result{}, fmt.Errorf("agent %d: %w", config.ID, err)
		}
		if _, ok := agents[config.ID]; ok {
			return Result{}, fmt.Errorf("duplicate agent id %d", config.ID)
		}
		policy := bot.NewPolicy(cfg.Profiles, bot.WithSeed(cfg.Seed+uint64(config.ID)), bot.WithGoroutines(config.Goroutines))
		agents[config.ID] = agent.NewBot(policy, d, config.Budget)
	}

	pairings := [][2]metrics.AgentConfig{}
	for i := range cfg.Agents {
		for j := i + 1; j < len(cfg.Agents); j++ {
			pairings = append(pairings, [2]metrics.AgentConfig{cfg.Agents[i], cfg.Agents[j]})
		}
	}

	log.Info().Msgf("starting %s tournament with %d pairings...", cfg.Name, len(pairings))

	result := Result{}
	count := 0
	for pi, pairing := range pairings {
		log.Info().Msgf("starting pairing %d of %d between agent1=%+v and agent2=%+v...", pi+1, len(pairings), pairing[0], pairing[1])

		for i := 0; i < cfg.Games; i++ {
			first, second := pairing[0], pairing[1]
			if i%2 == 1 {
				first, second = second, first
			}

			m := match.InitializeGame(match.Config{
				Mode:        match.PvP,
				Player1Name: first.Difficulty,
				Player2Name: second.Difficulty,
			})
			e := engine.NewLocal(m, [2]agent.Agent{agents[first.ID], agents[second.ID]})
			winner, gameMetric, moveMetrics, err := e.Run(ctx)
			if err != nil {
				return result, fmt.Errorf("pairing %d game %d: %w", pi+1, i+1, err)
			}

			count++
			result.Games = append(result.Games, metrics.GameRecord{
				ID:         count,
				Agent1:     first.ID,
				Agent2:     second.ID,
				GameMetric: gameMetric,
			})
			result.Moves = append(result.Moves, lo.Map(moveMetrics, func(mm metrics.MoveMetric, _ int) metrics.MoveRecord {
				return metrics.MoveRecord{Game: count, MoveMetric: mm}
			})...)

			log.Info().Msgf("completed pairing %d of %d game %d with winner: %s", pi+1, len(pairings), i+1, winner)
		}
	}

	result.Standings = Standings(cfg.Agents, result.Games)
	log.Info().Msgf("completed %s tournament, standings: %v", cfg.Name, result.Standings)

	if cfg.Dir == "" {
		return result, nil
	}
	dir, err := write(cfg, result)
	if err != nil {
		return result, err
	}
	result.Dir = dir
	return result, nil
}

// Standings awards each agent one point per match won and half per draw.
func Standings(agents []metrics.AgentConfig, games []metrics.GameRecord) map[int]float64 {
	return lo.SliceToMap(agents, func(a metrics.AgentConfig) (int, float64) {
		return a.ID, lo.SumBy(games, func(g metrics.GameRecord) float64 {
			switch {
			case g.Winner == game.Draw && (g.Agent1 == a.ID || g.Agent2 == a.ID):
				return 0.5
			case g.Winner == game.WinnerA && g.Agent1 == a.ID, g.Winner == game.WinnerB && g.Agent2 == a.ID:
				return 1
			default:
				return 0
			}
		})
	})
}

func write(cfg Config, result Result) (string, error) {
	writer, err := metrics.NewWriter(cfg.Dir, cfg.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}
