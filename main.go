package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"mangala/agent"
	"mangala/bot"
	"mangala/engine"
	"mangala/experiments"
	"mangala/experiments/metrics"
	"mangala/game"
	"mangala/match"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

func main() {
	playerA := flag.String("a", "medium", "Difficulty of player A")
	playerB := flag.String("b", "hard", "Difficulty of player B")
	first := flag.String("first", "a", "Player opening every set (a or b)")
	budget := flag.Duration("budget", 0, "Time budget per bot move, 0 uses each tier's default")
	delay := flag.Duration("delay", 0, "Minimum time per move")
	goroutines := flag.Int("goroutines", 1, "Goroutines for the root search")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the random tiers")
	profilesPath := flag.String("profiles", "", "YAML file overriding the difficulty profiles")
	show := flag.Bool("show", false, "Print the board after every move")
	tournament := flag.String("tournament", "", "Comma separated difficulties for a round robin instead of a single match")
	games := flag.Int("games", experiments.NumGames, "Games per tournament pairing")
	out := flag.String("out", "results", "Directory for tournament CSV files")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var profiles bot.Profiles
	if *profilesPath != "" {
		var err error
		profiles, err = bot.LoadProfiles(*profilesPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load profiles")
		}
	}

	if *tournament != "" {
		names := lo.Map(strings.Split(*tournament, ","), func(name string, _ int) string { return strings.TrimSpace(name) })
		configs := lo.Map(names, func(name string, i int) metrics.AgentConfig {
			return metrics.AgentConfig{ID: i + 1, Difficulty: name, Goroutines: *goroutines, Budget: *budget}
		})
		result, err := experiments.RunTournament(ctx, experiments.Config{
			Name:     "tournament",
			Dir:      *out,
			Agents:   configs,
			Games:    *games,
			Profiles: profiles,
			Seed:     *seed,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("tournament failed")
		}
		for _, config := range configs {
			fmt.Printf("%d %-8s %5.1f\n", config.ID, config.Difficulty, result.Standings[config.ID])
		}
		fmt.Printf("results written to %s\n", result.Dir)
		return
	}

	da, err := bot.ParseDifficulty(*playerA)
	if err != nil {
		log.Fatal().Err(err).Msg("player A")
	}
	db, err := bot.ParseDifficulty(*playerB)
	if err != nil {
		log.Fatal().Err(err).Msg("player B")
	}
	opener := game.PlayerA
	if strings.EqualFold(*first, "b") {
		opener = game.PlayerB
	}

	policy := bot.NewPolicy(profiles, bot.WithSeed(*seed), bot.WithGoroutines(*goroutines))
	m := match.InitializeGame(match.Config{
		Mode:          match.PvE,
		Player1Name:   da.String(),
		Player2Name:   db.String(),
		BotDifficulty: db,
		FirstPlayer:   opener,
	})
	options := []engine.Option{engine.WithThinkDelay(*delay)}
	var updates chan engine.Update
	done := make(chan struct{})
	if *show {
		updates = make(chan engine.Update)
		options = append(options, engine.WithUpdates(updates))
		go func() {
			defer close(done)
			for u := range updates {
				fmt.Printf("set %d: %s plays %d\n%s\n", u.Set+1, u.Player, u.Pit, u.Result.Board)
			}
		}()
	} else {
		close(done)
	}

	e := engine.NewLocal(m, [2]agent.Agent{agent.NewBot(policy, da, *budget), agent.NewBot(policy, db, *budget)}, options...)
	winner, gameMetric, _, err := e.Run(ctx)
	if updates != nil {
		close(updates)
	}
	<-done
	if err != nil {
		log.Fatal().Err(err).Msg("match failed")
	}

	fmt.Printf("%s (%s) %.1f - %.1f %s (%s), winner: %s after %d moves in %s\n",
		game.PlayerA, da, m.Scores[game.PlayerA], m.Scores[game.PlayerB], game.PlayerB, db,
		winner, gameMetric.TotalMoves, gameMetric.Duration.Round(time.Millisecond))
}
