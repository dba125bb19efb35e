package main

import (
	"connect4/engine"
	"connect4/experiments"
	"connect4/game"
	"connect4/meta"
	"connect4/searcher"
	"connect4/searcher/agent"
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	experiment := flag.String("experiment", "", "Experiment to run: episodes or throughput. Plays a single game when empty")
	episodes := flag.Int("episodes", meta.Episodes, "Number of simulations per move")
	duration := flag.Duration("duration", meta.Duration, "Search time limit per move; the search stops at whichever of episodes or duration ends first")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for the random sources of a single game")
	temperature := flag.Float64("temperature", 0, "Sample moves from visit counts at this temperature instead of playing the most visited move")
	games := flag.Int("games", meta.Games, "Games per experiment match-up")
	workers := flag.Int("workers", meta.Workers, "Games played at once during experiments")
	out := flag.String("out", meta.OutputDir, "Directory for experiment results")
	debug := flag.Bool("debug", false, "Log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var exp experiments.Experiment
	switch *experiment {
	case "":
		playGame(*episodes, *duration, *seed, *temperature)
		return
	case "episodes":
		exp = experiments.EpisodesExperiment(*games, *workers)
	case "throughput":
		exp = experiments.ThroughputExperiment(*games, *workers)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}

	dir, err := experiments.Run(ctx, *out, exp)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	log.Info().Str("dir", dir).Msg("results stored")
}

// playGame plays one self-play game between two agents with the same budget.
func playGame(episodes int, duration time.Duration, seed uint64, temperature float64) {
	rng := rand.New(rand.NewSource(seed))
	var agents [2]agent.Agent
	for i := range agents {
		mcts := searcher.NewMCTS(
			searcher.WithEpisodes(episodes),
			searcher.WithDuration(duration),
			searcher.WithSeed(rng.Uint64()),
			searcher.WithMetrics(),
		)
		if temperature > 0 {
			agents[i] = agent.NewTrainingAgent(mcts, temperature, rand.New(rand.NewSource(rng.Uint64())))
		} else {
			agents[i] = agent.NewEvaluationAgent(mcts)
		}
	}

	e := engine.LocalEngine(agents, game.PlayerA)
	result, gameMetric, moveMetrics := e.Run()

	columns := make([]int, 0, len(moveMetrics))
	for _, m := range moveMetrics {
		columns = append(columns, int(m.Move))
	}
	log.Info().
		Stringer("result", result).
		Float64("score", result.Score()).
		Ints("columns", columns).
		Dur("duration", gameMetric.Duration).
		Msg("self-play game finished")
}
