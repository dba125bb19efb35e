package experiments

import (
	"connect4/engine"
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
	"connect4/searcher/agent"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Experiment pairs agent configurations and plays NumGames games per match-up.
// The first config of a match-up plays Player A. The starting player
// alternates between games.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	NumGames int
	Workers  int // Games played at once
}

var episodeConfigs = []metrics.AgentConfig{
	{ID: 1, Episodes: 100, Seed: 1},
	{ID: 2, Episodes: 400, Seed: 2},
	{ID: 3, Episodes: 1600, Seed: 3},
	{ID: 4, Episodes: 6400, Seed: 4},
}

// EpisodesExperiment pairs every config against the weakest baseline to
// measure playing strength by search budget.
func EpisodesExperiment(numGames, workers int) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Episodes: 100, Seed: 100}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range episodeConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return Experiment{
		Name:     "episodes_to_strength",
		Configs:  append([]metrics.AgentConfig{baseline}, episodeConfigs...),
		MatchUps: matchUps,
		NumGames: numGames,
		Workers:  workers,
	}
}

// Run plays every game of the experiment and writes its records under
// root. It returns the directory of the written files.
func Run(ctx context.Context, root string, exp Experiment) (string, error) {
	log.Info().Msgf("starting %s experiment...", exp.Name)

	gameRecords, moveRecords, err := play(ctx, exp)
	if err != nil {
		return "", fmt.Errorf("%s experiment: %w", exp.Name, err)
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	dir, err := store(root, exp, gameRecords, moveRecords)
	if err != nil {
		return "", fmt.Errorf("%s experiment: %w", exp.Name, err)
	}
	return dir, nil
}

// play runs the games concurrently. Each game owns its agents, so trees and
// random sources are never shared.
func play(ctx context.Context, exp Experiment) ([]metrics.GameRecord, [][]metrics.MoveRecord, error) {
	total := len(exp.MatchUps) * exp.NumGames
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(exp.Workers, 1))

	for mi, matchUp := range exp.MatchUps {
		for i := 0; i < exp.NumGames; i++ {
			index := mi*exp.NumGames + i
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				id := index + 1
				first := game.PlayerA
				if i%2 == 1 {
					first = game.PlayerB
				}

				log.Info().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(exp.MatchUps), i+1, exp.NumGames)
				result, gameMetric, moveMetrics := runGame(matchUp[0], matchUp[1], first, uint64(id))
				log.Info().Msgf("completed matchup %d of %d game %d with result: %s", mi+1, len(exp.MatchUps), i+1, result)

				gameRecords[index] = metrics.GameRecord{
					ID:         id,
					Agent1:     matchUp[0].ID,
					Agent2:     matchUp[1].ID,
					GameMetric: gameMetric,
				}
				records := make([]metrics.MoveRecord, 0, len(moveMetrics))
				for _, mm := range moveMetrics {
					records = append(records, metrics.MoveRecord{
						Game:       id,
						MoveMetric: mm,
					})
				}
				moveRecords[index] = records
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return gameRecords, moveRecords, nil
}

func store(root string, exp Experiment, gameRecords []metrics.GameRecord, moveRecords [][]metrics.MoveRecord) (string, error) {
	// Store experiment metadata
	writer, err := metrics.NewWriter(root, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	var moves []metrics.MoveRecord
	for _, records := range moveRecords {
		moves = append(moves, records...)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the result.
// config1 plays Player A.
func runGame(config1, config2 metrics.AgentConfig, first game.Player, gameID uint64) (game.Result, metrics.GameMetric, []metrics.MoveMetric) {
	agents := [2]agent.Agent{
		agent.NewEvaluationAgent(createMCTS(config1, gameID<<1)),
		agent.NewEvaluationAgent(createMCTS(config2, gameID<<1|1)),
	}
	e := engine.LocalEngine(agents, first)

	return e.Run()
}

// createMCTS builds a searcher for config. salt separates the random streams
// of games and seats that share a config.
func createMCTS(config metrics.AgentConfig, salt uint64) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Seed > 0 {
		options = append(options, searcher.WithSeed(config.Seed^salt<<32))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(options...)
}
