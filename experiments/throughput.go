package experiments

import (
	"connect4/experiments/metrics"
	"time"
)

const TimeBudget = 10 * time.Millisecond

// ThroughputExperiment plays time-bound agents against themselves. The move
// records show how many episodes fit in each budget as the board fills up.
func ThroughputExperiment(numGames, workers int) Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Duration: TimeBudget, Seed: 11},
		{ID: 2, Duration: 5 * TimeBudget, Seed: 12},
		{ID: 3, Duration: 25 * TimeBudget, Seed: 13},
	}
	// Same config for both players in each game
	// for the same playing strength and similar game length
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}

	return Experiment{
		Name:     "duration_to_throughput",
		Configs:  configs,
		MatchUps: matchUps,
		NumGames: numGames,
		Workers:  workers,
	}
}
