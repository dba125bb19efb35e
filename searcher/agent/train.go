package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
	"maps"
	"math"
	"slices"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. Moves are sampled from the visit counts
// sharpened by 1/temperature, so a temperature near zero approaches the evaluation agent.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return trainingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a trainingAgent) FindMove(board game.Board, player game.Player, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(board, player, updates)
	if len(policy) == 0 {
		panic("search returned no moves for " + player.String())
	}
	probs := adjustTemperature(policy, a.temperature)
	return sample(probs, a.rng.Float64()), metric
}

func adjustTemperature(policy map[game.Move]int, temperature float64) map[game.Move]float64 {
	maxVisit := 0
	for _, visit := range policy {
		maxVisit = max(maxVisit, visit)
	}
	adjusted := make(map[game.Move]float64, len(policy))
	if maxVisit == 0 { // No visits yet, fall back to uniform
		for move := range policy {
			adjusted[move] = 1.0 / float64(len(policy))
		}
		return adjusted
	}

	// Scaling by the max visit count keeps small temperatures from overflowing
	exponent := 1.0 / temperature
	sum := 0.0
	for move, visit := range policy {
		prob := math.Pow(float64(visit)/float64(maxVisit), exponent)
		sum += prob
		adjusted[move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the moves in column order until the cumulative probability exceeds sampled.
func sample(policy map[game.Move]float64, sampled float64) game.Move {
	cumulative := 0.0
	var lastMove game.Move
	for _, move := range slices.Sorted(maps.Keys(policy)) {
		lastMove = move
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}
