package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
	"maps"
	"slices"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(board game.Board, player game.Player, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(board, player, updates)
	if len(policy) == 0 {
		panic("search returned no moves for " + player.String())
	}
	return findMax(policy), metric
}

// findMax returns the most visited move, the lowest column on ties, or -1 for an empty policy.
func findMax(policy map[game.Move]int) game.Move {
	maxMove := game.Move(-1)
	maxVisit := -1
	for _, move := range slices.Sorted(maps.Keys(policy)) {
		if visit := policy[move]; visit > maxVisit {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}
