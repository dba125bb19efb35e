package searcher

import "math"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant C = sqrt(2), squared

// Rewards estimate the chance of winning for the player who moved into a node
const Win = 1.0
const Loss = 0.0

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	// Unexplored children are visited before any revisit
	if n == 0 {
		return math.Inf(1)
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}
