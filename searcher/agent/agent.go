package agent

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/searcher"
)

type Agent interface {
	// FindMove returns the move for player on board and the metrics of the search (if collected). updates lists
	// the moves played since the agent's previous turn.
	FindMove(board game.Board, player game.Player, updates []searcher.Segment) (game.Move, metrics.SearchMetric)
}
