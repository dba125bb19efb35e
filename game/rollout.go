package game

import "fmt"

// Rollout plays uniformly random legal moves, player first, on a copy of the
// board until the game ends, and returns the final result. A terminal board
// returns its result without consulting rng.
func (b Board) Rollout(player Player, rng Rand) Result {
	for !b.result.Terminal() {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			panic("ongoing board has no legal moves")
		}
		move := moves[rng.Intn(len(moves))]
		if _, err := b.Apply(player, move); err != nil {
			panic(fmt.Sprintf("rollout applied a non-legal move: %v", err))
		}
		player = player.Opponent()
	}
	return b.result
}
