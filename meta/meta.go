// meta/meta.go
package meta

import (
	"connect4/game"
	"time"
)

// Workers defines the number of games an experiment runs at once.
const Workers = 8

// Episodes defines the number of episodes for MCTS.
const Episodes = 1000

// Duration defines the default search time per move, zero for episodes only.
const Duration = time.Duration(0)

// Games defines the number of games per match-up in experiments.
const Games = 20

// MaxTurns bounds a game. A full board ends the game first.
const MaxTurns = game.Rows * game.Cols

// OutputDir defines where experiment results are written.
const OutputDir = "results"
