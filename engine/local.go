package engine

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"connect4/meta"
	"connect4/searcher"
	"connect4/searcher/agent"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Engine plays one game between two agents. Agents[0] plays Player A and
// Agents[1] plays Player B.
type Engine struct {
	Board  game.Board
	Player game.Player
	Agents [2]agent.Agent
}

func LocalEngine(agents [2]agent.Agent, first game.Player) *Engine {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	if first == game.None {
		panic("need a starting player")
	}

	return &Engine{
		Board:  game.NewBoard(),
		Player: first,
		Agents: agents,
	}
}

// Run executes the entire game loop until the game ends. An invalid move
// forfeits the game to the opponent.
func (e *Engine) Run() (game.Result, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Player,
		StartTime:      time.Now(),
	}
	// Moves played since each agent's previous turn
	var updates [2][]searcher.Segment
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting", e.Player)

	result := e.Board.State()
	for turn := 1; !result.Terminal() && turn <= meta.MaxTurns; turn++ {
		index := agentIndex(e.Player)

		move, searchMetric := e.Agents[index].FindMove(e.Board, e.Player, updates[index])
		updates[index] = nil
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       e.Player,
			Move:         move,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("turn %d: %s plays column %d", turn, e.Player, move)

		if _, err := e.Board.Apply(e.Player, move); err != nil {
			if !errors.Is(err, game.ErrInvalidMove) {
				panic(fmt.Sprintf("ongoing game rejected a move: %v", err))
			}
			log.Warn().Err(err).Msgf("%s forfeits", e.Player)
			result = game.WinFor(e.Player.Opponent())
			gameMetric.Forfeit = true
			break
		}

		segment := searcher.Segment{Move: move, Hash: e.Board.Hash()}
		for i := range updates {
			updates[i] = append(updates[i], segment)
		}
		result = e.Board.State()
		e.Player = e.Player.Opponent()
	}

	gameMetric.Result = result
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	log.Info().
		Stringer("result", result).
		Int("moves", gameMetric.TotalMoves).
		Bool("forfeit", gameMetric.Forfeit).
		Msg("game over")

	return result, gameMetric, moveMetrics
}

func agentIndex(player game.Player) int {
	switch player {
	case game.PlayerA:
		return 0
	case game.PlayerB:
		return 1
	default:
		panic("no agent for " + player.String())
	}
}
