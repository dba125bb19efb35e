package game

// Result is the state of a game: still ongoing, drawn, or won by one player.
type Result uint8

const (
	Ongoing Result = iota
	Draw
	PlayerAWins
	PlayerBWins
)

// Scores of terminal results on the absolute scale (Player A positive).
const (
	ScoreDraw    = 0.0
	ScorePlayerA = 1.0
	ScorePlayerB = -1.0
)

func WinFor(p Player) Result {
	switch p {
	case PlayerA:
		return PlayerAWins
	case PlayerB:
		return PlayerBWins
	default:
		panic("no result for a win by no player")
	}
}

func (r Result) Terminal() bool {
	return r != Ongoing
}

// Winner returns the winning player, false for ongoing and drawn games.
func (r Result) Winner() (Player, bool) {
	switch r {
	case PlayerAWins:
		return PlayerA, true
	case PlayerBWins:
		return PlayerB, true
	default:
		return None, false
	}
}

// Score maps a result to Draw 0, Player A +1, Player B -1. Ongoing games
// score 0 as well.
func (r Result) Score() float64 {
	switch r {
	case PlayerAWins:
		return ScorePlayerA
	case PlayerBWins:
		return ScorePlayerB
	default:
		return ScoreDraw
	}
}

func (r Result) String() string {
	switch r {
	case Draw:
		return "draw"
	case PlayerAWins:
		return "Player A wins"
	case PlayerBWins:
		return "Player B wins"
	default:
		return "ongoing"
	}
}
