package game

import "fmt"

type Player uint8

const (
	None Player = iota
	PlayerA
	PlayerB
)

// Opponent returns the other player. Panics for None.
func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		panic(fmt.Sprintf("player %d has no opponent", p))
	}
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "Player A"
	case PlayerB:
		return "Player B"
	default:
		return "None"
	}
}
