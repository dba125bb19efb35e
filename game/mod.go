package game

import "errors"

// Board dimensions of the standard 6x7 variant. They never change at runtime.
const (
	Rows      = 6
	Cols      = 7
	WinLength = 4
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrGameOver    = errors.New("game is over")
)

// Move is the index of the column a stone is dropped into. The row is
// derived by gravity when the move is applied.
type Move int

func (m Move) Valid() bool {
	return m >= 0 && m < Cols
}

type StateHash uint64

// Rand is the randomness source used by rollouts. *golang.org/x/exp/rand.Rand
// satisfies it; tests provide scripted sequences.
type Rand interface {
	Intn(n int) int
}
