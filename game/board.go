package game

import (
	"fmt"
	"hash/fnv"
)

// Board is the Connect Four grid plus the cached result of the last
// placement. It is a value type: assigning a Board copies it, which is how
// the searcher clones positions.
type Board struct {
	cells  [Rows][Cols]Player
	result Result
}

// NewBoard returns an empty, ongoing board.
func NewBoard() Board {
	return Board{}
}

func (b Board) Dimensions() (rows, cols int) {
	return len(b.cells), len(b.cells[0])
}

// CellAt returns the owner of a cell and whether it is occupied. Panics when
// c lies outside the grid.
func (b Board) CellAt(c Coordinate) (Player, bool) {
	if !c.Valid() {
		panic(fmt.Sprintf("coordinate %+v outside the %dx%d board", c, Rows, Cols))
	}
	owner := b.cells[c.Row][c.Col]
	return owner, owner != None
}

// LegalMoves returns, in ascending order, every column whose top cell is empty.
func (b Board) LegalMoves() []Move {
	moves := make([]Move, 0, Cols)
	for col := 0; col < Cols; col++ {
		if b.cells[Rows-1][col] == None {
			moves = append(moves, Move(col))
		}
	}
	return moves
}

// Occupied counts the stones in a column, which is also the row the next
// stone there lands on.
func (b Board) Occupied(col int) int {
	row := 0
	for row < Rows && b.cells[row][col] != None {
		row++
	}
	return row
}

// Apply drops a stone for player into the column and reports whether it won
// the game. The board is left untouched on error.
func (b *Board) Apply(player Player, move Move) (bool, error) {
	if player == None {
		panic("cannot apply a move for no player")
	}
	if b.result.Terminal() {
		return false, fmt.Errorf("%w: column %d after %s", ErrGameOver, move, b.result)
	}
	if !move.Valid() {
		return false, fmt.Errorf("%w: column %d outside [0, %d)", ErrInvalidMove, move, Cols)
	}

	row := b.Occupied(int(move))
	if row == Rows {
		return false, fmt.Errorf("%w: column %d is full", ErrInvalidMove, move)
	}

	placed := Coordinate{Row: row, Col: int(move)}
	b.cells[row][move] = player

	won := b.CheckWin(player, placed)
	if won {
		b.result = WinFor(player)
	} else if b.IsDraw() {
		b.result = Draw
	}
	return won, nil
}

// IsDraw reports whether the top row is full. Gravity guarantees every other
// cell is then occupied too.
func (b Board) IsDraw() bool {
	for col := 0; col < Cols; col++ {
		if b.cells[Rows-1][col] == None {
			return false
		}
	}
	return true
}

// State returns the result cached by the last Apply.
func (b Board) State() Result {
	return b.result
}

// CheckWin reports whether the stone of player at placed completes a line of
// WinLength. Only the four lines through placed are inspected.
func (b Board) CheckWin(player Player, placed Coordinate) bool {
	if owner, _ := b.CellAt(placed); owner != player {
		return false
	}

	for _, axis := range Axes {
		count := 1 + b.run(player, placed, axis.Backward)
		// Nothing can sit above a stone that was just dropped
		if axis != Vertical {
			count += b.run(player, placed, axis.Forward)
		}
		if count >= WinLength {
			return true
		}
	}
	return false
}

// run counts contiguous stones of player from (excluding) start in direction d.
func (b Board) run(player Player, start Coordinate, d Direction) int {
	count := 0
	c, ok := start.Step(d)
	for ok && b.cells[c.Row][c.Col] == player {
		count++
		c, ok = c.Step(d)
	}
	return count
}

// Hash identifies the stone layout. Positions reached by different move
// orders hash the same.
func (b Board) Hash() StateHash {
	var buf [Rows * Cols]byte
	for row := range b.cells {
		for col, owner := range b.cells[row] {
			buf[row*Cols+col] = byte(owner)
		}
	}
	hasher := fnv.New64a()
	hasher.Write(buf[:]) // fnv writes never fail
	return StateHash(hasher.Sum64())
}
