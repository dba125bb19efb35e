package game

// Coordinate addresses a cell. Row 0 is the bottom row, column 0 the leftmost.
type Coordinate struct {
	Row int
	Col int
}

func (c Coordinate) Valid() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Step moves one cell in direction d. It reports false when the result falls
// off any edge of the grid, including below index 0.
func (c Coordinate) Step(d Direction) (Coordinate, bool) {
	next := Coordinate{Row: c.Row + d.DRow, Col: c.Col + d.DCol}
	return next, next.Valid()
}

// Direction is a unit step on the grid.
type Direction struct {
	DRow int
	DCol int
}

var (
	Up        = Direction{DRow: 1}
	Down      = Direction{DRow: -1}
	Left      = Direction{DCol: -1}
	Right     = Direction{DCol: 1}
	UpRight   = Direction{DRow: 1, DCol: 1}
	DownLeft  = Direction{DRow: -1, DCol: -1}
	UpLeft    = Direction{DRow: 1, DCol: -1}
	DownRight = Direction{DRow: -1, DCol: 1}
)

// Axis is a line through a cell, given as two opposite directions.
type Axis struct {
	Forward  Direction
	Backward Direction
}

var (
	Horizontal   = Axis{Forward: Right, Backward: Left}
	Vertical     = Axis{Forward: Up, Backward: Down}
	Diagonal     = Axis{Forward: UpRight, Backward: DownLeft}
	AntiDiagonal = Axis{Forward: UpLeft, Backward: DownRight}
)

// Axes are the four lines a win can lie on.
var Axes = [4]Axis{Horizontal, Vertical, Diagonal, AntiDiagonal}
