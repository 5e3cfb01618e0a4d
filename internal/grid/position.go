package grid

import "fmt"

// Position is a (row, col) coordinate within a grid.
type Position struct {
	Row int
	Col int
}

// Step returns the position one unit away along d. The result may lie
// outside any grid.
func (p Position) Step(d Direction) Position {
	return Position{Row: p.Row + d.DRow, Col: p.Col + d.DCol}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is a unit vector on the grid. Rows grow downwards.
type Direction struct {
	DRow int
	DCol int
}

var (
	Up        = Direction{DRow: -1}
	Down      = Direction{DRow: 1}
	Left      = Direction{DCol: -1}
	Right     = Direction{DCol: 1}
	UpLeft    = Direction{DRow: -1, DCol: -1}
	UpRight   = Direction{DRow: -1, DCol: 1}
	DownLeft  = Direction{DRow: 1, DCol: -1}
	DownRight = Direction{DRow: 1, DCol: 1}
)

// Compass holds all eight non-zero unit vectors.
var Compass = [8]Direction{Up, UpRight, Right, DownRight, Down, DownLeft, Left, UpLeft}

// Cardinal holds the four axis-aligned headings in clockwise order.
var Cardinal = [4]Direction{Up, Right, Down, Left}

// Clockwise rotates a cardinal heading by 90 degrees. It panics for
// diagonal or zero directions.
func (d Direction) Clockwise() Direction {
	for i, c := range Cardinal {
		if c == d {
			return Cardinal[(i+1)%len(Cardinal)]
		}
	}
	panic(fmt.Sprintf("grid: cannot rotate non-cardinal direction %v", d))
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case UpLeft:
		return "up-left"
	case UpRight:
		return "up-right"
	case DownLeft:
		return "down-left"
	case DownRight:
		return "down-right"
	}
	return fmt.Sprintf("(%d,%d)", d.DRow, d.DCol)
}
