package walk

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/gridwalk/internal/grid"
)

// Tile is the state of one cell in a patrol map.
type Tile uint8

const (
	Open Tile = iota
	Blocked
	AgentStart
	Visited
)

func (t Tile) String() string {
	switch t {
	case Open:
		return "open"
	case Blocked:
		return "blocked"
	case AgentStart:
		return "start"
	case Visited:
		return "visited"
	}
	return fmt.Sprintf("Tile(%d)", uint8(t))
}

// Symbol returns the snapshot character for t.
func (t Tile) Symbol() rune {
	switch t {
	case Open:
		return '.'
	case Blocked:
		return '#'
	case AgentStart:
		return '^'
	case Visited:
		return 'X'
	}
	panic(fmt.Sprintf("walk: unknown tile %d", uint8(t)))
}

// tileFromSymbol maps input symbols. Visited is never accepted on input.
var tileFromSymbol = map[rune]Tile{
	'.': Open,
	'#': Blocked,
	'^': AgentStart,
}

var ErrMissingAgent = errors.New("no agent start marker '^' found")

// MultipleAgentError reports more than one start marker.
type MultipleAgentError struct {
	Positions []grid.Position
}

func (e *MultipleAgentError) Error() string {
	parts := make([]string, len(e.Positions))
	for i, p := range e.Positions {
		parts[i] = p.String()
	}
	return fmt.Sprintf("found %d agent start markers at %s, expected exactly one", len(e.Positions), strings.Join(parts, ", "))
}

// Parse converts symbol rows into a patrol map and locates the agent.
func Parse(lines [][]rune) (*grid.Grid[Tile], grid.Position, error) {
	rows := make([][]Tile, len(lines))
	for r, line := range lines {
		rows[r] = make([]Tile, len(line))
		for c, sym := range line {
			tile, ok := tileFromSymbol[sym]
			if !ok {
				return nil, grid.Position{}, &grid.MalformedInputError{
					Row:    r,
					Col:    c,
					Reason: fmt.Sprintf("unexpected symbol %q, expected one of '.', '#', '^'", sym),
				}
			}
			rows[r][c] = tile
		}
	}

	g, err := grid.New(rows)
	if err != nil {
		return nil, grid.Position{}, err
	}

	starts := g.Find(AgentStart)
	switch len(starts) {
	case 0:
		return nil, grid.Position{}, ErrMissingAgent
	case 1:
		return g, starts[0], nil
	default:
		return nil, grid.Position{}, &MultipleAgentError{Positions: starts}
	}
}

// ParseText reads line-based text and parses it as a patrol map.
func ParseText(r io.Reader) (*grid.Grid[Tile], grid.Position, error) {
	lines, err := grid.ReadLines(r)
	if err != nil {
		return nil, grid.Position{}, err
	}
	return Parse(lines)
}

// Render writes g as one line of symbols per row.
func Render(w io.Writer, g *grid.Grid[Tile]) error {
	line := make([]rune, 0, g.Cols()+1)
	for r := 0; r < g.Rows(); r++ {
		line = line[:0]
		for _, t := range g.Row(r) {
			line = append(line, t.Symbol())
		}
		line = append(line, '\n')
		if _, err := io.WriteString(w, string(line)); err != nil {
			return fmt.Errorf("failed to write snapshot row %d: %w", r, err)
		}
	}
	return nil
}

// Snapshot renders g into a string.
func Snapshot(g *grid.Grid[Tile]) string {
	var b strings.Builder
	_ = Render(&b, g)
	return b.String()
}
