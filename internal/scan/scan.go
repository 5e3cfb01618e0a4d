// Package scan counts occurrences of a symbol sequence radiating from anchor
// cells of a grid in any of the eight compass directions.
package scan

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gridwalk/internal/grid"
)

var (
	ErrEmptyPattern   = errors.New("pattern must not be empty")
	ErrAnchorMismatch = errors.New("pattern must start with the anchor symbol")
)

// Match is one (anchor, direction) trial whose walk spelled the whole pattern.
type Match struct {
	Anchor    grid.Position
	Direction grid.Direction
}

// Scanner searches a grid for a fixed pattern.
type Scanner struct {
	anchor  rune
	pattern []rune
}

// New validates the pattern against its anchor symbol.
func New(anchor rune, pattern []rune) (*Scanner, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	if pattern[0] != anchor {
		return nil, fmt.Errorf("%w: anchor %q, pattern starts with %q", ErrAnchorMismatch, anchor, pattern[0])
	}
	p := make([]rune, len(pattern))
	copy(p, pattern)
	return &Scanner{anchor: anchor, pattern: p}, nil
}

// CountMatches builds a Scanner and counts its matches in g.
func CountMatches(g grid.Reader[rune], anchor rune, pattern []rune) (int, error) {
	s, err := New(anchor, pattern)
	if err != nil {
		return 0, err
	}
	return s.Count(g), nil
}

// Count returns the number of (anchor, direction) pairs that spell the
// pattern. Matches may share cells.
func (s *Scanner) Count(g grid.Reader[rune]) int {
	n := 0
	s.each(g, func(grid.Position, grid.Direction) { n++ })
	return n
}

// Find returns every match in row-major anchor order, then compass order.
func (s *Scanner) Find(g grid.Reader[rune]) []Match {
	var matches []Match
	s.each(g, func(p grid.Position, d grid.Direction) {
		matches = append(matches, Match{Anchor: p, Direction: d})
	})
	return matches
}

func (s *Scanner) each(g grid.Reader[rune], fn func(grid.Position, grid.Direction)) {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			anchor := grid.Position{Row: r, Col: c}
			if g.Get(anchor) != s.anchor {
				continue
			}
			for _, d := range grid.Compass {
				if s.matchesFrom(g, anchor, d) {
					fn(anchor, d)
				}
			}
		}
	}
}

// matchesFrom walks len(pattern)-1 steps from anchor along d. The anchor
// itself already satisfies pattern[0].
func (s *Scanner) matchesFrom(g grid.Reader[rune], anchor grid.Position, d grid.Direction) bool {
	p := anchor
	for _, want := range s.pattern[1:] {
		next, ok := g.Neighbor(p, d)
		if !ok || g.Get(next) != want {
			return false
		}
		p = next
	}
	return true
}
