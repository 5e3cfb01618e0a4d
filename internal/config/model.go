package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Loader reads puzzle definitions from the given paths.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Model holds every puzzle found in the loaded files, in file order.
type Model struct {
	Scans []*Scan
	Walks []*Walk
}

// Source is where a puzzle's grid text comes from. Exactly one of Path and
// Inline is set.
type Source struct {
	Path   string
	Inline string
}

// Open returns a reader over the grid text.
func (s Source) Open() (io.ReadCloser, error) {
	if s.Path != "" {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open grid input: %w", err)
		}
		return f, nil
	}
	return io.NopCloser(strings.NewReader(s.Inline)), nil
}

func (s Source) String() string {
	if s.Path != "" {
		return s.Path
	}
	return "<inline>"
}

// Scan is a pattern-counting puzzle.
type Scan struct {
	Name    string
	Source  Source
	Anchor  rune
	Pattern []rune
}

// Walk is a patrol simulation puzzle. SnapshotPath is empty when no snapshot
// should be written; MaxSteps <= 0 means the simulator default.
type Walk struct {
	Name         string
	Source       Source
	SnapshotPath string
	MaxSteps     int
}
