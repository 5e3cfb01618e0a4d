package hcl

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/specialistvlad/gridwalk/internal/config"
)

// translateScan converts a decoded scan block into the agnostic model.
func (l *Loader) translateScan(dir string, b *scanBlock) (*config.Scan, error) {
	src, err := translateSource(dir, b.Input, b.Grid)
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", b.Name, err)
	}
	if b.Pattern == "" {
		return nil, fmt.Errorf("scan %q: pattern must not be empty", b.Name)
	}

	pattern := []rune(b.Pattern)
	anchor := pattern[0]
	if b.Anchor != nil {
		if utf8.RuneCountInString(*b.Anchor) != 1 {
			return nil, fmt.Errorf("scan %q: anchor must be a single symbol, got %q", b.Name, *b.Anchor)
		}
		anchor, _ = utf8.DecodeRuneInString(*b.Anchor)
	}

	return &config.Scan{
		Name:    b.Name,
		Source:  src,
		Anchor:  anchor,
		Pattern: pattern,
	}, nil
}

// translateWalk converts a decoded walk block into the agnostic model.
func (l *Loader) translateWalk(dir string, b *walkBlock) (*config.Walk, error) {
	src, err := translateSource(dir, b.Input, b.Grid)
	if err != nil {
		return nil, fmt.Errorf("walk %q: %w", b.Name, err)
	}

	w := &config.Walk{Name: b.Name, Source: src}
	if b.Snapshot != nil {
		if *b.Snapshot == "" {
			return nil, fmt.Errorf("walk %q: snapshot path must not be empty", b.Name)
		}
		w.SnapshotPath = resolve(dir, *b.Snapshot)
	}
	if b.MaxSteps != nil {
		if *b.MaxSteps <= 0 {
			return nil, fmt.Errorf("walk %q: max_steps must be positive, got %d", b.Name, *b.MaxSteps)
		}
		w.MaxSteps = *b.MaxSteps
	}
	return w, nil
}

func translateSource(dir string, input, inline *string) (config.Source, error) {
	switch {
	case input != nil && inline != nil:
		return config.Source{}, fmt.Errorf("only one of 'input' and 'grid' may be set")
	case input != nil:
		if *input == "" {
			return config.Source{}, fmt.Errorf("input path must not be empty")
		}
		return config.Source{Path: resolve(dir, *input)}, nil
	case inline != nil:
		return config.Source{Inline: *inline}, nil
	default:
		return config.Source{}, fmt.Errorf("one of 'input' or 'grid' is required")
	}
}

// resolve makes path relative to the directory of the file declaring it.
func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
