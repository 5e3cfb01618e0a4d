package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/specialistvlad/gridwalk/internal/config"
	"github.com/specialistvlad/gridwalk/internal/ctxlog"
	"github.com/specialistvlad/gridwalk/internal/grid"
	"github.com/specialistvlad/gridwalk/internal/scan"
	"github.com/specialistvlad/gridwalk/internal/walk"
)

// ScanResult is the answer of one scan puzzle.
type ScanResult struct {
	Name  string
	Count int
}

// WalkResult is the answer of one walk puzzle.
type WalkResult struct {
	Name         string
	Outcome      walk.Outcome
	Visited      int
	Steps        int
	SnapshotPath string
}

// Report collects the answers of a run in execution order.
type Report struct {
	Scans []ScanResult
	Walks []WalkResult
}

// Run loads the configured puzzles and solves them one after another. The
// first failing puzzle aborts the run; the report holds everything solved
// up to that point.
func (a *App) Run(ctx context.Context) (*Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "puzzle_path", a.config.PuzzlePath)

	model, err := a.loader.Load(ctx, a.config.PuzzlePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load puzzles: %w", err)
	}
	a.logger.Info("Puzzles loaded.", "scans", len(model.Scans), "walks", len(model.Walks))

	report := &Report{}
	for _, s := range model.Scans {
		res, err := a.runScan(ctxlog.With(ctx, "puzzle", s.Name, "kind", "scan"), s)
		if err != nil {
			return report, fmt.Errorf("scan %q: %w", s.Name, err)
		}
		report.Scans = append(report.Scans, res)
		fmt.Fprintf(a.outW, "scan %q: %d\n", res.Name, res.Count)
	}
	for _, w := range model.Walks {
		res, err := a.runWalk(ctxlog.With(ctx, "puzzle", w.Name, "kind", "walk"), w)
		if res != nil {
			report.Walks = append(report.Walks, *res)
			fmt.Fprintf(a.outW, "walk %q: %d (%s)\n", res.Name, res.Visited, res.Outcome)
		}
		if err != nil {
			return report, fmt.Errorf("walk %q: %w", w.Name, err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return report, nil
}

func (a *App) runScan(ctx context.Context, s *config.Scan) (ScanResult, error) {
	logger := ctxlog.FromContext(ctx)

	scanner, err := scan.New(s.Anchor, s.Pattern)
	if err != nil {
		return ScanResult{}, err
	}
	g, err := readGrid(s.Source, grid.FromText)
	if err != nil {
		return ScanResult{}, err
	}
	logger.Debug("Grid loaded.", "source", s.Source.String(), "rows", g.Rows(), "cols", g.Cols())

	var count int
	if logger.Enabled(ctx, slog.LevelDebug) {
		matches := scanner.Find(g)
		for _, m := range matches {
			logger.Debug("Match found.", "anchor", m.Anchor.String(), "direction", m.Direction.String())
		}
		count = len(matches)
	} else {
		count = scanner.Count(g)
	}

	logger.Info("Scan finished.", "matches", count)
	return ScanResult{Name: s.Name, Count: count}, nil
}

// runWalk returns a nil result only when the walk never started.
func (a *App) runWalk(ctx context.Context, w *config.Walk) (*WalkResult, error) {
	logger := ctxlog.FromContext(ctx)

	type patrolMap struct {
		g     *grid.Grid[walk.Tile]
		start grid.Position
	}
	pm, err := readGrid(w.Source, func(r io.Reader) (patrolMap, error) {
		g, start, err := walk.ParseText(r)
		return patrolMap{g: g, start: start}, err
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Patrol map loaded.", "source", w.Source.String(), "rows", pm.g.Rows(), "cols", pm.g.Cols())

	maxSteps := w.MaxSteps
	if maxSteps <= 0 {
		maxSteps = a.config.MaxSteps
	}
	sim := walk.NewSimulator(pm.g, pm.start, walk.WithMaxSteps(maxSteps))
	res, runErr := sim.Run(ctx)

	out := &WalkResult{
		Name:    w.Name,
		Outcome: res.Outcome,
		Visited: res.Visited,
		Steps:   res.Steps,
	}
	if w.SnapshotPath != "" {
		if err := writeSnapshot(w.SnapshotPath, pm.g); err != nil {
			return out, err
		}
		out.SnapshotPath = w.SnapshotPath
		logger.Debug("Snapshot written.", "path", w.SnapshotPath)
	}

	if runErr != nil {
		return out, runErr
	}
	if res.Outcome == walk.Looped {
		logger.Warn("Agent never leaves the grid.", "pose", res.Final.Position.String(), "heading", res.Final.Heading.String())
		return out, fmt.Errorf("%w at %v heading %v", walk.ErrLooped, res.Final.Position, res.Final.Heading)
	}

	logger.Info("Walk finished.", "visited", res.Visited, "steps", res.Steps)
	return out, nil
}

func readGrid[T any](src config.Source, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := src.Open()
	if err != nil {
		return zero, err
	}
	defer rc.Close()

	v, err := parse(rc)
	if err != nil {
		return zero, fmt.Errorf("invalid grid in %s: %w", src, err)
	}
	return v, nil
}

func writeSnapshot(path string, g *grid.Grid[walk.Tile]) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(walk.Snapshot(g)), 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
