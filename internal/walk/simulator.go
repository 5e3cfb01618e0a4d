package walk

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/gridwalk/internal/ctxlog"
	"github.com/specialistvlad/gridwalk/internal/grid"
)

// Outcome is the state of the simulation state machine.
type Outcome int

const (
	Running Outcome = iota
	Exited
	Looped
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Exited:
		return "exited"
	case Looped:
		return "looped"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

var (
	ErrLooped    = errors.New("agent is trapped in a cycle")
	ErrStepLimit = errors.New("step limit reached before the agent left the grid")
)

// checkEvery is how many steps Run takes between context checks.
const checkEvery = 1024

// Pose is the agent's position and heading.
type Pose struct {
	Position grid.Position
	Heading  grid.Direction
}

// Result summarises a finished simulation.
type Result struct {
	Outcome Outcome
	Visited int
	Steps   int
	Final   Pose
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithMaxSteps caps the number of steps Run may take. Values <= 0 keep the
// default of one more than the number of distinct poses.
func WithMaxSteps(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.maxSteps = n
		}
	}
}

// Simulator owns the mutable patrol map for the duration of one walk.
type Simulator struct {
	g        *grid.Grid[Tile]
	pose     Pose
	outcome  Outcome
	seen     map[Pose]struct{}
	visited  int
	steps    int
	maxSteps int
}

// NewSimulator places the agent at start facing up.
func NewSimulator(g *grid.Grid[Tile], start grid.Position, opts ...Option) *Simulator {
	if !g.InBounds(start) {
		panic(fmt.Sprintf("walk: start %v outside %dx%d grid", start, g.Rows(), g.Cols()))
	}
	s := &Simulator{
		g:        g,
		pose:     Pose{Position: start, Heading: grid.Up},
		outcome:  Running,
		seen:     make(map[Pose]struct{}),
		visited:  g.Count(Visited),
		maxSteps: g.Rows()*g.Cols()*len(grid.Cardinal) + 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Pose() Pose             { return s.pose }
func (s *Simulator) Outcome() Outcome       { return s.outcome }
func (s *Simulator) Visited() int           { return s.visited }
func (s *Simulator) Steps() int             { return s.steps }
func (s *Simulator) Grid() *grid.Grid[Tile] { return s.g }

// Step performs one transition and returns the resulting outcome. Calling
// Step after the walk has ended is a no-op.
func (s *Simulator) Step() Outcome {
	if s.outcome != Running {
		return s.outcome
	}
	s.steps++

	p := s.pose.Position
	if s.g.Get(p) != Visited {
		s.g.Set(p, Visited)
		s.visited++
	}

	if _, ok := s.seen[s.pose]; ok {
		s.outcome = Looped
		return s.outcome
	}
	s.seen[s.pose] = struct{}{}

	heading := s.pose.Heading
	for turns := 0; turns < len(grid.Cardinal); turns++ {
		next := p.Step(heading)
		if !s.g.InBounds(next) {
			s.pose.Heading = heading
			s.outcome = Exited
			return s.outcome
		}
		if s.g.Get(next) != Blocked {
			s.pose = Pose{Position: next, Heading: heading}
			return s.outcome
		}
		heading = heading.Clockwise()
	}

	// Blocked on every side.
	s.outcome = Looped
	return s.outcome
}

// Run steps until the agent exits or loops. It returns ErrStepLimit if the
// ceiling is reached first and the context error if ctx is cancelled.
func (s *Simulator) Run(ctx context.Context) (Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Simulation started.",
		"start", s.pose.Position.String(),
		"rows", s.g.Rows(),
		"cols", s.g.Cols(),
		"max_steps", s.maxSteps,
	)

	for s.outcome == Running {
		if s.steps >= s.maxSteps {
			logger.Warn("Simulation hit the step ceiling.", "steps", s.steps, "visited", s.visited)
			return s.result(), fmt.Errorf("%w: %d steps", ErrStepLimit, s.steps)
		}
		if s.steps%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return s.result(), err
			}
		}
		s.Step()
	}

	logger.Debug("Simulation finished.",
		"outcome", s.outcome.String(),
		"steps", s.steps,
		"visited", s.visited,
		"final", s.pose.Position.String(),
	)
	return s.result(), nil
}

func (s *Simulator) result() Result {
	return Result{Outcome: s.outcome, Visited: s.visited, Steps: s.steps, Final: s.pose}
}
