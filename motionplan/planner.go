// Package motionplan finds paths across occupancy grids with a bounded A* search.
package motionplan

import (
	"github.com/pkg/errors"

	"go.viam.com/gridplan/grid"
)

// neighborOffsets lists the moves tried from every expanded cell, orthogonal moves first. The
// order decides which of several equal-cost nodes is queued first.
var neighborOffsets = []grid.Cell{
	{Row: -1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 1, Col: 0},
	{Row: 0, Col: 1},
	{Row: -1, Col: -1},
	{Row: 1, Col: -1},
	{Row: -1, Col: 1},
	{Row: 1, Col: 1},
}

// Planner searches a single grid. It holds no per-search state, so one Planner may serve
// concurrent calls to Plan.
type Planner struct {
	grid          *grid.Grid
	heuristic     Heuristic
	maxIterations int
}

// NewPlanner returns a planner for `g`. Nil options select NewBasicPlannerOptions.
func NewPlanner(g *grid.Grid, opts *PlannerOptions) (*Planner, error) {
	if g == nil {
		return nil, errors.Wrap(ErrInvalidInput, "no grid to plan over")
	}
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rows, _ := g.Dimensions()
	return &Planner{
		grid:          g,
		heuristic:     EuclideanDistance,
		maxIterations: opts.maxIterationsFor(rows),
	}, nil
}

// MaxIterations returns the iteration cap applied to every search.
func (p *Planner) MaxIterations() int {
	return p.maxIterations
}

// Plan searches for a path from `start` to `goal`.
//
// On success the plan's State is GoalReached and the error is nil. If the iteration cap is hit
// the plan holds a best-effort path and the error wraps ErrIterationLimitExceeded. If no path
// exists the plan has an empty path and the error wraps ErrNotFound. Cells outside the grid
// return a nil plan and an error wrapping ErrInvalidInput.
func (p *Planner) Plan(start, goal grid.Cell) (*Plan, error) {
	rows, cols := p.grid.Dimensions()
	if !p.grid.InBounds(start) {
		return nil, newOutOfBoundsError("start", start, rows, cols)
	}
	if !p.grid.InBounds(goal) {
		return nil, newOutOfBoundsError("goal", goal, rows, cols)
	}
	return newSearch(p, start, goal).run()
}

// search holds the state of one Plan call.
type search struct {
	grid          *grid.Grid
	heuristic     Heuristic
	maxIterations int
	start, goal   grid.Cell

	state    State
	arena    *nodeArena
	frontier *frontier
	visited  *visited

	iterations int
	expanded   int

	// observe, when set, sees every node taken off the frontier in selection order.
	observe func(SearchNode)
}

func newSearch(p *Planner, start, goal grid.Cell) *search {
	rows, cols := p.grid.Dimensions()
	arena := &nodeArena{}
	return &search{
		grid:          p.grid,
		heuristic:     p.heuristic,
		maxIterations: p.maxIterations,
		start:         start,
		goal:          goal,
		state:         Initialized,
		arena:         arena,
		frontier:      newFrontier(arena),
		visited:       newVisited(rows, cols),
	}
}

func (s *search) run() (*Plan, error) {
	s.state = Searching
	goalNode := SearchNode{position: s.goal, parent: noParent}
	s.frontier.insert(s.arena.add(s.start, noParent, 0, s.heuristic(s.start, s.goal)))

	for s.frontier.len() > 0 {
		currentID := s.frontier.best()
		s.iterations++
		if s.iterations > s.maxIterations {
			s.state = IterationLimitExceeded
			return s.result(currentID), errors.Wrapf(ErrIterationLimitExceeded,
				"gave up after %d iterations searching from %v to %v", s.maxIterations, s.start, s.goal)
		}

		s.frontier.remove(currentID)
		current := s.arena.node(currentID)
		if s.observe != nil {
			s.observe(current)
		}
		// A stale entry for an already visited cell is expanded again. Its neighbors are
		// filtered against the visited set, so no path revisits a cell.
		s.visited.add(current)

		if current.SamePosition(goalNode) {
			s.state = GoalReached
			return s.result(currentID), nil
		}
		s.expand(currentID)
	}

	s.state = Exhausted
	return s.result(noParent), errors.Wrapf(ErrNotFound, "%v is unreachable from %v", s.goal, s.start)
}

func (s *search) expand(parentID nodeID) {
	s.expanded++
	parent := s.arena.node(parentID)
	for _, offset := range neighborOffsets {
		position := parent.position.Add(offset)
		if !s.grid.InBounds(position) || s.grid.IsObstacle(position) || s.visited.contains(position) {
			continue
		}
		g := parent.g + s.heuristic(parent.position, position)
		if s.frontier.containsNotWorse(position, g) {
			continue
		}
		s.frontier.insert(s.arena.add(position, parentID, g, s.heuristic(position, s.goal)))
	}
}

// result builds the plan ending at `terminal`, or a plan with no path for noParent.
func (s *search) result(terminal nodeID) *Plan {
	rows, cols := s.grid.Dimensions()
	plan := &Plan{
		State:         s.state,
		Start:         s.start,
		Goal:          s.goal,
		Rows:          rows,
		Cols:          cols,
		Iterations:    s.iterations,
		Expanded:      s.expanded,
		Generated:     s.arena.len(),
		MaxIterations: s.maxIterations,
	}
	if terminal != noParent {
		plan.Path = pathTo(s.arena, terminal)
		plan.Cost = s.arena.node(terminal).g
	}
	return plan
}
