package motionplan

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"go.viam.com/gridplan/grid"
)

// State is the lifecycle state of a search.
type State int

// The states a search moves through. Exactly one of the last three ends every search.
const (
	Initialized State = iota
	Searching
	GoalReached
	IterationLimitExceeded
	Exhausted
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Searching:
		return "searching"
	case GoalReached:
		return "goal reached"
	case IterationLimitExceeded:
		return "iteration limit exceeded"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Plan is the result of one search, along with statistics about how it was produced.
type Plan struct {
	// Path runs from the start to the goal, or to the best-effort node when the iteration limit was
	// hit. It is empty when the frontier was exhausted.
	Path []grid.Cell
	// Cost is the accumulated cost of the last node of Path.
	Cost  float64
	State State

	Start grid.Cell
	Goal  grid.Cell
	Rows  int
	Cols  int

	Iterations    int
	Expanded      int
	Generated     int
	MaxIterations int

	// Duration is filled in by PlanPath.
	Duration time.Duration
}

// Found reports whether the path reaches the goal.
func (p *Plan) Found() bool {
	return p.State == GoalReached
}

// Partial reports whether the path is a best-effort path cut short by the iteration limit.
func (p *Plan) Partial() bool {
	return p.State == IterationLimitExceeded
}

// Steps returns the number of moves along the path.
func (p *Plan) Steps() int {
	if len(p.Path) == 0 {
		return 0
	}
	return len(p.Path) - 1
}

// StepIndexGrid returns the grid-shaped step annotation of the path. See StepIndexGrid.
func (p *Plan) StepIndexGrid() [][]int {
	return StepIndexGrid(p.Rows, p.Cols, p.Path)
}

// String prints out a table of each step of the path, with its row, column and cost so far.
func (p *Plan) String() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%v -> %v: %s", p.Start, p.Goal, p.State))
	t.AppendHeader(table.Row{"Step", "Row", "Col", "Cost"})
	cost := 0.
	for i, cell := range p.Path {
		if i > 0 {
			cost += EuclideanDistance(p.Path[i-1], cell)
		}
		t.AppendRow(table.Row{i, cell.Row, cell.Col, fmt.Sprintf("%.3f", cost)})
	}
	t.AppendFooter(table.Row{"", "", "Iterations", p.Iterations})
	return t.Render()
}
