package motionplan

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.viam.com/test"

	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/testutils"
)

type scanNode struct {
	parent   *scanNode
	position grid.Cell
	g, h, f  float64
}

type scanResult struct {
	state      State
	path       []grid.Cell
	cost       float64
	iterations int
	expanded   int
	generated  int
	selected   []grid.Cell
}

// scanSearch is a plain list based A*: the open list is scanned for the first node with the
// smallest f, and both lists are searched linearly. The planner must agree with it on every
// selection.
func scanSearch(g *grid.Grid, start, goal grid.Cell, maxIterations int) scanResult {
	var res scanResult
	result := func(terminal *scanNode) scanResult {
		for n := terminal; n != nil; n = n.parent {
			res.path = append([]grid.Cell{n.position}, res.path...)
		}
		if terminal != nil {
			res.cost = terminal.g
		}
		return res
	}

	h := EuclideanDistance(start, goal)
	open := []*scanNode{{position: start, h: h, f: h}}
	var closed []grid.Cell
	res.generated = 1
	for len(open) > 0 {
		res.iterations++
		currentIndex := 0
		for i, n := range open {
			if n.f < open[currentIndex].f {
				currentIndex = i
			}
		}
		current := open[currentIndex]
		if res.iterations > maxIterations {
			res.state = IterationLimitExceeded
			return result(current)
		}
		open = append(open[:currentIndex], open[currentIndex+1:]...)
		closed = append(closed, current.position)
		res.selected = append(res.selected, current.position)

		if current.position == goal {
			res.state = GoalReached
			return result(current)
		}
		res.expanded++

		var children []*scanNode
		for _, offset := range neighborOffsets {
			position := current.position.Add(offset)
			if !g.InBounds(position) || g.IsObstacle(position) {
				continue
			}
			children = append(children, &scanNode{parent: current, position: position})
		}
		for _, child := range children {
			if lo.Contains(closed, child.position) {
				continue
			}
			child.g = current.g + EuclideanDistance(current.position, child.position)
			child.h = EuclideanDistance(child.position, goal)
			child.f = child.g + child.h
			if lo.ContainsBy(open, func(n *scanNode) bool {
				return n.position == child.position && child.g >= n.g
			}) {
				continue
			}
			open = append(open, child)
			res.generated++
		}
	}
	res.state = Exhausted
	return result(nil)
}

// planWithSelections runs one search and records every cell taken off the frontier.
func planWithSelections(t *testing.T, g *grid.Grid, opts *PlannerOptions, start, goal grid.Cell) (*Plan, []grid.Cell, error) {
	t.Helper()
	planner, err := NewPlanner(g, opts)
	test.That(t, err, test.ShouldBeNil)
	var selected []grid.Cell
	s := newSearch(planner, start, goal)
	s.observe = func(n SearchNode) {
		selected = append(selected, n.Position())
	}
	plan, err := s.run()
	return plan, selected, err
}

func checkMatchesScan(t *testing.T, g *grid.Grid, opts *PlannerOptions, start, goal grid.Cell) {
	t.Helper()
	plan, selected, err := planWithSelections(t, g, opts, start, goal)
	expected := scanSearch(g, start, goal, plan.MaxIterations)

	test.That(t, plan.State, test.ShouldEqual, expected.state)
	test.That(t, selected, test.ShouldResemble, expected.selected)
	test.That(t, plan.Iterations, test.ShouldEqual, expected.iterations)
	test.That(t, plan.Expanded, test.ShouldEqual, expected.expanded)
	test.That(t, plan.Generated, test.ShouldEqual, expected.generated)
	test.That(t, plan.Cost, test.ShouldEqual, expected.cost)
	switch expected.state {
	case GoalReached:
		test.That(t, err, test.ShouldBeNil)
		test.That(t, plan.Path, test.ShouldResemble, expected.path)
	case IterationLimitExceeded:
		test.That(t, errors.Is(err, ErrIterationLimitExceeded), test.ShouldBeTrue)
		test.That(t, plan.Path, test.ShouldResemble, expected.path)
	default:
		test.That(t, errors.Is(err, ErrNotFound), test.ShouldBeTrue)
		test.That(t, plan.Path, test.ShouldBeEmpty)
	}
}

func TestReselectedCellIsExpandedAgain(t *testing.T) {
	// (2, 3) is queued twice and both entries are selected. The two routes to (3, 5) differ in
	// the last bit of their cost.
	g := testutils.GridFromText(t,
		"...#..",
		"#..#..",
		"....#.",
		"###...",
	)
	start, goal := grid.NewCell(0, 0), grid.NewCell(3, 5)
	plan, selected, err := planWithSelections(t, g, nil, start, goal)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, selected, test.ShouldResemble, []grid.Cell{
		{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}, {Row: 0, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 3}, {Row: 2, Col: 3}, {Row: 0, Col: 2}, {Row: 3, Col: 4}, {Row: 3, Col: 5},
	})
	test.That(t, plan.Path, test.ShouldResemble, []grid.Cell{
		{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 4}, {Row: 3, Col: 5},
	})
	test.That(t, plan.Iterations, test.ShouldEqual, 10)
	test.That(t, plan.Expanded, test.ShouldEqual, 9)
	test.That(t, plan.Generated, test.ShouldEqual, 18)
	checkPathInvariants(t, g, plan)
	checkMatchesScan(t, g, nil, start, goal)
}

func TestMatchesLinearScan(t *testing.T) {
	for seed := int64(0); seed < 40; seed++ {
		rng := rand.New(rand.NewSource(seed))
		rows, cols := 6+rng.Intn(14), 6+rng.Intn(14)
		start, goal := grid.NewCell(0, 0), grid.NewCell(rows-1, cols-1)
		opts := grid.DefaultRandomOptions(rows, cols)
		opts.Density = 0.6 + 0.3*rng.Float64()
		g, err := grid.Random(rng, rows, cols, opts, start, goal)
		test.That(t, err, test.ShouldBeNil)

		checkMatchesScan(t, g, nil, start, goal)
		for _, maxIterations := range []int{1, 5, 20, 60} {
			checkMatchesScan(t, g, &PlannerOptions{MaxIterations: maxIterations}, start, goal)
		}
		// Interior endpoints exercise expansion in every direction.
		middle := grid.NewCell(rows/2, cols/2)
		if !g.IsObstacle(middle) {
			checkMatchesScan(t, g, nil, middle, start)
		}
	}
}
