package motionplan

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/testutils"
)

// tickingClock advances a mock clock every time it is read, so each search takes a known time.
type tickingClock struct {
	*clock.Mock
	step time.Duration
}

func (c *tickingClock) Now() time.Time {
	c.Mock.Add(c.step)
	return c.Mock.Now()
}

func (c *tickingClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

func TestPlanPath(t *testing.T) {
	g := testutils.GridFromText(t,
		".....",
		".....",
		"..#..",
		".....",
		".....",
	)
	logger, observed := logging.NewObservedTestLogger(t)
	pm := newPlanManager(logger, &tickingClock{Mock: clock.NewMock(), step: time.Millisecond})

	request := &PlanRequest{
		Grid:  g,
		Start: grid.NewCell(0, 0),
		Goal:  grid.NewCell(4, 4),
	}
	plan, err := pm.planPath(context.Background(), request)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, plan.Found(), test.ShouldBeTrue)
	// Defaults are resolved per call, the caller's request keeps its nil options.
	test.That(t, request.PlannerOptions, test.ShouldBeNil)
	test.That(t, plan.MaxIterations, test.ShouldEqual, DefaultMaxIterations(5))
	test.That(t, plan.Duration, test.ShouldEqual, time.Millisecond)
	test.That(t, plan.Path[len(plan.Path)-1], test.ShouldResemble, grid.NewCell(4, 4))
	test.That(t, observed.FilterMessage("plan found").Len(), test.ShouldEqual, 1)
	test.That(t, plan.String(), test.ShouldContainSubstring, "goal reached")

	t.Run("iteration limit", func(t *testing.T) {
		plan, err := pm.planPath(context.Background(), &PlanRequest{
			Grid:           g,
			Start:          grid.NewCell(0, 0),
			Goal:           grid.NewCell(4, 4),
			PlannerOptions: &PlannerOptions{MaxIterations: 1},
		})
		test.That(t, errors.Is(err, ErrIterationLimitExceeded), test.ShouldBeTrue)
		test.That(t, plan.Partial(), test.ShouldBeTrue)
		test.That(t, plan.Duration, test.ShouldEqual, time.Millisecond)
		test.That(t, observed.FilterMessage("returning best-effort plan").Len(), test.ShouldEqual, 1)
	})

	t.Run("not found", func(t *testing.T) {
		walled := testutils.GridFromText(t,
			"..#..",
			"..#..",
			"..#..",
			"..#..",
			"..#..",
		)
		plan, err := pm.planPath(context.Background(), &PlanRequest{
			Grid:  walled,
			Start: grid.NewCell(0, 0),
			Goal:  grid.NewCell(0, 4),
		})
		test.That(t, errors.Is(err, ErrNotFound), test.ShouldBeTrue)
		test.That(t, plan.State, test.ShouldEqual, Exhausted)
		test.That(t, observed.FilterMessage("no path exists").Len(), test.ShouldEqual, 1)
	})

	t.Run("invalid requests", func(t *testing.T) {
		_, err := pm.planPath(context.Background(), nil)
		test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)

		_, err = pm.planPath(context.Background(), &PlanRequest{Start: grid.NewCell(0, 0)})
		test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)

		plan, err := PlanPath(context.Background(), logger, &PlanRequest{
			Grid:  g,
			Start: grid.NewCell(9, 9),
			Goal:  grid.NewCell(0, 0),
		})
		test.That(t, plan, test.ShouldBeNil)
		test.That(t, errors.Is(err, ErrInvalidInput), test.ShouldBeTrue)
	})
}

func TestStateString(t *testing.T) {
	test.That(t, Initialized.String(), test.ShouldEqual, "initialized")
	test.That(t, Searching.String(), test.ShouldEqual, "searching")
	test.That(t, GoalReached.String(), test.ShouldEqual, "goal reached")
	test.That(t, IterationLimitExceeded.String(), test.ShouldEqual, "iteration limit exceeded")
	test.That(t, Exhausted.String(), test.ShouldEqual, "exhausted")
	test.That(t, State(42).String(), test.ShouldEqual, "State(42)")
}
