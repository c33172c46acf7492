package motionplan

import (
	"github.com/pkg/errors"

	"go.viam.com/gridplan/grid"
)

var (
	// ErrInvalidInput is returned when a request cannot be planned at all: a missing grid, a start or
	// goal outside the grid, or invalid planner options. No plan accompanies it.
	ErrInvalidInput = errors.New("invalid planning input")

	// ErrIterationLimitExceeded is returned together with a best-effort plan that ends at the node
	// the search would have expanded next. Callers must not treat that plan as reaching the goal.
	ErrIterationLimitExceeded = errors.New("iteration limit exceeded")

	// ErrNotFound is returned together with a plan that has no path when every reachable cell was
	// expanded without reaching the goal.
	ErrNotFound = errors.New("no path found")
)

func newOutOfBoundsError(which string, c grid.Cell, rows, cols int) error {
	return errors.Wrapf(ErrInvalidInput, "%s %v is outside the %dx%d grid", which, c, rows, cols)
}
