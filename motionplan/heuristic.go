package motionplan

import (
	"math"

	"github.com/golang/geo/r2"

	"go.viam.com/gridplan/grid"
)

// Heuristic estimates the cost of moving between two cells.
type Heuristic func(a, b grid.Cell) float64

// EuclideanDistance is the straight-line distance between two cells treated as points. The
// planner uses it both as the heuristic and as the cost of a single step, which keeps the
// heuristic consistent under 8-connected movement.
//
// The square root of the summed squares is taken directly rather than through math.Hypot, whose
// scaling can round differently in the last bit and reorder near ties.
func EuclideanDistance(a, b grid.Cell) float64 {
	d := cellToPoint(a).Sub(cellToPoint(b))
	return math.Sqrt(d.Dot(d))
}

func cellToPoint(c grid.Cell) r2.Point {
	return r2.Point{X: float64(c.Row), Y: float64(c.Col)}
}
