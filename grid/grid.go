// Package grid defines the read-only occupancy map that the planner searches over, the cells that
// address it, and loaders for the map formats the tools accept.
package grid

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ObstacleThreshold is the traversability score above which a cell is an obstacle.
const ObstacleThreshold = 0.8

// Cell is a (row, column) position in a grid.
type Cell struct {
	Row int
	Col int
}

// NewCell returns the cell at the given row and column.
func NewCell(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// Add returns the cell offset by `delta`.
func (c Cell) Add(delta Cell) Cell {
	return Cell{Row: c.Row + delta.Row, Col: c.Col + delta.Col}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// MarshalJSON encodes a cell as `[row, col]`.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.Row, c.Col})
}

// UnmarshalJSON decodes a cell from `[row, col]`.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.Wrap(err, "cell must be a [row, col] pair")
	}
	if len(pair) != 2 {
		return errors.Errorf("cell must be a [row, col] pair, got %d values", len(pair))
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

// ShapeError is returned when an occupancy map is not a non-empty rectangle.
type ShapeError struct {
	// Row is the first row whose length differs from row 0. It is -1 for an empty map.
	Row  int
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	if e.Row < 0 {
		return "occupancy map must have at least one row and one column"
	}
	return fmt.Sprintf("occupancy map is not rectangular: row %d has %d columns, expected %d", e.Row, e.Got, e.Want)
}

// Grid is an immutable 2D array of traversability scores.
type Grid struct {
	scores *mat.Dense
}

// New copies `scores` into a new Grid. It returns a *ShapeError if the rows do not all have the
// same, non-zero, length.
func New(scores [][]float64) (*Grid, error) {
	if len(scores) == 0 || len(scores[0]) == 0 {
		return nil, &ShapeError{Row: -1}
	}
	cols := len(scores[0])
	data := make([]float64, 0, len(scores)*cols)
	for i, row := range scores {
		if len(row) != cols {
			return nil, &ShapeError{Row: i, Want: cols, Got: len(row)}
		}
		data = append(data, row...)
	}
	return &Grid{scores: mat.NewDense(len(scores), cols, data)}, nil
}

// Dimensions returns the number of rows and columns.
func (g *Grid) Dimensions() (rows, cols int) {
	return g.scores.Dims()
}

// InBounds reports whether the cell lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	rows, cols := g.Dimensions()
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// IsObstacle reports whether the cell's score exceeds ObstacleThreshold. Cells outside the grid
// are not obstacles; callers check InBounds first.
func (g *Grid) IsObstacle(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.scores.At(c.Row, c.Col) > ObstacleThreshold
}

// Score returns the traversability score of an in-bounds cell.
func (g *Grid) Score(c Cell) float64 {
	return g.scores.At(c.Row, c.Col)
}

// Scores returns a copy of the scores as a row-major slice of rows.
func (g *Grid) Scores() [][]float64 {
	rows, cols := g.Dimensions()
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, cols)
		mat.Row(out[r], r, g.scores)
	}
	return out
}

// ObstacleCount returns the number of obstacle cells.
func (g *Grid) ObstacleCount() int {
	rows, cols := g.Dimensions()
	count := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.scores.At(r, c) > ObstacleThreshold {
				count++
			}
		}
	}
	return count
}

// String renders the grid as text, one line per row: '#' for obstacles and '.' for free cells.
func (g *Grid) String() string {
	rows, cols := g.Dimensions()
	var sb strings.Builder
	sb.Grow(rows * (cols + 1))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.IsObstacle(Cell{r, c}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
