package motionplan

import "go.viam.com/gridplan/grid"

// visited is the closed set: cells that have been expanded. Cells are never removed.
type visited struct {
	rows, cols int
	seen       []bool
}

func newVisited(rows, cols int) *visited {
	return &visited{rows: rows, cols: cols, seen: make([]bool, rows*cols)}
}

// contains reports false for cells outside the grid.
func (v *visited) contains(c grid.Cell) bool {
	if c.Row < 0 || c.Row >= v.rows || c.Col < 0 || c.Col >= v.cols {
		return false
	}
	return v.seen[c.Row*v.cols+c.Col]
}

func (v *visited) add(n SearchNode) {
	v.seen[n.position.Row*v.cols+n.position.Col] = true
}
