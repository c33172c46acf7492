package motionplan

import (
	"slices"

	"go.viam.com/gridplan/grid"
)

// Unvisited marks cells that are not on a path in a step index grid.
const Unvisited = -1

// pathTo walks parent handles from `terminal` back to the root and returns the cells in
// root-to-terminal order.
func pathTo(arena *nodeArena, terminal nodeID) []grid.Cell {
	var path []grid.Cell
	for id := terminal; id != noParent; id = arena.node(id).parent {
		path = append(path, arena.node(id).position)
	}
	slices.Reverse(path)
	return path
}

// StepIndexGrid returns a rows x cols grid in which every cell of `path` holds its 0-based step
// index and every other cell holds Unvisited.
func StepIndexGrid(rows, cols int, path []grid.Cell) [][]int {
	out := make([][]int, rows)
	for r := range out {
		out[r] = make([]int, cols)
		for c := range out[r] {
			out[r][c] = Unvisited
		}
	}
	for step, cell := range path {
		if cell.Row >= 0 && cell.Row < rows && cell.Col >= 0 && cell.Col < cols {
			out[cell.Row][cell.Col] = step
		}
	}
	return out
}
