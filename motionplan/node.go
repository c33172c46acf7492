package motionplan

import "go.viam.com/gridplan/grid"

// nodeID is a stable handle to a SearchNode in a nodeArena.
type nodeID int

// noParent marks the root of the search tree.
const noParent nodeID = -1

// SearchNode is a discovered cell together with its accumulated cost, its heuristic estimate and
// the node it was reached from.
type SearchNode struct {
	position grid.Cell
	parent   nodeID
	g        float64
	h        float64
}

// Position returns the node's cell.
func (n SearchNode) Position() grid.Cell {
	return n.position
}

// G returns the accumulated cost from the start.
func (n SearchNode) G() float64 {
	return n.g
}

// H returns the heuristic estimate to the goal.
func (n SearchNode) H() float64 {
	return n.h
}

// F returns the estimated total cost g + h.
func (n SearchNode) F() float64 {
	return n.g + n.h
}

// SamePosition reports whether two nodes refer to the same cell. Costs and parents are ignored.
func (n SearchNode) SamePosition(other SearchNode) bool {
	return n.position == other.position
}

// nodeArena owns every node created during one search. Nodes are never mutated after creation,
// and parents always have smaller ids than their children.
type nodeArena struct {
	nodes []SearchNode
}

func (a *nodeArena) add(position grid.Cell, parent nodeID, g, h float64) nodeID {
	a.nodes = append(a.nodes, SearchNode{position: position, parent: parent, g: g, h: h})
	return nodeID(len(a.nodes) - 1)
}

func (a *nodeArena) node(id nodeID) SearchNode {
	return a.nodes[id]
}

func (a *nodeArena) len() int {
	return len(a.nodes)
}
