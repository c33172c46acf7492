package motionplan

import (
	"container/heap"

	"go.viam.com/gridplan/grid"
)

type frontierItem struct {
	id    nodeID
	f     float64
	seq   int
	index int
}

// frontierQueue orders items by f, then by insertion sequence, so that among equal-f nodes the
// earliest inserted one is selected first.
type frontierQueue []*frontierItem

func (q frontierQueue) Len() int { return len(q) }

func (q frontierQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontierQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *frontierQueue) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *frontierQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

// frontier is the open set. Entries are never updated in place: a cheaper route to a cell that is
// already queued adds a second entry for it.
type frontier struct {
	arena   *nodeArena
	queue   frontierQueue
	items   map[nodeID]*frontierItem
	byCell  map[grid.Cell][]nodeID
	nextSeq int
}

func newFrontier(arena *nodeArena) *frontier {
	return &frontier{
		arena:  arena,
		items:  map[nodeID]*frontierItem{},
		byCell: map[grid.Cell][]nodeID{},
	}
}

func (fr *frontier) len() int {
	return fr.queue.Len()
}

func (fr *frontier) insert(id nodeID) {
	n := fr.arena.node(id)
	item := &frontierItem{id: id, f: n.F(), seq: fr.nextSeq}
	fr.nextSeq++
	heap.Push(&fr.queue, item)
	fr.items[id] = item
	fr.byCell[n.position] = append(fr.byCell[n.position], id)
}

// best returns the queued node with the lowest f. The frontier must not be empty.
func (fr *frontier) best() nodeID {
	return fr.queue[0].id
}

func (fr *frontier) remove(id nodeID) {
	item, ok := fr.items[id]
	if !ok {
		return
	}
	heap.Remove(&fr.queue, item.index)
	delete(fr.items, id)

	cell := fr.arena.node(id).position
	ids := fr.byCell[cell]
	for i, other := range ids {
		if other == id {
			ids = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	if len(ids) == 0 {
		delete(fr.byCell, cell)
	} else {
		fr.byCell[cell] = ids
	}
}

// containsNotWorse reports whether a node at `cell` with a cost of at most `g` is queued.
func (fr *frontier) containsNotWorse(cell grid.Cell, g float64) bool {
	for _, id := range fr.byCell[cell] {
		if fr.arena.node(id).g <= g {
			return true
		}
	}
	return false
}
