package motionplan

import (
	"testing"

	"go.viam.com/test"

	"go.viam.com/gridplan/grid"
)

func TestFrontierOrdering(t *testing.T) {
	arena := &nodeArena{}
	fr := newFrontier(arena)

	late := arena.add(grid.NewCell(0, 0), noParent, 2, 1)
	first := arena.add(grid.NewCell(0, 1), noParent, 1, 1)
	second := arena.add(grid.NewCell(0, 2), noParent, 0, 2)
	third := arena.add(grid.NewCell(0, 3), noParent, 2, 0)
	for _, id := range []nodeID{late, first, second, third} {
		fr.insert(id)
	}
	test.That(t, fr.len(), test.ShouldEqual, 4)

	// first, second and third tie on f = 2 and leave in insertion order.
	var order []nodeID
	for fr.len() > 0 {
		id := fr.best()
		fr.remove(id)
		order = append(order, id)
	}
	test.That(t, order, test.ShouldResemble, []nodeID{first, second, third, late})
}

func TestFrontierTieBreakSurvivesRemoval(t *testing.T) {
	arena := &nodeArena{}
	fr := newFrontier(arena)
	var ids []nodeID
	for col := 0; col < 6; col++ {
		id := arena.add(grid.NewCell(0, col), noParent, 1, 1)
		ids = append(ids, id)
		fr.insert(id)
	}
	fr.remove(ids[0])
	fr.remove(ids[3])
	test.That(t, fr.best(), test.ShouldEqual, ids[1])

	later := arena.add(grid.NewCell(1, 0), noParent, 0, 2)
	fr.insert(later)
	test.That(t, fr.best(), test.ShouldEqual, ids[1])

	cheaper := arena.add(grid.NewCell(1, 1), noParent, 0, 1.5)
	fr.insert(cheaper)
	test.That(t, fr.best(), test.ShouldEqual, cheaper)

	// Removing an absent node is a no-op.
	fr.remove(ids[0])
	test.That(t, fr.len(), test.ShouldEqual, 6)
}

func TestFrontierContainsNotWorse(t *testing.T) {
	arena := &nodeArena{}
	fr := newFrontier(arena)
	cell := grid.NewCell(3, 3)
	test.That(t, fr.containsNotWorse(cell, 100), test.ShouldBeFalse)

	worse := arena.add(cell, noParent, 5, 1)
	fr.insert(worse)
	test.That(t, fr.containsNotWorse(cell, 5), test.ShouldBeTrue)
	test.That(t, fr.containsNotWorse(cell, 6), test.ShouldBeTrue)
	test.That(t, fr.containsNotWorse(cell, 4.9), test.ShouldBeFalse)
	test.That(t, fr.containsNotWorse(grid.NewCell(3, 4), 6), test.ShouldBeFalse)

	// A cheaper route adds a second entry rather than updating the first.
	better := arena.add(cell, noParent, 4, 1)
	fr.insert(better)
	test.That(t, fr.len(), test.ShouldEqual, 2)
	test.That(t, fr.best(), test.ShouldEqual, better)
	test.That(t, fr.containsNotWorse(cell, 4), test.ShouldBeTrue)

	fr.remove(better)
	test.That(t, fr.containsNotWorse(cell, 4), test.ShouldBeFalse)
	fr.remove(worse)
	test.That(t, fr.containsNotWorse(cell, 100), test.ShouldBeFalse)
	test.That(t, fr.len(), test.ShouldEqual, 0)
}

func TestVisited(t *testing.T) {
	v := newVisited(3, 4)
	n := SearchNode{position: grid.NewCell(2, 3)}
	test.That(t, v.contains(n.position), test.ShouldBeFalse)
	v.add(n)
	test.That(t, v.contains(grid.NewCell(2, 3)), test.ShouldBeTrue)
	test.That(t, v.contains(grid.NewCell(2, 2)), test.ShouldBeFalse)
	test.That(t, v.contains(grid.NewCell(1, 3)), test.ShouldBeFalse)

	// Row-major indexing must not alias cells of a non-square grid.
	v.add(SearchNode{position: grid.NewCell(0, 3)})
	test.That(t, v.contains(grid.NewCell(1, 0)), test.ShouldBeFalse)

	for _, outside := range []grid.Cell{grid.NewCell(3, 2), grid.NewCell(-1, 0), grid.NewCell(0, 4)} {
		test.That(t, v.contains(outside), test.ShouldBeFalse)
	}
}
