package testutils

import (
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/gridplan/grid"
)

// GridFromText builds a grid from text rows in the format grid.FromText reads: '#' is an
// obstacle, '.' is free and a digit d scores d/10.
func GridFromText(t *testing.T, rows ...string) *grid.Grid {
	t.Helper()
	g, err := grid.FromText(strings.NewReader(strings.Join(rows, "\n")))
	test.That(t, err, test.ShouldBeNil)
	return g
}

// GridFromScores builds a grid from raw scores.
func GridFromScores(t *testing.T, scores [][]float64) *grid.Grid {
	t.Helper()
	g, err := grid.New(scores)
	test.That(t, err, test.ShouldBeNil)
	return g
}
