package visualize

import (
	"io"

	"github.com/aybabtme/uniplot/histogram"

	"go.viam.com/gridplan/grid"
)

// ScoreHistogram prints a unicode histogram of the grid's traversability scores using `bins`
// buckets and bars at most `width` characters wide.
func ScoreHistogram(w io.Writer, g *grid.Grid, bins, width int) error {
	var scores []float64
	for _, row := range g.Scores() {
		scores = append(scores, row...)
	}
	hist := histogram.Hist(bins, scores)
	return histogram.Fprint(w, hist, histogram.Linear(width))
}
