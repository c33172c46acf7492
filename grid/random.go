package grid

import (
	"math/rand"

	"github.com/pkg/errors"

	"go.viam.com/gridplan/utils"
)

// RandomOptions shapes the obstacle clusters produced by Random.
type RandomOptions struct {
	// Clusters is the number of random walks that lay obstacles.
	Clusters int
	// Steps is the length of each walk.
	Steps int
	// Density is the probability that a visited cell becomes an obstacle.
	Density float64
}

// DefaultRandomOptions scales the number and length of walks with the map area.
func DefaultRandomOptions(rows, cols int) RandomOptions {
	return RandomOptions{
		Clusters: utils.MaxInt(1, rows*cols/40),
		Steps:    utils.MaxInt(4, (rows+cols)/2),
		Density:  0.7,
	}
}

// Random generates a rows x cols map of obstacle clusters drawn by random walks. Obstacles have
// score 1 and free cells score 0. Cells listed in `keepFree` are never made obstacles.
func Random(rng *rand.Rand, rows, cols int, opts RandomOptions, keepFree ...Cell) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, &ShapeError{Row: -1}
	}
	if opts.Density < 0 || opts.Density > 1 {
		return nil, errors.Errorf("density must be within [0, 1], got %v", opts.Density)
	}
	free := make(map[Cell]struct{}, len(keepFree))
	for _, c := range keepFree {
		free[c] = struct{}{}
	}

	scores := make([][]float64, rows)
	for r := range scores {
		scores[r] = make([]float64, cols)
	}
	moves := []Cell{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for i := 0; i < opts.Clusters; i++ {
		c := Cell{utils.SampleRandomIntRange(0, rows-1, rng), utils.SampleRandomIntRange(0, cols-1, rng)}
		for s := 0; s < opts.Steps; s++ {
			if _, ok := free[c]; !ok && rng.Float64() < opts.Density {
				scores[c.Row][c.Col] = 1
			}
			next := c.Add(moves[rng.Intn(len(moves))])
			if next.Row >= 0 && next.Row < rows && next.Col >= 0 && next.Col < cols {
				c = next
			}
		}
	}
	return New(scores)
}
