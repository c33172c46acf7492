package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/motionplan"
	"go.viam.com/gridplan/visualize"
)

// maxPreviewCols is the widest map printed without --preview.
const maxPreviewCols = 80

func loadMapFromFlags(c *cli.Context) (*grid.Grid, error) {
	path := c.Path(planFlagMap)
	if path == "" {
		path = c.Args().First()
	}
	if path == "" {
		return nil, errors.New("a map file is required, pass --map or a path argument")
	}
	return grid.ReadFile(path, grid.Format(c.String(planFlagFormat)), grid.ImageOptions{Invert: c.Bool(planFlagInvert)})
}

// InspectAction prints the map's dimensions, obstacle statistics and a score histogram.
func InspectAction(c *cli.Context) error {
	g, err := loadMapFromFlags(c)
	if err != nil {
		return err
	}
	rows, cols := g.Dimensions()
	obstacles := g.ObstacleCount()

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Property", "Value"})
	t.AppendRows([]table.Row{
		{"Rows", rows},
		{"Cols", cols},
		{"Cells", rows * cols},
		{"Obstacles", obstacles},
		{"Obstacle ratio", fmt.Sprintf("%.3f", float64(obstacles)/float64(rows*cols))},
		{"Obstacle threshold", grid.ObstacleThreshold},
		{"Default iteration cap", motionplan.DefaultMaxIterations(rows)},
	})
	printf(c.App.Writer, "%s", t.Render())

	printf(c.App.Writer, "\nTraversability scores:")
	if err := visualize.ScoreHistogram(c.App.Writer, g, c.Int(inspectFlagBins), 40); err != nil {
		return err
	}
	if c.Bool(inspectFlagPreview) || cols <= maxPreviewCols {
		printf(c.App.Writer, "\n%s", g.String())
	}
	return nil
}
