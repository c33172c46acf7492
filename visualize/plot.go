package visualize

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	// Register the png, jpg, tiff and svg writers used by SavePlot.
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgsvg"

	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/motionplan"
)

// PlotPath builds a vector plot with obstacles as squares and the plan's path as a line. Columns
// run along X and rows along an inverted Y axis so the plot reads like the grid.
func PlotPath(g *grid.Grid, plan *motionplan.Plan) (*plot.Plot, error) {
	if g == nil {
		return nil, errors.New("cannot plot a nil grid")
	}
	rows, cols := g.Dimensions()

	p := plot.New()
	p.Title.Text = "Occupancy grid"
	p.X.Label.Text = "col"
	p.Y.Label.Text = "row"
	p.X.Min, p.X.Max = -0.5, float64(cols)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(rows)-0.5
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	var obstacles plotter.XYs
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.IsObstacle(grid.NewCell(r, c)) {
				obstacles = append(obstacles, cellXY(grid.NewCell(r, c)))
			}
		}
	}
	if len(obstacles) > 0 {
		scatter, err := plotter.NewScatter(obstacles)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Shape = draw.BoxGlyph{}
		scatter.GlyphStyle.Color = obstacleColor
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)
		p.Legend.Add("obstacle", scatter)
	}

	if plan == nil || len(plan.Path) == 0 {
		return p, nil
	}
	p.Title.Text = plan.State.String()
	xys := make(plotter.XYs, len(plan.Path))
	for i, cell := range plan.Path {
		xys[i] = cellXY(cell)
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = pathStartColor
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("path", line)

	endpoints, err := plotter.NewScatter(plotter.XYs{cellXY(plan.Start), cellXY(plan.Goal)})
	if err != nil {
		return nil, err
	}
	endpoints.GlyphStyle.Shape = draw.CircleGlyph{}
	endpoints.GlyphStyle.Color = color.Black
	endpoints.GlyphStyle.Radius = vg.Points(4)
	p.Add(endpoints)
	return p, nil
}

// SavePlot plots the grid and plan and writes the plot to `path`. The file extension selects the
// format (svg, pdf, png, ...). `inches` is the side of the square plot.
func SavePlot(path string, g *grid.Grid, plan *motionplan.Plan, inches float64) error {
	p, err := PlotPath(g, plan)
	if err != nil {
		return err
	}
	if inches <= 0 {
		inches = 6
	}
	side := vg.Length(inches) * vg.Inch
	return errors.Wrapf(p.Save(side, side, path), "failed to save plot %q", path)
}

func cellXY(c grid.Cell) plotter.XY {
	return plotter.XY{X: float64(c.Col), Y: float64(c.Row)}
}
