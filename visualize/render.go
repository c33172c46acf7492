package visualize

import (
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"

	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/motionplan"
)

var (
	font               *truetype.Font
	pathStart, pathEnd colorful.Color
)

// init sets up the fonts and path gradient we want to use.
func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	var startOK, endOK bool
	pathStart, startOK = colorful.MakeColor(pathStartColor)
	pathEnd, endOK = colorful.MakeColor(pathEndColor)
	if !startOK || !endOK {
		panic(errors.New("path colors must be opaque"))
	}
}

var (
	obstacleColor  = color.NRGBA{0x20, 0x20, 0x20, 0xff}
	pathStartColor = color.NRGBA{0x1f, 0x77, 0xb4, 0xff}
	pathEndColor   = color.NRGBA{0x94, 0x67, 0xbd, 0xff}
	startColor     = color.NRGBA{0x2c, 0xa0, 0x2c, 0xff}
	goalColor      = color.NRGBA{0xd6, 0x27, 0x28, 0xff}
	labelColor     = color.White
	gridLineColor  = color.NRGBA{0xc0, 0xc0, 0xc0, 0xff}
)

// DefaultCellSize is the side of one grid cell in pixels when none is configured.
const DefaultCellSize = 16

// RenderOptions controls RenderImage.
type RenderOptions struct {
	// CellSize is the side of one cell in pixels.
	CellSize int
	// StepLabels writes each path cell's step index inside it. Labels are skipped when cells are
	// too small to hold them.
	StepLabels bool
}

// RenderImage draws the grid with free cells shaded by score, obstacles in dark gray and, if
// `plan` is not nil, its path with the start and goal highlighted.
func RenderImage(g *grid.Grid, plan *motionplan.Plan, opts RenderOptions) (image.Image, error) {
	if g == nil {
		return nil, errors.New("cannot render a nil grid")
	}
	size := opts.CellSize
	if size == 0 {
		size = DefaultCellSize
	}
	if size < 0 {
		return nil, errors.Errorf("cell size must be positive, got %d", size)
	}
	rows, cols := g.Dimensions()
	dc := gg.NewContext(cols*size, rows*size)
	dc.SetColor(color.White)
	dc.Clear()

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := grid.NewCell(r, c)
			if g.IsObstacle(cell) {
				fillCell(dc, cell, size, obstacleColor)
				continue
			}
			// Darker cells are harder to traverse.
			shade := uint8(255 * (1 - clamp01(g.Score(cell))))
			fillCell(dc, cell, size, color.Gray{Y: shade})
		}
	}
	if size >= 4 {
		dc.SetColor(gridLineColor)
		dc.SetLineWidth(1)
		for r := 0; r <= rows; r++ {
			dc.DrawLine(0, float64(r*size), float64(cols*size), float64(r*size))
		}
		for c := 0; c <= cols; c++ {
			dc.DrawLine(float64(c*size), 0, float64(c*size), float64(rows*size))
		}
		dc.Stroke()
	}

	if plan == nil {
		return dc.Image(), nil
	}
	for step, cell := range plan.Path {
		fillCell(dc, cell, size, pathColor(step, len(plan.Path)))
	}
	if g.InBounds(plan.Start) {
		fillCell(dc, plan.Start, size, startColor)
	}
	if g.InBounds(plan.Goal) {
		fillCell(dc, plan.Goal, size, goalColor)
	}
	if opts.StepLabels && size >= 12 {
		dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: float64(size) / 2}))
		dc.SetColor(labelColor)
		for step, cell := range plan.Path {
			x := float64(cell.Col*size) + float64(size)/2
			y := float64(cell.Row*size) + float64(size)/2
			dc.DrawStringAnchored(strconv.Itoa(step), x, y, 0.5, 0.5)
		}
	}
	return dc.Image(), nil
}

// SavePNG renders the grid and plan and writes the image to `path`.
func SavePNG(path string, g *grid.Grid, plan *motionplan.Plan, opts RenderOptions) error {
	img, err := RenderImage(g, plan, opts)
	if err != nil {
		return err
	}
	return errors.Wrapf(gg.SavePNG(path, img), "failed to save image %q", path)
}

// pathColor shades step `step` of an `n` cell path, blending from pathStartColor to pathEndColor
// in Lab space so the direction of travel stays readable without labels.
func pathColor(step, n int) color.NRGBA {
	t := 0.
	if n > 1 {
		t = float64(step) / float64(n-1)
	}
	r, g, b := pathStart.BlendLab(pathEnd, t).Clamped().RGB255()
	return color.NRGBA{r, g, b, 0xff}
}

func fillCell(dc *gg.Context, cell grid.Cell, size int, c color.Color) {
	dc.SetColor(c)
	dc.DrawRectangle(float64(cell.Col*size), float64(cell.Row*size), float64(size), float64(size))
	dc.Fill()
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
