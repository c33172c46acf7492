package grid

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"image"
	// Register decoders for the image formats maps are commonly drawn in.
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/lmittmann/ppm" // register ppm
	"github.com/pkg/errors"
)

// Format names an on-disk occupancy map encoding.
type Format string

// The supported map formats.
const (
	FormatJSON  = Format("json")
	FormatCSV   = Format("csv")
	FormatText  = Format("text")
	FormatImage = Format("image")
)

// FormatFromPath guesses the map format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".txt", ".map":
		return FormatText, nil
	case ".png", ".jpg", ".jpeg", ".ppm", ".pgm":
		return FormatImage, nil
	default:
		return "", errors.Errorf("cannot infer map format from extension %q", ext)
	}
}

// FromJSON reads a map encoded as a JSON array of arrays of numbers.
func FromJSON(r io.Reader) (*Grid, error) {
	var scores [][]float64
	if err := json.NewDecoder(r).Decode(&scores); err != nil {
		return nil, errors.Wrap(err, "failed to decode occupancy map from json")
	}
	return New(scores)
}

// FromCSV reads a map with one row per record. Ragged records are reported as a *ShapeError.
func FromCSV(r io.Reader) (*Grid, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read occupancy map csv")
	}
	scores := make([][]float64, 0, len(records))
	for i, record := range records {
		row := make([]float64, 0, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "bad score at row %d column %d", i, j)
			}
			row = append(row, v)
		}
		scores = append(scores, row)
	}
	return New(scores)
}

// FromText reads an ASCII map. '#' is an obstacle (1.0), '.' is free (0.0) and a digit d is the
// score d/10. Blank lines and whitespace within a line are ignored.
func FromText(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	var scores [][]float64
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row := make([]float64, 0, len(line))
		for _, ch := range line {
			switch {
			case ch == '#':
				row = append(row, 1)
			case ch == '.':
				row = append(row, 0)
			case ch >= '0' && ch <= '9':
				row = append(row, float64(ch-'0')/10)
			case ch == ' ' || ch == '\t':
			default:
				return nil, errors.Errorf("unexpected character %q on line %d", ch, lineNum)
			}
		}
		scores = append(scores, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read occupancy map text")
	}
	return New(scores)
}

// ImageOptions controls how an image is turned into a map.
type ImageOptions struct {
	// Invert treats bright pixels as obstacles instead of dark ones.
	Invert bool
	// Width and Height resample the image before conversion. Zero keeps the source size, and
	// setting only one of them preserves the aspect ratio.
	Width  int
	Height int
}

// FromImage reads a map from any registered image format. Each pixel is converted to grayscale
// and a pixel value v becomes the score 1 - v/255, so black is an obstacle and white is free.
func FromImage(r io.Reader, opts ImageOptions) (*Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode occupancy map image")
	}
	return FromDecodedImage(img, opts)
}

// FromDecodedImage converts an already decoded image. See FromImage.
func FromDecodedImage(img image.Image, opts ImageOptions) (*Grid, error) {
	if opts.Width < 0 || opts.Height < 0 {
		return nil, errors.Errorf("image size must not be negative, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Width > 0 || opts.Height > 0 {
		img = imaging.Resize(img, opts.Width, opts.Height, imaging.NearestNeighbor)
	}
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()

	scores := make([][]float64, bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		scores[y] = make([]float64, bounds.Dx())
		for x := 0; x < bounds.Dx(); x++ {
			v := float64(gray.NRGBAAt(bounds.Min.X+x, bounds.Min.Y+y).R) / 255
			if opts.Invert {
				scores[y][x] = v
			} else {
				scores[y][x] = 1 - v
			}
		}
	}
	return New(scores)
}

// ReadFile loads a map from disk. An empty format is inferred from the file extension.
func ReadFile(path string, format Format, opts ImageOptions) (*Grid, error) {
	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	}

	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var g *Grid
	switch format {
	case FormatJSON:
		g, err = FromJSON(f)
	case FormatCSV:
		g, err = FromCSV(f)
	case FormatText:
		g, err = FromText(f)
	case FormatImage:
		g, err = FromImage(f, opts)
	default:
		return nil, errors.Errorf("unknown map format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load map %q", path)
	}
	return g, nil
}
