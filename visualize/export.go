// Package visualize turns plans into artifacts for plotting and trajectory-following tools:
// CSV exports, raster images, vector plots and text histograms.
package visualize

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/gridplan/grid"
)

// WritePathCSV writes `path` as CSV with a `step,row,col` header, one line per cell.
func WritePathCSV(w io.Writer, path []grid.Cell) error {
	records := [][]string{{"step", "row", "col"}}
	records = append(records, lo.Map(path, func(c grid.Cell, step int) []string {
		return []string{strconv.Itoa(step), strconv.Itoa(c.Row), strconv.Itoa(c.Col)}
	})...)
	return writeCSV(w, records)
}

// WriteStepGridCSV writes a step index grid as CSV, one record per grid row.
func WriteStepGridCSV(w io.Writer, steps [][]int) error {
	records := lo.Map(steps, func(row []int, _ int) []string {
		return lo.Map(row, func(v, _ int) string { return strconv.Itoa(v) })
	})
	return writeCSV(w, records)
}

func writeCSV(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return errors.Wrap(err, "failed to write csv")
	}
	return nil
}
