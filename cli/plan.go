package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"go.viam.com/gridplan/config"
	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/motionplan"
	"go.viam.com/gridplan/utils"
	"go.viam.com/gridplan/visualize"
)

// newLogger returns the command's logger and a function that releases its log file, if any.
func newLogger(c *cli.Context) (logging.Logger, func()) {
	logger := logging.NewWriterLogger("gridplan", c.App.ErrWriter)
	if c.Bool(generalFlagDebug) {
		logger.SetLevel(logging.DEBUG)
	}
	path := c.Path(generalFlagLogFile)
	if path == "" {
		return logger, func() {}
	}
	appender := logging.NewFileAppender(path, logFileMaxSizeMB)
	logger.AddAppender(appender)
	return logger, func() {
		utils.UncheckedError(appender.Close())
	}
}

// parseCell parses a cell written as "row,col".
func parseCell(s string) (grid.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return grid.Cell{}, errors.Errorf("cell %q must be written as row,col", s)
	}
	row, err := cast.ToIntE(strings.TrimSpace(parts[0]))
	if err != nil {
		return grid.Cell{}, errors.Wrapf(err, "bad row in cell %q", s)
	}
	col, err := cast.ToIntE(strings.TrimSpace(parts[1]))
	if err != nil {
		return grid.Cell{}, errors.Wrapf(err, "bad column in cell %q", s)
	}
	return grid.NewCell(row, col), nil
}

// flagPath returns a path flag's value. Paths given on the command line are relative to the
// working directory, so they are made absolute before a scenario file's directory can apply.
func flagPath(c *cli.Context, cfg *config.Config, flag string) string {
	path := c.Path(flag)
	if cfg.ConfigFilePath == "" {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// scenarioFromFlags reads the scenario file if one is given and applies flag overrides on top.
func scenarioFromFlags(c *cli.Context, logger logging.Logger) (*config.Config, error) {
	cfg := &config.Config{}
	if path := c.Path(planFlagConfig); path != "" {
		var err error
		if cfg, err = config.Read(path, logger); err != nil {
			return nil, err
		}
	}

	if c.IsSet(planFlagMap) {
		cfg.Map = config.MapConfig{Path: flagPath(c, cfg, planFlagMap), Format: grid.Format(c.String(planFlagFormat))}
	}
	if c.IsSet(planFlagInvert) {
		cfg.Map.Invert = c.Bool(planFlagInvert)
	}
	for _, endpoint := range []struct {
		flag string
		dst  **grid.Cell
	}{{planFlagStart, &cfg.Start}, {planFlagGoal, &cfg.Goal}} {
		if !c.IsSet(endpoint.flag) {
			continue
		}
		cell, err := parseCell(c.String(endpoint.flag))
		if err != nil {
			return nil, err
		}
		*endpoint.dst = &cell
	}
	if c.IsSet(planFlagMaxIterations) {
		if cfg.PlannerOptions == nil {
			cfg.PlannerOptions = map[string]interface{}{}
		}
		cfg.PlannerOptions["max_iterations"] = c.Int(planFlagMaxIterations)
	}
	for flag, dst := range map[string]*string{
		planFlagPathCSV:     &cfg.Output.PathCSV,
		planFlagStepGridCSV: &cfg.Output.StepGridCSV,
		planFlagImage:       &cfg.Output.Image,
		planFlagPlot:        &cfg.Output.Plot,
	} {
		if c.IsSet(flag) {
			*dst = flagPath(c, cfg, flag)
		}
	}
	if c.IsSet(planFlagCellSize) {
		cfg.Output.CellSize = c.Int(planFlagCellSize)
	}
	if c.Bool(generalFlagDebug) {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PlanAction plans a single path and reports the outcome. A missing path only fails the command
// with --strict.
func PlanAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	cfg, err := scenarioFromFlags(c, logger)
	if err != nil {
		return err
	}
	req, err := cfg.PlanRequest()
	if err != nil {
		return err
	}

	ctx := c.Context
	if cfg.Debug {
		ctx = logging.EnableDebugMode(ctx, "")
	}
	plan, planErr := motionplan.PlanPath(ctx, logger, req)
	switch {
	case planErr == nil:
		successf(c.App.Writer, "found a path of %d steps with cost %.3f in %d iterations",
			plan.Steps(), plan.Cost, plan.Iterations)
	case errors.Is(planErr, motionplan.ErrIterationLimitExceeded):
		warningf(c.App.Writer, "iteration limit of %d reached, best-effort path ends at %v",
			plan.MaxIterations, plan.Path[len(plan.Path)-1])
	case errors.Is(planErr, motionplan.ErrNotFound):
		warningf(c.App.Writer, "no path from %v to %v after expanding %d cells",
			req.Start, req.Goal, plan.Expanded)
	default:
		return planErr
	}
	if len(plan.Path) > 0 {
		printf(c.App.Writer, "%s", plan.String())
	}

	if err := writeOutputs(c.App.Writer, cfg, req.Grid, plan); err != nil {
		return err
	}
	if c.Bool(planFlagStrict) {
		return planErr
	}
	return nil
}

func writeOutputs(w io.Writer, cfg *config.Config, g *grid.Grid, plan *motionplan.Plan) error {
	out := cfg.Output
	writers := []struct {
		path  string
		write func(path string) error
	}{
		{out.PathCSV, func(path string) error {
			return writeFile(path, func(f io.Writer) error { return visualize.WritePathCSV(f, plan.Path) })
		}},
		{out.StepGridCSV, func(path string) error {
			return writeFile(path, func(f io.Writer) error { return visualize.WriteStepGridCSV(f, plan.StepIndexGrid()) })
		}},
		{out.Image, func(path string) error {
			return visualize.SavePNG(path, g, plan, out.RenderOptions())
		}},
		{out.Plot, func(path string) error {
			return visualize.SavePlot(path, g, plan, 0)
		}},
	}
	for _, writer := range writers {
		if writer.path == "" {
			continue
		}
		path := cfg.ResolvePath(writer.path)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return err
		}
		if err := writer.write(path); err != nil {
			return err
		}
		infof(w, "wrote %s", path)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	return write(f)
}
