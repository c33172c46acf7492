// Package config defines the JSON scenario files the command line tools plan from.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/motionplan"
	"go.viam.com/gridplan/utils"
	"go.viam.com/gridplan/visualize"
)

// Config describes one planning scenario: the map, the endpoints, planner options and the
// artifacts to write.
type Config struct {
	// ConfigFilePath is the file the config was read from. Relative paths inside the config are
	// resolved against its directory.
	ConfigFilePath string `json:"-"`

	Map            MapConfig              `json:"map"`
	Start          *grid.Cell             `json:"start"`
	Goal           *grid.Cell             `json:"goal"`
	PlannerOptions map[string]interface{} `json:"planner_options,omitempty"`
	Output         OutputConfig           `json:"output,omitempty"`
	Debug          bool                   `json:"debug,omitempty"`
}

// MapConfig describes where the occupancy map lives and how to read it.
type MapConfig struct {
	Path   string      `json:"path"`
	Format grid.Format `json:"format,omitempty"`
	Invert bool        `json:"invert,omitempty"`
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
}

// OutputConfig lists the artifacts to write after planning. Empty paths are skipped.
type OutputConfig struct {
	PathCSV     string `json:"path_csv,omitempty"`
	StepGridCSV string `json:"step_grid_csv,omitempty"`
	Image       string `json:"image,omitempty"`
	Plot        string `json:"plot,omitempty"`
	CellSize    int    `json:"cell_size,omitempty"`
}

// Validate ensures all parts of the config are valid. All problems are reported together.
func (c *Config) Validate() error {
	var errs error
	errs = multierr.Append(errs, c.Map.Validate("map"))
	if c.Start == nil {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError("scenario", "start"))
	}
	if c.Goal == nil {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError("scenario", "goal"))
	}
	if _, err := c.Options(); err != nil {
		errs = multierr.Append(errs, utils.NewConfigValidationError("planner_options", err))
	}
	errs = multierr.Append(errs, c.Output.Validate("output"))
	return errs
}

// Validate ensures all parts of the map config are valid.
func (m *MapConfig) Validate(path string) error {
	var errs error
	if m.Path == "" {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(path, "path"))
	}
	switch m.Format {
	case "", grid.FormatJSON, grid.FormatCSV, grid.FormatText, grid.FormatImage:
	default:
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.Errorf("unknown format %q", m.Format)))
	}
	if m.Width < 0 || m.Height < 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.Errorf("width and height must not be negative, got %dx%d", m.Width, m.Height)))
	}
	return errs
}

// Validate ensures all parts of the output config are valid.
func (o *OutputConfig) Validate(path string) error {
	if o.CellSize < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("cell_size must not be negative, got %d", o.CellSize))
	}
	return nil
}

// Options decodes the planner options.
func (c *Config) Options() (*motionplan.PlannerOptions, error) {
	return motionplan.NewPlannerOptionsFromExtra(c.PlannerOptions)
}

// ResolvePath makes `p` relative to the config file's directory unless it is absolute.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.ConfigFilePath == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.ConfigFilePath), p)
}

// LoadGrid reads the configured map.
func (c *Config) LoadGrid() (*grid.Grid, error) {
	return grid.ReadFile(c.ResolvePath(c.Map.Path), c.Map.Format, grid.ImageOptions{
		Invert: c.Map.Invert,
		Width:  c.Map.Width,
		Height: c.Map.Height,
	})
}

// PlanRequest loads the map and builds the request the config describes.
func (c *Config) PlanRequest() (*motionplan.PlanRequest, error) {
	g, err := c.LoadGrid()
	if err != nil {
		return nil, err
	}
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	return &motionplan.PlanRequest{
		Grid:           g,
		Start:          *c.Start,
		Goal:           *c.Goal,
		PlannerOptions: opts,
	}, nil
}

// RenderOptions returns the image rendering options for the configured outputs.
func (o *OutputConfig) RenderOptions() visualize.RenderOptions {
	return visualize.RenderOptions{CellSize: o.CellSize, StepLabels: true}
}

func (c *Config) String() string {
	start, goal := "<unset>", "<unset>"
	if c.Start != nil {
		start = c.Start.String()
	}
	if c.Goal != nil {
		goal = c.Goal.String()
	}
	return fmt.Sprintf("%s %s -> %s", c.Map.Path, start, goal)
}
