package motionplan

import (
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/utils"
)

// iterationCapExponent is the power the half row count is raised to for the default cap.
const iterationCapExponent = 10

// defaultMaxIterations is the cap applied by NewBasicPlannerOptions. Zero means the cap is
// derived from the grid size.
var defaultMaxIterations = 0

func init() {
	defaultMaxIterations = maxIterationsFromEnv(logging.Global())
}

// maxIterationsFromEnv reads the default cap from the environment. Negative values would make
// every option set fail validation, so they are ignored with a warning.
func maxIterationsFromEnv(logger logging.Logger) int {
	maxIterations := utils.GetenvInt(utils.MaxIterationsEnvVar, 0)
	if maxIterations < 0 {
		logger.Warnw("ignoring negative iteration cap from the environment",
			"name", utils.MaxIterationsEnvVar, "value", maxIterations)
		return 0
	}
	return maxIterations
}

// DefaultMaxIterations returns the iteration cap used for a grid with `rows` rows when no explicit
// cap is configured: (rows / 2) ** 10, saturating at math.MaxInt.
func DefaultMaxIterations(rows int) int {
	return utils.SaturatingPowInt(rows/2, iterationCapExponent)
}

// NewBasicPlannerOptions specifies a set of basic options for the planner.
func NewBasicPlannerOptions() *PlannerOptions {
	return &PlannerOptions{MaxIterations: defaultMaxIterations}
}

// PlannerOptions are a set of options to be passed to a planner which will specify how to solve
// a search.
type PlannerOptions struct {
	// MaxIterations bounds the number of frontier selections. Zero derives the cap from the grid
	// size with DefaultMaxIterations.
	MaxIterations int `json:"max_iterations"`
}

// NewPlannerOptionsFromExtra returns basic default settings updated by overridden parameters
// found in the "extra" of a request. Unknown keys are rejected.
func NewPlannerOptionsFromExtra(extra map[string]interface{}) (*PlannerOptions, error) {
	opt := NewBasicPlannerOptions()
	if len(extra) == 0 {
		return opt, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           opt,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(extra); err != nil {
		return nil, errors.Wrap(err, "failed to decode planner options")
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return opt, nil
}

// Validate checks the options for values no search can honor.
func (p *PlannerOptions) Validate() error {
	if p.MaxIterations < 0 {
		return errors.Wrapf(ErrInvalidInput, "max_iterations can't be negative, got %d", p.MaxIterations)
	}
	return nil
}

// maxIterationsFor resolves the iteration cap for a grid with `rows` rows.
func (p *PlannerOptions) maxIterationsFor(rows int) int {
	if p.MaxIterations > 0 {
		return p.MaxIterations
	}
	return DefaultMaxIterations(rows)
}
