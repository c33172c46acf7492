package motionplan

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/logging"
)

// PlanRequest is a struct to store all the data necessary to make a call to PlanPath.
type PlanRequest struct {
	Grid           *grid.Grid
	Start          grid.Cell
	Goal           grid.Cell
	PlannerOptions *PlannerOptions
}

// validate checks the request and returns the options to plan with. The request itself is left
// untouched, so a nil PlannerOptions stays nil for the caller.
func (req *PlanRequest) validate() (*PlannerOptions, error) {
	if req == nil {
		return nil, errors.Wrap(ErrInvalidInput, "PlanRequest cannot be nil")
	}
	if req.Grid == nil {
		return nil, errors.Wrap(ErrInvalidInput, "PlanRequest cannot have nil grid")
	}
	opts := req.PlannerOptions
	if opts == nil {
		opts = NewBasicPlannerOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// PlanPath plans a path across the request's grid and logs the outcome. It returns the same plan
// and error as Planner.Plan, with Duration filled in.
func PlanPath(ctx context.Context, logger logging.Logger, request *PlanRequest) (*Plan, error) {
	return newPlanManager(logger, clock.New()).planPath(ctx, request)
}

// planManager is the single entry point to the planner for callers that want tracing, timing and
// logging around a search.
type planManager struct {
	logger logging.Logger
	clock  clock.Clock
}

func newPlanManager(logger logging.Logger, clk clock.Clock) *planManager {
	return &planManager{logger: logger, clock: clk}
}

func (pm *planManager) planPath(ctx context.Context, request *PlanRequest) (*Plan, error) {
	ctx, span := trace.StartSpan(ctx, "motionplan::PlanPath")
	defer span.End()

	opts, err := request.validate()
	if err != nil {
		return nil, err
	}
	planner, err := NewPlanner(request.Grid, opts)
	if err != nil {
		return nil, err
	}
	rows, cols := request.Grid.Dimensions()
	span.AddAttributes(
		trace.Int64Attribute("rows", int64(rows)),
		trace.Int64Attribute("cols", int64(cols)),
		trace.Int64Attribute("max_iterations", int64(planner.MaxIterations())),
	)
	pm.logger.CDebugw(ctx, "planning", "start", request.Start, "goal", request.Goal,
		"rows", rows, "cols", cols, "max_iterations", planner.MaxIterations())

	startTime := pm.clock.Now()
	plan, err := planner.Plan(request.Start, request.Goal)
	if plan != nil {
		plan.Duration = pm.clock.Since(startTime)
		span.AddAttributes(
			trace.StringAttribute("state", plan.State.String()),
			trace.Int64Attribute("iterations", int64(plan.Iterations)),
		)
	}

	switch {
	case err == nil:
		pm.logger.Infow("plan found", "steps", plan.Steps(), "cost", plan.Cost,
			"iterations", plan.Iterations, "duration", plan.Duration)
	case errors.Is(err, ErrIterationLimitExceeded):
		pm.logger.Warnw("returning best-effort plan", "error", err, "steps", plan.Steps(),
			"end", plan.Path[len(plan.Path)-1], "iterations", plan.Iterations)
	case errors.Is(err, ErrNotFound):
		pm.logger.Infow("no path exists", "start", request.Start, "goal", request.Goal,
			"expanded", plan.Expanded, "duration", plan.Duration)
	default:
		pm.logger.Debugw("planning rejected", "error", err)
		span.SetStatus(trace.Status{Code: trace.StatusCodeInvalidArgument, Message: err.Error()})
	}
	return plan, err
}
