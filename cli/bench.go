package cli

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/motionplan"
)

type benchResult struct {
	id         string
	seed       int64
	state      motionplan.State
	steps      int
	cost       float64
	iterations int
	duration   time.Duration
}

type benchConfig struct {
	runs     int
	rows     int
	cols     int
	seed     int64
	parallel int
	walks    grid.RandomOptions
	opts     *motionplan.PlannerOptions
}

func benchConfigFromFlags(c *cli.Context) (*benchConfig, error) {
	cfg := &benchConfig{
		runs:     c.Int(benchFlagRuns),
		rows:     c.Int(benchFlagRows),
		cols:     c.Int(benchFlagCols),
		seed:     c.Int64(benchFlagSeed),
		parallel: c.Int(benchFlagParallel),
	}
	if cfg.runs <= 0 {
		return nil, errors.Errorf("--%s must be positive, got %d", benchFlagRuns, cfg.runs)
	}
	if cfg.parallel <= 0 {
		return nil, errors.Errorf("--%s must be positive, got %d", benchFlagParallel, cfg.parallel)
	}
	cfg.walks = grid.DefaultRandomOptions(cfg.rows, cfg.cols)
	cfg.walks.Density = c.Float64(benchFlagDensity)

	extra := map[string]interface{}{}
	if c.IsSet(planFlagMaxIterations) {
		extra["max_iterations"] = c.Int(planFlagMaxIterations)
	}
	opts, err := motionplan.NewPlannerOptionsFromExtra(extra)
	if err != nil {
		return nil, err
	}
	cfg.opts = opts
	return cfg, nil
}

// BenchAction plans corner to corner across a series of seeded random maps and prints outcome
// counts along with iteration, cost and duration statistics.
func BenchAction(c *cli.Context) error {
	logger, closeLog := newLogger(c)
	defer closeLog()
	cfg, err := benchConfigFromFlags(c)
	if err != nil {
		return err
	}
	results, err := runBench(c, logger, cfg)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", benchSummary(cfg, results))
	return nil
}

func runBench(c *cli.Context, logger logging.Logger, cfg *benchConfig) ([]benchResult, error) {
	runLogger := logger.Sublogger("bench")
	if !c.Bool(generalFlagDebug) {
		runLogger.SetLevel(logging.ERROR)
	}
	start, goal := grid.NewCell(0, 0), grid.NewCell(cfg.rows-1, cfg.cols-1)

	var mu sync.Mutex
	results := make([]benchResult, 0, cfg.runs)
	eg, ctx := errgroup.WithContext(c.Context)
	eg.SetLimit(cfg.parallel)
	for i := 0; i < cfg.runs; i++ {
		seed := cfg.seed + int64(i)
		eg.Go(func() error {
			//nolint:gosec
			g, err := grid.Random(rand.New(rand.NewSource(seed)), cfg.rows, cfg.cols, cfg.walks, start, goal)
			if err != nil {
				return err
			}
			plan, err := motionplan.PlanPath(ctx, runLogger, &motionplan.PlanRequest{
				Grid:           g,
				Start:          start,
				Goal:           goal,
				PlannerOptions: cfg.opts,
			})
			if errors.Is(err, motionplan.ErrInvalidInput) {
				return err
			}
			result := benchResult{
				id:         uuid.NewString(),
				seed:       seed,
				state:      plan.State,
				steps:      plan.Steps(),
				cost:       plan.Cost,
				iterations: plan.Iterations,
				duration:   plan.Duration,
			}
			runLogger.Debugw("run complete", "id", result.id, "seed", seed, "state", result.state.String())
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func benchSummary(cfg *benchConfig, results []benchResult) string {
	byState := lo.GroupBy(results, func(r benchResult) motionplan.State { return r.state })
	found := byState[motionplan.GoalReached]

	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("%d runs on %dx%d maps from seed %d", len(results), cfg.rows, cfg.cols, cfg.seed))
	t.AppendHeader(table.Row{"Metric", "Mean", "Median", "P95", "Max"})
	t.AppendRow(summaryRow("iterations", lo.Map(results, func(r benchResult, _ int) float64 {
		return float64(r.iterations)
	})))
	t.AppendRow(summaryRow("duration (ms)", lo.Map(results, func(r benchResult, _ int) float64 {
		return float64(r.duration.Microseconds()) / 1000
	})))
	t.AppendRow(summaryRow("cost (found)", lo.Map(found, func(r benchResult, _ int) float64 { return r.cost })))
	t.AppendRow(summaryRow("steps (found)", lo.Map(found, func(r benchResult, _ int) float64 { return float64(r.steps) })))
	t.AppendSeparator()
	for _, state := range []motionplan.State{
		motionplan.GoalReached,
		motionplan.IterationLimitExceeded,
		motionplan.Exhausted,
	} {
		t.AppendRow(table.Row{state.String(), len(byState[state]), "", "", ""})
	}
	return t.Render()
}

func summaryRow(name string, data []float64) table.Row {
	if len(data) == 0 {
		return table.Row{name, "-", "-", "-", "-"}
	}
	format := func(f func(stats.Float64Data) (float64, error)) string {
		v, err := f(data)
		if err != nil {
			return "-"
		}
		return fmt.Sprintf("%.2f", v)
	}
	p95 := func(d stats.Float64Data) (float64, error) { return stats.Percentile(d, 95) }
	return table.Row{name, format(stats.Mean), format(stats.Median), format(p95), format(stats.Max)}
}
