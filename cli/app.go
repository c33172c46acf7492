// Package cli contains the gridplan command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	generalFlagDebug   = "debug"
	generalFlagLogFile = "log-file"

	logFileMaxSizeMB = 10

	planFlagConfig        = "config"
	planFlagMap           = "map"
	planFlagFormat        = "format"
	planFlagInvert        = "invert"
	planFlagStart         = "start"
	planFlagGoal          = "goal"
	planFlagMaxIterations = "max-iterations"
	planFlagStrict        = "strict"
	planFlagPathCSV       = "path-csv"
	planFlagStepGridCSV   = "step-grid-csv"
	planFlagImage         = "image"
	planFlagPlot          = "plot"
	planFlagCellSize      = "cell-size"

	inspectFlagBins    = "bins"
	inspectFlagPreview = "preview"

	benchFlagRuns     = "runs"
	benchFlagRows     = "rows"
	benchFlagCols     = "cols"
	benchFlagDensity  = "density"
	benchFlagSeed     = "seed"
	benchFlagParallel = "parallel"
)

func mapFlags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:    planFlagMap,
			Aliases: []string{"m"},
			Usage:   "occupancy map `FILE` (json, csv, txt or an image)",
		},
		&cli.StringFlag{
			Name:  planFlagFormat,
			Usage: "map format: json, csv, text or image. Inferred from the extension when unset",
		},
		&cli.BoolFlag{
			Name:  planFlagInvert,
			Usage: "treat bright image pixels as obstacles",
		},
	}
}

// NewApp returns a new app with the CLI command and subcommands.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "gridplan",
		Usage:           "plan paths across occupancy grids",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		// Run returns every error to the caller, main decides how to exit.
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.PathFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to `FILE`, rotated once it grows past 10MB",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "plan",
				Usage:     "plan a path from a scenario file or from flags",
				UsageText: "gridplan plan --config <scenario.json> | --map <file> --start <row,col> --goal <row,col>",
				Flags: append([]cli.Flag{
					&cli.PathFlag{
						Name:    planFlagConfig,
						Aliases: []string{"c"},
						Usage:   "load the scenario from `FILE`",
					},
					&cli.StringFlag{
						Name:  planFlagStart,
						Usage: "start cell as `ROW,COL`",
					},
					&cli.StringFlag{
						Name:  planFlagGoal,
						Usage: "goal cell as `ROW,COL`",
					},
					&cli.IntFlag{
						Name:  planFlagMaxIterations,
						Usage: "iteration cap, 0 derives it from the map size",
					},
					&cli.BoolFlag{
						Name:  planFlagStrict,
						Usage: "exit non-zero when no complete path is found",
					},
					&cli.PathFlag{
						Name:  planFlagPathCSV,
						Usage: "write the path as step,row,col CSV to `FILE`",
					},
					&cli.PathFlag{
						Name:  planFlagStepGridCSV,
						Usage: "write the step index grid as CSV to `FILE`",
					},
					&cli.PathFlag{
						Name:  planFlagImage,
						Usage: "render the map and path as a PNG to `FILE`",
					},
					&cli.PathFlag{
						Name:  planFlagPlot,
						Usage: "plot the map and path to `FILE` (svg, pdf, png)",
					},
					&cli.IntFlag{
						Name:  planFlagCellSize,
						Usage: "pixels per cell in rendered images",
					},
				}, mapFlags()...),
				Action: PlanAction,
			},
			{
				Name:  "inspect",
				Usage: "print statistics about an occupancy map",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  inspectFlagBins,
						Value: 10,
						Usage: "number of histogram buckets",
					},
					&cli.BoolFlag{
						Name:  inspectFlagPreview,
						Usage: "print the map as text",
					},
				}, mapFlags()...),
				Action: InspectAction,
			},
			{
				Name:  "bench",
				Usage: "plan across random maps and report statistics",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  benchFlagRuns,
						Value: 20,
						Usage: "number of random maps",
					},
					&cli.IntFlag{
						Name:  benchFlagRows,
						Value: 40,
						Usage: "rows per map",
					},
					&cli.IntFlag{
						Name:  benchFlagCols,
						Value: 40,
						Usage: "columns per map",
					},
					&cli.Float64Flag{
						Name:  benchFlagDensity,
						Value: 0.7,
						Usage: "probability that a random walk step lays an obstacle",
					},
					&cli.Int64Flag{
						Name:  benchFlagSeed,
						Value: 1,
						Usage: "seed of the first map, each run adds its index",
					},
					&cli.IntFlag{
						Name:  benchFlagParallel,
						Value: 4,
						Usage: "number of searches to run at once",
					},
					&cli.IntFlag{
						Name:  planFlagMaxIterations,
						Usage: "iteration cap, 0 derives it from the map size",
					},
				},
				Action: BenchAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of scenario files",
				Action: SchemaAction,
			},
			{
				Name:   "version",
				Usage:  "print version info for this program",
				Action: VersionAction,
			},
		},
	}
}
