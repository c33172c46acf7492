package config

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/gridplan/grid"
	"go.viam.com/gridplan/logging"
	"go.viam.com/gridplan/motionplan"
	"go.viam.com/gridplan/testutils"
)

const scenarioJSON = `{
	"map": {"path": "maze.txt"},
	"start": [0, 0],
	"goal": [2, 3],
	"planner_options": {"max_iterations": 500},
	"output": {"path_csv": "out/path.csv", "cell_size": 12},
	"debug": true
}`

func TestFromReader(t *testing.T) {
	logger := logging.NewTestLogger(t)
	cfg, err := FromReader("/scenarios/maze.json", strings.NewReader(scenarioJSON), logger)
	test.That(t, err, test.ShouldBeNil)

	start, goal := grid.NewCell(0, 0), grid.NewCell(2, 3)
	expected := &Config{
		ConfigFilePath: "/scenarios/maze.json",
		Map:            MapConfig{Path: "maze.txt"},
		Start:          &start,
		Goal:           &goal,
		PlannerOptions: map[string]interface{}{"max_iterations": 500.0},
		Output:         OutputConfig{PathCSV: "out/path.csv", CellSize: 12},
		Debug:          true,
	}
	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	opts, err := cfg.Options()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, opts.MaxIterations, test.ShouldEqual, 500)
	test.That(t, cfg.ResolvePath(cfg.Output.PathCSV), test.ShouldEqual, filepath.FromSlash("/scenarios/out/path.csv"))
	test.That(t, cfg.ResolvePath("/abs/map.csv"), test.ShouldEqual, "/abs/map.csv")
	test.That(t, cfg.String(), test.ShouldEqual, "maze.txt (0, 0) -> (2, 3)")
	test.That(t, cfg.Output.RenderOptions().CellSize, test.ShouldEqual, 12)
}

func TestFromReaderErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)

	_, err := FromReader("", strings.NewReader(`{"map": `), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode Config from json")

	_, err = FromReader("", strings.NewReader(`{"maps": {}}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unknown field")

	_, err = FromReader("", strings.NewReader(`{"start": [0]}`), logger)
	test.That(t, err, test.ShouldNotBeNil)

	t.Run("validation reports every problem", func(t *testing.T) {
		_, err := FromReader("", strings.NewReader(`{
			"map": {"format": "xml", "width": -1},
			"planner_options": {"max_iterations": -3, "speed": 2},
			"output": {"cell_size": -1}
		}`), logger)
		test.That(t, err, test.ShouldNotBeNil)
		for _, msg := range []string{
			`error validating "map": "path" is required`,
			`error validating "map": unknown format "xml"`,
			`width and height must not be negative`,
			`error validating "scenario": "start" is required`,
			`error validating "scenario": "goal" is required`,
			`error validating "planner_options"`,
			`error validating "output": cell_size must not be negative`,
		} {
			test.That(t, err.Error(), test.ShouldContainSubstring, msg)
		}
	})

	t.Run("negative max iterations", func(t *testing.T) {
		cfg := &Config{PlannerOptions: map[string]interface{}{"max_iterations": -3}}
		_, err := cfg.Options()
		test.That(t, errors.Is(err, motionplan.ErrInvalidInput), test.ShouldBeTrue)
	})
}

func TestRead(t *testing.T) {
	dir := testutils.TempDir(t, "", "config")
	testutils.WriteTempFile(t, dir, "maze.txt", "....\n.##.\n....\n")
	t.Setenv("GRIDPLAN_TEST_GOAL_COL", "3")
	path := testutils.WriteTempFile(t, dir, "scenario.json", `{
		"map": {"path": "maze.txt"},
		"start": [0, 0],
		"goal": [2, ${GRIDPLAN_TEST_GOAL_COL}],
		"planner_options": {"max_iterations": 100}
	}`)

	cfg, err := Read(path, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, *cfg.Goal, test.ShouldResemble, grid.NewCell(2, 3))

	g, err := cfg.LoadGrid()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.ObstacleCount(), test.ShouldEqual, 2)

	req, err := cfg.PlanRequest()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, req.Start, test.ShouldResemble, grid.NewCell(0, 0))
	test.That(t, req.PlannerOptions.MaxIterations, test.ShouldEqual, 100)

	_, err = Read(filepath.Join(dir, "missing.json"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)

	cfg.Map.Path = "nope.txt"
	_, err = cfg.PlanRequest()
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSchema(t *testing.T) {
	data, err := json.Marshal(Schema())
	test.That(t, err, test.ShouldBeNil)
	var schema map[string]interface{}
	test.That(t, json.Unmarshal(data, &schema), test.ShouldBeNil)

	test.That(t, schema["type"], test.ShouldEqual, "object")
	test.That(t, schema["additionalProperties"], test.ShouldEqual, false)
	test.That(t, schema["required"], test.ShouldResemble, []interface{}{"map", "start", "goal"})

	properties, ok := schema["properties"].(map[string]interface{})
	test.That(t, ok, test.ShouldBeTrue)
	for _, key := range []string{"map", "start", "goal", "planner_options", "output", "debug"} {
		test.That(t, properties, test.ShouldContainKey, key)
	}
	test.That(t, properties, test.ShouldNotContainKey, "ConfigFilePath")

	start, ok := properties["start"].(map[string]interface{})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, start["type"], test.ShouldEqual, "array")
	test.That(t, start["minItems"], test.ShouldEqual, 2.)
	test.That(t, start["maxItems"], test.ShouldEqual, 2.)
}
