package cli

import (
	"runtime/debug"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// reportedDeps are the modules whose versions VersionAction lists.
var reportedDeps = []string{
	"gonum.org/v1/gonum",
	"github.com/golang/geo",
	"go.uber.org/zap",
}

// VersionAction prints the build's revision, Go version and key dependency versions.
func VersionAction(c *cli.Context) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return errors.New("error reading build info")
	}
	if c.Bool(generalFlagDebug) {
		printf(c.App.Writer, "%s", info.String())
	}
	settings := make(map[string]string, len(info.Settings))
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	version := "?"
	if rev, ok := settings["vcs.revision"]; ok && len(rev) >= 8 {
		version = rev[:8]
		if settings["vcs.modified"] == "true" {
			version += "+"
		}
	}
	deps := make(map[string]*debug.Module, len(info.Deps))
	for _, dep := range info.Deps {
		deps[dep.Path] = dep
	}

	t := table.NewWriter()
	t.AppendRow(table.Row{"Version", version})
	t.AppendRow(table.Row{"Go", info.GoVersion})
	for _, path := range reportedDeps {
		depVersion := "?"
		if dep, ok := deps[path]; ok {
			depVersion = dep.Version
		}
		t.AppendRow(table.Row{path, depVersion})
	}
	printf(c.App.Writer, "%s", t.Render())
	return nil
}
