package utils

import (
	"os"
	"strconv"

	"go.viam.com/gridplan/logging"
)

// MaxIterationsEnvVar is the environment variable that overrides the default iteration cap of
// every search that does not set one explicitly.
const MaxIterationsEnvVar = "GRIDPLAN_MAX_ITERATIONS"

// GetenvInt returns the integer value of the environment variable `v`, or `def` when it is unset
// or cannot be parsed.
func GetenvInt(v string, def int) int {
	x := os.Getenv(v)
	if x == "" {
		return def
	}

	i, err := strconv.Atoi(x)
	if err != nil {
		logging.Global().Warnw("ignoring non-integer environment variable", "name", v, "value", x, "error", err)
		return def
	}
	return i
}
