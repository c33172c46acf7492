package cli

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/gridplan/config"
)

// SchemaAction prints the JSON schema of scenario files so editors can validate them.
func SchemaAction(c *cli.Context) error {
	data, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode scenario schema")
	}
	printf(c.App.Writer, "%s", data)
	return nil
}
