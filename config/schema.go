package config

import (
	"reflect"

	"github.com/invopop/jsonschema"

	"go.viam.com/gridplan/grid"
)

var cellType = reflect.TypeOf(grid.Cell{})

// Schema returns the JSON schema of a scenario file. Cells are described by their `[row, col]`
// form rather than by their Go fields.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t != cellType {
				return nil
			}
			return &jsonschema.Schema{
				Type:        "array",
				Items:       &jsonschema.Schema{Type: "integer"},
				MinItems:    2,
				MaxItems:    2,
				Description: "a [row, col] pair",
			}
		},
	}
	return r.Reflect(&Config{})
}
