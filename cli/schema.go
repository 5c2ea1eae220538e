package cli

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/urfave/cli/v2"

	"go.viam.com/attitude/spatialmath"
)

func schemaAction(c *cli.Context) error {
	schema := jsonschema.Reflect(&spatialmath.RawAttitude{})
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(data))
	return err
}
