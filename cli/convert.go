package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v2"

	"go.viam.com/attitude/spatialmath"
)

// parseRepresentation maps the short names accepted on the command line onto attitude types.
func parseRepresentation(name string) (spatialmath.AttitudeType, error) {
	switch strings.ToLower(name) {
	case "quaternion", "quat", "q":
		return spatialmath.QuaternionType, nil
	case "matrix", "dcm", "rotation_matrix":
		return spatialmath.RotationMatrixType, nil
	case "euler", "euler_angles", "rpy":
		return spatialmath.EulerAnglesType, nil
	default:
		return spatialmath.NoAttitude, errors.Errorf("unknown representation %q, expected quaternion, matrix or euler", name)
	}
}

func parseValues(args []string, want int) ([]float32, error) {
	if len(args) != want {
		return nil, errors.Errorf("expected %d values but got %d", want, len(args))
	}
	values := make([]float32, 0, want)
	for i, arg := range args {
		v, err := cast.ToFloat32E(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "value %d", i)
		}
		values = append(values, v)
	}
	return values, nil
}

// parseAttitude reads the attitude given either as --input or as positional values.
func parseAttitude(c *cli.Context) (spatialmath.Attitude, error) {
	if input := c.String(convertFlagInput); input != "" {
		var raw spatialmath.RawAttitude
		if err := json.Unmarshal([]byte(input), &raw); err != nil {
			return nil, errors.Wrap(err, "error parsing input flag")
		}
		return spatialmath.ParseAttitude(raw)
	}

	from, err := parseRepresentation(c.String(convertFlagFrom))
	if err != nil {
		return nil, errors.Wrap(err, "error parsing from flag")
	}
	args := c.Args().Slice()
	switch from {
	case spatialmath.QuaternionType:
		v, err := parseValues(args, 4)
		if err != nil {
			return nil, err
		}
		return spatialmath.Quaternion{v[0], v[1], v[2], v[3]}, nil
	case spatialmath.RotationMatrixType:
		v, err := parseValues(args, 9)
		if err != nil {
			return nil, err
		}
		var m spatialmath.RotationMatrix
		for i := range v {
			m[i/3][i%3] = v[i]
		}
		return m, nil
	default:
		v, err := parseValues(args, 3)
		if err != nil {
			return nil, err
		}
		if c.Bool(convertFlagDegrees) {
			return spatialmath.EulerAnglesFromDegrees(v[0], v[1], v[2]), nil
		}
		return spatialmath.EulerAngles{Roll: v[0], Pitch: v[1], Yaw: v[2]}, nil
	}
}

func (r *runner) convertAction(c *cli.Context) error {
	to, err := parseRepresentation(c.String(convertFlagTo))
	if err != nil {
		return errors.Wrap(err, "error parsing to flag")
	}
	in, err := parseAttitude(c)
	if err != nil {
		return err
	}
	r.logger.Debugw("converting", "from", fmt.Sprintf("%T", in), "to", to)

	out, err := r.converter.Convert(in, to)
	if err != nil {
		return err
	}

	degrees := c.Bool(convertFlagDegrees)
	switch c.String(convertFlagFormat) {
	case formatJSON:
		return writeJSON(c.App.Writer, out, degrees)
	case formatTable:
		writeTable(c.App.Writer, out, degrees)
		return nil
	default:
		return errors.Errorf("unknown format %q, expected %s or %s", c.String(convertFlagFormat), formatJSON, formatTable)
	}
}

func writeJSON(w io.Writer, a spatialmath.Attitude, degrees bool) error {
	var doc interface{}
	if e, ok := a.(spatialmath.EulerAngles); ok && degrees {
		roll, pitch, yaw := e.Degrees()
		doc = map[string]interface{}{
			"type":  string(spatialmath.EulerAnglesDegreesType),
			"value": map[string]float32{"roll": roll, "pitch": pitch, "yaw": yaw},
		}
	} else {
		m, err := spatialmath.AttitudeMap(a)
		if err != nil {
			return err
		}
		doc = m
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeTable(w io.Writer, a spatialmath.Attitude, degrees bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	switch v := a.(type) {
	case spatialmath.Quaternion:
		tw.AppendHeader(table.Row{"w", "x", "y", "z"})
		tw.AppendRow(table.Row{v.W(), v.X(), v.Y(), v.Z()})
	case spatialmath.RotationMatrix:
		tw.AppendHeader(table.Row{"", "col 0", "col 1", "col 2"})
		for i, row := range v {
			tw.AppendRow(table.Row{fmt.Sprintf("row %d", i), row[0], row[1], row[2]})
		}
	case spatialmath.EulerAngles:
		unit := "rad"
		roll, pitch, yaw := v.Roll, v.Pitch, v.Yaw
		if degrees {
			unit = "deg"
			roll, pitch, yaw = v.Degrees()
		}
		tw.AppendHeader(table.Row{"roll (" + unit + ")", "pitch (" + unit + ")", "yaw (" + unit + ")"})
		tw.AppendRow(table.Row{roll, pitch, yaw})
		if spatialmath.InGimbalLock(float64(v.Pitch)) {
			tw.AppendFooter(table.Row{"gimbal lock", "roll fixed at 0", ""})
		}
	}
	tw.Render()
}
