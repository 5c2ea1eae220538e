// Package cli contains the attconv command line tool, a thin caller of the attitude conversions.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/attitude/attitude"
	"go.viam.com/attitude/logging"
)

const (
	// Global flags.
	generalFlagDebug     = "debug"
	generalFlagStrict    = "strict"
	generalFlagTolerance = "tolerance"
	generalFlagCanonical = "canonical"

	convertFlagFrom    = "from"
	convertFlagTo      = "to"
	convertFlagDegrees = "degrees"
	convertFlagFormat  = "format"
	convertFlagInput   = "input"

	accuracyFlagSamples = "samples"
	accuracyFlagSeed    = "seed"

	formatJSON  = "json"
	formatTable = "table"
)

// runner carries what every action needs. It is filled in by the app's Before hook.
type runner struct {
	logger    logging.Logger
	converter *attitude.Converter
}

func (r *runner) before(c *cli.Context) error {
	if c.Bool(generalFlagDebug) {
		r.logger = logging.NewDebugLogger("attconv")
	} else {
		r.logger = logging.NewLogger("attconv")
	}
	logging.ReplaceGlobal(r.logger)

	cfg := attitude.Config{
		Tolerance:     c.Float64(generalFlagTolerance),
		Strict:        c.Bool(generalFlagStrict),
		CanonicalSign: c.Bool(generalFlagCanonical),
	}
	converter, err := attitude.NewConverter(cfg, r.logger.Sublogger("converter"))
	if err != nil {
		return err
	}
	r.converter = converter
	r.logger.Debugw("converter ready", "strict", cfg.Strict, "tolerance", cfg.Tolerance, "canonical_sign", cfg.CanonicalSign)
	return nil
}

// NewApp returns a new app with the attconv commands, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	r := &runner{}
	return &cli.App{
		Name:            "attconv",
		Usage:           "convert attitudes between quaternions, rotation matrices and Euler angles",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
				EnvVars: []string{"ATTCONV_DEBUG"},
			},
			&cli.BoolFlag{
				Name:    generalFlagStrict,
				Usage:   "fail on non-unit quaternions, non-orthonormal matrices and NaN angles",
				EnvVars: []string{"ATTCONV_STRICT"},
			},
			&cli.Float64Flag{
				Name:    generalFlagTolerance,
				Usage:   "tolerance used when checking unit norm and orthonormality",
				Value:   attitude.DefaultTolerance,
				EnvVars: []string{"ATTCONV_TOLERANCE"},
			},
			&cli.BoolFlag{
				Name:    generalFlagCanonical,
				Usage:   "always output quaternions with a non-negative scalar part",
				EnvVars: []string{"ATTCONV_CANONICAL"},
			},
		},
		Before: r.before,
		After: func(c *cli.Context) error {
			if r.logger != nil {
				//nolint:errcheck
				r.logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "convert one attitude to another representation",
				UsageText: "attconv convert --from euler --to quaternion [--degrees] 0 90 0",
				ArgsUsage: "[values...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  convertFlagFrom,
						Usage: "representation of the input values: quaternion (w x y z), matrix (row-major) or euler (roll pitch yaw)",
					},
					&cli.StringFlag{
						Name:     convertFlagTo,
						Required: true,
						Usage:    "representation to output: quaternion, matrix or euler",
					},
					&cli.BoolFlag{
						Name:  convertFlagDegrees,
						Usage: "read and write Euler angles in degrees",
					},
					&cli.StringFlag{
						Name:  convertFlagFormat,
						Value: formatJSON,
						Usage: "output format: json or table",
					},
					&cli.StringFlag{
						Name:  convertFlagInput,
						Usage: `attitude as a JSON document, e.g. {"type":"quaternion","value":{"w":1,"x":0,"y":0,"z":0}}`,
					},
				},
				Action: r.convertAction,
			},
			{
				Name:  "accuracy",
				Usage: "measure round trip error of the conversions on random attitudes",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  accuracyFlagSamples,
						Value: 10000,
						Usage: "number of random attitudes to test",
					},
					&cli.Int64Flag{
						Name:  accuracyFlagSeed,
						Value: 1,
						Usage: "random seed",
					},
				},
				Action: r.accuracyAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the attitude document accepted by --input",
				Action: schemaAction,
			},
		},
	}
}
