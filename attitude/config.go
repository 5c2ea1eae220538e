package attitude

import (
	"math"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// DefaultTolerance is the invariant tolerance used when Config.Tolerance is left at zero.
const DefaultTolerance = 1e-5

// Config describes how a Converter treats degenerate inputs and outputs.
type Config struct {
	// Tolerance bounds how far a quaternion norm, row norm, row dot product or determinant
	// may stray from its ideal value before the input counts as degenerate.
	Tolerance float64 `json:"tolerance,omitempty"`
	// Strict makes degenerate inputs and outputs an error instead of a debug log line.
	Strict bool `json:"strict,omitempty"`
	// CanonicalSign makes every quaternion output have a non-negative scalar part.
	CanonicalSign bool `json:"canonical_sign,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	if math.IsNaN(cfg.Tolerance) || math.IsInf(cfg.Tolerance, 0) {
		return goutils.NewConfigValidationError(path, errors.New("tolerance must be a finite number"))
	}
	if cfg.Tolerance < 0 {
		return goutils.NewConfigValidationError(path, errors.Errorf("tolerance must be non-negative, got %g", cfg.Tolerance))
	}
	return nil
}

func (cfg *Config) tolerance() float64 {
	if cfg.Tolerance == 0 {
		return DefaultTolerance
	}
	return cfg.Tolerance
}
