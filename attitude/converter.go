// Package attitude layers an explicit policy for degenerate values on top of the
// pure conversions in spatialmath.
//
// The spatialmath conversions never fail: a non-unit quaternion or non-orthonormal matrix
// produces a non-orthonormal matrix or NaN angles. A Converter checks the invariants around
// each conversion and, depending on its Config, either logs the degeneracy and passes the
// result through unchanged or reports it as a *DegenerateError.
package attitude

import (
	"go.viam.com/attitude/logging"
	"go.viam.com/attitude/spatialmath"
)

// A Converter runs the attitude conversions with invariant checks.
// It is immutable after construction and safe for concurrent use.
type Converter struct {
	cfg    Config
	tol    float64
	logger logging.Logger
}

// NewConverter returns a Converter for the given config.
func NewConverter(cfg Config, logger logging.Logger) (*Converter, error) {
	if err := cfg.Validate("converter"); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Global().Sublogger("attitude")
	}
	return &Converter{cfg: cfg, tol: cfg.tolerance(), logger: logger}, nil
}

// Config returns the config the converter was built with.
func (c *Converter) Config() Config {
	return c.cfg
}

// degenerate either returns err as a *DegenerateError (strict) or logs it and returns nil.
func (c *Converter) degenerate(op string, err error) error {
	if err == nil {
		return nil
	}
	if c.cfg.Strict {
		return &DegenerateError{Op: op, Kind: kindOf(err), Err: err}
	}
	c.logger.Debugw("degenerate attitude", "op", op, "kind", kindOf(err).String(), "error", err)
	return nil
}

func (c *Converter) quaternionOut(q spatialmath.Quaternion) spatialmath.Quaternion {
	if c.cfg.CanonicalSign {
		return q.Canonical()
	}
	return q
}

func (c *Converter) eulerOut(op string, e spatialmath.EulerAngles) error {
	if err := c.degenerate(op, spatialmath.CheckEulerAngles(e)); err != nil {
		return err
	}
	if c.GimbalLocked(e) {
		c.logger.Debugw("gimbal lock, roll fixed at 0", "op", op, "pitch", e.Pitch, "yaw", e.Yaw)
	}
	return nil
}

// GimbalLocked reports whether e came out of the gimbal lock branch of MatrixToEuler.
func (c *Converter) GimbalLocked(e spatialmath.EulerAngles) bool {
	return spatialmath.InGimbalLock(float64(e.Pitch))
}

// QuaternionToMatrix converts a quaternion to a rotation matrix.
func (c *Converter) QuaternionToMatrix(q spatialmath.Quaternion) (spatialmath.RotationMatrix, error) {
	const op = "QuaternionToMatrix"
	if err := c.degenerate(op, spatialmath.CheckQuaternion(q, c.tol)); err != nil {
		return spatialmath.RotationMatrix{}, err
	}
	return spatialmath.QuaternionToMatrix(q), nil
}

// MatrixToEuler converts a rotation matrix to Euler angles.
func (c *Converter) MatrixToEuler(m spatialmath.RotationMatrix) (spatialmath.EulerAngles, error) {
	const op = "MatrixToEuler"
	if err := c.degenerate(op, spatialmath.CheckRotationMatrix(m, c.tol)); err != nil {
		return spatialmath.EulerAngles{}, err
	}
	e := spatialmath.MatrixToEuler(m)
	if err := c.eulerOut(op, e); err != nil {
		return spatialmath.EulerAngles{}, err
	}
	return e, nil
}

// QuaternionToEuler converts a quaternion to Euler angles.
func (c *Converter) QuaternionToEuler(q spatialmath.Quaternion) (spatialmath.EulerAngles, error) {
	const op = "QuaternionToEuler"
	if err := c.degenerate(op, spatialmath.CheckQuaternion(q, c.tol)); err != nil {
		return spatialmath.EulerAngles{}, err
	}
	e := spatialmath.QuaternionToEuler(q)
	if err := c.eulerOut(op, e); err != nil {
		return spatialmath.EulerAngles{}, err
	}
	return e, nil
}

// EulerToQuaternion converts Euler angles in radians to a quaternion.
func (c *Converter) EulerToQuaternion(e spatialmath.EulerAngles) (spatialmath.Quaternion, error) {
	const op = "EulerToQuaternion"
	if err := c.degenerate(op, spatialmath.CheckEulerAngles(e)); err != nil {
		return spatialmath.Quaternion{}, err
	}
	return c.quaternionOut(spatialmath.EulerToQuaternion(e.Roll, e.Pitch, e.Yaw)), nil
}

// MatrixToQuaternion converts a rotation matrix to a quaternion.
func (c *Converter) MatrixToQuaternion(m spatialmath.RotationMatrix) (spatialmath.Quaternion, error) {
	const op = "MatrixToQuaternion"
	if err := c.degenerate(op, spatialmath.CheckRotationMatrix(m, c.tol)); err != nil {
		return spatialmath.Quaternion{}, err
	}
	return c.quaternionOut(spatialmath.MatrixToQuaternion(m)), nil
}

// EulerToMatrix converts Euler angles in radians to a rotation matrix.
func (c *Converter) EulerToMatrix(e spatialmath.EulerAngles) (spatialmath.RotationMatrix, error) {
	const op = "EulerToMatrix"
	if err := c.degenerate(op, spatialmath.CheckEulerAngles(e)); err != nil {
		return spatialmath.RotationMatrix{}, err
	}
	return spatialmath.EulerToMatrix(e.Roll, e.Pitch, e.Yaw), nil
}

// Convert converts any attitude into the requested representation. On error the returned attitude is nil.
func (c *Converter) Convert(a spatialmath.Attitude, to spatialmath.AttitudeType) (spatialmath.Attitude, error) {
	out, err := c.convert(a, to)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Converter) convert(a spatialmath.Attitude, to spatialmath.AttitudeType) (spatialmath.Attitude, error) {
	switch v := a.(type) {
	case spatialmath.Quaternion:
		switch to {
		case spatialmath.QuaternionType:
			if err := c.degenerate("Quaternion", spatialmath.CheckQuaternion(v, c.tol)); err != nil {
				return nil, err
			}
			return c.quaternionOut(v), nil
		case spatialmath.RotationMatrixType:
			return c.QuaternionToMatrix(v)
		case spatialmath.EulerAnglesType:
			return c.QuaternionToEuler(v)
		}
	case spatialmath.RotationMatrix:
		switch to {
		case spatialmath.QuaternionType:
			return c.MatrixToQuaternion(v)
		case spatialmath.RotationMatrixType:
			if err := c.degenerate("RotationMatrix", spatialmath.CheckRotationMatrix(v, c.tol)); err != nil {
				return nil, err
			}
			return v, nil
		case spatialmath.EulerAnglesType:
			return c.MatrixToEuler(v)
		}
	case spatialmath.EulerAngles:
		switch to {
		case spatialmath.QuaternionType:
			return c.EulerToQuaternion(v)
		case spatialmath.RotationMatrixType:
			return c.EulerToMatrix(v)
		case spatialmath.EulerAnglesType:
			if err := c.degenerate("EulerAngles", spatialmath.CheckEulerAngles(v)); err != nil {
				return nil, err
			}
			return v, nil
		}
	default:
		return nil, errUnsupportedAttitude(a)
	}
	return nil, errUnsupportedTarget(to)
}
