package attitude

import (
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/attitude/spatialmath"
)

// DegenerateKind classifies why a conversion input or output is not a well formed rotation.
type DegenerateKind int

// The kinds of degenerate values a strict Converter reports.
const (
	NonUnitQuaternion DegenerateKind = iota + 1
	NonOrthonormalMatrix
	NotANumber
)

func (k DegenerateKind) String() string {
	switch k {
	case NonUnitQuaternion:
		return "non-unit quaternion"
	case NonOrthonormalMatrix:
		return "non-orthonormal matrix"
	case NotANumber:
		return "not a number"
	default:
		return fmt.Sprintf("DegenerateKind(%d)", int(k))
	}
}

// DegenerateError is returned by a strict Converter in place of a silently degenerate result.
type DegenerateError struct {
	Op   string
	Kind DegenerateKind
	Err  error
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying invariant violation.
func (e *DegenerateError) Unwrap() error {
	return e.Err
}

// kindOf maps an invariant check error onto the kind of degeneracy it describes.
func kindOf(err error) DegenerateKind {
	switch {
	case errors.Is(err, spatialmath.ErrNotANumber):
		return NotANumber
	case errors.Is(err, spatialmath.ErrNotUnitQuaternion):
		return NonUnitQuaternion
	default:
		return NonOrthonormalMatrix
	}
}

// IsDegenerate reports whether err is a DegenerateError, and if so of which kind.
func IsDegenerate(err error) (DegenerateKind, bool) {
	var degenerate *DegenerateError
	if errors.As(err, &degenerate) {
		return degenerate.Kind, true
	}
	return 0, false
}

func errUnsupportedAttitude(a spatialmath.Attitude) error {
	return errors.Errorf("do not know how to convert attitude of type %T", a)
}

func errUnsupportedTarget(to spatialmath.AttitudeType) error {
	return errors.Errorf("cannot convert to attitude type %q", string(to))
}
