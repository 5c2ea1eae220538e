package spatialmath

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Errors returned by the invariant checks. The conversions themselves never return errors.
var (
	ErrNotANumber        = errors.New("value is not a finite number")
	ErrNotUnitQuaternion = errors.New("quaternion does not have unit norm")
	ErrNotOrthonormal    = errors.New("rotation matrix is not orthonormal")
	ErrImproperRotation  = errors.New("rotation matrix determinant is not +1")
)

func notFinite(v float32) bool {
	return math32.IsNaN(v) || math32.IsInf(v, 0)
}

// CheckQuaternion returns an error if q has a non-finite component or its norm differs from 1 by more than tol.
func CheckQuaternion(q Quaternion, tol float64) error {
	for i, v := range q {
		if notFinite(v) {
			return errors.Wrapf(ErrNotANumber, "quaternion component %d is %v", i, v)
		}
	}
	if !q.IsUnit(tol) {
		return errors.Wrapf(ErrNotUnitQuaternion, "norm is %g", q.Norm())
	}
	return nil
}

// CheckRotationMatrix returns every way in which m fails to be a proper rotation to within tol.
func CheckRotationMatrix(m RotationMatrix, tol float64) error {
	for i := range m {
		for j, v := range m[i] {
			if notFinite(v) {
				return errors.Wrapf(ErrNotANumber, "element [%d][%d] is %v", i, j, v)
			}
		}
	}

	var err error
	for i := 0; i < 3; i++ {
		if n := m.Row(i).Norm(); math.Abs(n-1) > tol {
			err = multierr.Append(err, errors.Wrapf(ErrNotOrthonormal, "row %d has norm %g", i, n))
		}
		for j := i + 1; j < 3; j++ {
			if d := m.Row(i).Dot(m.Row(j)); math.Abs(d) > tol {
				err = multierr.Append(err, errors.Wrapf(ErrNotOrthonormal, "rows %d and %d have dot product %g", i, j, d))
			}
		}
	}
	if det := m.Determinant(); math.Abs(det-1) > tol {
		err = multierr.Append(err, errors.Wrapf(ErrImproperRotation, "determinant is %g", det))
	}
	return err
}

// CheckEulerAngles returns an error if any of the angles is not finite.
func CheckEulerAngles(e EulerAngles) error {
	names := [3]string{"roll", "pitch", "yaw"}
	for i, v := range [3]float32{e.Roll, e.Pitch, e.Yaw} {
		if notFinite(v) {
			return errors.Wrapf(ErrNotANumber, "%s is %v", names[i], v)
		}
	}
	return nil
}
