// Package spatialmath converts between the three representations of a 3D attitude:
// unit quaternions, rotation (direction cosine) matrices and ZYX Euler angles.
package spatialmath

// Attitude is an interface used to express the different parameterizations of the orientation
// of a rigid body in 3D Euclidean space.
type Attitude interface {
	Quaternion() Quaternion
	RotationMatrix() RotationMatrix
	EulerAngles() EulerAngles
}

// NewZeroAttitude returns an attitude which signifies no rotation.
func NewZeroAttitude() Attitude {
	return Quaternion{1, 0, 0, 0}
}

// AttitudeAlmostEqual reports whether two attitudes describe approximately the same rotation.
func AttitudeAlmostEqual(a1, a2 Attitude, tol float64) bool {
	return QuaternionAlmostEqual(a1.Quaternion(), a2.Quaternion(), tol)
}
