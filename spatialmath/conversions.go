package spatialmath

import "math"

// These conversions follow the NASA rotation standard (ZYX, yaw-pitch-roll). They are pure functions of
// their arguments: inputs are neither validated nor renormalized, and every intermediate is computed in
// double precision before being rounded back to the single precision boundary types.

// GimbalLockThreshold is the distance from +/- pi/2, in radians, at which pitch is treated as gimbal locked.
const GimbalLockThreshold = 1e-3

// InGimbalLock reports whether pitch is within GimbalLockThreshold of +/- pi/2.
func InGimbalLock(pitch float64) bool {
	return math.Abs(pitch-math.Pi/2) < GimbalLockThreshold || math.Abs(pitch+math.Pi/2) < GimbalLockThreshold
}

// QuaternionToMatrix converts a quaternion to a rotation matrix.
// A non-unit quaternion silently yields a matrix that is not orthonormal.
func QuaternionToMatrix(q Quaternion) RotationMatrix {
	a, b, c, d := float64(q[0]), float64(q[1]), float64(q[2]), float64(q[3])
	aSq, bSq, cSq, dSq := a*a, b*b, c*c, d*d
	return RotationMatrix{
		{
			float32(aSq + bSq - cSq - dSq),
			float32(2 * (b*c - a*d)),
			float32(2 * (a*c + b*d)),
		},
		{
			float32(2 * (b*c + a*d)),
			float32(aSq - bSq + cSq - dSq),
			float32(2 * (c*d - a*b)),
		},
		{
			float32(2 * (b*d - a*c)),
			float32(2 * (a*b + c*d)),
			float32(aSq - bSq - cSq + dSq),
		},
	}
}

// MatrixToEuler converts a rotation matrix to Euler angles.
//
// Pitch is asin(-m[2][0]) and so lies in [-pi/2, pi/2]; a matrix that is not orthonormal can push the
// argument out of range, in which case pitch (and only pitch) is NaN. Within GimbalLockThreshold of
// +/- pi/2 roll and yaw are coupled and only their difference (pitch up) or sum (pitch down) is
// observable, so roll is reported as 0 and yaw carries the whole rotation about the vertical.
func MatrixToEuler(m RotationMatrix) EulerAngles {
	theta := math.Asin(-m.At(2, 0))

	var phi, psi float64
	switch {
	case math.Abs(theta-math.Pi/2) < GimbalLockThreshold:
		// m[1][2]-m[0][1] = (1+sin(theta))*sin(psi-phi), m[0][2]+m[1][1] = (1+sin(theta))*cos(psi-phi)
		phi = 0
		psi = math.Atan2(m.At(1, 2)-m.At(0, 1), m.At(0, 2)+m.At(1, 1))
	case math.Abs(theta+math.Pi/2) < GimbalLockThreshold:
		// -(m[1][2]+m[0][1]) = (1-sin(theta))*sin(psi+phi), m[1][1]-m[0][2] = (1-sin(theta))*cos(psi+phi)
		phi = 0
		psi = math.Atan2(-(m.At(1, 2) + m.At(0, 1)), m.At(1, 1)-m.At(0, 2))
	default:
		phi = math.Atan2(m.At(2, 1), m.At(2, 2))
		psi = math.Atan2(m.At(1, 0), m.At(0, 0))
	}

	return EulerAngles{Roll: float32(phi), Pitch: float32(theta), Yaw: float32(psi)}
}

// QuaternionToEuler converts a quaternion to Euler angles by way of its rotation matrix.
func QuaternionToEuler(q Quaternion) EulerAngles {
	return MatrixToEuler(QuaternionToMatrix(q))
}

// EulerToQuaternion converts Euler angles in radians to a quaternion.
// Any range of angles is accepted. The result is unit to numerical precision and is not renormalized.
func EulerToQuaternion(roll, pitch, yaw float32) Quaternion {
	cosPhi2, sinPhi2 := math.Cos(float64(roll)/2), math.Sin(float64(roll)/2)
	cosTheta2, sinTheta2 := math.Cos(float64(pitch)/2), math.Sin(float64(pitch)/2)
	cosPsi2, sinPsi2 := math.Cos(float64(yaw)/2), math.Sin(float64(yaw)/2)

	return Quaternion{
		float32(cosPhi2*cosTheta2*cosPsi2 + sinPhi2*sinTheta2*sinPsi2),
		float32(sinPhi2*cosTheta2*cosPsi2 - cosPhi2*sinTheta2*sinPsi2),
		float32(cosPhi2*sinTheta2*cosPsi2 + sinPhi2*cosTheta2*sinPsi2),
		float32(cosPhi2*cosTheta2*sinPsi2 - sinPhi2*sinTheta2*cosPsi2),
	}
}

// MatrixToQuaternion converts a rotation matrix to a quaternion using Shepperd's method.
//
// When the trace is positive the scalar part is extracted first. Otherwise the vector component
// matching the largest diagonal element is extracted first, which keeps the square root argument
// at least 1 for any input and away from cancellation for orthonormal ones. The sign of the result
// is not canonicalized; see Quaternion.Canonical.
func MatrixToQuaternion(m RotationMatrix) Quaternion {
	var q Quaternion

	tr := m.At(0, 0) + m.At(1, 1) + m.At(2, 2)
	if tr > 0 {
		s := math.Sqrt(tr + 1)
		q[0] = float32(s * 0.5)
		s = 0.5 / s
		q[1] = float32((m.At(2, 1) - m.At(1, 2)) * s)
		q[2] = float32((m.At(0, 2) - m.At(2, 0)) * s)
		q[3] = float32((m.At(1, 0) - m.At(0, 1)) * s)
		return q
	}

	i := largestDiagonal(m)
	j := (i + 1) % 3
	k := (i + 2) % 3

	s := math.Sqrt(m.At(i, i) - m.At(j, j) - m.At(k, k) + 1)
	q[i+1] = float32(s * 0.5)
	s = 0.5 / s
	q[j+1] = float32((m.At(i, j) + m.At(j, i)) * s)
	q[k+1] = float32((m.At(k, i) + m.At(i, k)) * s)
	q[0] = float32((m.At(k, j) - m.At(j, k)) * s)
	return q
}

// largestDiagonal returns the index of the largest diagonal element, preferring the lowest index on ties.
func largestDiagonal(m RotationMatrix) int {
	i := 0
	for n := 1; n < 3; n++ {
		if m[n][n] > m[i][i] {
			i = n
		}
	}
	return i
}

// EulerToMatrix converts Euler angles in radians to a rotation matrix, Rz(yaw) * Ry(pitch) * Rx(roll).
func EulerToMatrix(roll, pitch, yaw float32) RotationMatrix {
	cosPhi, sinPhi := math.Cos(float64(roll)), math.Sin(float64(roll))
	cosThe, sinThe := math.Cos(float64(pitch)), math.Sin(float64(pitch))
	cosPsi, sinPsi := math.Cos(float64(yaw)), math.Sin(float64(yaw))

	return RotationMatrix{
		{
			float32(cosThe * cosPsi),
			float32(-cosPhi*sinPsi + sinPhi*sinThe*cosPsi),
			float32(sinPhi*sinPsi + cosPhi*sinThe*cosPsi),
		},
		{
			float32(cosThe * sinPsi),
			float32(cosPhi*cosPsi + sinPhi*sinThe*sinPsi),
			float32(-sinPhi*cosPsi + cosPhi*sinThe*sinPsi),
		},
		{
			float32(-sinThe),
			float32(sinPhi * cosThe),
			float32(cosPhi * cosThe),
		},
	}
}
