package spatialmath

import (
	"encoding/json"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/attitude/utils"
)

// Quaternion is a [w, x, y, z] ordered quaternion; w is the scalar part and the null rotation is {1, 0, 0, 0}.
// A Quaternion only describes a rotation when it has unit norm. Nothing in this package enforces that.
type Quaternion [4]float32

// W returns the scalar part.
func (q Quaternion) W() float32 { return q[0] }

// X returns the first vector component.
func (q Quaternion) X() float32 { return q[1] }

// Y returns the second vector component.
func (q Quaternion) Y() float32 { return q[2] }

// Z returns the third vector component.
func (q Quaternion) Z() float32 { return q[3] }

// Quaternion returns the attitude in quaternion representation.
func (q Quaternion) Quaternion() Quaternion {
	return q
}

// RotationMatrix returns the attitude in rotation matrix representation.
func (q Quaternion) RotationMatrix() RotationMatrix {
	return QuaternionToMatrix(q)
}

// EulerAngles returns the attitude in Euler angle representation.
func (q Quaternion) EulerAngles() EulerAngles {
	return QuaternionToEuler(q)
}

// Norm returns the euclidean norm of the quaternion, computed in double precision.
func (q Quaternion) Norm() float64 {
	w, x, y, z := float64(q[0]), float64(q[1]), float64(q[2]), float64(q[3])
	return math.Sqrt(w*w + x*x + y*y + z*z)
}

// IsUnit reports whether the norm of q is within tol of 1.
func (q Quaternion) IsUnit(tol float64) bool {
	return math.Abs(q.Norm()-1) <= tol
}

// Neg returns -q, which describes the same rotation as q.
func (q Quaternion) Neg() Quaternion {
	return Quaternion{-q[0], -q[1], -q[2], -q[3]}
}

// Canonical returns whichever of q and -q has a positive scalar part. When the scalar part is zero
// the first non-zero vector component decides.
func (q Quaternion) Canonical() Quaternion {
	for _, v := range q {
		if v > 0 {
			return q
		}
		if v < 0 {
			return q.Neg()
		}
	}
	return q
}

// Number converts the quaternion to a gonum quaternion.
func (q Quaternion) Number() quat.Number {
	return quat.Number{Real: float64(q[0]), Imag: float64(q[1]), Jmag: float64(q[2]), Kmag: float64(q[3])}
}

// QuaternionFromNumber converts a gonum quaternion, rounding each part to single precision.
func QuaternionFromNumber(n quat.Number) Quaternion {
	return Quaternion{float32(n.Real), float32(n.Imag), float32(n.Jmag), float32(n.Kmag)}
}

// Quat converts the quaternion to a mathgl quaternion.
func (q Quaternion) Quat() mgl32.Quat {
	return mgl32.Quat{W: q[0], V: mgl32.Vec3{q[1], q[2], q[3]}}
}

// QuaternionFromQuat converts a mathgl quaternion.
func QuaternionFromQuat(mq mgl32.Quat) Quaternion {
	return Quaternion{mq.W, mq.V[0], mq.V[1], mq.V[2]}
}

// QuaternionAlmostEqual reports whether a and b describe the same rotation to within tol per component.
// q and -q are considered equal.
func QuaternionAlmostEqual(a, b Quaternion, tol float64) bool {
	same, flipped := true, true
	for i := range a {
		if !utils.Float32AlmostEqual(a[i], b[i], tol) {
			same = false
		}
		if !utils.Float32AlmostEqual(a[i], -b[i], tol) {
			flipped = false
		}
	}
	return same || flipped
}

type jsonQuaternion struct {
	W float32 `json:"w"`
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// MarshalJSON encodes the quaternion as an object with w, x, y and z fields.
func (q Quaternion) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonQuaternion{W: q[0], X: q[1], Y: q[2], Z: q[3]})
}

// UnmarshalJSON decodes an object with w, x, y and z fields.
func (q *Quaternion) UnmarshalJSON(data []byte) error {
	var jq jsonQuaternion
	if err := json.Unmarshal(data, &jq); err != nil {
		return err
	}
	*q = Quaternion{jq.W, jq.X, jq.Y, jq.Z}
	return nil
}
