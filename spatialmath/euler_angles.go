package spatialmath

import (
	"github.com/chewxy/math32"
	"github.com/golang/geo/r3"

	"go.viam.com/attitude/utils"
)

// EulerAngles are three ZYX (yaw, then pitch, then roll) angles in radians.
// They are singular when pitch is at +/- pi/2 and should only be used for display.
type EulerAngles struct {
	Roll  float32 `json:"roll"`  // phi, about x
	Pitch float32 `json:"pitch"` // theta, about y
	Yaw   float32 `json:"yaw"`   // psi, about z
}

// EulerAnglesFromDegrees builds Euler angles from roll, pitch and yaw given in degrees.
func EulerAnglesFromDegrees(roll, pitch, yaw float32) EulerAngles {
	return EulerAngles{
		Roll:  utils.DegToRad(roll),
		Pitch: utils.DegToRad(pitch),
		Yaw:   utils.DegToRad(yaw),
	}
}

// EulerAnglesFromVector builds Euler angles from a (roll, pitch, yaw) vector in radians.
func EulerAnglesFromVector(v r3.Vector) EulerAngles {
	return EulerAngles{Roll: float32(v.X), Pitch: float32(v.Y), Yaw: float32(v.Z)}
}

// Quaternion returns the attitude in quaternion representation.
func (e EulerAngles) Quaternion() Quaternion {
	return EulerToQuaternion(e.Roll, e.Pitch, e.Yaw)
}

// RotationMatrix returns the attitude in rotation matrix representation.
func (e EulerAngles) RotationMatrix() RotationMatrix {
	return EulerToMatrix(e.Roll, e.Pitch, e.Yaw)
}

// EulerAngles returns the attitude in Euler angle representation.
func (e EulerAngles) EulerAngles() EulerAngles {
	return e
}

// Degrees returns roll, pitch and yaw in degrees.
func (e EulerAngles) Degrees() (roll, pitch, yaw float32) {
	return utils.RadToDeg(e.Roll), utils.RadToDeg(e.Pitch), utils.RadToDeg(e.Yaw)
}

// Vector returns the angles as a (roll, pitch, yaw) vector.
func (e EulerAngles) Vector() r3.Vector {
	return r3.Vector{X: float64(e.Roll), Y: float64(e.Pitch), Z: float64(e.Yaw)}
}

// HasNaN reports whether any of the angles is not a number, which is how a malformed
// rotation matrix shows up after extraction.
func (e EulerAngles) HasNaN() bool {
	return math32.IsNaN(e.Roll) || math32.IsNaN(e.Pitch) || math32.IsNaN(e.Yaw)
}
