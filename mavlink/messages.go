// Package mavlink adapts MAVLink attitude messages to and from the spatialmath types.
// It only maps message fields; opening endpoints and framing are left to gomavlib callers.
package mavlink

import (
	"github.com/bluenviron/gomavlib/v3/pkg/dialects/common"

	"go.viam.com/attitude/spatialmath"
)

// BodyRates are angular speeds about the body axes in rad/s, as carried next to the attitude.
type BodyRates struct {
	Roll  float32
	Pitch float32
	Yaw   float32
}

// QuaternionFromAttitudeQuaternion returns the (w, x, y, z) quaternion of an ATTITUDE_QUATERNION message.
func QuaternionFromAttitudeQuaternion(msg *common.MessageAttitudeQuaternion) spatialmath.Quaternion {
	return spatialmath.Quaternion{msg.Q1, msg.Q2, msg.Q3, msg.Q4}
}

// EulerFromAttitude returns the Euler angles of an ATTITUDE message.
func EulerFromAttitude(msg *common.MessageAttitude) spatialmath.EulerAngles {
	return spatialmath.EulerAngles{Roll: msg.Roll, Pitch: msg.Pitch, Yaw: msg.Yaw}
}

// AttitudeFromQuaternion builds the ATTITUDE message describing the same state as an ATTITUDE_QUATERNION message.
func AttitudeFromQuaternion(msg *common.MessageAttitudeQuaternion) *common.MessageAttitude {
	e := spatialmath.QuaternionToEuler(QuaternionFromAttitudeQuaternion(msg))
	return &common.MessageAttitude{
		TimeBootMs: msg.TimeBootMs,
		Roll:       e.Roll,
		Pitch:      e.Pitch,
		Yaw:        e.Yaw,
		Rollspeed:  msg.Rollspeed,
		Pitchspeed: msg.Pitchspeed,
		Yawspeed:   msg.Yawspeed,
	}
}

// AttitudeQuaternionFromAttitude builds the ATTITUDE_QUATERNION message describing the same state as an ATTITUDE message.
func AttitudeQuaternionFromAttitude(msg *common.MessageAttitude) *common.MessageAttitudeQuaternion {
	q := spatialmath.EulerToQuaternion(msg.Roll, msg.Pitch, msg.Yaw)
	return &common.MessageAttitudeQuaternion{
		TimeBootMs: msg.TimeBootMs,
		Q1:         q.W(),
		Q2:         q.X(),
		Q3:         q.Y(),
		Q4:         q.Z(),
		Rollspeed:  msg.Rollspeed,
		Pitchspeed: msg.Pitchspeed,
		Yawspeed:   msg.Yawspeed,
	}
}

// SetAttitudeTarget builds a SET_ATTITUDE_TARGET message commanding the given attitude and thrust.
// Body rates are marked as ignored.
func SetAttitudeTarget(targetSystem, targetComponent uint8, a spatialmath.Attitude, thrust float32) *common.MessageSetAttitudeTarget {
	return &common.MessageSetAttitudeTarget{
		TargetSystem:    targetSystem,
		TargetComponent: targetComponent,
		TypeMask: common.ATTITUDE_TARGET_TYPEMASK_BODY_ROLL_RATE_IGNORE |
			common.ATTITUDE_TARGET_TYPEMASK_BODY_PITCH_RATE_IGNORE |
			common.ATTITUDE_TARGET_TYPEMASK_BODY_YAW_RATE_IGNORE,
		Q:      [4]float32(a.Quaternion()),
		Thrust: thrust,
	}
}

// QuaternionFromAttitudeTarget returns the commanded quaternion of an ATTITUDE_TARGET message.
func QuaternionFromAttitudeTarget(msg *common.MessageAttitudeTarget) spatialmath.Quaternion {
	return spatialmath.Quaternion(msg.Q)
}
