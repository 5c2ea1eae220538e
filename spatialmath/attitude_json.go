package spatialmath

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// AttitudeType defines what attitude representations are known.
type AttitudeType string

// The set of allowed representations for attitude.
const (
	NoAttitude             = AttitudeType("")
	QuaternionType         = AttitudeType("quaternion")
	RotationMatrixType     = AttitudeType("rotation_matrix")
	EulerAnglesType        = AttitudeType("euler_angles")
	EulerAnglesDegreesType = AttitudeType("euler_angles_degrees")
)

const errUnknownAttitudeTypeFmt = "attitude type %s not recognized"

// RawAttitude holds the underlying type of attitude, and the data defining it.
type RawAttitude struct {
	Type  AttitudeType    `json:"type" jsonschema:"enum=quaternion,enum=rotation_matrix,enum=euler_angles,enum=euler_angles_degrees"`
	Value json.RawMessage `json:"value,omitempty"`
}

type eulerAnglesDegrees struct {
	Roll  float32 `json:"roll"`
	Pitch float32 `json:"pitch"`
	Yaw   float32 `json:"yaw"`
}

// ParseAttitude will use the Type in RawAttitude to unmarshal the Value into the correct struct that implements Attitude.
func ParseAttitude(ra RawAttitude) (Attitude, error) {
	switch ra.Type {
	case NoAttitude:
		return NewZeroAttitude(), nil
	case QuaternionType:
		var q Quaternion
		if err := json.Unmarshal(ra.Value, &q); err != nil {
			return nil, err
		}
		return q, nil
	case RotationMatrixType:
		var m RotationMatrix
		if err := json.Unmarshal(ra.Value, &m); err != nil {
			return nil, err
		}
		return m, nil
	case EulerAnglesType:
		var e EulerAngles
		if err := json.Unmarshal(ra.Value, &e); err != nil {
			return nil, err
		}
		return e, nil
	case EulerAnglesDegreesType:
		var d eulerAnglesDegrees
		if err := json.Unmarshal(ra.Value, &d); err != nil {
			return nil, err
		}
		return EulerAnglesFromDegrees(d.Roll, d.Pitch, d.Yaw), nil
	default:
		return nil, errors.Errorf(errUnknownAttitudeTypeFmt, string(ra.Type))
	}
}

// AttitudeMap encodes the attitude interface to something serializable and human readable.
func AttitudeMap(a Attitude) (map[string]interface{}, error) {
	switch v := a.(type) {
	case Quaternion:
		return map[string]interface{}{"type": string(QuaternionType), "value": v}, nil
	case RotationMatrix:
		return map[string]interface{}{"type": string(RotationMatrixType), "value": v}, nil
	case EulerAngles:
		return map[string]interface{}{"type": string(EulerAnglesType), "value": v}, nil
	default:
		return nil, errors.Errorf("do not know how to map Attitude type %T to json fields", v)
	}
}

// NewRawAttitude encodes an attitude in its config form.
func NewRawAttitude(a Attitude) (RawAttitude, error) {
	m, err := AttitudeMap(a)
	if err != nil {
		return RawAttitude{}, err
	}
	value, err := json.Marshal(m["value"])
	if err != nil {
		return RawAttitude{}, err
	}
	return RawAttitude{Type: AttitudeType(m["type"].(string)), Value: value}, nil
}
