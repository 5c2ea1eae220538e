package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/attitude/attitude"
	"go.viam.com/attitude/logging"
	"go.viam.com/attitude/spatialmath"
)

// runApp runs attconv with the given arguments and returns what it wrote to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	app := NewApp(out, errOut)
	err := app.Run(append([]string{"attconv"}, args...))
	return out.String(), err
}

func parseOutput(t *testing.T, out string) spatialmath.Attitude {
	t.Helper()
	var raw spatialmath.RawAttitude
	test.That(t, json.Unmarshal([]byte(out), &raw), test.ShouldBeNil)
	a, err := spatialmath.ParseAttitude(raw)
	test.That(t, err, test.ShouldBeNil)
	return a
}

func TestConvertJSON(t *testing.T) {
	q90z := spatialmath.Quaternion{float32(math.Sqrt2 / 2), 0, 0, float32(math.Sqrt2 / 2)}

	t.Run("euler degrees to quaternion", func(t *testing.T) {
		out, err := runApp(t, "convert", "--from", "euler", "--to", "quaternion", "--degrees", "0", "0", "90")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, `"type": "quaternion"`)
		a := parseOutput(t, out)
		test.That(t, spatialmath.AttitudeAlmostEqual(a, q90z, 1e-6), test.ShouldBeTrue)
	})

	t.Run("quaternion to euler degrees", func(t *testing.T) {
		out, err := runApp(t, "convert", "--from", "q", "--to", "rpy", "--degrees", "0.70710677", "0", "0", "0.70710677")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, `"type": "euler_angles_degrees"`)
		e := parseOutput(t, out).EulerAngles()
		test.That(t, e.Yaw, test.ShouldAlmostEqual, math.Pi/2, 1e-5)
		test.That(t, e.Roll, test.ShouldAlmostEqual, 0, 1e-6)
	})

	t.Run("matrix to euler", func(t *testing.T) {
		out, err := runApp(t, "convert", "--from", "dcm", "--to", "euler", "--", "1", "0", "0", "0", "0", "-1", "0", "1", "0")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, out, test.ShouldContainSubstring, `"type": "euler_angles"`)
		e := parseOutput(t, out).EulerAngles()
		test.That(t, e.Roll, test.ShouldAlmostEqual, math.Pi/2, 1e-6)
		test.That(t, e.Pitch, test.ShouldAlmostEqual, 0, 1e-6)
		test.That(t, e.Yaw, test.ShouldAlmostEqual, 0, 1e-6)
	})

	t.Run("euler to matrix", func(t *testing.T) {
		out, err := runApp(t, "convert", "--from", "euler", "--to", "matrix", "0", "0", "0")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parseOutput(t, out), test.ShouldResemble, spatialmath.IdentityMatrix())
	})

	t.Run("input document", func(t *testing.T) {
		out, err := runApp(t, "convert", "--to", "quaternion",
			"--input", `{"type": "euler_angles_degrees", "value": {"roll": 0, "pitch": 0, "yaw": 90}}`)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, spatialmath.AttitudeAlmostEqual(parseOutput(t, out), q90z, 1e-6), test.ShouldBeTrue)
	})

	t.Run("canonical sign", func(t *testing.T) {
		out, err := runApp(t, "--canonical", "convert", "--from", "quaternion", "--to", "quaternion", "--", "-1", "0", "0", "0")
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parseOutput(t, out).Quaternion().W(), test.ShouldEqual, 1)
	})
}

func TestConvertTable(t *testing.T) {
	out, err := runApp(t, "convert", "--from", "quaternion", "--to", "euler", "--format", "table", "--degrees",
		"0.70710677", "0", "0.70710677", "0")
	test.That(t, err, test.ShouldBeNil)
	lower := strings.ToLower(out)
	test.That(t, lower, test.ShouldContainSubstring, "pitch (deg)")
	test.That(t, lower, test.ShouldContainSubstring, "gimbal lock")

	out, err = runApp(t, "convert", "--from", "euler", "--to", "matrix", "--format", "table", "0.1", "0.2", "0.3")
	test.That(t, err, test.ShouldBeNil)
	lower = strings.ToLower(out)
	test.That(t, lower, test.ShouldContainSubstring, "row 2")
	test.That(t, lower, test.ShouldNotContainSubstring, "gimbal lock")

	out, err = runApp(t, "convert", "--from", "euler", "--to", "quaternion", "--format", "table", "0", "0", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "1")
}

func TestConvertErrors(t *testing.T) {
	_, err := runApp(t, "convert", "--from", "axis_angle", "--to", "quaternion", "0", "0", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown representation "axis_angle"`)

	_, err = runApp(t, "convert", "--from", "euler", "--to", "euler_degrees", "0", "0", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "error parsing to flag")

	_, err = runApp(t, "convert", "--from", "quaternion", "--to", "euler", "1", "0", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected 4 values but got 3")

	_, err = runApp(t, "convert", "--from", "euler", "--to", "quaternion", "0", "zero", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "value 1")

	_, err = runApp(t, "convert", "--from", "euler", "--to", "quaternion", "--format", "yaml", "0", "0", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown format "yaml"`)

	_, err = runApp(t, "convert", "--to", "quaternion", "--input", `{"type": "axis_angle"}`)
	test.That(t, err, test.ShouldBeError, "attitude type axis_angle not recognized")

	_, err = runApp(t, "convert", "--to", "quaternion", "--input", `{"type": `)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "error parsing input flag")

	_, err = runApp(t, "--tolerance", "-1", "convert", "--from", "euler", "--to", "quaternion", "0", "0", "0")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "tolerance must be non-negative")
}

func TestStrict(t *testing.T) {
	args := []string{"convert", "--from", "quaternion", "--to", "matrix", "2", "0", "0", "0"}

	// lenient by default
	out, err := runApp(t, args...)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, `"type": "rotation_matrix"`)

	_, err = runApp(t, append([]string{"--strict"}, args...)...)
	test.That(t, err, test.ShouldNotBeNil)
	kind, ok := attitude.IsDegenerate(err)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, kind, test.ShouldEqual, attitude.NonUnitQuaternion)

	t.Setenv("ATTCONV_STRICT", "true")
	_, err = runApp(t, args...)
	_, ok = attitude.IsDegenerate(err)
	test.That(t, ok, test.ShouldBeTrue)

	// a loose enough tolerance lets it through
	_, err = runApp(t, append([]string{"--tolerance", "2"}, args...)...)
	test.That(t, err, test.ShouldBeNil)
}

func TestDebugFlag(t *testing.T) {
	previous := logging.Global()
	t.Cleanup(func() { logging.ReplaceGlobal(previous) })

	_, err := runApp(t, "convert", "--from", "euler", "--to", "quaternion", "0", "0", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logging.Global().GetLevel(), test.ShouldEqual, logging.INFO)

	_, err = runApp(t, "--debug", "convert", "--from", "euler", "--to", "quaternion", "0", "0", "0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logging.Global().GetLevel(), test.ShouldEqual, logging.DEBUG)
	test.That(t, logging.Global().AsZap().Desugar().Name(), test.ShouldEqual, "attconv")
}

func TestAccuracy(t *testing.T) {
	out, err := runApp(t, "accuracy", "--samples", "200", "--seed", "3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "quaternion -> matrix -> quaternion")
	test.That(t, out, test.ShouldContainSubstring, "euler -> matrix -> euler")
	test.That(t, out, test.ShouldContainSubstring, "euler -> quaternion -> euler")

	_, err = runApp(t, "accuracy", "--samples", "0")
	test.That(t, err, test.ShouldBeError, "samples must be positive, got 0")
}

func TestMeasureRoundTrips(t *testing.T) {
	errs := measureRoundTrips(500, 1)
	test.That(t, errs.quaternionMatrix, test.ShouldHaveLength, 500)
	for _, rt := range [][]float64{errs.quaternionMatrix, errs.eulerMatrix, errs.eulerQuaternion} {
		_, _, maxErr, err := summarize(rt)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, maxErr, test.ShouldBeLessThan, 1e-4)
	}

	// the same seed gives the same samples
	test.That(t, measureRoundTrips(50, 9), test.ShouldResemble, measureRoundTrips(50, 9))

	_, _, _, err := summarize(nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRoundTripErrorMetrics(t *testing.T) {
	q := spatialmath.Quaternion{0.5, 0.5, 0.5, 0.5}
	test.That(t, quaternionError(q, q.Neg()), test.ShouldEqual, 0)
	test.That(t, quaternionError(q, spatialmath.Quaternion{0.5, 0.5, 0.5, 0.25}), test.ShouldEqual, 0.25)

	e := spatialmath.EulerAngles{Roll: math.Pi - 0.001}
	wrapped := spatialmath.EulerAngles{Roll: -math.Pi + 0.001}
	test.That(t, eulerError(e, wrapped), test.ShouldAlmostEqual, 0.002, 1e-6)
}

func TestSchema(t *testing.T) {
	out, err := runApp(t, "schema")
	test.That(t, err, test.ShouldBeNil)
	var doc map[string]interface{}
	test.That(t, json.Unmarshal([]byte(out), &doc), test.ShouldBeNil)
	test.That(t, out, test.ShouldContainSubstring, "RawAttitude")
	for _, typ := range []spatialmath.AttitudeType{
		spatialmath.QuaternionType,
		spatialmath.RotationMatrixType,
		spatialmath.EulerAnglesType,
		spatialmath.EulerAnglesDegreesType,
	} {
		test.That(t, out, test.ShouldContainSubstring, `"`+string(typ)+`"`)
	}
}

func TestParseRepresentation(t *testing.T) {
	for name, want := range map[string]spatialmath.AttitudeType{
		"quaternion":      spatialmath.QuaternionType,
		"Q":               spatialmath.QuaternionType,
		"DCM":             spatialmath.RotationMatrixType,
		"rotation_matrix": spatialmath.RotationMatrixType,
		"rpy":             spatialmath.EulerAnglesType,
		"euler_angles":    spatialmath.EulerAnglesType,
	} {
		got, err := parseRepresentation(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, got, test.ShouldEqual, want)
	}
	_, err := parseRepresentation("")
	test.That(t, err, test.ShouldNotBeNil)
}
