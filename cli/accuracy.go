package cli

import (
	"math"
	"math/rand"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/attitude/spatialmath"
	"go.viam.com/attitude/utils"
)

// pitchMargin keeps sampled pitch away from gimbal lock, where roll and yaw cannot round trip.
const pitchMargin = 0.01

// roundTripErrors holds one error sample per random attitude for each round trip.
type roundTripErrors struct {
	quaternionMatrix []float64 // max component error of MatrixToQuaternion(QuaternionToMatrix(q)) against +/-q
	eulerMatrix      []float64 // max angle error of MatrixToEuler(EulerToMatrix(e))
	eulerQuaternion  []float64 // max angle error of QuaternionToEuler(EulerToQuaternion(e))
}

func randomQuaternion(rng *rand.Rand) spatialmath.Quaternion {
	w, x, y, z := rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()
	n := math.Sqrt(w*w + x*x + y*y + z*z)
	return spatialmath.Quaternion{float32(w / n), float32(x / n), float32(y / n), float32(z / n)}
}

func randomEulerAngles(rng *rand.Rand) spatialmath.EulerAngles {
	uniform := func(lo, hi float64) float32 { return float32(lo + rng.Float64()*(hi-lo)) }
	return spatialmath.EulerAngles{
		Roll:  uniform(-math.Pi, math.Pi),
		Pitch: uniform(-math.Pi/2+pitchMargin, math.Pi/2-pitchMargin),
		Yaw:   uniform(-math.Pi, math.Pi),
	}
}

func quaternionError(want, got spatialmath.Quaternion) float64 {
	same, flipped := 0.0, 0.0
	for i := range want {
		same = math.Max(same, math.Abs(float64(want[i]-got[i])))
		flipped = math.Max(flipped, math.Abs(float64(want[i]+got[i])))
	}
	return math.Min(same, flipped)
}

func eulerError(want, got spatialmath.EulerAngles) float64 {
	return math.Max(
		utils.AngleDiff(float64(want.Roll), float64(got.Roll)),
		math.Max(
			utils.AngleDiff(float64(want.Pitch), float64(got.Pitch)),
			utils.AngleDiff(float64(want.Yaw), float64(got.Yaw)),
		),
	)
}

func measureRoundTrips(samples int, seed int64) roundTripErrors {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec
	errs := roundTripErrors{
		quaternionMatrix: make([]float64, 0, samples),
		eulerMatrix:      make([]float64, 0, samples),
		eulerQuaternion:  make([]float64, 0, samples),
	}
	for i := 0; i < samples; i++ {
		q := randomQuaternion(rng)
		errs.quaternionMatrix = append(errs.quaternionMatrix,
			quaternionError(q, spatialmath.MatrixToQuaternion(spatialmath.QuaternionToMatrix(q))))

		e := randomEulerAngles(rng)
		errs.eulerMatrix = append(errs.eulerMatrix,
			eulerError(e, spatialmath.MatrixToEuler(spatialmath.EulerToMatrix(e.Roll, e.Pitch, e.Yaw))))
		errs.eulerQuaternion = append(errs.eulerQuaternion,
			eulerError(e, spatialmath.QuaternionToEuler(spatialmath.EulerToQuaternion(e.Roll, e.Pitch, e.Yaw))))
	}
	return errs
}

func summarize(data []float64) (mean, p99, maxErr float64, err error) {
	if mean, err = stats.Mean(data); err != nil {
		return 0, 0, 0, err
	}
	if p99, err = stats.Percentile(data, 99); err != nil {
		return 0, 0, 0, err
	}
	if maxErr, err = stats.Max(data); err != nil {
		return 0, 0, 0, err
	}
	return mean, p99, maxErr, nil
}

func (r *runner) accuracyAction(c *cli.Context) error {
	samples := c.Int(accuracyFlagSamples)
	if samples <= 0 {
		return errors.Errorf("samples must be positive, got %d", samples)
	}
	r.logger.Debugw("measuring round trips", "samples", samples, "seed", c.Int64(accuracyFlagSeed))
	errs := measureRoundTrips(samples, c.Int64(accuracyFlagSeed))

	tw := table.NewWriter()
	tw.SetOutputMirror(c.App.Writer)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"round trip", "mean", "p99", "max"})
	for _, rt := range []struct {
		name string
		data []float64
	}{
		{"quaternion -> matrix -> quaternion", errs.quaternionMatrix},
		{"euler -> matrix -> euler", errs.eulerMatrix},
		{"euler -> quaternion -> euler", errs.eulerQuaternion},
	} {
		mean, p99, maxErr, err := summarize(rt.data)
		if err != nil {
			return errors.Wrap(err, rt.name)
		}
		tw.AppendRow(table.Row{rt.name, mean, p99, maxErr})
	}
	tw.Render()
	return nil
}
