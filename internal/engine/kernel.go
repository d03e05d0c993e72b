package engine

import (
	"errors"
	"math"
)

// ErrComputationFailure is returned when the tick computation produces a
// non-finite result.
var ErrComputationFailure = errors.New("computation failure")

// kernelScale keeps the kernel's argument in a well-conditioned range for
// typical grid sizes.
const kernelScale = 1e-4

// tick performs work iterations of the placeholder computation for one step
// and returns their sum. phase shifts the argument so seeded runs share the
// same numeric trajectory and unseeded ones do not.
func tick(step, work int, phase float64) (float64, error) {
	base := float64(step + 1)
	var s float64
	for k := 0; k < work; k++ {
		x := base*float64(k+1)*kernelScale + phase
		s += math.Sin(x) * math.Cos(x+1e-3)
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return s, ErrComputationFailure
	}
	return s, nil
}
