package engine

import "github.com/san-kum/spheresim/internal/manifold"

// recorder accumulates independent position and velocity snapshots. Pure
// accumulation, no transformation.
type recorder struct {
	stride     int
	max        int
	positions  []manifold.Field
	velocities []manifold.Field
}

func newRecorder(stride, max, nSteps int) *recorder {
	if stride < 1 {
		stride = 1
	}

	capacity := nSteps/stride + 2
	if max > 0 && capacity > max {
		capacity = max
	}

	return &recorder{
		stride:     stride,
		max:        max,
		positions:  make([]manifold.Field, 0, capacity),
		velocities: make([]manifold.Field, 0, capacity),
	}
}

// wants reports whether the snapshot after completing the given step should
// be kept: every stride-th step plus the final one, capacity permitting.
func (r *recorder) wants(step, nSteps int) bool {
	if r.max > 0 && len(r.positions) >= r.max {
		return false
	}
	return step%r.stride == 0 || step == nSteps
}

func (r *recorder) record(s *manifold.State) {
	if r.max > 0 && len(r.positions) >= r.max {
		return
	}
	r.positions = append(r.positions, s.Positions.Clone())
	r.velocities = append(r.velocities, s.Velocities.Clone())
}
