package metrics

import (
	"math"

	"github.com/san-kum/spheresim/internal/manifold"
)

// NormDrift tracks the worst deviation of any position norm from 1 over the
// run. A healthy run keeps it at floating-point noise; growth indicates the
// projection step is losing the fight against integration drift.
type NormDrift struct {
	name     string
	maxDrift float64
}

func NewNormDrift() *NormDrift {
	return &NormDrift{name: "norm_drift"}
}

func (d *NormDrift) Name() string { return d.name }

func (d *NormDrift) Observe(s *manifold.State, step int) {
	for _, p := range s.Positions {
		drift := math.Abs(p.Norm() - 1.0)
		if drift > d.maxDrift {
			d.maxDrift = drift
		}
	}
}

func (d *NormDrift) Value() float64 { return d.maxDrift }
func (d *NormDrift) Reset()        { d.maxDrift = 0 }

// Tangency tracks the worst |v·p| over the run, the residual radial
// component left in any velocity.
type Tangency struct {
	name        string
	maxResidual float64
}

func NewTangency() *Tangency {
	return &Tangency{name: "tangency"}
}

func (m *Tangency) Name() string { return m.name }

func (m *Tangency) Observe(s *manifold.State, step int) {
	for i, v := range s.Velocities {
		residual := math.Abs(v.Dot(s.Positions[i]))
		if residual > m.maxResidual {
			m.maxResidual = residual
		}
	}
}

func (m *Tangency) Value() float64 { return m.maxResidual }
func (m *Tangency) Reset()         { m.maxResidual = 0 }

// Kinetic tracks the mean kinetic energy (½‖v‖²) per particle, averaged over
// all observations.
type Kinetic struct {
	name    string
	sum     float64
	samples int
}

func NewKinetic() *Kinetic {
	return &Kinetic{name: "kinetic"}
}

func (m *Kinetic) Name() string { return m.name }

func (m *Kinetic) Observe(s *manifold.State, step int) {
	total := 0.0
	for _, v := range s.Velocities {
		total += 0.5 * v.Dot(v)
	}
	if n := len(s.Velocities); n > 0 {
		m.sum += total / float64(n)
		m.samples++
	}
}

func (m *Kinetic) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Kinetic) Reset() {
	m.sum = 0
	m.samples = 0
}

// Defaults returns the standard metric set attached to engine runs.
func Defaults() []manifold.Metric {
	return []manifold.Metric{
		NewAlignment(),
		NewNormDrift(),
		NewTangency(),
		NewKinetic(),
	}
}
