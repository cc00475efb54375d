// Package metrics provides per-step scalar observations over the particle
// state, implementing [manifold.Metric].
package metrics

import (
	"math"

	"github.com/san-kum/spheresim/internal/manifold"
)

// Alignment tracks the order parameter ‖Σ p_i‖ / n: 1 when all particles
// coincide, near 0 for a uniform spread. Value reports the most recent
// observation; Series holds the whole run for plotting.
type Alignment struct {
	name   string
	latest float64
	series []float64
}

func NewAlignment() *Alignment {
	return &Alignment{name: "alignment"}
}

func (a *Alignment) Name() string { return a.name }

func (a *Alignment) Observe(s *manifold.State, step int) {
	a.latest = OrderParameter(s.Positions)
	a.series = append(a.series, a.latest)
}

func (a *Alignment) Value() float64 { return a.latest }

// Series returns one value per observation, in step order. The slice is
// owned by the metric; callers must not mutate it.
func (a *Alignment) Series() []float64 { return a.series }

func (a *Alignment) Reset() {
	a.latest = 0
	a.series = a.series[:0]
}

// OrderParameter computes ‖mean position‖ for a position field.
func OrderParameter(positions manifold.Field) float64 {
	if len(positions) == 0 {
		return 0
	}

	dim := len(positions[0])
	mean := make([]float64, dim)
	for _, p := range positions {
		for k := range p {
			mean[k] += p[k]
		}
	}

	sum := 0.0
	n := float64(len(positions))
	for k := range mean {
		m := mean[k] / n
		sum += m * m
	}
	return math.Sqrt(sum)
}
