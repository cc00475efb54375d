// Package integrators provides discrete time steppers on the sphere.
//
// Each integrator advances velocities and positions in the embedding space
// and then delegates to [manifold.State.Project] so the unit-norm and
// tangent-velocity invariants hold at every step boundary. A higher-order
// geodesic stepper may replace these as long as it preserves that contract.
package integrators

import (
	"fmt"

	"github.com/san-kum/spheresim/internal/manifold"
)

// New returns the integrator registered under name.
func New(name string) (manifold.Integrator, error) {
	switch name {
	case "euler", "":
		return NewEuler(), nil
	case "heun":
		return NewHeun(), nil
	}
	return nil, fmt.Errorf("%w: unknown integrator %q", manifold.ErrConfig, name)
}

// Euler is the projected explicit Euler step:
//
//	v ← v + dt·F(p)
//	p ← p + dt·v
//
// followed by manifold re-projection.
type Euler struct {
	forces manifold.Field
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) ensureScratch(n, dim int) {
	if len(e.forces) != n || (n > 0 && len(e.forces[0]) != dim) {
		e.forces = manifold.NewField(n, dim)
	}
}

func (e *Euler) Step(s *manifold.State, f manifold.Forcer, dt float64) error {
	e.ensureScratch(s.Len(), s.Dim())

	f.Forces(s, e.forces)

	for i := range s.Positions {
		p := s.Positions[i]
		v := s.Velocities[i]
		fi := e.forces[i]
		for k := range p {
			v[k] += dt * fi[k]
			p[k] += dt * v[k]
		}
	}

	return s.Project()
}
