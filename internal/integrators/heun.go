package integrators

import "github.com/san-kum/spheresim/internal/manifold"

// Heun is a projected two-stage predictor-corrector. It takes a trial Euler
// step, re-evaluates forces at the predicted state, and averages the two
// slopes before the final projection. Second-order in dt at roughly twice the
// force cost per step.
type Heun struct {
	f0        manifold.Field
	f1        manifold.Field
	predicted *manifold.State
}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) Name() string { return "heun" }

func (h *Heun) ensureScratch(n, dim int) {
	if len(h.f0) != n || (n > 0 && len(h.f0[0]) != dim) {
		h.f0 = manifold.NewField(n, dim)
		h.f1 = manifold.NewField(n, dim)
		h.predicted = &manifold.State{
			Positions:  manifold.NewField(n, dim),
			Velocities: manifold.NewField(n, dim),
		}
	}
}

func (h *Heun) Step(s *manifold.State, f manifold.Forcer, dt float64) error {
	n, dim := s.Len(), s.Dim()
	h.ensureScratch(n, dim)

	f.Forces(s, h.f0)

	// Predictor: trial Euler step into scratch state.
	for i := 0; i < n; i++ {
		p := s.Positions[i]
		v := s.Velocities[i]
		pp := h.predicted.Positions[i]
		pv := h.predicted.Velocities[i]
		for k := 0; k < dim; k++ {
			pv[k] = v[k] + dt*h.f0[i][k]
			pp[k] = p[k] + dt*pv[k]
		}
	}
	if err := h.predicted.Project(); err != nil {
		return err
	}

	f.Forces(h.predicted, h.f1)

	// Corrector: average the slopes from both ends of the step.
	for i := 0; i < n; i++ {
		p := s.Positions[i]
		v := s.Velocities[i]
		for k := 0; k < dim; k++ {
			v0 := v[k]
			v[k] += dt * 0.5 * (h.f0[i][k] + h.f1[i][k])
			p[k] += dt * 0.5 * (v0 + v[k])
		}
	}

	return s.Project()
}
