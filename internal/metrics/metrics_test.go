package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/spheresim/internal/manifold"
)

func coincidentState(n, dim int) *manifold.State {
	s := &manifold.State{
		Positions:  manifold.NewField(n, dim),
		Velocities: manifold.NewField(n, dim),
	}
	for i := range s.Positions {
		s.Positions[i][0] = 1.0
	}
	return s
}

func TestAlignmentCoincident(t *testing.T) {
	m := NewAlignment()
	m.Observe(coincidentState(5, 3), 0)

	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("coincident particles: alignment %f, expected 1", m.Value())
	}
}

func TestAlignmentAntipodal(t *testing.T) {
	s := coincidentState(2, 3)
	s.Positions[1][0] = -1.0

	m := NewAlignment()
	m.Observe(s, 0)

	if m.Value() > 1e-12 {
		t.Errorf("antipodal pair: alignment %f, expected 0", m.Value())
	}
}

func TestAlignmentSeries(t *testing.T) {
	m := NewAlignment()
	s := coincidentState(3, 3)

	m.Observe(s, 0)
	m.Observe(s, 1)
	m.Observe(s, 2)

	if len(m.Series()) != 3 {
		t.Errorf("expected 3 series entries, got %d", len(m.Series()))
	}

	m.Reset()
	if len(m.Series()) != 0 {
		t.Error("reset did not clear series")
	}
}

func TestNormDriftOnUnitState(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s, err := manifold.NewState(10, 4, rng)
	if err != nil {
		t.Fatal(err)
	}

	m := NewNormDrift()
	m.Observe(s, 0)

	if m.Value() > 1e-9 {
		t.Errorf("fresh unit state: drift %g", m.Value())
	}
}

func TestNormDriftDetectsDeviation(t *testing.T) {
	s := coincidentState(3, 3)
	s.Positions[1][0] = 1.5

	m := NewNormDrift()
	m.Observe(s, 0)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected drift 0.5, got %g", m.Value())
	}
}

func TestTangencyResidual(t *testing.T) {
	s := coincidentState(2, 3)
	s.Velocities[0][0] = 0.25 // radial at p = e_0

	m := NewTangency()
	m.Observe(s, 0)

	if math.Abs(m.Value()-0.25) > 1e-12 {
		t.Errorf("expected residual 0.25, got %g", m.Value())
	}
}

func TestKineticAverage(t *testing.T) {
	s := coincidentState(2, 3)
	s.Velocities[0][1] = 2.0 // energy 2.0 for particle 0, 0 for particle 1

	m := NewKinetic()
	m.Observe(s, 0)

	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected mean kinetic 1.0, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear kinetic accumulator")
	}
}

func TestDefaultsNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %q", m.Name())
		}
		seen[m.Name()] = true
	}
	for _, want := range []string{"alignment", "norm_drift", "tangency", "kinetic"} {
		if !seen[want] {
			t.Errorf("missing default metric %q", want)
		}
	}
}
