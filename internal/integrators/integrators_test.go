package integrators

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/spheresim/internal/manifold"
)

// zeroForcer leaves particles drifting on their current velocities.
type zeroForcer struct{}

func (zeroForcer) Forces(s *manifold.State, dst manifold.Field) {
	dst.Zero()
}

// centerPull pulls every particle toward the first particle's position,
// projected tangentially.
type centerPull struct{}

func (centerPull) Forces(s *manifold.State, dst manifold.Field) {
	target := s.Positions[0]
	for i := range dst {
		p := s.Positions[i]
		f := dst[i]
		for k := range f {
			f[k] = target[k] - p[k]
		}
		radial := f.Dot(p)
		for k := range f {
			f[k] -= radial * p[k]
		}
	}
}

func newTestState(t *testing.T, n, dim int, seed int64) *manifold.State {
	t.Helper()
	s, err := manifold.NewState(n, dim, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("new state failed: %v", err)
	}
	return s
}

func checkInvariants(t *testing.T, s *manifold.State) {
	t.Helper()
	for i := range s.Positions {
		if math.Abs(s.Positions[i].Norm()-1.0) > 1e-6 {
			t.Errorf("particle %d: norm %f after step", i, s.Positions[i].Norm())
		}
		if math.Abs(s.Velocities[i].Dot(s.Positions[i])) > 1e-6 {
			t.Errorf("particle %d: velocity not tangent after step", i)
		}
	}
}

func TestNewRegistry(t *testing.T) {
	for _, name := range []string{"euler", "heun", ""} {
		integ, err := New(name)
		if err != nil {
			t.Errorf("New(%q) failed: %v", name, err)
		}
		if integ == nil {
			t.Errorf("New(%q) returned nil integrator", name)
		}
	}

	if _, err := New("rk9"); !errors.Is(err, manifold.ErrConfig) {
		t.Errorf("expected ErrConfig for unknown integrator, got %v", err)
	}
}

func TestStepsPreserveInvariants(t *testing.T) {
	integs := []manifold.Integrator{NewEuler(), NewHeun()}

	for _, integ := range integs {
		t.Run(integ.Name(), func(t *testing.T) {
			s := newTestState(t, 10, 4, 5)
			for step := 0; step < 200; step++ {
				if err := integ.Step(s, centerPull{}, 0.01); err != nil {
					t.Fatalf("step %d failed: %v", step, err)
				}
			}
			checkInvariants(t, s)
		})
	}
}

func TestZeroForceGeodesicDrift(t *testing.T) {
	// With no force the particle slides along the sphere; speed stays
	// bounded by the initial speed since projection only removes components.
	s := newTestState(t, 5, 3, 8)

	initial := make([]float64, 5)
	for i := range initial {
		initial[i] = s.Velocities[i].Norm()
	}

	integ := NewEuler()
	for step := 0; step < 100; step++ {
		if err := integ.Step(s, zeroForcer{}, 0.01); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	checkInvariants(t, s)
	for i := range initial {
		if s.Velocities[i].Norm() > initial[i]+1e-9 {
			t.Errorf("particle %d: speed grew without forcing", i)
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	a := newTestState(t, 6, 3, 13)
	b := newTestState(t, 6, 3, 13)

	ia := NewHeun()
	ib := NewHeun()
	for step := 0; step < 50; step++ {
		if err := ia.Step(a, centerPull{}, 0.01); err != nil {
			t.Fatal(err)
		}
		if err := ib.Step(b, centerPull{}, 0.01); err != nil {
			t.Fatal(err)
		}
	}

	for i := range a.Positions {
		for k := range a.Positions[i] {
			if a.Positions[i][k] != b.Positions[i][k] {
				t.Fatalf("trajectories diverged at (%d,%d)", i, k)
			}
		}
	}
}

func TestPlanarCase(t *testing.T) {
	// dim=2 (circle in the plane) must behave like higher dimensions.
	s := newTestState(t, 8, 2, 17)
	integ := NewEuler()

	for step := 0; step < 100; step++ {
		if err := integ.Step(s, centerPull{}, 0.01); err != nil {
			t.Fatalf("planar step failed: %v", err)
		}
	}
	checkInvariants(t, s)
}
