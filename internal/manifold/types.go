package manifold

import "math"

// Vec is a point or direction in the embedding space R^d.
type Vec []float64

func (v Vec) Clone() Vec {
	c := make(Vec, len(v))
	copy(c, v)
	return c
}

func (v Vec) Dot(other Vec) float64 {
	sum := 0.0
	for i := range v {
		sum += v[i] * other[i]
	}
	return sum
}

func (v Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Field holds one vector per particle, shape (n, d). A Field is backed by a
// single flat allocation so snapshots stay cache-friendly on long runs.
type Field []Vec

func NewField(n, dim int) Field {
	flat := make([]float64, n*dim)
	f := make(Field, n)
	for i := range f {
		f[i] = Vec(flat[i*dim : (i+1)*dim])
	}
	return f
}

func (f Field) Clone() Field {
	if len(f) == 0 {
		return Field{}
	}
	c := NewField(len(f), len(f[0]))
	for i := range f {
		copy(c[i], f[i])
	}
	return c
}

func (f Field) IsValid() bool {
	for _, v := range f {
		if !v.IsValid() {
			return false
		}
	}
	return true
}

// Zero clears every component in place.
func (f Field) Zero() {
	for _, v := range f {
		for i := range v {
			v[i] = 0
		}
	}
}

// Forcer computes one force vector per particle into dst. Implementations
// must be deterministic functions of the state with no hidden mutation.
type Forcer interface {
	Forces(s *State, dst Field)
}

// Integrator advances the state by one time step and restores the manifold
// invariants before returning.
type Integrator interface {
	Name() string
	Step(s *State, f Forcer, dt float64) error
}

// Metric observes the state once per step and reduces it to a scalar.
type Metric interface {
	Name() string
	Observe(s *State, step int)
	Value() float64
	Reset()
}

// Observer receives the state after each completed step.
type Observer interface {
	OnStep(s *State, step int)
}
