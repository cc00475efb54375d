package manifold

import (
	"fmt"
	"math/rand"
)

const (
	// minNorm is the smallest position norm re-normalization will divide by.
	minNorm = 1e-12

	// initialSpeed scales the random tangent velocities at construction.
	initialSpeed = 0.1
)

// State owns the positions and velocities of all particles.
type State struct {
	Positions  Field
	Velocities Field
}

// NewState samples n unit positions from an isotropic Gaussian and gives each
// particle a small random velocity in the tangent plane of its position. The
// rng is the only randomness source, so identical seeds reproduce identical
// initial states.
func NewState(n, dim int, rng *rand.Rand) (*State, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: particles must be >= 1, got %d", ErrConfig, n)
	}
	if dim < 2 {
		return nil, fmt.Errorf("%w: dimensions must be >= 2, got %d", ErrConfig, dim)
	}

	s := &State{
		Positions:  NewField(n, dim),
		Velocities: NewField(n, dim),
	}

	for i := 0; i < n; i++ {
		p := s.Positions[i]
		for {
			for k := range p {
				p[k] = rng.NormFloat64()
			}
			if p.Norm() > minNorm {
				break
			}
		}
		norm := p.Norm()
		for k := range p {
			p[k] /= norm
		}

		v := s.Velocities[i]
		for k := range v {
			v[k] = rng.NormFloat64() * initialSpeed
		}
		radial := v.Dot(p)
		for k := range v {
			v[k] -= radial * p[k]
		}
	}

	return s, nil
}

func (s *State) Len() int {
	return len(s.Positions)
}

func (s *State) Dim() int {
	if len(s.Positions) == 0 {
		return 0
	}
	return len(s.Positions[0])
}

// Project restores the manifold invariants after integration drift: each
// position is renormalized to unit length and the radial component of each
// velocity is removed so it stays tangent at the new position. A norm below
// minNorm means the integration collapsed a particle toward the origin;
// Project fails rather than divide by it.
func (s *State) Project() error {
	for i, p := range s.Positions {
		norm := p.Norm()
		if norm < minNorm {
			return fmt.Errorf("particle %d: %w", i, ErrUnstable)
		}
		for k := range p {
			p[k] /= norm
		}

		v := s.Velocities[i]
		radial := v.Dot(p)
		for k := range v {
			v[k] -= radial * p[k]
		}
	}
	return nil
}

func (s *State) IsValid() bool {
	return s.Positions.IsValid() && s.Velocities.IsValid()
}
