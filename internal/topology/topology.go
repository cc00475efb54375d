// Package topology defines the connectivity structure imposed on the particle
// index set, independent of geometric embedding.
//
// Each [Kind] maps to a pure (index, count) → weighted partner set builder.
// The resulting [Graph] is precomputed at construction and immutable
// afterward; unrecognized kinds fail at construction, never during stepping.
package topology

import (
	"fmt"
	"math"

	"github.com/san-kum/spheresim/internal/manifold"
)

// Kind is a topology tag.
type Kind string

const (
	// Circle arranges particles on a ring; distance is the shorter arc of
	// index steps between two particles.
	Circle Kind = "circle"

	// Line arranges particles on an open chain; distance is |i - j|.
	Line Kind = "line"

	// Full couples every pair at distance 1.
	Full Kind = "full"

	// Grid arranges particles row-major on a ⌈√n⌉-wide lattice; distance is
	// the Manhattan distance between lattice cells.
	Grid Kind = "grid"
)

// ParseKind validates a topology tag.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Circle, Line, Full, Grid:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: unknown topology %q", manifold.ErrConfig, s)
}

// Partner is one interaction partner of a particle, carrying the topology
// distance used by the interaction zone for gating and decay.
type Partner struct {
	Index int
	Dist  float64
}

// Graph maps each particle index to its full weighted partner set.
type Graph struct {
	kind     Kind
	n        int
	partners [][]Partner
}

type distFunc func(i, j, n int) float64

// New builds the partner sets for n particles under the given topology.
func New(kind Kind, n int) (*Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: particles must be >= 1, got %d", manifold.ErrConfig, n)
	}

	var dist distFunc
	switch kind {
	case Circle:
		dist = circleDist
	case Line:
		dist = lineDist
	case Full:
		dist = fullDist
	case Grid:
		dist = gridDist
	default:
		return nil, fmt.Errorf("%w: unknown topology %q", manifold.ErrConfig, kind)
	}

	g := &Graph{
		kind:     kind,
		n:        n,
		partners: make([][]Partner, n),
	}

	for i := 0; i < n; i++ {
		ps := make([]Partner, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			ps = append(ps, Partner{Index: j, Dist: dist(i, j, n)})
		}
		g.partners[i] = ps
	}

	return g, nil
}

func (g *Graph) Kind() Kind { return g.kind }
func (g *Graph) Len() int   { return g.n }

// Partners returns the weighted partner set of particle i. The returned slice
// is shared and must not be mutated.
func (g *Graph) Partners(i int) []Partner {
	return g.partners[i]
}

func circleDist(i, j, n int) float64 {
	d := i - j
	if d < 0 {
		d = -d
	}
	if n-d < d {
		d = n - d
	}
	return float64(d)
}

func lineDist(i, j, n int) float64 {
	return math.Abs(float64(i - j))
}

func fullDist(i, j, n int) float64 {
	return 1
}

func gridDist(i, j, n int) float64 {
	side := int(math.Ceil(math.Sqrt(float64(n))))
	ri, ci := i/side, i%side
	rj, cj := j/side, j%side
	return math.Abs(float64(ri-rj)) + math.Abs(float64(ci-cj))
}
