// Package zone computes the neighborhood coupling forces between particles.
//
// A particle is pulled toward every partner whose topology distance lies
// within the zone width, weighted by a Gaussian decay in that distance. The
// summed pull is projected onto the tangent plane of the particle so the raw
// force never pushes off the manifold.
package zone

import (
	"fmt"
	"math"

	"github.com/san-kum/spheresim/internal/compute"
	"github.com/san-kum/spheresim/internal/manifold"
	"github.com/san-kum/spheresim/internal/topology"
)

// Zone is a deterministic, side-effect-free force model over a topology
// graph. It holds no mutable state, so a single Zone may serve concurrent
// readers of the same snapshot.
type Zone struct {
	graph *topology.Graph
	width float64
}

func New(graph *topology.Graph, width float64) (*Zone, error) {
	if graph == nil {
		return nil, fmt.Errorf("%w: nil topology graph", manifold.ErrConfig)
	}
	if width <= 0 {
		return nil, fmt.Errorf("%w: zone width must be > 0, got %v", manifold.ErrConfig, width)
	}
	return &Zone{graph: graph, width: width}, nil
}

func (z *Zone) Width() float64 { return z.width }

// Forces computes one tangential force vector per particle into dst. Partners
// beyond the zone width contribute nothing; a width exceeding the largest
// topology distance couples every pair.
func (z *Zone) Forces(s *manifold.State, dst manifold.Field) {
	pos := s.Positions
	w2 := z.width * z.width

	compute.GetBackend().Map(len(pos), func(start, end int) {
		for i := start; i < end; i++ {
			f := dst[i]
			for k := range f {
				f[k] = 0
			}

			pi := pos[i]
			for _, p := range z.graph.Partners(i) {
				if p.Dist > z.width {
					continue
				}
				decay := math.Exp(-p.Dist * p.Dist / w2)
				pj := pos[p.Index]
				for k := range f {
					f[k] += decay * (pj[k] - pi[k])
				}
			}

			radial := f.Dot(pi)
			for k := range f {
				f[k] -= radial * pi[k]
			}
		}
	})
}
