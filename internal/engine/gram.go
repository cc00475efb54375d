package engine

import (
	"github.com/san-kum/spheresim/internal/compute"
)

// InnerProductMatrix computes the pairwise dot-product (Gram) matrix of the
// current positions. Positions are unit vectors, so entries are cosine
// similarities: symmetric, diagonal ≈ 1, all values in [-1, 1]. The matrix
// is recomputed from whatever the state currently holds, so repeated calls
// without an intervening step return identical matrices.
func (e *Engine) InnerProductMatrix() [][]float64 {
	pos := e.state.Positions
	n := len(pos)

	m := make([][]float64, n)
	flat := make([]float64, n*n)
	for i := range m {
		m[i] = flat[i*n : (i+1)*n]
	}

	// Row i fills its lower triangle and mirrors it; no two workers touch
	// the same entry.
	compute.GetBackend().Map(n, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j <= i; j++ {
				d := pos[i].Dot(pos[j])
				m[i][j] = d
				m[j][i] = d
			}
		}
	})

	return m
}
