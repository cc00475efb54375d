// Package analysis provides offline analysis of simulation output for the
// presentation layer: linear projection of final positions to a plottable
// dimension and structural summaries of the inner-product matrix.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/spheresim/internal/manifold"
)

// Projection is the result of a PCA reduction.
type Projection struct {
	// Coords has one row per particle and `components` columns.
	Coords [][]float64

	// ExplainedVariance holds the variance ratio captured by each kept
	// component, in descending order.
	ExplainedVariance []float64
}

// PCA projects positions onto their top principal components via a thin SVD
// of the mean-centered data matrix.
func PCA(positions manifold.Field, components int) (*Projection, error) {
	n := len(positions)
	if n == 0 {
		return nil, fmt.Errorf("%w: no positions to project", manifold.ErrConfig)
	}
	dim := len(positions[0])

	// A thin SVD of the n×d centered matrix carries min(n, d) singular
	// values, so that is the most components a projection can hold.
	limit := dim
	if n < limit {
		limit = n
	}
	if components < 1 || components > limit {
		return nil, fmt.Errorf("%w: components must be in [1, %d] for %d particles in R^%d, got %d",
			manifold.ErrConfig, limit, n, dim, components)
	}

	data := mat.NewDense(n, dim, nil)
	mean := make([]float64, dim)
	for _, p := range positions {
		floats.Add(mean, p)
	}
	floats.Scale(1/float64(n), mean)

	row := make([]float64, dim)
	for i, p := range positions {
		floats.SubTo(row, p, mean)
		data.SetRow(i, row)
	}

	var svd mat.SVD
	if !svd.Factorize(data, mat.SVDThin) {
		return nil, fmt.Errorf("%w: SVD failed to converge", manifold.ErrInvalidState)
	}

	var u mat.Dense
	svd.UTo(&u)
	sigma := svd.Values(nil)

	proj := &Projection{
		Coords:            make([][]float64, n),
		ExplainedVariance: make([]float64, components),
	}

	for i := 0; i < n; i++ {
		coords := make([]float64, components)
		for c := 0; c < components; c++ {
			coords[c] = u.At(i, c) * sigma[c]
		}
		proj.Coords[i] = coords
	}

	total := 0.0
	for _, s := range sigma {
		total += s * s
	}
	if total > 0 {
		for c := 0; c < components; c++ {
			proj.ExplainedVariance[c] = sigma[c] * sigma[c] / total
		}
	}

	return proj, nil
}
