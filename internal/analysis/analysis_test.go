package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/spheresim/internal/manifold"
)

func TestPCAPlanarData(t *testing.T) {
	// Points on the unit circle in the xy-plane of R^3: all variance must
	// land in the first two components.
	n := 16
	positions := manifold.NewField(n, 3)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		positions[i][0] = math.Cos(angle)
		positions[i][1] = math.Sin(angle)
	}

	proj, err := PCA(positions, 3)
	if err != nil {
		t.Fatalf("pca failed: %v", err)
	}

	if len(proj.Coords) != n || len(proj.Coords[0]) != 3 {
		t.Fatalf("unexpected projection shape")
	}

	if proj.ExplainedVariance[2] > 1e-10 {
		t.Errorf("third component carries variance %g for planar data", proj.ExplainedVariance[2])
	}

	total := 0.0
	for _, v := range proj.ExplainedVariance {
		total += v
	}
	if math.Abs(total-1.0) > 1e-9 {
		t.Errorf("variance ratios sum to %f", total)
	}
}

func TestPCAValidation(t *testing.T) {
	positions := manifold.NewField(4, 3)
	for i := range positions {
		positions[i][i%3] = 1
	}

	if _, err := PCA(positions, 0); !errors.Is(err, manifold.ErrConfig) {
		t.Errorf("expected ErrConfig for 0 components, got %v", err)
	}
	if _, err := PCA(positions, 4); !errors.Is(err, manifold.ErrConfig) {
		t.Errorf("expected ErrConfig for components > dim, got %v", err)
	}
	if _, err := PCA(manifold.Field{}, 1); !errors.Is(err, manifold.ErrConfig) {
		t.Errorf("expected ErrConfig for empty field, got %v", err)
	}
}

func TestPCAComponentsCappedByParticleCount(t *testing.T) {
	// Two particles in R^3: the thin SVD carries only two components, so
	// asking for three must fail up front rather than index past U.
	positions := manifold.NewField(2, 3)
	positions[0][0] = 1.0
	positions[1][1] = 1.0

	if _, err := PCA(positions, 3); !errors.Is(err, manifold.ErrConfig) {
		t.Errorf("expected ErrConfig when components exceed particle count, got %v", err)
	}

	proj, err := PCA(positions, 2)
	if err != nil {
		t.Fatalf("pca failed: %v", err)
	}
	if len(proj.Coords) != 2 || len(proj.Coords[0]) != 2 {
		t.Fatalf("unexpected projection shape")
	}
}

func TestPCASingleParticle(t *testing.T) {
	positions := manifold.NewField(1, 3)
	positions[0][2] = 1.0

	proj, err := PCA(positions, 1)
	if err != nil {
		t.Fatalf("pca failed: %v", err)
	}
	if len(proj.Coords) != 1 || len(proj.Coords[0]) != 1 {
		t.Fatalf("unexpected projection shape")
	}
	if proj.ExplainedVariance[0] != 0 {
		t.Errorf("single centered point should carry no variance, got %g", proj.ExplainedVariance[0])
	}
}

func TestMeanOffDiagonal(t *testing.T) {
	m := [][]float64{
		{1.0, 0.5, 0.0},
		{0.5, 1.0, -0.5},
		{0.0, -0.5, 1.0},
	}

	got := MeanOffDiagonal(m)
	if math.Abs(got) > 1e-12 {
		t.Errorf("expected mean 0, got %f", got)
	}
}

func TestRingProfile(t *testing.T) {
	// 4-ring: distances are 1 (adjacent) and 2 (opposite).
	m := [][]float64{
		{1.0, 0.8, 0.2, 0.8},
		{0.8, 1.0, 0.8, 0.2},
		{0.2, 0.8, 1.0, 0.8},
		{0.8, 0.2, 0.8, 1.0},
	}

	profile := RingProfile(m)
	if len(profile) != 2 {
		t.Fatalf("expected 2 distance bins, got %d", len(profile))
	}
	if math.Abs(profile[0]-0.8) > 1e-12 {
		t.Errorf("distance-1 mean %f, expected 0.8", profile[0])
	}
	if math.Abs(profile[1]-0.2) > 1e-12 {
		t.Errorf("distance-2 mean %f, expected 0.2", profile[1])
	}
}

func TestBounds(t *testing.T) {
	m := [][]float64{{1.0, -0.3}, {-0.3, 1.0}}
	min, max := Bounds(m)
	if min != -0.3 || max != 1.0 {
		t.Errorf("bounds (%f, %f), expected (-0.3, 1.0)", min, max)
	}
}
