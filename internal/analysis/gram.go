package analysis

import "math"

// MeanOffDiagonal averages the off-diagonal entries of an inner-product
// matrix, a global coupling summary in [-1, 1].
func MeanOffDiagonal(m [][]float64) float64 {
	n := len(m)
	if n < 2 {
		return 0
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				sum += m[i][j]
			}
		}
	}
	return sum / float64(n*(n-1))
}

// RingProfile averages inner products by ring distance between indices:
// entry d is the mean of m[i][j] over all pairs at ring distance d, for
// d in [1, n/2]. Under circle topology a synchronizing run pushes the
// short-distance entries toward 1 first, so the profile exposes the spatial
// structure of the coupling.
func RingProfile(m [][]float64) []float64 {
	n := len(m)
	if n < 2 {
		return nil
	}

	maxDist := n / 2
	sums := make([]float64, maxDist+1)
	counts := make([]int, maxDist+1)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := j - i
			if n-d < d {
				d = n - d
			}
			sums[d] += m[i][j]
			counts[d]++
		}
	}

	profile := make([]float64, 0, maxDist)
	for d := 1; d <= maxDist; d++ {
		if counts[d] == 0 {
			continue
		}
		profile = append(profile, sums[d]/float64(counts[d]))
	}
	return profile
}

// Bounds reports the minimum and maximum entries of a matrix.
func Bounds(m [][]float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for i := range m {
		for _, v := range m[i] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}
