// Package optim sweeps engine parameters over a range and scores each run,
// for picking coupling regimes worth a full-length simulation.
package optim

import (
	"context"
	"fmt"

	"github.com/san-kum/spheresim/internal/engine"
	"github.com/san-kum/spheresim/internal/manifold"
	"github.com/san-kum/spheresim/internal/metrics"
)

type SweepPoint struct {
	ZoneWidth float64
	Alignment float64
}

// SweepZoneWidth runs the base configuration once per width for nSteps and
// records the final alignment order parameter. Returns all points and the
// best one. Each run reuses the base seed, so points differ only in the zone
// width.
func SweepZoneWidth(ctx context.Context, base engine.Config, widths []float64, nSteps int) ([]SweepPoint, SweepPoint, error) {
	if len(widths) == 0 {
		return nil, SweepPoint{}, fmt.Errorf("%w: no widths to sweep", manifold.ErrConfig)
	}

	points := make([]SweepPoint, 0, len(widths))
	best := SweepPoint{Alignment: -1}

	for _, w := range widths {
		select {
		case <-ctx.Done():
			return points, best, ctx.Err()
		default:
		}

		cfg := base
		cfg.ZoneWidth = w
		cfg.RecordStride = nSteps + 1 // only endpoints matter here

		eng, err := engine.New(cfg)
		if err != nil {
			return points, best, err
		}

		align := metrics.NewAlignment()
		eng.AddMetric(align)

		if _, err := eng.Simulate(ctx, nSteps); err != nil {
			return points, best, err
		}

		point := SweepPoint{ZoneWidth: w, Alignment: align.Value()}
		points = append(points, point)
		if point.Alignment > best.Alignment {
			best = point
		}
	}

	return points, best, nil
}

// Range builds count evenly spaced values across [min, max].
func Range(min, max float64, count int) []float64 {
	if count < 1 {
		return nil
	}
	if count == 1 {
		return []float64{min}
	}

	step := (max - min) / float64(count-1)
	values := make([]float64, count)
	for i := range values {
		values[i] = min + float64(i)*step
	}
	return values
}
