// Package engine orchestrates sphere dynamics runs.
//
// An [Engine] owns the manifold state, the topology graph, and the
// interaction zone, and advances them with a pluggable integrator. The
// stepping loop is sequential by nature; force computation inside a step runs
// through the compute backend.
package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/spheresim/internal/integrators"
	"github.com/san-kum/spheresim/internal/manifold"
	"github.com/san-kum/spheresim/internal/topology"
	"github.com/san-kum/spheresim/internal/zone"
)

// Config holds all construction parameters. Every field is validated by
// [New]; nothing fails lazily inside the simulation loop.
type Config struct {
	Particles  int
	Dimensions int
	ZoneWidth  float64
	Topology   string
	Integrator string
	Dt         float64
	Seed       int64

	// RecordStride keeps step 0 and every stride-th step (plus the final
	// step). Zero means record every step.
	RecordStride int

	// MaxSnapshots bounds recorded history on long runs; once reached,
	// stepping continues but recording stops. Zero means unbounded.
	MaxSnapshots int
}

func DefaultConfig() Config {
	return Config{
		Particles:  100,
		Dimensions: 3,
		ZoneWidth:  5.0,
		Topology:   string(topology.Circle),
		Integrator: "euler",
		Dt:         0.01,
		Seed:       1,
	}
}

// Result holds the recorded history of one run. Snapshots are independent
// copies; the engine retains no ownership after returning them.
type Result struct {
	Trajectory []manifold.Field
	Velocities []manifold.Field
	Steps      int
	Metrics    map[string]float64
}

type Engine struct {
	cfg       Config
	state     *manifold.State
	graph     *topology.Graph
	zone      *zone.Zone
	integ     manifold.Integrator
	metrics   []manifold.Metric
	observers []manifold.Observer
	steps     int
}

// New validates cfg and builds the engine: seeded random initial state,
// precomputed topology graph, interaction zone, integrator.
func New(cfg Config) (*Engine, error) {
	if cfg.Dt == 0 {
		cfg.Dt = DefaultConfig().Dt
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be > 0, got %v", manifold.ErrConfig, cfg.Dt)
	}
	if cfg.RecordStride < 0 {
		return nil, fmt.Errorf("%w: record stride must be >= 0, got %d", manifold.ErrConfig, cfg.RecordStride)
	}
	if cfg.MaxSnapshots < 0 {
		return nil, fmt.Errorf("%w: max snapshots must be >= 0, got %d", manifold.ErrConfig, cfg.MaxSnapshots)
	}

	kind, err := topology.ParseKind(cfg.Topology)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	state, err := manifold.NewState(cfg.Particles, cfg.Dimensions, rng)
	if err != nil {
		return nil, err
	}

	graph, err := topology.New(kind, cfg.Particles)
	if err != nil {
		return nil, err
	}

	z, err := zone.New(graph, cfg.ZoneWidth)
	if err != nil {
		return nil, err
	}

	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:   cfg,
		state: state,
		graph: graph,
		zone:  z,
		integ: integ,
	}, nil
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) AddMetric(m manifold.Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o manifold.Observer) { e.observers = append(e.observers, o) }

// Steps reports the total number of completed steps since construction.
func (e *Engine) Steps() int { return e.steps }

// Positions returns an independent copy of the current positions.
func (e *Engine) Positions() manifold.Field {
	return e.state.Positions.Clone()
}

// Velocities returns an independent copy of the current velocities.
func (e *Engine) Velocities() manifold.Field {
	return e.state.Velocities.Clone()
}

// Step advances the state by one dt. A failed step is fatal to the run: the
// live state may be mid-projection, and the last recorded snapshot is the
// last valid one.
func (e *Engine) Step() error {
	if err := e.integ.Step(e.state, e.zone, e.cfg.Dt); err != nil {
		return &manifold.StepError{Step: e.steps, Wrapped: err}
	}
	e.steps++

	for _, m := range e.metrics {
		m.Observe(e.state, e.steps)
	}
	for _, o := range e.observers {
		o.OnStep(e.state, e.steps)
	}
	return nil
}

// Simulate runs nSteps integration steps and returns the recorded trajectory
// and velocity history, each nSteps+1 long at stride 1 (the initial state is
// snapshot zero). Cancellation is honored only between completed steps, so
// the returned partial result never violates the manifold invariants.
func (e *Engine) Simulate(ctx context.Context, nSteps int) (*Result, error) {
	if nSteps < 0 {
		return nil, fmt.Errorf("%w: got %d", manifold.ErrNegativeSteps, nSteps)
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	rec := newRecorder(e.cfg.RecordStride, e.cfg.MaxSnapshots, nSteps)
	rec.record(e.state)

	for _, m := range e.metrics {
		m.Observe(e.state, e.steps)
	}

	for i := 0; i < nSteps; i++ {
		select {
		case <-ctx.Done():
			return e.finish(rec), ctx.Err()
		default:
		}

		if err := e.Step(); err != nil {
			return e.finish(rec), err
		}

		if rec.wants(i+1, nSteps) {
			rec.record(e.state)
		}
	}

	return e.finish(rec), nil
}

func (e *Engine) finish(rec *recorder) *Result {
	result := &Result{
		Trajectory: rec.positions,
		Velocities: rec.velocities,
		Steps:      e.steps,
		Metrics:    make(map[string]float64, len(e.metrics)),
	}
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result
}
