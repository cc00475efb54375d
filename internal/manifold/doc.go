// Package manifold provides core primitives for particle dynamics on the
// unit hypersphere.
//
// The package defines the fundamental types and interfaces shared by the
// simulation engine:
//
//   - [Vec]: vector in the embedding space R^d
//   - [Field]: per-particle collection of vectors, shape (n, d)
//   - [State]: positions and velocities of all particles
//   - [Forcer]: per-particle force computation
//   - [Integrator]: discrete time stepper
//   - [Metric]: per-step scalar observation
//
// # Invariants
//
// After every completed step each position has unit norm and each velocity
// lies in the tangent plane of its position:
//
//	‖p_i‖ = 1
//	v_i · p_i = 0
//
// [State.Project] restores both after integration drift. Mid-step states may
// violate them.
//
// # Thread Safety
//
// State is not safe for concurrent mutation. Force computation may read a
// State from multiple goroutines as long as no writer is active.
package manifold
