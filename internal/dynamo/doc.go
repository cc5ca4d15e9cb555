// Package dynamo provides the numerical primitives behind the attractor
// patterns.
//
// The package defines small interfaces for continuous flows and discrete
// maps and the helpers that turn them into point clouds:
//
//   - [State]: vector representing a point in phase space
//   - [System]: continuous flow dX/dt = f(X, t)
//   - [Map]: discrete iterated map
//   - [Integrator]: one numerical step of a [System]
//   - [Integrate] and [Iterate]: trajectory generation with divergence checks
//
// # Example
//
//	dyn := physics.NewLorenz()
//	states, err := dynamo.Integrate(dyn, integrators.NewEuler(), dynamo.State{0.1, 0, 0}, 0.005, 4999)
//
// Nothing in this package is safe for concurrent use; integrators keep
// scratch buffers between steps.
package dynamo
