// Package physics provides the dynamical systems behind the attractor
// patterns.
//
//   - [Lorenz]: butterfly attractor, a continuous [dynamo.System]
//   - [Clifford]: Clifford attractor, a discrete [dynamo.Map]
//
// [Lorenz] also implements [dynamo.Configurable] for runtime parameter
// adjustment:
//
//	dyn := physics.NewLorenz()
//	if err := dyn.SetParam("rho", 99.96); err != nil {
//	    return err
//	}
package physics
