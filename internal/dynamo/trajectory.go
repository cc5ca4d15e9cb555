package dynamo

import "github.com/juju/errors"

// Integrate advances x0 through steps integrator steps of size dt and returns
// every visited state, x0 included. The result has steps+1 entries.
func Integrate(dyn System, integ Integrator, x0 State, dt float64, steps int) ([]State, error) {
	if len(x0) != dyn.StateDim() {
		return nil, errors.Trace(ErrDimensionMismatch)
	}
	out := make([]State, 0, steps+1)
	x := x0.Clone()
	out = append(out, x)
	t := 0.0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, t, dt)
		if !x.IsValid() {
			return out, &TrajectoryError{Step: i + 1, State: x, Wrapped: ErrInvalidState}
		}
		out = append(out, x)
		t += dt
	}
	return out, nil
}

// Iterate applies m to x0 n times, calling visit with every new state.
// It stops early and reports the offending step if a state diverges.
func Iterate(m Map, x0 State, n int, visit func(i int, x State)) error {
	if len(x0) != m.StateDim() {
		return errors.Trace(ErrDimensionMismatch)
	}
	x := x0
	for i := 0; i < n; i++ {
		x = m.Next(x)
		if !x.IsValid() {
			return &TrajectoryError{Step: i + 1, State: x, Wrapped: ErrInvalidState}
		}
		visit(i, x)
	}
	return nil
}
