package integrators

import "github.com/san-kum/mathgallery/internal/dynamo"

// Euler is the explicit first-order method x + dt*f(x). The Lorenz pattern
// relies on it to reproduce its reference trajectory exactly.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (Euler) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	next := x.Clone()
	for i, d := range sys.Derive(x, t) {
		next[i] += dt * d
	}
	return next
}
