package integrators

import "github.com/san-kum/mathgallery/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method. Stage buffers are
// reused between steps of the same dimension.
type RK4 struct {
	k     [4]dynamo.State
	probe dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) resize(n int) {
	if len(r.probe) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.probe = make(dynamo.State, n)
}

// stage evaluates the system at x + h*slope and stores the derivative in out.
func (r *RK4) stage(sys dynamo.System, x, slope, out dynamo.State, t, h float64) {
	if slope == nil {
		copy(out, sys.Derive(x, t))
		return
	}
	for i := range x {
		r.probe[i] = x[i] + h*slope[i]
	}
	copy(out, sys.Derive(r.probe, t+h))
}

func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	r.resize(len(x))
	half := dt / 2
	r.stage(sys, x, nil, r.k[0], t, 0)
	r.stage(sys, x, r.k[0], r.k[1], t, half)
	r.stage(sys, x, r.k[1], r.k[2], t, half)
	r.stage(sys, x, r.k[2], r.k[3], t, dt)

	next := make(dynamo.State, len(x))
	w := dt / 6
	for i := range x {
		next[i] = x[i] + w*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return next
}
