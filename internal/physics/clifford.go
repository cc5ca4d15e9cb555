package physics

import (
	"math"

	"github.com/san-kum/mathgallery/internal/dynamo"
)

// Clifford is the Clifford attractor map
//
//	x' = sin(a*y) + c*cos(a*x)
//	y' = sin(b*x) + d*cos(b*y)
type Clifford struct{ A, B, C, D float64 }

func NewClifford(a, b, c, d float64) *Clifford { return &Clifford{a, b, c, d} }
func (m *Clifford) StateDim() int             { return 2 }

func (m *Clifford) Next(s dynamo.State) dynamo.State {
	x, y := m.Step(s[0], s[1])
	return dynamo.State{x, y}
}

// Step is the allocation-free form of Next used for large point clouds.
func (m *Clifford) Step(x, y float64) (float64, float64) {
	return math.Sin(m.A*y) + m.C*math.Cos(m.A*x), math.Sin(m.B*x) + m.D*math.Cos(m.B*y)
}
