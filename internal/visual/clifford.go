package visual

import (
	"math"

	"github.com/san-kum/mathgallery/internal/dynamo"
	"github.com/san-kum/mathgallery/internal/physics"
	"github.com/san-kum/mathgallery/internal/scene"
)

const (
	cliffordPoints = 100000
	cliffordScale  = 0.4
)

// Clifford re-iterates the Clifford map from (0.1, 0) every frame. a and b
// follow the sliders; c and d drift with the frame counter.
type Clifford struct {
	base
	m      physics.Clifford
	frame  int
	points *scene.Geometry
}

func NewClifford(env Env) Instance {
	c := &Clifford{base: newBase(env, "clifford")}
	c.points = scene.NewGeometry(scene.Points, make([]scene.Vec3, cliffordPoints))
	c.coefficients()

	err := dynamo.Iterate(&c.m, dynamo.State{0.1, 0}, cliffordPoints, func(i int, x dynamo.State) {
		c.points.Positions[i] = scene.Vec3{X: x[0] * cliffordScale, Y: x[1] * cliffordScale}
	})
	if err != nil {
		logger.Warningf("clifford seed orbit: %v", err)
	}

	mat := glowPoints(env.Color, 0.01, 0.6)
	c.group.Add(scene.NewMesh("attractor", c.points, mat))
	return c
}

func (c *Clifford) coefficients() {
	a := c.p1()*6 - 3
	b := c.p2()*6 - 3
	c.m = physics.Clifford{
		A: a,
		B: b,
		C: math.Sin(a+float64(c.frame)*0.002) * 2,
		D: math.Cos(b+float64(c.frame)*0.002) * 2,
	}
}

func (c *Clifford) Update() {
	c.frame++
	c.coefficients()
	x, y := 0.1, 0.0
	pos := c.points.Positions
	for i := range pos {
		x, y = c.m.Step(x, y)
		pos[i] = scene.Vec3{X: x * cliffordScale, Y: y * cliffordScale}
	}
	c.points.NeedsUpdate()
}

// Coefficients returns the map coefficients used by the last Update.
func (c *Clifford) Coefficients() (a, b, cc, d float64) {
	return c.m.A, c.m.B, c.m.C, c.m.D
}
