package visual

import (
	"math"

	"github.com/san-kum/mathgallery/internal/scene"
)

const hiddenDepth = -10

// Platonic places the five regular solids on a ring. Param1 selects which
// one sits in the z = 0 plane; the rest are pushed back out of view.
type Platonic struct {
	base
	solids []*scene.Node
	active int
}

func NewPlatonic(env Env) Instance {
	p := &Platonic{base: newBase(env, "platonic"), active: 2}
	geoms := []struct {
		name string
		g    *scene.Geometry
	}{
		{"tetrahedron", scene.Tetrahedron(1)},
		{"cube", scene.Box(1, 1, 1)},
		{"octahedron", scene.Octahedron(1)},
		{"dodecahedron", scene.Dodecahedron(1)},
		{"icosahedron", scene.Icosahedron(1)},
	}
	for i, s := range geoms {
		mat := wireMaterial(scene.OffsetHSL(env.Color, 0.1*float64(i), 0, 0), 0.7)
		n := scene.NewMesh(s.name, s.g, mat)
		angle := float64(i) * 2 * math.Pi / float64(len(geoms))
		n.Position = scene.Vec3{X: math.Cos(angle) * 3, Y: math.Sin(angle) * 3}
		if i != p.active {
			n.Position.Z = hiddenDepth
		}
		n.SetScale(0.8)
		p.group.Add(n)
		p.solids = append(p.solids, n)
	}
	return p
}

func (p *Platonic) Update() {
	speed := p.p2() * 0.02

	idx := int(math.Floor(p.p1() * 5))
	if idx > len(p.solids)-1 {
		idx = len(p.solids) - 1
	}
	if idx != p.active {
		p.solids[p.active].Position.Z = hiddenDepth
		p.active = idx
		p.solids[p.active].Position.Z = 0
	}

	for _, s := range p.solids {
		s.Rotation.X += speed
		s.Rotation.Y += speed * 0.7
	}
	p.group.Rotation.Y += speed * 0.2
}

// Active is the index of the solid currently in front.
func (p *Platonic) Active() int { return p.active }

// Solids returns the solid nodes in order tetrahedron, cube, octahedron,
// dodecahedron, icosahedron.
func (p *Platonic) Solids() []*scene.Node { return p.solids }
