package visual

import (
	"math"

	"github.com/san-kum/mathgallery/internal/scene"
)

const (
	diskRadius    = 2.0
	diskLayers    = 5
	diskSpokes    = 8
	heptagonSides = 7
)

// Hyperbolic sketches a Poincare disk: concentric circles, radial spokes
// and a two-level ring of shrinking heptagons.
type Hyperbolic struct {
	base
	tessellation *scene.Node
}

func NewHyperbolic(env Env) Instance {
	h := &Hyperbolic{base: newBase(env, "hyperbolic")}
	lines := lineMaterial(env.Color, 0.5)

	for layer := 1; layer <= diskLayers; layer++ {
		r := float64(layer) / diskLayers * diskRadius * 0.9
		h.group.Add(scene.NewMesh("circle", scene.Circle(r, 64), lines))
	}
	for i := 0; i < diskSpokes; i++ {
		a := float64(i) / diskSpokes * 2 * math.Pi
		spoke := scene.NewGeometry(scene.LineStrip, []scene.Vec3{
			{},
			{X: math.Cos(a) * diskRadius * 0.9, Y: math.Sin(a) * diskRadius * 0.9},
		})
		h.group.Add(scene.NewMesh("spoke", spoke, lines))
	}

	h.tessellation = tessellate(diskRadius, wireMaterial(scene.OffsetHSL(env.Color, 0.1, 0, 0), 0.3))
	h.group.Add(h.tessellation)
	return h
}

// heptagon is a triangle fan over a regular 7-gon.
func heptagon(r float64) *scene.Geometry {
	g := scene.Polygon(r, heptagonSides)
	g.Primitive = scene.Triangles
	for i := 1; i < heptagonSides-1; i++ {
		g.Indices = append(g.Indices, 0, i, i+1)
	}
	return g
}

func tessellate(radius float64, mat *scene.Material) *scene.Node {
	group := scene.NewGroup("tessellation")
	poly := heptagon(radius * 0.3)
	group.Add(scene.NewMesh("center", poly, mat))

	for i := 0; i < heptagonSides; i++ {
		mid := (float64(i) + 0.5) / heptagonSides * 2 * math.Pi
		ring := scene.NewMesh("ring", poly, mat)
		ring.Position = scene.Vec3{X: math.Cos(mid) * radius * 0.6, Y: math.Sin(mid) * radius * 0.6}
		ring.Rotation.Z = mid + math.Pi
		ring.Scale = scene.Vec3{X: 0.7, Y: 0.7, Z: 1}
		group.Add(ring)

		for j := 0; j < heptagonSides; j++ {
			sub := (float64(j) + 0.5) / heptagonSides * 2 * math.Pi
			n := scene.NewMesh("sub", poly, mat)
			n.Position = ring.Position.Add(scene.Vec3{
				X: math.Cos(sub+mid+math.Pi) * radius * 0.2,
				Y: math.Sin(sub+mid+math.Pi) * radius * 0.2,
			})
			n.Rotation.Z = sub + mid + 2*math.Pi
			n.Scale = scene.Vec3{X: 0.4, Y: 0.4, Z: 1}
			group.Add(n)
		}
	}
	return group
}

func (h *Hyperbolic) Update() {
	c := 0.5 + h.p1()*2
	h.group.Scale = scene.Vec3{X: c, Y: c, Z: 1}
	h.group.Rotation.Z += 0.002

	density := 0.5 + h.p2()*2
	pulse := math.Sin(h.now())*0.1 + 0.9
	h.tessellation.Scale = scene.Vec3{X: pulse * density, Y: pulse * density, Z: 1}
}

// Polygons counts the heptagons in the tessellation.
func (h *Hyperbolic) Polygons() int { return len(h.tessellation.Children()) }
