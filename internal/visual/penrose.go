package visual

import (
	"math"

	"github.com/san-kum/mathgallery/internal/scene"
)

const penroseTiles = 50

// Penrose scatters thin (36 degree) and fat (72 degree) rhombs around a
// rose-shaped ring. It is decorative, not an aperiodic tiling.
type Penrose struct {
	base
	tiles []*scene.Node
}

func rhomb(size, degrees float64) *scene.Geometry {
	h := degrees * math.Pi / 180 / 2
	g := scene.NewGeometry(scene.Triangles, []scene.Vec3{
		{},
		{X: math.Cos(h) * size, Y: math.Sin(h) * size},
		{X: math.Cos(-h) * size, Y: math.Sin(-h) * size},
		{X: -math.Cos(h) * size, Y: -math.Sin(h) * size},
	})
	g.Indices = []int{0, 1, 2, 0, 2, 3}
	return g
}

func NewPenrose(env Env) Instance {
	p := &Penrose{base: newBase(env, "penrose")}
	thin, fat := rhomb(1, 36), rhomb(1, 72)
	thinMat := wireMaterial(env.Color, 0.7)
	fatMat := wireMaterial(scene.OffsetHSL(env.Color, 0.1, 0, 0), 0.7)

	for i := 0; i < penroseTiles; i++ {
		angle := float64(i) * 2 * math.Pi / penroseTiles
		radius := 2 * (0.5 + 0.5*math.Sin(float64(i)*5))
		var tile *scene.Node
		if i%2 == 0 {
			tile = scene.NewMesh("thin", thin, thinMat)
		} else {
			tile = scene.NewMesh("fat", fat, fatMat)
		}
		tile.Position = scene.Vec3{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}
		tile.Rotation.Z = angle
		p.group.Add(tile)
		p.tiles = append(p.tiles, tile)
	}
	return p
}

func (p *Penrose) Update() {
	p.group.SetScale(0.5 + p.p1()*1.5)
	p.group.Rotation.Z += p.p2() * 0.01

	t := p.now()
	for i, tile := range p.tiles {
		pulse := math.Sin(t*2+float64(i)*0.1)*0.1 + 0.9
		tile.Scale = scene.Vec3{X: pulse, Y: pulse, Z: 1}
	}
}

// Tiles returns the rhomb nodes, thin ones at even indices.
func (p *Penrose) Tiles() []*scene.Node { return p.tiles }
