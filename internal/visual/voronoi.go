package visual

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

const (
	voronoiSites = 20
	voronoiGrid  = 20
	voronoiCell  = 0.2
)

// Voronoi approximates a Voronoi diagram with a grid of square cells, each
// tinted by its nearest drifting site.
type Voronoi struct {
	base
	sites    *scene.Geometry
	cells    *scene.Geometry
	centers  []scene.Vec3
	nearest  []int
	recolors int
}

func NewVoronoi(env Env) Instance {
	v := &Voronoi{base: newBase(env, "voronoi")}

	v.sites = scene.NewGeometry(scene.Points, make([]scene.Vec3, voronoiSites))
	v.sites.Colors = make([]colorful.Color, voronoiSites)
	for i := range v.sites.Positions {
		x := (env.Rand.Float64() - 0.5) * 4
		y := (env.Rand.Float64() - 0.5) * 4
		z := (env.Rand.Float64() - 0.5) * 0.5
		v.sites.Positions[i] = scene.Vec3{X: x, Y: y, Z: z}
		v.sites.Colors[i] = scene.HSL(env.Rand.Float64(), 0.8, 0.5)
	}

	half := voronoiGrid / 2
	v.cells = scene.NewGeometry(scene.Triangles, nil)
	for x := -half; x < half; x++ {
		for y := -half; y < half; y++ {
			c := scene.Vec3{X: float64(x) * voronoiCell, Y: float64(y) * voronoiCell}
			k := v.nearestSite(c)
			first := len(v.cells.Positions)
			d := voronoiCell / 2
			v.cells.Positions = append(v.cells.Positions,
				scene.Vec3{X: c.X - d, Y: c.Y - d},
				scene.Vec3{X: c.X + d, Y: c.Y - d},
				scene.Vec3{X: c.X + d, Y: c.Y + d},
				scene.Vec3{X: c.X - d, Y: c.Y + d},
			)
			col := v.sites.Colors[k]
			v.cells.Colors = append(v.cells.Colors, col, col, col, col)
			v.cells.Indices = append(v.cells.Indices, first, first+1, first+2, first, first+2, first+3)
			v.centers = append(v.centers, c)
			v.nearest = append(v.nearest, k)
		}
	}

	cellMat := lineMaterial(env.Color, 0.3)
	cellMat.VertexColors = true
	siteMat := lineMaterial(env.Color, 0.8)
	siteMat.VertexColors = true
	siteMat.Size = 0.1
	v.group.Add(
		scene.NewMesh("cells", v.cells, cellMat),
		scene.NewMesh("sites", v.sites, siteMat),
	)
	return v
}

func (v *Voronoi) nearestSite(p scene.Vec3) int {
	best, bestDist := 0, math.Inf(1)
	for i, s := range v.sites.Positions {
		if d := p.Sub(s).Length(); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func (v *Voronoi) Update() {
	speed := v.p2()
	v.group.Rotation.Z += 0.001 * speed

	t := v.now()
	for i := range v.sites.Positions {
		s := &v.sites.Positions[i]
		s.X += math.Sin(t+float64(i)) * 0.002 * speed
		s.Y += math.Cos(t+float64(i)*0.7) * 0.002 * speed
		if math.Abs(s.X) > 2 {
			s.X *= 0.99
		}
		if math.Abs(s.Y) > 2 {
			s.Y *= 0.99
		}
	}
	v.sites.NeedsUpdate()

	changed := false
	for c, center := range v.centers {
		k := v.nearestSite(center)
		if k == v.nearest[c] {
			continue
		}
		v.nearest[c] = k
		col := v.sites.Colors[k]
		for j := 0; j < 4; j++ {
			v.cells.Colors[4*c+j] = col
		}
		v.recolors++
		changed = true
	}
	if changed {
		v.cells.NeedsUpdate()
	}
}

// Sites returns the current site positions.
func (v *Voronoi) Sites() []scene.Vec3 { return v.sites.Positions }

// Owner returns the site index cell c is currently tinted by.
func (v *Voronoi) Owner(c int) int { return v.nearest[c] }

// Recolors counts cell recolourings since construction.
func (v *Voronoi) Recolors() int { return v.recolors }
