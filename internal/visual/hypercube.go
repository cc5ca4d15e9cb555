package visual

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

// highlightFace is one square face of the w = -1 cube.
var highlightFace = map[[2]int]bool{{0, 1}: true, {1, 3}: true, {2, 3}: true, {0, 2}: true}

// Hypercube rotates a tesseract in the XW and ZW planes and projects it
// into 3D with a perspective divide by (2 - w).
type Hypercube struct {
	base
	vertices  [16][4]float64
	projected [16]scene.Vec3
	edges     [][2]int
	lit       [][2]int
	plain     *scene.Geometry
	highlight *scene.Geometry
}

func NewHypercube(env Env) Instance {
	h := &Hypercube{base: newBase(env, "hypercube")}
	for i := 0; i < 16; i++ {
		for axis := 0; axis < 4; axis++ {
			h.vertices[i][axis] = -1
			if i&(1<<axis) != 0 {
				h.vertices[i][axis] = 1
			}
		}
	}
	for i := 0; i < 16; i++ {
		for j := i + 1; j < 16; j++ {
			diff := i ^ j
			if diff&(diff-1) != 0 {
				continue
			}
			if highlightFace[[2]int{i, j}] {
				h.lit = append(h.lit, [2]int{i, j})
			} else {
				h.edges = append(h.edges, [2]int{i, j})
			}
		}
	}
	h.plain = scene.NewGeometry(scene.LineSegments, make([]scene.Vec3, 2*len(h.edges)))
	h.highlight = scene.NewGeometry(scene.LineSegments, make([]scene.Vec3, 2*len(h.lit)))
	h.group.Add(
		scene.NewMesh("edges", h.plain, lineMaterial(env.Color, 1)),
		scene.NewMesh("face", h.highlight, lineMaterial(colorful.Color{R: 1, G: 1}, 1)),
	)
	return h
}

func (h *Hypercube) Update() {
	h.project(h.now())
	fill := func(g *scene.Geometry, edges [][2]int) {
		for k, e := range edges {
			g.Positions[2*k] = h.projected[e[0]]
			g.Positions[2*k+1] = h.projected[e[1]]
		}
		g.NeedsUpdate()
	}
	fill(h.plain, h.edges)
	fill(h.highlight, h.lit)
}

func (h *Hypercube) project(t float64) {
	axw := h.p1()*2*math.Pi + t*0.2
	azw := h.p2()*2*math.Pi + t*0.3
	wobble := math.Sin(t) * 0.5

	for i, v := range h.vertices {
		x := v[0]*math.Cos(axw) - v[3]*math.Sin(axw)
		w := v[0]*math.Sin(axw) + v[3]*math.Cos(axw)

		z := v[2]*math.Cos(azw) - w*math.Sin(azw)
		w = v[2]*math.Sin(azw) + w*math.Cos(azw)

		pw := w*math.Cos(wobble) - x*math.Sin(wobble)
		px := x*math.Cos(wobble) + w*math.Sin(wobble)
		d := 2 - pw
		h.projected[i] = scene.Vec3{X: px / d, Y: v[1] / d, Z: z / d}
	}
}

// Projected returns the 3D image of each tesseract vertex from the last
// Update. Vertex i has coordinate bit k set when its k-th axis is +1.
func (h *Hypercube) Projected() [16]scene.Vec3 { return h.projected }

// Edges counts the drawn edges, highlighted ones included.
func (h *Hypercube) Edges() int { return len(h.edges) + len(h.lit) }
