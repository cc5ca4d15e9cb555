package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

// Renderer draws a scene from a camera into a surface of a given pixel
// size. Implementations are not safe for concurrent use.
type Renderer interface {
	SetSize(width, height int)
	Size() (width, height int)
	Render(s *scene.Scene, cam *scene.PerspectiveCamera)
	Dispose()
}

type vertex struct {
	x, y, z float64
	uv      scene.Vec2
	c       colorful.Color
}

type dot struct {
	vertex
	size  float64
	alpha float64
	add   bool
}

type segment struct {
	a, b  vertex
	alpha float64
	add   bool
}

type triangle struct {
	v      [3]vertex
	alpha  float64
	shader *scene.Shader
}

// frame is a scene flattened into screen-space primitives.
type frame struct {
	background colorful.Color
	dots       []dot
	segments   []segment
	triangles  []triangle
}

// flatten projects every visible drawable. When wire is set, triangle
// geometry is emitted as edges except for shader materials.
func flatten(s *scene.Scene, cam *scene.PerspectiveCamera, w, h int, wire bool, f *frame) {
	f.background = s.Background
	f.dots, f.segments, f.triangles = f.dots[:0], f.segments[:0], f.triangles[:0]
	if w <= 0 || h <= 0 {
		return
	}
	proj := cam.Projector(w, h)
	ambient, lights, intensities := s.Lighting()

	s.VisitVisible(func(n *scene.Node, world scene.Matrix) {
		g, m := n.Geometry, n.Material
		if g == nil || m == nil || g.Disposed() || m.Disposed() {
			return
		}
		alpha := 1.0
		if m.Transparent {
			alpha = m.Opacity
		}
		add := m.Blending == scene.AdditiveBlending

		project := func(i int) (vertex, bool) {
			x, y, z, ok := proj.Project(world.Apply(g.Positions[i]))
			v := vertex{x: x, y: y, z: z, c: m.VertexColor(g, i)}
			if i < len(g.UVs) {
				v.uv = g.UVs[i]
			}
			return v, ok
		}

		switch {
		case g.Primitive == scene.Points:
			size := m.Size * world.ApplyDir(scene.Vec3{X: 1}).Length()
			for i := range g.Positions {
				if v, ok := project(i); ok {
					px := math.Max(1, size*proj.PixelScale(v.z))
					f.dots = append(f.dots, dot{vertex: v, size: px, alpha: alpha, add: add})
				}
			}
		case g.Primitive == scene.Triangles && (m.Shader != nil || (!wire && !m.Wireframe)):
			g.Triangles(func(a, b, c int) {
				va, oka := project(a)
				vb, okb := project(b)
				vc, okc := project(c)
				if !oka || !okb || !okc {
					return
				}
				t := triangle{v: [3]vertex{va, vb, vc}, alpha: alpha, shader: m.Shader}
				if m.Shader == nil && m.Lit {
					pa, pb, pc := world.Apply(g.Positions[a]), world.Apply(g.Positions[b]), world.Apply(g.Positions[c])
					normal := pb.Sub(pa).Cross(pc.Sub(pa)).Normalize()
					k := shade(normal, ambient, lights, intensities)
					for i := range t.v {
						t.v[i].c = scaleColor(t.v[i].c, k)
					}
				}
				f.triangles = append(f.triangles, t)
			})
		default:
			g.Segments(func(a, b int) {
				va, oka := project(a)
				vb, okb := project(b)
				if oka && okb {
					f.segments = append(f.segments, segment{a: va, b: vb, alpha: alpha, add: add})
				}
			})
		}
	})
}

// shade is a two-sided Lambert term. A scene without lights is unlit.
func shade(normal scene.Vec3, ambient float64, dirs []scene.Vec3, intensities []float64) float64 {
	if ambient == 0 && len(dirs) == 0 {
		return 1
	}
	k := ambient
	for i, d := range dirs {
		k += intensities[i] * math.Abs(normal.Dot(d))
	}
	return math.Min(k, 1.5)
}

func scaleColor(c colorful.Color, k float64) colorful.Color {
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}.Clamped()
}

func luminance(c colorful.Color) float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// barycentric returns the weights of p inside triangle (a, b, c), and
// false for degenerate triangles.
func barycentric(a, b, c vertex, px, py float64) (float64, float64, float64, bool) {
	d := (b.y-c.y)*(a.x-c.x) + (c.x-b.x)*(a.y-c.y)
	if d == 0 {
		return 0, 0, 0, false
	}
	w0 := ((b.y-c.y)*(px-c.x) + (c.x-b.x)*(py-c.y)) / d
	w1 := ((c.y-a.y)*(px-c.x) + (a.x-c.x)*(py-c.y)) / d
	return w0, w1, 1 - w0 - w1, true
}

func bounds(t triangle, w, h int) (x0, y0, x1, y1 int) {
	minX := math.Min(t.v[0].x, math.Min(t.v[1].x, t.v[2].x))
	maxX := math.Max(t.v[0].x, math.Max(t.v[1].x, t.v[2].x))
	minY := math.Min(t.v[0].y, math.Min(t.v[1].y, t.v[2].y))
	maxY := math.Max(t.v[0].y, math.Max(t.v[1].y, t.v[2].y))
	x0, y0 = max(0, int(math.Floor(minX))), max(0, int(math.Floor(minY)))
	x1, y1 = min(w-1, int(math.Ceil(maxX))), min(h-1, int(math.Ceil(maxY)))
	return x0, y0, x1, y1
}

// fill calls fn for every pixel centre covered by t with the interpolated
// depth, UV and colour.
func fill(t triangle, w, h int, fn func(x, y int, z float64, uv scene.Vec2, c colorful.Color)) {
	x0, y0, x1, y1 := bounds(t, w, h)
	a, b, c := t.v[0], t.v[1], t.v[2]
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			w0, w1, w2, ok := barycentric(a, b, c, float64(x)+0.5, float64(y)+0.5)
			if !ok || w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			uv := scene.Vec2{U: w0*a.uv.U + w1*b.uv.U + w2*c.uv.U, V: w0*a.uv.V + w1*b.uv.V + w2*c.uv.V}
			col := colorful.Color{
				R: w0*a.c.R + w1*b.c.R + w2*c.c.R,
				G: w0*a.c.G + w1*b.c.G + w2*c.c.G,
				B: w0*a.c.B + w1*b.c.B + w2*c.c.B,
			}
			fn(x, y, z, uv, col)
		}
	}
}

// clip trims a segment to [0,w) x [0,h) (Liang-Barsky).
func clip(x0, y0, x1, y1, w, h float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x1-x0, y1-y0
	edges := [4][2]float64{{-dx, x0}, {dx, w - 1 - x0}, {-dy, y0}, {dy, h - 1 - y0}}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	xmax, ymax := w-1, h-1
	return clampf(x0+t0*dx, 0, xmax), clampf(y0+t0*dy, 0, ymax),
		clampf(x0+t1*dx, 0, xmax), clampf(y0+t1*dy, 0, ymax), true
}

// clampf absorbs the rounding of the parametric endpoints.
func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
