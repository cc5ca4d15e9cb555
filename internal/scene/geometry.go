package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Primitive selects how a geometry's vertices are assembled.
type Primitive int

const (
	Points Primitive = iota
	LineStrip
	LineLoop
	LineSegments
	Triangles
)

func (p Primitive) String() string {
	switch p {
	case Points:
		return "points"
	case LineStrip:
		return "line-strip"
	case LineLoop:
		return "line-loop"
	case LineSegments:
		return "line-segments"
	case Triangles:
		return "triangles"
	}
	return "unknown"
}

// Geometry holds vertex buffers. Colors and UVs are optional and, when
// present, parallel to Positions. Indices, when present, address
// Positions; otherwise vertices are used in order.
type Geometry struct {
	Primitive Primitive
	Positions []Vec3
	Colors    []colorful.Color
	UVs       []Vec2
	Indices   []int

	version  int
	disposed bool
}

func NewGeometry(p Primitive, positions []Vec3) *Geometry {
	return &Geometry{Primitive: p, Positions: positions}
}

// NeedsUpdate flags the buffers as changed so renderers that cache
// uploads (the raylib backend) re-read them.
func (g *Geometry) NeedsUpdate() { g.version++ }
func (g *Geometry) Version() int { return g.version }

func (g *Geometry) Dispose() {
	g.disposed = true
	g.Positions, g.Colors, g.UVs, g.Indices = nil, nil, nil, nil
}

func (g *Geometry) Disposed() bool { return g.disposed }

func (g *Geometry) count() int {
	if g.Indices != nil {
		return len(g.Indices)
	}
	return len(g.Positions)
}

func (g *Geometry) at(i int) int {
	if g.Indices != nil {
		return g.Indices[i]
	}
	return i
}

// Segments calls fn with the vertex index pairs of every line the geometry
// describes. Triangles report their three edges.
func (g *Geometry) Segments(fn func(a, b int)) {
	n := g.count()
	switch g.Primitive {
	case LineStrip, LineLoop:
		for i := 0; i+1 < n; i++ {
			fn(g.at(i), g.at(i+1))
		}
		if g.Primitive == LineLoop && n > 2 {
			fn(g.at(n-1), g.at(0))
		}
	case LineSegments:
		for i := 0; i+1 < n; i += 2 {
			fn(g.at(i), g.at(i+1))
		}
	case Triangles:
		g.Triangles(func(a, b, c int) {
			fn(a, b)
			fn(b, c)
			fn(c, a)
		})
	}
}

func (g *Geometry) Triangles(fn func(a, b, c int)) {
	if g.Primitive != Triangles {
		return
	}
	n := g.count()
	for i := 0; i+2 < n; i += 3 {
		fn(g.at(i), g.at(i+1), g.at(i+2))
	}
}

// Bounds returns the axis-aligned box around all positions.
func (g *Geometry) Bounds() (min, max Vec3) {
	if len(g.Positions) == 0 {
		return Vec3{}, Vec3{}
	}
	min = Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	max = Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range g.Positions {
		min = Vec3{math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z)}
		max = Vec3{math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z)}
	}
	return min, max
}

// Clone copies the buffers. Tiles and instanced copies share a template
// geometry this way without sharing disposal.
func (g *Geometry) Clone() *Geometry {
	c := &Geometry{Primitive: g.Primitive}
	c.Positions = append([]Vec3(nil), g.Positions...)
	if g.Colors != nil {
		c.Colors = append([]colorful.Color(nil), g.Colors...)
	}
	if g.UVs != nil {
		c.UVs = append([]Vec2(nil), g.UVs...)
	}
	if g.Indices != nil {
		c.Indices = append([]int(nil), g.Indices...)
	}
	return c
}
