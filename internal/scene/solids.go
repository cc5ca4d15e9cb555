package scene

import "math"

var phi = (1 + math.Sqrt(5)) / 2

func polyhedron(verts []float64, idx []int, radius float64) *Geometry {
	g := NewGeometry(Triangles, make([]Vec3, 0, len(verts)/3))
	for i := 0; i+2 < len(verts); i += 3 {
		v := Vec3{verts[i], verts[i+1], verts[i+2]}
		g.Positions = append(g.Positions, v.Normalize().Scale(radius))
	}
	g.Indices = idx
	return g
}

func Tetrahedron(radius float64) *Geometry {
	return polyhedron(
		[]float64{1, 1, 1, -1, -1, 1, -1, 1, -1, 1, -1, -1},
		[]int{2, 1, 0, 0, 3, 2, 1, 3, 0, 2, 3, 1},
		radius)
}

func Octahedron(radius float64) *Geometry {
	return polyhedron(
		[]float64{1, 0, 0, -1, 0, 0, 0, 1, 0, 0, -1, 0, 0, 0, 1, 0, 0, -1},
		[]int{0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2, 1, 2, 5, 1, 5, 3, 1, 3, 4, 1, 4, 2},
		radius)
}

func Icosahedron(radius float64) *Geometry {
	t := phi
	return polyhedron(
		[]float64{
			-1, t, 0, 1, t, 0, -1, -t, 0, 1, -t, 0,
			0, -1, t, 0, 1, t, 0, -1, -t, 0, 1, -t,
			t, 0, -1, t, 0, 1, -t, 0, -1, -t, 0, 1,
		},
		[]int{
			0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
			1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
			3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
			4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
		},
		radius)
}

func Dodecahedron(radius float64) *Geometry {
	t, r := phi, 1/phi
	return polyhedron(
		[]float64{
			-1, -1, -1, -1, -1, 1, -1, 1, -1, -1, 1, 1,
			1, -1, -1, 1, -1, 1, 1, 1, -1, 1, 1, 1,
			0, -r, -t, 0, -r, t, 0, r, -t, 0, r, t,
			-r, -t, 0, -r, t, 0, r, -t, 0, r, t, 0,
			-t, 0, -r, t, 0, -r, -t, 0, r, t, 0, r,
		},
		[]int{
			3, 11, 7, 3, 7, 15, 3, 15, 13,
			7, 19, 17, 7, 17, 6, 7, 6, 15,
			17, 4, 8, 17, 8, 10, 17, 10, 6,
			8, 0, 16, 8, 16, 2, 8, 2, 10,
			0, 12, 1, 0, 1, 18, 0, 18, 16,
			6, 10, 2, 6, 2, 13, 6, 13, 15,
			2, 16, 18, 2, 18, 3, 2, 3, 13,
			18, 1, 9, 18, 9, 11, 18, 11, 3,
			4, 14, 12, 4, 12, 0, 4, 0, 8,
			11, 9, 5, 11, 5, 19, 11, 19, 7,
			19, 5, 14, 19, 14, 4, 19, 4, 17,
			1, 12, 14, 1, 14, 5, 1, 5, 9,
		},
		radius)
}

// Box is an axis-aligned box centred on the origin.
func Box(w, h, d float64) *Geometry {
	x, y, z := w/2, h/2, d/2
	g := NewGeometry(Triangles, []Vec3{
		{-x, -y, -z}, {x, -y, -z}, {x, y, -z}, {-x, y, -z},
		{-x, -y, z}, {x, -y, z}, {x, y, z}, {-x, y, z},
	})
	g.Indices = []int{
		4, 5, 6, 4, 6, 7, // +z
		1, 0, 3, 1, 3, 2, // -z
		5, 1, 2, 5, 2, 6, // +x
		0, 4, 7, 0, 7, 3, // -x
		7, 6, 2, 7, 2, 3, // +y
		0, 1, 5, 0, 5, 4, // -y
	}
	return g
}

// Plane is a width x height grid in the XY plane with UVs running from
// (0,0) at the bottom-left corner to (1,1) at the top-right.
func Plane(width, height float64, segX, segY int) *Geometry {
	if segX < 1 {
		segX = 1
	}
	if segY < 1 {
		segY = 1
	}
	g := NewGeometry(Triangles, make([]Vec3, 0, (segX+1)*(segY+1)))
	g.UVs = make([]Vec2, 0, cap(g.Positions))
	for iy := 0; iy <= segY; iy++ {
		v := float64(iy) / float64(segY)
		for ix := 0; ix <= segX; ix++ {
			u := float64(ix) / float64(segX)
			g.Positions = append(g.Positions, Vec3{(u - 0.5) * width, (v - 0.5) * height, 0})
			g.UVs = append(g.UVs, Vec2{u, v})
		}
	}
	row := segX + 1
	g.Indices = make([]int, 0, segX*segY*6)
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := iy*row + ix
			b := a + 1
			c := a + row
			d := c + 1
			g.Indices = append(g.Indices, a, b, d, a, d, c)
		}
	}
	return g
}

// TorusKnot winds a tube of the given radius around a (p, q) torus knot.
func TorusKnot(radius, tube float64, tubular, radial, p, q int) *Geometry {
	curve := func(u float64) Vec3 {
		quOverP := float64(q) / float64(p) * u
		cs := math.Cos(quOverP)
		return Vec3{
			radius * (2 + cs) * 0.5 * math.Cos(u),
			radius * (2 + cs) * 0.5 * math.Sin(u),
			radius * math.Sin(quOverP) * 0.5,
		}
	}
	g := NewGeometry(Triangles, make([]Vec3, 0, (tubular+1)*(radial+1)))
	for i := 0; i <= tubular; i++ {
		u := float64(i) / float64(tubular) * float64(p) * 2 * math.Pi
		p1, p2 := curve(u), curve(u+0.01)
		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := t.Cross(n).Normalize()
		n = b.Cross(t).Normalize()
		for j := 0; j <= radial; j++ {
			v := float64(j) / float64(radial) * 2 * math.Pi
			cx, cy := -tube*math.Cos(v), tube*math.Sin(v)
			g.Positions = append(g.Positions, p1.Add(n.Scale(cx)).Add(b.Scale(cy)))
		}
	}
	for j := 1; j <= tubular; j++ {
		for i := 1; i <= radial; i++ {
			a := (radial+1)*(j-1) + (i - 1)
			b := (radial+1)*j + (i - 1)
			c := (radial+1)*j + i
			d := (radial+1)*(j-1) + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// Circle returns segments+1 points on a circle in the XY plane; the last
// point repeats the first so the result draws closed as a LineStrip.
func Circle(radius float64, segments int) *Geometry {
	g := NewGeometry(LineStrip, make([]Vec3, 0, segments+1))
	for i := 0; i <= segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		g.Positions = append(g.Positions, Vec3{math.Cos(a) * radius, math.Sin(a) * radius, 0})
	}
	return g
}

// Polygon is a closed regular n-gon outline with its first vertex at
// angle 0.
func Polygon(radius float64, sides int) *Geometry {
	g := Circle(radius, sides)
	g.Primitive = LineLoop
	g.Positions = g.Positions[:sides]
	return g
}
