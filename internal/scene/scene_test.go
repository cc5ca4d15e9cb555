package scene

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func near(a, b Vec3) bool {
	return a.Sub(b).Length() < 1e-9
}

func TestComposeRotation(t *testing.T) {
	tests := []struct {
		name string
		rot  Vec3
		in   Vec3
		want Vec3
	}{
		{"z quarter turn", Vec3{0, 0, math.Pi / 2}, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{"x quarter turn", Vec3{math.Pi / 2, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}},
		{"y quarter turn", Vec3{0, math.Pi / 2, 0}, Vec3{0, 0, 1}, Vec3{1, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(Vec3{}, tt.rot, Vec3{1, 1, 1}).Apply(tt.in)
			if !near(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWorldMatrix(t *testing.T) {
	parent := NewGroup("parent")
	parent.Position = Vec3{1, 0, 0}
	parent.SetScale(2)
	child := NewGroup("child")
	child.Position = Vec3{0, 1, 0}
	parent.Add(child)

	got := child.WorldMatrix().Apply(Vec3{})
	if !near(got, Vec3{1, 2, 0}) {
		t.Errorf("child origin in world = %+v", got)
	}
}

func TestAddReparents(t *testing.T) {
	a, b, c := NewGroup("a"), NewGroup("b"), NewGroup("c")
	a.Add(c)
	b.Add(c)
	if len(a.Children()) != 0 || len(b.Children()) != 1 || c.Parent() != b {
		t.Error("child was not moved between parents")
	}
}

func TestVisitVisibleSkipsHiddenSubtree(t *testing.T) {
	s := New()
	hidden := NewGroup("hidden")
	hidden.Visible = false
	hidden.Add(NewGroup("inner"))
	s.Add(hidden, NewGroup("shown"))

	var names []string
	s.VisitVisible(func(n *Node, _ Matrix) { names = append(names, n.Name) })
	if len(names) != 2 || names[0] != "scene" || names[1] != "shown" {
		t.Errorf("visited %v", names)
	}
}

func TestSolidsAreClosed(t *testing.T) {
	solids := map[string]*Geometry{
		"tetrahedron":  Tetrahedron(1),
		"cube":         Box(1, 1, 1),
		"octahedron":   Octahedron(1),
		"dodecahedron": Dodecahedron(1),
		"icosahedron":  Icosahedron(1),
	}
	faces := map[string]int{"tetrahedron": 4, "cube": 12, "octahedron": 8, "dodecahedron": 36, "icosahedron": 20}

	for name, g := range solids {
		t.Run(name, func(t *testing.T) {
			edges := map[[2]int]int{}
			tris := 0
			g.Triangles(func(a, b, c int) {
				tris++
				edges[[2]int{a, b}]++
				edges[[2]int{b, c}]++
				edges[[2]int{c, a}]++
			})
			if tris != faces[name] {
				t.Errorf("got %d triangles, want %d", tris, faces[name])
			}
			for e, n := range edges {
				if n != 1 || edges[[2]int{e[1], e[0]}] != 1 {
					t.Fatalf("edge %v is not shared by exactly two faces", e)
				}
			}
		})
	}
}

func TestPolyhedronRadius(t *testing.T) {
	for _, p := range Dodecahedron(2).Positions {
		if math.Abs(p.Length()-2) > 1e-9 {
			t.Fatalf("vertex %+v not on radius 2", p)
		}
	}
}

func TestPlaneUVs(t *testing.T) {
	g := Plane(4, 4, 2, 2)
	if len(g.Positions) != 9 || len(g.Indices) != 24 {
		t.Fatalf("got %d vertices, %d indices", len(g.Positions), len(g.Indices))
	}
	if g.UVs[0] != (Vec2{0, 0}) || g.UVs[8] != (Vec2{1, 1}) {
		t.Errorf("corner UVs = %v, %v", g.UVs[0], g.UVs[8])
	}
	if !near(g.Positions[8], Vec3{2, 2, 0}) {
		t.Errorf("top-right corner = %+v", g.Positions[8])
	}
}

func TestTorusKnotCounts(t *testing.T) {
	g := TorusKnot(1, 0.3, 100, 16, 2, 3)
	if len(g.Positions) != 101*17 {
		t.Errorf("got %d vertices", len(g.Positions))
	}
	if len(g.Indices) != 100*16*6 {
		t.Errorf("got %d indices", len(g.Indices))
	}
}

func TestSegments(t *testing.T) {
	loop := Polygon(1, 7)
	n := 0
	loop.Segments(func(a, b int) { n++ })
	if n != 7 {
		t.Errorf("7-gon has %d segments", n)
	}

	strip := Circle(1, 64)
	n = 0
	strip.Segments(func(a, b int) { n++ })
	if n != 64 {
		t.Errorf("circle strip has %d segments", n)
	}
}

func TestProjectorCentre(t *testing.T) {
	cam := NewPerspectiveCamera(75, 2, 0.1, 1000)
	cam.Position = Vec3{0, 0, 5}
	p := cam.Projector(200, 100)

	x, y, depth, ok := p.Project(Vec3{})
	if !ok || x != 100 || y != 50 || depth != 5 {
		t.Errorf("origin projected to (%v, %v, %v, %v)", x, y, depth, ok)
	}
	if _, _, _, ok := p.Project(Vec3{0, 0, 10}); ok {
		t.Error("point behind the camera reported visible")
	}

	// A point on the top edge of the frustum lands on row 0.
	top := 5 * math.Tan(75*math.Pi/360)
	_, y, _, _ = p.Project(Vec3{0, top, 0})
	if math.Abs(y) > 1e-9 {
		t.Errorf("frustum top projected to row %v", y)
	}
}

func TestSceneDispose(t *testing.T) {
	s := New()
	g := Box(1, 1, 1)
	m := NewBasicMaterial(colorful.Color{R: 1})
	s.Add(NewMesh("box", g, m))
	s.Dispose()
	if !g.Disposed() || !m.Disposed() || len(s.Children()) != 0 {
		t.Error("dispose did not release the graph")
	}
}

func TestLighting(t *testing.T) {
	s := New()
	white := colorful.Color{R: 1, G: 1, B: 1}
	s.Add(NewAmbientLight(white, 0.5), NewDirectionalLight(white, 0.8, Vec3{1, 1, 1}))
	ambient, dirs, intensities := s.Lighting()
	if ambient != 0.5 || len(dirs) != 1 || intensities[0] != 0.8 {
		t.Errorf("ambient %v, dirs %v, intensities %v", ambient, dirs, intensities)
	}
}

func TestHSLWraps(t *testing.T) {
	a, b := HSL(1.25, 0.8, 0.5), HSL(0.25, 0.8, 0.5)
	if a.DistanceRgb(b) > 1e-9 {
		t.Errorf("hue 1.25 = %v, hue 0.25 = %v", a, b)
	}
	if h := Hue(HSL(-0.25, 1, 0.5)); math.Abs(h-0.75) > 1e-9 {
		t.Errorf("hue of -0.25 = %v", h)
	}
}
