package render

import (
	"strings"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

func testCamera(aspect float64) *scene.PerspectiveCamera {
	cam := scene.NewPerspectiveCamera(75, aspect, 0.1, 1000)
	cam.Position = scene.Vec3{Z: 5}
	return cam
}

func TestCanvasSetAndLit(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 || c.Grid[0][1] != 0x2880 {
		t.Errorf("grid = %U %U", c.Grid[0][0], c.Grid[0][1])
	}
	if c.Lit() != 2 || !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Errorf("lit = %d", c.Lit())
	}
	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("unset left %U", c.Grid[0][0])
	}
	c.Set(-1, 0)
	c.Set(100, 0)
	if c.Lit() != 1 {
		t.Errorf("out of range dots were drawn")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(5, 1)
	c.DrawLine(0, 0, 9, 0, colorful.Color{R: 1})
	if c.Lit() != 10 {
		t.Errorf("horizontal line lit %d dots", c.Lit())
	}
	if !strings.Contains(c.Styled(), "⠉") {
		t.Errorf("styled output missing glyphs: %q", c.Styled())
	}
}

func TestBrailleSize(t *testing.T) {
	b := NewBraille(11, 10)
	if b.Canvas().Width != 6 || b.Canvas().Height != 3 {
		t.Errorf("canvas = %dx%d", b.Canvas().Width, b.Canvas().Height)
	}
	b.SetSize(20, 8)
	if w, h := b.Size(); w != 20 || h != 8 {
		t.Errorf("size = %dx%d", w, h)
	}
}

func TestBrailleRendersLines(t *testing.T) {
	s := scene.New()
	g := scene.NewGeometry(scene.LineSegments, []scene.Vec3{{X: -1}, {X: 1}})
	s.Add(scene.NewMesh("line", g, scene.NewBasicMaterial(colorful.Color{G: 1})))

	b := NewBraille(80, 40)
	b.Render(s, testCamera(2))
	if b.Canvas().Lit() == 0 {
		t.Fatal("nothing drawn")
	}
	if b.Renders() != 1 {
		t.Errorf("renders = %d", b.Renders())
	}

	b.Dispose()
	b.Render(s, testCamera(2))
	if b.Renders() != 1 {
		t.Error("disposed renderer kept rendering")
	}
}

func TestBrailleShaderFill(t *testing.T) {
	s := scene.New()
	sh := &scene.Shader{
		Uniforms: scene.Uniforms{"level": 1},
		Eval: func(uv scene.Vec2, u scene.Uniforms) colorful.Color {
			return colorful.Color{R: u["level"], G: u["level"], B: u["level"]}
		},
	}
	s.Add(scene.NewMesh("quad", scene.Plane(4, 4, 1, 1), scene.NewShaderMaterial(sh)))

	b := NewBraille(40, 40)
	b.Render(s, testCamera(1))
	lit := b.Canvas().Lit()
	if lit == 0 {
		t.Fatal("shader quad drew nothing")
	}

	sh.Uniforms["level"] = 0
	b.Render(s, testCamera(1))
	if b.Canvas().Lit() != 0 {
		t.Error("black fragments lit dots")
	}
}

func TestRasterBackgroundAndDepth(t *testing.T) {
	s := scene.New()
	s.Background = colorful.Color{B: 1}
	red := scene.NewMesh("near", scene.Plane(1, 1, 1, 1), scene.NewBasicMaterial(colorful.Color{R: 1}))
	red.Position.Z = 1
	green := scene.NewMesh("far", scene.Plane(1, 1, 1, 1), scene.NewBasicMaterial(colorful.Color{G: 1}))
	s.Add(red, green)

	r := NewRaster(64, 64)
	r.Render(s, testCamera(1))

	corner := r.Image().RGBAAt(0, 0)
	if corner.B != 255 || corner.R != 0 {
		t.Errorf("background pixel = %v", corner)
	}
	centre := r.Image().RGBAAt(32, 32)
	if centre.R != 255 || centre.G != 0 {
		t.Errorf("centre pixel = %v, want the nearer red plane", centre)
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		ok             bool
	}{
		{"inside", 1, 1, 5, 5, true},
		{"crossing", -100, 5, 100, 5, true},
		{"outside", -10, -10, -5, -5, false},
		{"diagonal", -37.3, -12.1, 48.9, 23.7, true},
		{"steep", 3.3, -1e6, 6.7, 1e6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clip(tt.x0, tt.y0, tt.x1, tt.y1, 10, 10)
			if ok != tt.ok {
				t.Fatalf("ok = %v", ok)
			}
			for _, v := range []float64{x0, y0, x1, y1} {
				if ok && (v < 0 || v > 9) {
					t.Errorf("clipped coordinate %v outside viewport", v)
				}
			}
		})
	}
}
