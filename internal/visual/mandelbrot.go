package visual

import (
	"github.com/san-kum/mathgallery/internal/scene"
)

// Mandelbrot renders the set on a 4x4 plane with an escape-time fragment
// shader. Param1 zooms, Param2 shifts the palette.
type Mandelbrot struct {
	base
	shader *scene.Shader
}

func NewMandelbrot(env Env) Instance {
	m := &Mandelbrot{base: newBase(env, "mandelbrot")}
	m.shader = &scene.Shader{
		Name:     "mandelbrot",
		Fragment: mandelbrotFS,
		Uniforms: scene.Uniforms{
			"time":       0,
			"zoom":       1,
			"colorShift": 0,
			"baseHue":    scene.Hue(env.Color),
		},
		Eval: mandelbrotFragment,
	}
	m.group.Add(scene.NewMesh("plane", scene.Plane(4, 4, 1, 1), scene.NewShaderMaterial(m.shader)))
	return m
}

func (m *Mandelbrot) Update() {
	u := m.shader.Uniforms
	u["time"] += 0.01
	u["zoom"] = 0.5 + m.p1()*3
	u["colorShift"] = m.p2()
}

// Uniforms exposes the live shader inputs.
func (m *Mandelbrot) Uniforms() scene.Uniforms { return m.shader.Uniforms }
