package scene

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

type Blending int

const (
	NormalBlending Blending = iota
	AdditiveBlending
)

// Material describes how a geometry is coloured. Shader, when set, takes
// over colouring of triangle geometry entirely. Only Lit materials respond
// to scene lights.
type Material struct {
	Color        colorful.Color
	VertexColors bool
	Size         float64
	Opacity      float64
	Transparent  bool
	Blending     Blending
	Wireframe    bool
	Lit          bool
	Shader       *Shader

	disposed bool
}

func NewBasicMaterial(c colorful.Color) *Material {
	return &Material{Color: c, Size: 1, Opacity: 1}
}

func NewShaderMaterial(s *Shader) *Material {
	return &Material{Shader: s, Size: 1, Opacity: 1}
}

// VertexColor returns the colour of vertex i under this material.
func (m *Material) VertexColor(g *Geometry, i int) colorful.Color {
	if m.VertexColors && i < len(g.Colors) {
		return g.Colors[i]
	}
	return m.Color
}

func (m *Material) Dispose()       { m.disposed = true }
func (m *Material) Disposed() bool { return m.disposed }

// Uniforms are the scalar shader inputs, keyed by GLSL name.
type Uniforms map[string]float64

// FragmentFunc evaluates a shader at a texture coordinate. It mirrors the
// GLSL fragment source so software renderers produce the same image.
type FragmentFunc func(uv Vec2, u Uniforms) colorful.Color

// Shader pairs GLSL sources, for GPU backends, with an equivalent Go
// fragment function, for software backends.
type Shader struct {
	Name     string
	Vertex   string
	Fragment string
	Uniforms Uniforms
	Eval     FragmentFunc
}

// Shade evaluates the fragment function, or returns black when the shader
// has none.
func (s *Shader) Shade(uv Vec2) colorful.Color {
	if s == nil || s.Eval == nil {
		return colorful.Color{}
	}
	return s.Eval(uv, s.Uniforms)
}
