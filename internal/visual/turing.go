package visual

import (
	"math"

	"github.com/san-kum/mathgallery/internal/scene"
)

// Turing animates a reaction-diffusion look-alike: a product of two
// drifting simplex noise fields on a gently displaced plane.
type Turing struct {
	base
	shader *scene.Shader
}

func NewTuring(env Env) Instance {
	t := &Turing{base: newBase(env, "turing")}
	t.shader = &scene.Shader{
		Name:     "turing",
		Fragment: turingFS,
		Uniforms: scene.Uniforms{
			"time":          0,
			"reactionRate":  DefaultParam,
			"diffusionRate": DefaultParam,
			"baseHue":       scene.Hue(env.Color),
		},
		Eval: turingFragment,
	}
	g := scene.Plane(4, 4, 100, 100)
	for i := range g.Positions {
		p := &g.Positions[i]
		p.Z += math.Sin(p.X*10) * math.Sin(p.Y*10) * 0.1
	}
	t.group.Add(scene.NewMesh("surface", g, scene.NewShaderMaterial(t.shader)))
	return t
}

func (t *Turing) Update() {
	u := t.shader.Uniforms
	u["time"] += 0.01
	u["reactionRate"] = t.p1()
	u["diffusionRate"] = t.p2()
	t.group.Rotation.Z += 0.001
}

func (t *Turing) Uniforms() scene.Uniforms { return t.shader.Uniforms }
