package visual

import "github.com/san-kum/mathgallery/internal/scene"

// TorusKnot is the wireframe (2,3) knot shown for unknown pattern ids.
type TorusKnot struct {
	base
	knot *scene.Node
}

func NewTorusKnot(env Env) Instance {
	t := &TorusKnot{base: newBase(env, FallbackID)}
	t.knot = scene.NewMesh("knot", scene.TorusKnot(1, 0.3, 100, 16, 2, 3), wireMaterial(env.Color, 1))
	t.group.Add(t.knot)
	return t
}

func (t *TorusKnot) Update() {
	t.knot.SetScale(0.5 + t.p1()*2)
	speed := t.p2() * 0.05
	t.knot.Rotation.X += speed
	t.knot.Rotation.Y += speed * 0.7
}
