package visual

import (
	"math"

	"github.com/san-kum/mathgallery/internal/scene"
)

const (
	lissajousSamples   = 1000
	lissajousParticles = 50
)

// Lissajous traces x = sin(a t + phi), y = sin(b t) with integer
// frequencies picked by Param1 and the phase by Param2.
type Lissajous struct {
	base
	curve     *scene.Geometry
	particles *scene.Geometry
}

func NewLissajous(env Env) Instance {
	l := &Lissajous{base: newBase(env, "lissajous")}
	l.curve = scene.NewGeometry(scene.LineStrip, make([]scene.Vec3, lissajousSamples))
	for i := range l.curve.Positions {
		t := float64(i) / lissajousSamples * 2 * math.Pi
		l.curve.Positions[i] = scene.Vec3{X: math.Sin(3 * t), Y: math.Sin(2 * t)}
	}
	l.particles = scene.NewGeometry(scene.Points, make([]scene.Vec3, lissajousParticles))
	for i := range l.particles.Positions {
		l.particles.Positions[i] = l.curve.Positions[sampleIndex(i, lissajousParticles, lissajousSamples)]
	}
	l.group.Add(
		scene.NewMesh("curve", l.curve, lineMaterial(env.Color, 0.8)),
		scene.NewMesh("particles", l.particles, glowPoints(env.Color, 0.05, 0.8)),
	)
	return l
}

// Frequencies returns a, b and the phase shift for the current params.
func (l *Lissajous) Frequencies() (a, b int, phase float64) {
	a = 1 + int(math.Floor(l.p1()*5))
	b = 1 + int(math.Floor(l.p1()*7))
	return a, b, l.p2() * math.Pi
}

func (l *Lissajous) Update() {
	a, b, phase := l.Frequencies()
	at := func(t float64) scene.Vec3 {
		return scene.Vec3{X: math.Sin(float64(a)*t + phase), Y: math.Sin(float64(b) * t)}
	}
	for i := range l.curve.Positions {
		l.curve.Positions[i] = at(float64(i) / lissajousSamples * 2 * math.Pi)
	}
	l.curve.NeedsUpdate()

	now := l.now()
	for i := range l.particles.Positions {
		u := math.Mod(float64(i)/lissajousParticles+now*0.1, 1)
		l.particles.Positions[i] = at(u * 2 * math.Pi)
	}
	l.particles.NeedsUpdate()
	l.group.Rotation.Z += 0.002
}

func (l *Lissajous) Curve() []scene.Vec3 { return l.curve.Positions }
