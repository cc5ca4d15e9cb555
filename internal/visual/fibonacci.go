package visual

import (
	"math"

	"github.com/san-kum/mathgallery/internal/scene"
)

const (
	goldenRatio       = 1.61803398875
	spiralSamples     = 1000
	fibonacciSquares  = 10
	fibonacciParticle = 100
)

// Fibonacci draws the golden spiral r = phi^(theta/(pi/2)) * 0.1, the
// winding square sequence and particles sliding along the spiral.
type Fibonacci struct {
	base
	spiral    []scene.Vec3
	particles *scene.Geometry
}

func NewFibonacci(env Env) Instance {
	f := &Fibonacci{base: newBase(env, "fibonacci")}

	theta := 0.0
	for i := 0; i < spiralSamples; i++ {
		r := math.Pow(goldenRatio, theta/(math.Pi/2)) * 0.1
		f.spiral = append(f.spiral, scene.Vec3{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
		theta += 0.01
	}
	f.group.Add(scene.NewMesh("spiral", scene.NewGeometry(scene.LineStrip, f.spiral), lineMaterial(env.Color, 0.8)))

	rect := lineMaterial(scene.OffsetHSL(env.Color, 0.1, 0, 0), 0.5)
	size, x, y := 0.1, 0.0, 0.0
	for i := 0; i < fibonacciSquares; i++ {
		var pts []scene.Vec3
		switch i % 4 {
		case 0: // right
			pts = []scene.Vec3{{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size}, {X: x, Y: y}}
			x += size
		case 1: // up
			pts = []scene.Vec3{{X: x, Y: y}, {X: x, Y: y + size}, {X: x - size, Y: y + size}, {X: x - size, Y: y}, {X: x, Y: y}}
			y += size
		case 2: // left
			pts = []scene.Vec3{{X: x, Y: y}, {X: x - size, Y: y}, {X: x - size, Y: y - size}, {X: x, Y: y - size}, {X: x, Y: y}}
			x -= size
		case 3: // down
			pts = []scene.Vec3{{X: x, Y: y}, {X: x, Y: y - size}, {X: x + size, Y: y - size}, {X: x + size, Y: y}, {X: x, Y: y}}
			y -= size
		}
		f.group.Add(scene.NewMesh("square", scene.NewGeometry(scene.LineStrip, pts), rect))
		if i >= 1 {
			size *= goldenRatio
		}
	}

	f.particles = scene.NewGeometry(scene.Points, make([]scene.Vec3, fibonacciParticle))
	for i := range f.particles.Positions {
		f.particles.Positions[i] = f.spiral[sampleIndex(i, fibonacciParticle, spiralSamples)]
	}
	f.group.Add(scene.NewMesh("particles", f.particles, glowPoints(env.Color, 0.03, 0.8)))
	return f
}

func (f *Fibonacci) Update() {
	s := 0.5 + f.p1()*2
	f.group.SetScale(s)
	f.group.Rotation.Z += f.p2() * 0.02

	t := math.Mod(f.now()*(1+f.p2()), 1)
	for i := range f.particles.Positions {
		u := math.Mod(float64(i)/fibonacciParticle+t, 1)
		f.particles.Positions[i] = f.spiral[int(u*spiralSamples)]
	}
	f.particles.NeedsUpdate()
}
