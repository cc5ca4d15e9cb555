package visual

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/dynamo"
	"github.com/san-kum/mathgallery/internal/integrators"
	"github.com/san-kum/mathgallery/internal/physics"
	"github.com/san-kum/mathgallery/internal/scene"
)

const (
	lorenzParticles = 100
	lorenzStride    = 5
	lorenzScale     = 0.1
)

// LorenzOptions control how the attractor trajectory is precomputed.
type LorenzOptions struct {
	Integrator string
	Dt         float64
	Steps      int

	// Zero coefficients keep the classic values.
	Sigma, Rho, Beta float64
}

// DefaultLorenzOptions reproduce the reference trajectory: 5000 explicit
// Euler steps of 0.005 from (0.1, 0, 0).
func DefaultLorenzOptions() LorenzOptions {
	return LorenzOptions{Integrator: "euler", Dt: 0.005, Steps: 5000, Sigma: 10, Rho: 28, Beta: 8.0 / 3.0}
}

// Lorenz draws a precomputed Lorenz trajectory coloured along its length
// and a train of particles that runs along it.
type Lorenz struct {
	base
	points    []scene.Vec3
	particles *scene.Geometry
	cursor    int
}

func NewLorenz(env Env) Instance { return NewLorenzWith(DefaultLorenzOptions())(env) }

// NewLorenzWith returns a constructor that integrates with the named
// integrator. Steps must leave room for the particle train.
func NewLorenzWith(opts LorenzOptions) Constructor {
	return func(env Env) Instance {
		if opts.Steps <= lorenzParticles || opts.Dt <= 0 {
			logger.Warningf("lorenz: bad options %+v, using defaults", opts)
			opts = DefaultLorenzOptions()
		}
		sys := physics.NewLorenz()
		for name, v := range map[string]float64{"sigma": opts.Sigma, "rho": opts.Rho, "beta": opts.Beta} {
			if v == 0 {
				continue
			}
			if err := sys.SetParam(name, v); err != nil {
				logger.Errorf("lorenz: %v", err)
				return nil
			}
		}
		logger.Debugf("lorenz coefficients %v", sys.GetParams())
		integ, err := integrators.ByName(opts.Integrator)
		if err != nil {
			logger.Errorf("lorenz: %v", err)
			return nil
		}
		traj, err := dynamo.Integrate(sys, integ, sys.DefaultState(), opts.Dt, opts.Steps)
		if err != nil {
			logger.Errorf("lorenz trajectory: %v", err)
			return nil
		}

		l := &Lorenz{base: newBase(env, "lorenz")}
		// x0 itself is not drawn.
		traj = traj[1:]
		n := len(traj)
		l.points = make([]scene.Vec3, n)
		curve := scene.NewGeometry(scene.LineStrip, l.points)
		curve.Colors = make([]colorful.Color, n)
		for i, s := range traj {
			l.points[i] = scene.Vec3{X: s[0] * lorenzScale, Y: s[1] * lorenzScale, Z: s[2] * lorenzScale}
			curve.Colors[i] = scene.HSL(float64(i)/float64(n), 1, 0.5)
		}
		mat := scene.NewBasicMaterial(env.Color)
		mat.VertexColors = true
		l.group.Add(scene.NewMesh("trajectory", curve, mat))

		l.particles = scene.NewGeometry(scene.Points, make([]scene.Vec3, lorenzParticles))
		for i := range l.particles.Positions {
			l.particles.Positions[i] = l.points[sampleIndex(i, lorenzParticles, n)]
		}
		l.group.Add(scene.NewMesh("particles", l.particles, glowPoints(env.Color, 0.05, 0.8)))
		return l
	}
}

func (l *Lorenz) Update() {
	l.group.SetScale(0.5 + l.p1()*2)
	l.group.Rotation.Y += 0.005

	n := len(l.points)
	speed := int(math.Floor(0.5 + l.p2()*5))
	l.cursor = (l.cursor + speed) % (n - lorenzParticles)
	for i := range l.particles.Positions {
		l.particles.Positions[i] = l.points[(l.cursor+i*lorenzStride)%n]
	}
	l.particles.NeedsUpdate()
}

// Trajectory returns the drawn points, already scaled.
func (l *Lorenz) Trajectory() []scene.Vec3 { return l.points }

// Cursor is the trajectory index of the first particle.
func (l *Lorenz) Cursor() int { return l.cursor }
