package controls

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/san-kum/mathgallery/internal/scene"
)

const (
	// DefaultDamping matches the feel of a 0.05 per-frame velocity decay.
	DefaultDamping = 0.05

	minPolar    = 0.01
	maxPolar    = math.Pi - 0.01
	minDistance = 0.5
	maxDistance = 50
)

// Orbit rotates a camera around its target. Input sets goals on a sphere
// around the target; Update eases the camera towards them with critically
// damped springs.
type Orbit struct {
	cam    *scene.PerspectiveCamera
	spring harmonica.Spring

	Enabled bool

	azimuth, polar, radius   float64
	goalAz, goalPol, goalRad float64
	velAz, velPol, velRad    float64
	disposed                 bool
}

// NewOrbit attaches controls to cam. fps is the rate Update will be called
// at; damping scales how fast the camera settles.
func NewOrbit(cam *scene.PerspectiveCamera, fps int, damping float64) *Orbit {
	if fps <= 0 {
		fps = 60
	}
	if damping <= 0 {
		damping = DefaultDamping
	}
	o := &Orbit{
		cam:     cam,
		spring:  harmonica.NewSpring(harmonica.FPS(fps), damping*float64(fps), 1.0),
		Enabled: true,
	}
	off := cam.Position.Sub(cam.Target)
	o.radius = off.Length()
	if o.radius == 0 {
		o.radius = 1
	}
	o.azimuth = math.Atan2(off.X, off.Z)
	o.polar = math.Acos(clamp(off.Y/o.radius, -1, 1))
	o.goalAz, o.goalPol, o.goalRad = o.azimuth, o.polar, o.radius
	return o
}

// Rotate moves the goal by the given azimuth and polar deltas in radians.
func (o *Orbit) Rotate(dAzimuth, dPolar float64) {
	if !o.Enabled || o.disposed {
		return
	}
	o.goalAz += dAzimuth
	o.goalPol = clamp(o.goalPol+dPolar, minPolar, maxPolar)
}

// Zoom scales the goal distance; factors below 1 move closer.
func (o *Orbit) Zoom(factor float64) {
	if !o.Enabled || o.disposed || factor <= 0 {
		return
	}
	o.goalRad = clamp(o.goalRad*factor, minDistance, maxDistance)
}

// Reset returns the goal to the pose given at construction.
func (o *Orbit) Reset(azimuth, polar, radius float64) {
	o.goalAz, o.goalPol, o.goalRad = azimuth, clamp(polar, minPolar, maxPolar), radius
}

// Update advances the springs one frame and reports whether the camera
// moved. A settled orbit leaves the camera untouched.
func (o *Orbit) Update() bool {
	if o.disposed || o.settled() {
		return false
	}
	o.azimuth, o.velAz = o.spring.Update(o.azimuth, o.velAz, o.goalAz)
	o.polar, o.velPol = o.spring.Update(o.polar, o.velPol, o.goalPol)
	o.radius, o.velRad = o.spring.Update(o.radius, o.velRad, o.goalRad)
	if o.settled() {
		o.azimuth, o.polar, o.radius = o.goalAz, o.goalPol, o.goalRad
		o.velAz, o.velPol, o.velRad = 0, 0, 0
	}

	sp := math.Sin(o.polar)
	o.cam.Position = o.cam.Target.Add(scene.Vec3{
		X: o.radius * sp * math.Sin(o.azimuth),
		Y: o.radius * math.Cos(o.polar),
		Z: o.radius * sp * math.Cos(o.azimuth),
	})
	return true
}

func (o *Orbit) settled() bool {
	const eps = 1e-4
	near := func(p, g, v float64) bool { return math.Abs(p-g) < eps && math.Abs(v) < eps }
	return near(o.azimuth, o.goalAz, o.velAz) &&
		near(o.polar, o.goalPol, o.velPol) &&
		near(o.radius, o.goalRad, o.velRad)
}

// Pose reports the current spherical coordinates around the target.
func (o *Orbit) Pose() (azimuth, polar, radius float64) {
	return o.azimuth, o.polar, o.radius
}

// Dispose detaches the controls; later input and updates are ignored.
func (o *Orbit) Dispose() { o.disposed = true }

func (o *Orbit) Disposed() bool { return o.disposed }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
