package scene

import "math"

// PerspectiveCamera projects world coordinates onto a viewport. Changes to
// FOV or Aspect take effect after UpdateProjectionMatrix.
type PerspectiveCamera struct {
	FOV    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64

	Position, Target, Up Vec3

	focal float64
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV: fov, Aspect: aspect, Near: near, Far: far,
		Up: Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.focal = 1 / math.Tan(c.FOV*math.Pi/360)
}

// Focal is the projection scale in use, 1/tan(fov/2).
func (c *PerspectiveCamera) Focal() float64 { return c.focal }

// Projector freezes the camera pose for one frame of width x height.
func (c *PerspectiveCamera) Projector(width, height int) Projector {
	fwd := c.Target.Sub(c.Position).Normalize()
	right := fwd.Cross(c.Up).Normalize()
	if right == (Vec3{}) {
		right = Vec3{1, 0, 0}
	}
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return Projector{
		origin: c.Position, fwd: fwd, right: right, up: right.Cross(fwd),
		focal: c.focal, aspect: aspect, near: c.Near, far: c.Far,
		w: float64(width), h: float64(height),
	}
}

type Projector struct {
	origin, fwd, right, up Vec3
	focal, aspect          float64
	near, far              float64
	w, h                   float64
}

// Project maps a world point to viewport pixels. depth is the distance
// along the view axis; ok is false outside the near/far range.
func (p Projector) Project(v Vec3) (x, y, depth float64, ok bool) {
	d := v.Sub(p.origin)
	z := d.Dot(p.fwd)
	if z <= p.near || z >= p.far {
		return 0, 0, z, false
	}
	nx := d.Dot(p.right) * p.focal / (z * p.aspect)
	ny := d.Dot(p.up) * p.focal / z
	return (nx + 1) / 2 * p.w, (1 - ny) / 2 * p.h, z, true
}

// ViewDir is the unit vector the camera looks along.
func (p Projector) ViewDir() Vec3 { return p.fwd }

// PixelScale converts a world length at view depth z into pixels.
func (p Projector) PixelScale(z float64) float64 {
	if z <= 0 {
		return 0
	}
	return p.focal * p.h / (2 * z)
}
