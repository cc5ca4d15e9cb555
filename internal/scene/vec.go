package scene

import "math"

type Vec3 struct {
	X, Y, Z float64
}

// Vec3 methods.
func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Vec2 is a texture coordinate.
type Vec2 struct {
	U, V float64
}

// Matrix is an affine transform: a 3x3 linear part followed by a translation.
type Matrix struct {
	M [3][3]float64
	T Vec3
}

func Identity() Matrix {
	return Matrix{M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Compose builds T * R * S where R applies Euler angles in XYZ order,
// the same convention the rest of the scene graph uses.
func Compose(position, rotation, scale Vec3) Matrix {
	cx, sx := math.Cos(rotation.X), math.Sin(rotation.X)
	cy, sy := math.Cos(rotation.Y), math.Sin(rotation.Y)
	cz, sz := math.Cos(rotation.Z), math.Sin(rotation.Z)

	// Rx * Ry * Rz
	r := [3][3]float64{
		{cy * cz, -cy * sz, sy},
		{cx*sz + sx*sy*cz, cx*cz - sx*sy*sz, -sx * cy},
		{sx*sz - cx*sy*cz, sx*cz + cx*sy*sz, cx * cy},
	}
	s := [3]float64{scale.X, scale.Y, scale.Z}
	var m Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.M[i][j] = r[i][j] * s[j]
		}
	}
	m.T = position
	return m
}

func (a Matrix) Apply(p Vec3) Vec3 {
	return Vec3{
		a.M[0][0]*p.X + a.M[0][1]*p.Y + a.M[0][2]*p.Z + a.T.X,
		a.M[1][0]*p.X + a.M[1][1]*p.Y + a.M[1][2]*p.Z + a.T.Y,
		a.M[2][0]*p.X + a.M[2][1]*p.Y + a.M[2][2]*p.Z + a.T.Z,
	}
}

// ApplyDir transforms a direction, ignoring translation.
func (a Matrix) ApplyDir(p Vec3) Vec3 {
	return a.Apply(p).Sub(a.T)
}

// Mul returns a*b, the transform that applies b first.
func (a Matrix) Mul(b Matrix) Matrix {
	var m Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.M[i][j] = a.M[i][0]*b.M[0][j] + a.M[i][1]*b.M[1][j] + a.M[i][2]*b.M[2][j]
		}
	}
	m.T = a.Apply(b.T)
	return m
}
