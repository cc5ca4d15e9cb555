package visual

import (
	_ "embed"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

var (
	//go:embed shaders/mandelbrot.fs
	mandelbrotFS string

	//go:embed shaders/turing.fs
	turingFS string
)

const maxIter = 100

// mandelbrotFragment mirrors shaders/mandelbrot.fs.
func mandelbrotFragment(uv scene.Vec2, u scene.Uniforms) colorful.Color {
	zf := u["zoom"] * 2
	cr := (-2+3*uv.U)/zf - 0.5/zf
	ci := (-1.5 + 3*uv.V) / zf

	zr, zi := 0.0, 0.0
	iter := maxIter
	for i := 0; i < maxIter; i++ {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		if math.Hypot(zr, zi) > 2 {
			iter = i
			break
		}
	}
	if iter == maxIter {
		return colorful.Color{}
	}
	smooth := float64(iter) - math.Log2(math.Log2(zr*zr+zi*zi)) + 4
	smooth = math.Sqrt(math.Max(smooth, 0) / maxIter)
	hue := fract(u["baseHue"] + smooth*0.5 + u["colorShift"] + u["time"]*0.05)
	return hsv(hue, 0.8, smooth)
}

// turingFragment mirrors shaders/turing.fs.
func turingFragment(uv scene.Vec2, u scene.Uniforms) colorful.Color {
	scale := 5 + u["diffusionRate"]*10
	speed := 0.2 + u["reactionRate"]*0.8
	t := u["time"] * speed

	n1 := snoise(uv.U*scale+t, uv.V*scale)
	n2 := snoise(uv.U*scale*2, uv.V*scale*2-t)
	pattern := smoothstep(n1*n2*0.5 + 0.5)

	hue := u["baseHue"] + pattern*0.2
	s, l := 0.8, pattern*0.6+0.2
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return colorful.Color{R: hue2rgb(p, q, hue+1.0/3), G: hue2rgb(p, q, hue), B: hue2rgb(p, q, hue-1.0/3)}
}

func hue2rgb(p, q, t float64) float64 {
	switch {
	case t < 0:
		t++
	case t > 1:
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func hsv(h, s, v float64) colorful.Color {
	ch := func(k float64) float64 {
		p := math.Abs(fract(h+k)*6 - 3)
		return v * (1 + (clamp01(p-1)-1)*s)
	}
	return colorful.Color{R: ch(1), G: ch(2.0 / 3), B: ch(1.0 / 3)}
}

func fract(x float64) float64 { return x - math.Floor(x) }

func smoothstep(x float64) float64 {
	t := clamp01(x)
	return t * t * (3 - 2*t)
}

func mod289(x float64) float64 { return x - math.Floor(x/289)*289 }

func permute(x float64) float64 { return mod289((x*34 + 1) * x) }

// snoise is 2D simplex noise, a port of the Ashima Arts GLSL function used
// by shaders/turing.fs. The result lies roughly in [-1, 1].
func snoise(vx, vy float64) float64 {
	const (
		cx = 0.211324865405187
		cy = 0.366025403784439
		cz = -0.577350269189626
		cw = 0.024390243902439
	)
	s := (vx + vy) * cy
	ix, iy := math.Floor(vx+s), math.Floor(vy+s)
	t := (ix + iy) * cx
	x0x, x0y := vx-ix+t, vy-iy+t

	i1x, i1y := 0.0, 1.0
	if x0x > x0y {
		i1x, i1y = 1, 0
	}
	x1x, x1y := x0x+cx-i1x, x0y+cx-i1y
	x2x, x2y := x0x+cz, x0y+cz

	ix, iy = mod289(ix), mod289(iy)
	p := [3]float64{
		permute(permute(iy) + ix),
		permute(permute(iy+i1y) + ix + i1x),
		permute(permute(iy+1) + ix + 1),
	}
	m := [3]float64{
		math.Max(0.5-(x0x*x0x+x0y*x0y), 0),
		math.Max(0.5-(x1x*x1x+x1y*x1y), 0),
		math.Max(0.5-(x2x*x2x+x2y*x2y), 0),
	}
	gx := [3]float64{x0x, x1x, x2x}
	gy := [3]float64{x0y, x1y, x2y}

	n := 0.0
	for k := 0; k < 3; k++ {
		mk := m[k] * m[k]
		mk *= mk
		x := 2*fract(p[k]*cw) - 1
		h := math.Abs(x) - 0.5
		a0 := x - math.Floor(x+0.5)
		mk *= 1.79284291400159 - 0.85373472095314*(a0*a0+h*h)
		n += mk * (a0*gx[k] + h*gy[k])
	}
	return 130 * n
}
