package render

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

// Raster renders into an RGBA image with a depth buffer. It backs PNG and
// GIF export and the desktop window.
type Raster struct {
	img      *image.RGBA
	depth    []float64
	w, h     int
	frame    frame
	renders  int
	disposed bool
}

func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.SetSize(w, h)
	return r
}

func (r *Raster) SetSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if r.img != nil && w == r.w && h == r.h {
		return
	}
	r.w, r.h = w, h
	r.img = image.NewRGBA(image.Rect(0, 0, w, h))
	r.depth = make([]float64, w*h)
}

func (r *Raster) Size() (int, int) { return r.w, r.h }

func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) Renders() int { return r.renders }

func (r *Raster) Render(s *scene.Scene, cam *scene.PerspectiveCamera) {
	if r.disposed {
		return
	}
	r.renders++
	flatten(s, cam, r.w, r.h, false, &r.frame)

	bg := toRGBA(r.frame.background)
	for i := 0; i < len(r.img.Pix); i += 4 {
		r.img.Pix[i], r.img.Pix[i+1], r.img.Pix[i+2], r.img.Pix[i+3] = bg.R, bg.G, bg.B, 255
	}
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}

	for _, t := range r.frame.triangles {
		fill(t, r.w, r.h, func(x, y int, z float64, uv scene.Vec2, c colorful.Color) {
			if t.shader != nil {
				c = t.shader.Shade(uv)
			}
			r.plot(x, y, z, c, t.alpha, false, true)
		})
	}
	for _, sg := range r.frame.segments {
		r.line(sg)
	}
	for _, d := range r.frame.dots {
		half := int(d.size / 2)
		cx, cy := int(math.Floor(d.x)), int(math.Floor(d.y))
		for y := cy - half; y <= cy+half; y++ {
			for x := cx - half; x <= cx+half; x++ {
				r.plot(x, y, d.z, d.c, d.alpha, d.add, !d.add)
			}
		}
	}
}

func (r *Raster) line(sg segment) {
	x0, y0, x1, y1, ok := clip(sg.a.x, sg.a.y, sg.b.x, sg.b.y, float64(r.w), float64(r.h))
	if !ok {
		return
	}
	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		z := sg.a.z + (sg.b.z-sg.a.z)*t
		r.plot(int(x0+(x1-x0)*t), int(y0+(y1-y0)*t), z, sg.a.c.BlendRgb(sg.b.c, t), sg.alpha, sg.add, !sg.add)
	}
}

func (r *Raster) plot(x, y int, z float64, c colorful.Color, alpha float64, add, write bool) {
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	i := y*r.w + x
	if z > r.depth[i] {
		return
	}
	if write {
		r.depth[i] = z
	}
	p := r.img.PixOffset(x, y)
	dst := colorful.Color{R: float64(r.img.Pix[p]) / 255, G: float64(r.img.Pix[p+1]) / 255, B: float64(r.img.Pix[p+2]) / 255}
	var out colorful.Color
	if add {
		out = colorful.Color{R: dst.R + c.R*alpha, G: dst.G + c.G*alpha, B: dst.B + c.B*alpha}
	} else {
		out = colorful.Color{R: dst.R + (c.R-dst.R)*alpha, G: dst.G + (c.G-dst.G)*alpha, B: dst.B + (c.B-dst.B)*alpha}
	}
	rgba := toRGBA(out)
	r.img.Pix[p], r.img.Pix[p+1], r.img.Pix[p+2] = rgba.R, rgba.G, rgba.B
}

func (r *Raster) Dispose() {
	r.disposed = true
	r.frame = frame{}
}

func (r *Raster) Disposed() bool { return r.disposed }

func toRGBA(c colorful.Color) color.RGBA {
	c = c.Clamped()
	return color.RGBA{R: uint8(c.R*255 + 0.5), G: uint8(c.G*255 + 0.5), B: uint8(c.B*255 + 0.5), A: 255}
}
