package render

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

// minShadeLuminance is the brightness above which a shaded dot is lit.
const minShadeLuminance = 0.18

// Braille renders into a braille Canvas. Its size is measured in dots, two
// per cell horizontally and four vertically, so a w x h renderer owns a
// ceil(w/2) x ceil(h/4) canvas.
type Braille struct {
	canvas   *Canvas
	w, h     int
	frame    frame
	renders  int
	disposed bool
}

func NewBraille(w, h int) *Braille {
	b := &Braille{}
	b.SetSize(w, h)
	return b
}

func (b *Braille) SetSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if b.canvas != nil && w == b.w && h == b.h {
		return
	}
	b.w, b.h = w, h
	b.canvas = NewCanvas((w+1)/2, (h+3)/4)
}

func (b *Braille) Size() (int, int) { return b.w, b.h }

func (b *Braille) Render(s *scene.Scene, cam *scene.PerspectiveCamera) {
	if b.disposed {
		return
	}
	b.renders++
	b.canvas.Clear()
	flatten(s, cam, b.w, b.h, true, &b.frame)

	for _, t := range b.frame.triangles {
		fill(t, b.w, b.h, func(x, y int, _ float64, uv scene.Vec2, c colorful.Color) {
			if t.shader != nil {
				c = t.shader.Shade(uv)
			}
			if luminance(c) > minShadeLuminance {
				b.canvas.SetColor(x, y, c)
			}
		})
	}
	for _, d := range b.frame.dots {
		b.canvas.SetColor(int(math.Floor(d.x)), int(math.Floor(d.y)), d.c)
	}

	// Far segments first so nearer colours win shared cells.
	segs := b.frame.segments
	sort.Slice(segs, func(i, j int) bool { return segs[i].a.z+segs[i].b.z > segs[j].a.z+segs[j].b.z })
	for _, sg := range segs {
		x0, y0, x1, y1, ok := clip(sg.a.x, sg.a.y, sg.b.x, sg.b.y, float64(b.w), float64(b.h))
		if ok {
			b.canvas.DrawLine(int(x0), int(y0), int(x1), int(y1), sg.a.c)
		}
	}
}

func (b *Braille) Canvas() *Canvas { return b.canvas }

// Renders counts completed Render calls.
func (b *Braille) Renders() int { return b.renders }

func (b *Braille) String() string { return b.canvas.Styled() }

func (b *Braille) Dispose() {
	b.disposed = true
	b.frame = frame{}
}

func (b *Braille) Disposed() bool { return b.disposed }
