package visual

import (
	"math"

	"github.com/san-kum/mathgallery/internal/scene"
)

const (
	waveGrid    = 40
	waveSpacing = 0.1
)

type waveSource struct {
	x, y, freq float64
}

// Wave displaces a wire grid by the sum of two circular waves.
type Wave struct {
	base
	grid    *scene.Geometry
	sources [2]waveSource
}

func NewWave(env Env) Instance {
	w := &Wave{base: newBase(env, "wave")}
	w.sources = [2]waveSource{{x: -1, y: -1, freq: 2}, {x: 1, y: 1, freq: 2}}

	pos := make([]scene.Vec3, 0, waveGrid*waveGrid)
	for x := 0; x < waveGrid; x++ {
		for y := 0; y < waveGrid; y++ {
			pos = append(pos, scene.Vec3{X: float64(x-waveGrid/2) * waveSpacing, Y: float64(y-waveGrid/2) * waveSpacing})
		}
	}
	w.grid = scene.NewGeometry(scene.LineSegments, pos)
	for x := 0; x < waveGrid-1; x++ {
		for y := 0; y < waveGrid; y++ {
			w.grid.Indices = append(w.grid.Indices, x+y*waveGrid, x+1+y*waveGrid)
		}
	}
	for x := 0; x < waveGrid; x++ {
		for y := 0; y < waveGrid-1; y++ {
			w.grid.Indices = append(w.grid.Indices, x+y*waveGrid, x+(y+1)*waveGrid)
		}
	}
	w.group.Add(scene.NewMesh("grid", w.grid, lineMaterial(env.Color, 0.5)))
	return w
}

func (w *Wave) Update() {
	t := w.now()
	f := 1 + w.p1()*5
	amp := 0.1 + w.p2()*0.4
	w.sources[0].freq = f
	w.sources[1].freq = f * 1.5

	for i := range w.grid.Positions {
		p := &w.grid.Positions[i]
		p.Z = w.height(p.X, p.Y, t, amp)
	}
	w.grid.NeedsUpdate()
	w.group.Rotation.Z += 0.002
}

func (w *Wave) height(x, y, t, amp float64) float64 {
	z := 0.0
	for _, s := range w.sources {
		d := math.Hypot(x-s.x, y-s.y)
		z += math.Sin(d*s.freq-t*5) * amp / (1 + d)
	}
	return z
}

// Grid returns the displaced grid vertices.
func (w *Wave) Grid() []scene.Vec3 { return w.grid.Positions }
