package visual

import (
	"math"
	"math/rand"
	"time"

	"github.com/juju/loggo"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

var logger = loggo.GetLogger("mathgallery.visual")

// DefaultParam is the value both sliders start at.
const DefaultParam = 0.5

// Params are the two normalized slider values an instance reads each
// frame. Writers may store anything; instances clamp what they consume.
type Params struct {
	Param1 float64
	Param2 float64
}

func DefaultParams() Params { return Params{Param1: DefaultParam, Param2: DefaultParam} }

// Instance is one running pattern. Update is called once per frame on the
// event loop goroutine and must not block.
type Instance interface {
	Params() *Params
	Update()
}

// Cleaner is implemented by instances that hold resources outside the
// scene graph.
type Cleaner interface {
	Cleanup()
}

// Clock reports elapsed time in seconds.
type Clock interface {
	Seconds() float64
}

// WallClock measures seconds since it was created.
type WallClock struct{ start time.Time }

func NewWallClock() *WallClock { return &WallClock{start: time.Now()} }

func (c *WallClock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}

// FixedClock is a manually advanced clock for tests and offline rendering.
type FixedClock struct{ T float64 }

func (c *FixedClock) Seconds() float64 { return c.T }

// Advance moves the clock forward by d seconds.
func (c *FixedClock) Advance(d float64) { c.T += d }

// Env is what a constructor receives: the scene to populate, the pattern
// colour, a clock and a random source owned by the instance.
type Env struct {
	Scene *scene.Scene
	Color colorful.Color
	Clock Clock
	Rand  *rand.Rand
}

// Constructor builds an instance. It may only add nodes to env.Scene.
type Constructor func(env Env) Instance

// base carries the state every instance shares.
type base struct {
	params Params
	group  *scene.Node
	clock  Clock
}

func newBase(env Env, name string) base {
	g := scene.NewGroup(name)
	env.Scene.Add(g)
	return base{params: DefaultParams(), group: g, clock: env.Clock}
}

func (b *base) Params() *Params { return &b.params }

// Group is the root node the instance drew into.
func (b *base) Group() *scene.Node { return b.group }

func (b *base) now() float64 { return b.clock.Seconds() }

// p1 and p2 return the sliders clamped to [0, 1]; NaN reads as 0.
func (b *base) p1() float64 { return clamp01(b.params.Param1) }
func (b *base) p2() float64 { return clamp01(b.params.Param2) }

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
