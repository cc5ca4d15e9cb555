package visual

import (
	"math/rand"
	"sort"

	"github.com/juju/errors"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/scene"
)

// FallbackID names the instance used for unknown ids.
const FallbackID = "torusknot"

// Factory maps pattern ids to constructors. Create is total: it never
// panics and never returns nil.
type Factory struct {
	ctors map[string]Constructor
	clock Clock
	seed  int64
	count int64
}

type Option func(*Factory)

// WithClock replaces the wall clock, for tests and offline rendering.
func WithClock(c Clock) Option { return func(f *Factory) { f.clock = c } }

// WithSeed fixes the random source given to instances. Each created
// instance gets its own source derived from the seed.
func WithSeed(seed int64) Option { return func(f *Factory) { f.seed = seed } }

// NewFactory returns a factory with every built-in pattern registered.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{ctors: make(map[string]Constructor), clock: NewWallClock(), seed: 1}
	for _, o := range opts {
		o(f)
	}
	f.Register("hypercube", NewHypercube)
	f.Register("clifford", NewClifford)
	f.Register("fibonacci", NewFibonacci)
	f.Register("mandelbrot", NewMandelbrot)
	f.Register("lorenz", NewLorenz)
	f.Register("voronoi", NewVoronoi)
	f.Register("penrose", NewPenrose)
	f.Register("platonic", NewPlatonic)
	f.Register("wave", NewWave)
	f.Register("turing", NewTuring)
	f.Register("lissajous", NewLissajous)
	f.Register("hyperbolic", NewHyperbolic)
	return f
}

// Register adds or replaces the constructor for id.
func (f *Factory) Register(id string, c Constructor) {
	f.ctors[id] = c
}

func (f *Factory) Has(id string) bool {
	_, ok := f.ctors[id]
	return ok
}

// IDs lists registered ids, sorted.
func (f *Factory) IDs() []string {
	ids := make([]string, 0, len(f.ctors))
	for id := range f.ctors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Create builds the instance for id into s. Unknown ids and constructors
// that panic both yield the torus knot fallback.
func (f *Factory) Create(id string, s *scene.Scene, c colorful.Color) Instance {
	ctor, ok := f.ctors[id]
	if !ok {
		logger.Warningf("unknown pattern %q, using %s", id, FallbackID)
		return NewTorusKnot(f.env(s, c))
	}
	before := len(s.Children())
	inst, err := f.build(ctor, s, c)
	if err != nil {
		logger.Errorf("pattern %q: %v, using %s", id, err, FallbackID)
		discardFrom(s, before)
		return NewTorusKnot(f.env(s, c))
	}
	return inst
}

// discardFrom drops the nodes a failed constructor left behind.
func discardFrom(s *scene.Scene, n int) {
	for _, c := range append([]*scene.Node(nil), s.Children()[n:]...) {
		s.Remove(c)
		c.Traverse(func(n *scene.Node) {
			if n.Geometry != nil {
				n.Geometry.Dispose()
			}
			if n.Material != nil {
				n.Material.Dispose()
			}
		})
	}
}

func (f *Factory) build(ctor Constructor, s *scene.Scene, c colorful.Color) (inst Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("constructor panicked: %v", r)
		}
	}()
	inst = ctor(f.env(s, c))
	if inst == nil {
		return nil, errors.New("constructor returned nil")
	}
	return inst, nil
}

func (f *Factory) env(s *scene.Scene, c colorful.Color) Env {
	f.count++
	return Env{
		Scene: s,
		Color: c,
		Clock: f.clock,
		Rand:  rand.New(rand.NewSource(f.seed + f.count)),
	}
}
