package host_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mathgallery/internal/host"
	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/render"
	"github.com/san-kum/mathgallery/internal/scene"
	"github.com/san-kum/mathgallery/internal/visual"
)

const detail = "visualization-container"

type countingRenderer struct {
	w, h     int
	renders  int
	disposed bool
	panics   bool
}

func (r *countingRenderer) SetSize(w, h int) { r.w, r.h = w, h }
func (r *countingRenderer) Size() (int, int) { return r.w, r.h }
func (r *countingRenderer) Dispose()         { r.disposed = true }
func (r *countingRenderer) Render(*scene.Scene, *scene.PerspectiveCamera) {
	if r.panics {
		panic("render failed")
	}
	r.renders++
}

type fakeControls struct{ updates, disposes int }

func (c *fakeControls) Update() bool { c.updates++; return false }
func (c *fakeControls) Dispose()     { c.disposes++ }

type probe struct {
	params  visual.Params
	update  func()
	cleaned int
}

func (p *probe) Params() *visual.Params { return &p.params }
func (p *probe) Update() {
	if p.update != nil {
		p.update()
	}
}
func (p *probe) Cleanup() { p.cleaned++ }

var _ = Describe("Host", func() {
	var (
		l         *loop.Loop
		page      *host.Page
		factory   *visual.Factory
		h         *host.Host
		renderers []*countingRenderer
		controls  []*fakeControls
		now       time.Time
	)

	tick := func(n int) {
		for i := 0; i < n; i++ {
			now = now.Add(time.Second / 60)
			l.Tick(now)
		}
	}

	BeforeEach(func() {
		l = loop.New(60)
		page = host.NewPage()
		page.Add(detail, 160, 90)
		page.Add("preview-clifford", 40, 20)
		page.Add("preview-lorenz", 40, 20)
		page.Add("collapsed", 0, 0)
		factory = visual.NewFactory(visual.WithClock(&visual.FixedClock{}), visual.WithSeed(7))
		renderers, controls = nil, nil
		now = time.Unix(0, 0)

		h = host.New(host.Options{
			Document:  page,
			Scheduler: l,
			Factory:   factory,
			NewRenderer: func(w, ht int) render.Renderer {
				r := &countingRenderer{w: w, h: ht}
				renderers = append(renderers, r)
				return r
			},
			NewControls: func(*scene.PerspectiveCamera) host.Controls {
				c := &fakeControls{}
				controls = append(controls, c)
				return c
			},
			DetailContainer: detail,
		})
	})

	Describe("Mount", func() {
		It("builds a session with default params", func() {
			inst := h.Mount(detail, "lorenz")
			Expect(inst).NotTo(BeNil())
			Expect(*inst.Params()).To(Equal(visual.Params{Param1: 0.5, Param2: 0.5}))

			sess, ok := h.Session(detail)
			Expect(ok).To(BeTrue())
			Expect(sess.PatternID).To(Equal("lorenz"))
			Expect(sess.Camera.FOV).To(Equal(75.0))
			Expect(sess.Camera.Position.Z).To(Equal(5.0))
			Expect(sess.Camera.Aspect).To(Equal(160.0 / 90.0))
			Expect(sess.Scene.Background).To(Equal(host.Background))

			surface, _ := page.Surface(detail)
			Expect(surface.Renderer()).To(BeIdenticalTo(sess.Renderer))
		})

		It("returns nil for a missing container", func() {
			Expect(h.Mount("nowhere", "lorenz")).To(BeNil())
			Expect(h.Len()).To(BeZero())
		})

		It("returns nil for a container without area", func() {
			Expect(h.Mount("collapsed", "lorenz")).To(BeNil())
			Expect(h.Len()).To(BeZero())
			Expect(l.Pending()).To(BeZero())
		})

		It("falls back for unknown patterns", func() {
			inst := h.Mount(detail, "klein-bottle")
			_, ok := inst.(*visual.TorusKnot)
			Expect(ok).To(BeTrue())
		})

		It("attaches controls only to the detail container", func() {
			h.Mount("preview-lorenz", "lorenz")
			Expect(controls).To(BeEmpty())
			h.Mount(detail, "lorenz")
			Expect(controls).To(HaveLen(1))
			tick(2)
			Expect(controls[0].updates).To(Equal(2))
		})

		It("replaces an existing session", func() {
			h.Mount(detail, "lorenz")
			first, _ := h.Session(detail)
			inst := h.Mount(detail, "fibonacci")

			Expect(h.Len()).To(Equal(1))
			Expect(first.Cancelled()).To(BeTrue())
			Expect(renderers[0].disposed).To(BeTrue())
			_, ok := inst.(*visual.Fibonacci)
			Expect(ok).To(BeTrue())

			tick(3)
			Expect(renderers[0].renders).To(BeZero())
			Expect(renderers[1].renders).To(Equal(3))
			Expect(l.Pending()).To(Equal(1))
		})
	})

	Describe("frame task", func() {
		It("requests the next frame before updating", func() {
			var pendingDuringUpdate []int
			factory.Register("probe", func(env visual.Env) visual.Instance {
				return &probe{update: func() { pendingDuringUpdate = append(pendingDuringUpdate, l.Pending()) }}
			})
			h.Mount(detail, "probe")
			tick(2)
			Expect(pendingDuringUpdate).To(Equal([]int{1, 1}))
		})

		It("stops only the session that panicked", func() {
			factory.Register("bomb", func(env visual.Env) visual.Instance {
				return &probe{update: func() { panic("bad update") }}
			})
			h.Mount("preview-lorenz", "bomb")
			h.Mount("preview-clifford", "clifford")
			tick(3)

			bad, _ := h.Session("preview-lorenz")
			good, _ := h.Session("preview-clifford")
			Expect(bad.Failed()).To(BeTrue())
			Expect(bad.Frames()).To(BeZero())
			Expect(good.Frames()).To(Equal(3))
			Expect(l.Pending()).To(Equal(1))
		})

		It("contains renderer panics", func() {
			h.Mount(detail, "wave")
			renderers[0].panics = true
			Expect(func() { tick(1) }).NotTo(Panic())
			sess, _ := h.Session(detail)
			Expect(sess.Failed()).To(BeTrue())
		})
	})

	Describe("UpdateParams", func() {
		It("reaches every session of the pattern", func() {
			a := h.Mount("preview-clifford", "clifford")
			b := h.Mount(detail, "clifford")
			other := h.Mount("preview-lorenz", "lorenz")

			Expect(h.UpdateParams("clifford", 0.2, 0.8)).To(Equal(2))
			Expect(*a.Params()).To(Equal(visual.Params{Param1: 0.2, Param2: 0.8}))
			Expect(*b.Params()).To(Equal(visual.Params{Param1: 0.2, Param2: 0.8}))
			Expect(*other.Params()).To(Equal(visual.DefaultParams()))
		})

		It("stores values without clamping", func() {
			inst := h.Mount(detail, "platonic")
			h.UpdateParams("platonic", 1.5, -1)
			Expect(*inst.Params()).To(Equal(visual.Params{Param1: 1.5, Param2: -1}))
			Expect(func() { tick(2) }).NotTo(Panic())
		})

		It("ignores patterns with no session", func() {
			Expect(h.UpdateParams("penrose", 0, 0)).To(BeZero())
		})
	})

	Describe("Destroy", func() {
		It("is idempotent", func() {
			h.Mount(detail, "lorenz")
			h.Destroy(detail)
			Expect(h.Len()).To(BeZero())
			Expect(l.Pending()).To(BeZero())
			Expect(func() { h.Destroy(detail) }).NotTo(Panic())
			Expect(h.Len()).To(BeZero())
		})

		It("releases everything the session held", func() {
			p := &probe{}
			factory.Register("probe", func(env visual.Env) visual.Instance { return p })
			h.Mount(detail, "probe")
			sess, _ := h.Session(detail)
			h.Destroy(detail)

			surface, _ := page.Surface(detail)
			Expect(surface.Renderer()).To(BeNil())
			Expect(renderers[0].disposed).To(BeTrue())
			Expect(controls[0].disposes).To(Equal(1))
			Expect(p.cleaned).To(Equal(1))
			Expect(sess.Scene.Children()).To(BeEmpty())

			l.NotifyResize()
			Expect(renderers[0].w).To(Equal(160))
		})

		It("stops a session destroyed from inside a frame", func() {
			factory.Register("probe", func(env visual.Env) visual.Instance {
				return &probe{update: func() { h.Destroy(detail) }}
			})
			h.Mount(detail, "probe")
			tick(1)
			Expect(l.Pending()).To(BeZero())
			Expect(h.Len()).To(BeZero())
			tick(1)
			Expect(renderers[0].renders).To(BeZero())
		})
	})

	Describe("resize", func() {
		It("matches the camera aspect to the container", func() {
			h.Mount(detail, "hypercube")
			surface, _ := page.Surface(detail)
			surface.Resize(300, 120)
			l.NotifyResize()

			sess, _ := h.Session(detail)
			Expect(sess.Camera.Aspect).To(Equal(300.0 / 120.0))
			Expect(renderers[0].w).To(Equal(300))
			Expect(renderers[0].h).To(Equal(120))
		})

		It("ignores zero-area measurements", func() {
			h.Mount(detail, "hypercube")
			surface, _ := page.Surface(detail)
			surface.Resize(0, 120)
			l.NotifyResize()

			sess, _ := h.Session(detail)
			Expect(sess.Camera.Aspect).To(Equal(160.0 / 90.0))
			Expect(renderers[0].w).To(Equal(160))
		})
	})
})
