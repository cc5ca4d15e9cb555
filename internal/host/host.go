package host

import (
	"runtime/debug"
	"sort"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/pattern"
	"github.com/san-kum/mathgallery/internal/render"
	"github.com/san-kum/mathgallery/internal/scene"
	"github.com/san-kum/mathgallery/internal/visual"
)

var logger = loggo.GetLogger("mathgallery.host")

const (
	FOV  = 75
	Near = 0.1
	Far  = 1000
	// CameraDistance is the camera's starting z.
	CameraDistance = 5
)

var (
	Background   = colorful.Color{R: 0x0c / 255.0, G: 0x0c / 255.0, B: 0x14 / 255.0}
	DefaultColor = colorful.Color{R: 0, G: 1, B: 1}
	white        = colorful.Color{R: 1, G: 1, B: 1}
)

// Scheduler is the part of the event loop a host needs.
type Scheduler interface {
	RequestFrame(fn loop.FrameFunc) loop.FrameID
	CancelFrame(id loop.FrameID)
	AddResizeListener(fn func()) loop.ListenerID
	RemoveResizeListener(id loop.ListenerID)
}

// Creator builds instances; *visual.Factory is the usual one.
type Creator interface {
	Create(id string, s *scene.Scene, c colorful.Color) visual.Instance
}

// Controls is a camera controller updated once per frame.
type Controls interface {
	Update() bool
	Dispose()
}

// Observer receives per-frame timings. *metrics.Collector is one.
type Observer interface {
	ObserveFrame(container string, d time.Duration)
	Forget(container string)
}

type Options struct {
	Document  Document
	Scheduler Scheduler
	Factory   Creator
	// Patterns supplies instance colours. Unknown ids get DefaultColor.
	Patterns    *pattern.Registry
	NewRenderer func(w, h int) render.Renderer
	// NewControls is called only for DetailContainer; nil disables
	// controls everywhere.
	NewControls     func(cam *scene.PerspectiveCamera) Controls
	DetailContainer string
	Observer        Observer
}

// Host owns every running session, at most one per container. All of its
// methods must be called on the event loop goroutine.
type Host struct {
	opts     Options
	sessions map[string]*Session
}

func New(opts Options) *Host {
	if opts.Patterns == nil {
		opts.Patterns = pattern.Default()
	}
	if opts.NewRenderer == nil {
		opts.NewRenderer = func(w, h int) render.Renderer { return render.NewBraille(w, h) }
	}
	return &Host{opts: opts, sessions: make(map[string]*Session)}
}

// Mount replaces whatever runs in containerID with a new instance of
// patternID. It returns nil, without error, when the container is
// missing or has no area yet.
func (h *Host) Mount(containerID, patternID string) visual.Instance {
	h.Destroy(containerID)

	c, ok := h.opts.Document.Container(containerID)
	if !ok {
		logger.Debugf("mount %s: no container %q", patternID, containerID)
		return nil
	}
	w, ht := c.Size()
	if w <= 0 || ht <= 0 {
		logger.Debugf("mount %s: container %q has no area (%dx%d)", patternID, containerID, w, ht)
		return nil
	}

	s := scene.New()
	s.Background = Background
	s.Add(
		scene.NewAmbientLight(white, 0.5),
		scene.NewDirectionalLight(white, 0.8, scene.Vec3{X: 1, Y: 1, Z: 1}),
	)
	cam := scene.NewPerspectiveCamera(FOV, float64(w)/float64(ht), Near, Far)
	cam.Position.Z = CameraDistance

	r := h.opts.NewRenderer(w, ht)
	c.Attach(r)

	sess := &Session{
		ContainerID: containerID,
		PatternID:   patternID,
		Scene:       s,
		Camera:      cam,
		Renderer:    r,
		container:   c,
	}
	if containerID == h.opts.DetailContainer && h.opts.NewControls != nil {
		sess.Controls = h.opts.NewControls(cam)
	}

	col := DefaultColor
	if d, ok := h.opts.Patterns.Get(patternID); ok {
		col = d.Color
	} else {
		logger.Debugf("pattern %q not in catalog, using default colour", patternID)
	}
	sess.Instance = h.opts.Factory.Create(patternID, s, col)

	sess.resizeID = h.opts.Scheduler.AddResizeListener(func() { h.resize(sess) })
	h.sessions[containerID] = sess
	sess.frameID = h.opts.Scheduler.RequestFrame(func(now time.Time) { h.frame(sess, now) })
	return sess.Instance
}

func (h *Host) frame(sess *Session, now time.Time) {
	if sess.cancelled {
		return
	}
	sess.frameID = h.opts.Scheduler.RequestFrame(func(now time.Time) { h.frame(sess, now) })

	start := time.Now()
	if err := sess.step(); err != nil {
		logger.Errorf("session %s (%s) stopped: %v", sess.ContainerID, sess.PatternID, err)
		h.opts.Scheduler.CancelFrame(sess.frameID)
		sess.failed = true
		return
	}
	sess.frames++
	if h.opts.Observer != nil {
		h.opts.Observer.ObserveFrame(sess.ContainerID, time.Since(start))
	}
}

func (h *Host) resize(sess *Session) {
	if sess.cancelled {
		return
	}
	w, ht := sess.container.Size()
	if w <= 0 || ht <= 0 {
		return
	}
	sess.Camera.Aspect = float64(w) / float64(ht)
	sess.Camera.UpdateProjectionMatrix()
	sess.Renderer.SetSize(w, ht)
}

// UpdateParams writes p1 and p2 into every instance mounted for patternID
// and returns how many it reached. Values are stored as given.
func (h *Host) UpdateParams(patternID string, p1, p2 float64) int {
	n := 0
	for _, sess := range h.sessions {
		if sess.PatternID != patternID {
			continue
		}
		p := sess.Instance.Params()
		p.Param1, p.Param2 = p1, p2
		n++
	}
	return n
}

// Destroy tears down the session in containerID. Destroying an empty
// container is a no-op.
func (h *Host) Destroy(containerID string) {
	sess, ok := h.sessions[containerID]
	if !ok {
		return
	}
	delete(h.sessions, containerID)
	sess.cancelled = true
	h.opts.Scheduler.CancelFrame(sess.frameID)
	h.opts.Scheduler.RemoveResizeListener(sess.resizeID)
	if sess.Controls != nil {
		sess.Controls.Dispose()
	}
	sess.Renderer.Dispose()
	sess.container.Detach(sess.Renderer)
	if c, ok := sess.Instance.(visual.Cleaner); ok {
		if err := guard(c.Cleanup); err != nil {
			logger.Errorf("cleanup %s: %v", containerID, err)
		}
	}
	sess.Scene.Dispose()
	if h.opts.Observer != nil {
		h.opts.Observer.Forget(containerID)
	}
}

// DestroyAll tears down every session.
func (h *Host) DestroyAll() {
	for _, id := range h.ContainerIDs() {
		h.Destroy(id)
	}
}

// Session returns the live session in containerID.
func (h *Host) Session(containerID string) (*Session, bool) {
	s, ok := h.sessions[containerID]
	return s, ok
}

func (h *Host) Len() int { return len(h.sessions) }

// ContainerIDs lists containers with a live session, sorted.
func (h *Host) ContainerIDs() []string {
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
			logger.Debugf("%s", debug.Stack())
		}
	}()
	fn()
	return nil
}
