package gui

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/juju/loggo"

	"github.com/san-kum/mathgallery/internal/controls"
	"github.com/san-kum/mathgallery/internal/host"
	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/metrics"
	"github.com/san-kum/mathgallery/internal/pattern"
	"github.com/san-kum/mathgallery/internal/render"
	"github.com/san-kum/mathgallery/internal/scene"
	"github.com/san-kum/mathgallery/internal/visual"
)

var logger = loggo.GetLogger("mathgallery.gui")

const (
	windowW, windowH = 1280, 720
	paramStep        = 0.05
)

// Theme Colors
var (
	ColBg      = rl.NewColor(12, 12, 20, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

type Options struct {
	Container string
	// Scale divides the window size to get the raster size.
	Scale   int
	FPS     int
	Seed    int64
	Pattern string
	Factory *visual.Factory
}

type App struct {
	Host     *host.Host
	Page     *host.Page
	Loop     *loop.Loop
	Patterns []pattern.Descriptor
	Metrics  *metrics.Collector
	Font     rl.Font

	container string
	InMenu    bool
	Selected  int
	ParamSel  int
	Params    visual.Params
	Running   bool

	tex    rl.Texture2D
	texW   int
	texH   int
	pixels []color.RGBA
	rand   *rand.Rand
}

func initWindow(fps int) {
	rl.InitWindow(windowW, windowH, "mathgallery")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when the system has it and the raylib
// default font otherwise.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(opts Options) *App {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.Factory == nil {
		opts.Factory = visual.NewFactory()
	}
	l := loop.New(opts.FPS)
	page := host.NewPage()
	w, h := windowW/opts.Scale, windowH/opts.Scale
	page.Add(opts.Container, w, h)
	collector := metrics.NewCollector(l.FPS(), 200)

	a := &App{
		Page:      page,
		Loop:      l,
		Patterns:  pattern.Default().All(),
		Metrics:   collector,
		Font:      loadFont(),
		container: opts.Container,
		InMenu:    true,
		Params:    visual.DefaultParams(),
		rand:      rand.New(rand.NewSource(opts.Seed)),
	}
	a.Host = host.New(host.Options{
		Document:    page,
		Scheduler:   l,
		Factory:     opts.Factory,
		NewRenderer: func(w, h int) render.Renderer { return render.NewRaster(w, h) },
		NewControls: func(cam *scene.PerspectiveCamera) host.Controls {
			return controls.NewOrbit(cam, l.FPS(), controls.DefaultDamping)
		},
		DetailContainer: opts.Container,
		Observer:        collector,
	})
	a.resizeTexture(w, h)

	if opts.Pattern != "" {
		for i, d := range a.Patterns {
			if d.ID == opts.Pattern {
				a.Selected = i
				a.open()
				break
			}
		}
	}
	return a
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) {
	initWindow(opts.FPS)
	defer rl.CloseWindow()
	app := NewApp(opts)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

func (a *App) Close() {
	a.Host.DestroyAll()
	a.Loop.Close()
	rl.UnloadTexture(a.tex)
}

func (a *App) current() pattern.Descriptor { return a.Patterns[a.Selected] }

func (a *App) open() {
	d := a.current()
	if a.Host.Mount(a.container, d.ID) == nil {
		logger.Errorf("cannot mount %s", d.ID)
		return
	}
	a.Params = visual.DefaultParams()
	a.ParamSel = 0
	a.InMenu = false
	a.Running = true
	logger.Infof("showing %s", d.ID)
}

func (a *App) setParams(p1, p2 float64) {
	a.Params = visual.Params{Param1: clamp01(p1), Param2: clamp01(p2)}
	a.Host.UpdateParams(a.current().ID, a.Params.Param1, a.Params.Param2)
}

func (a *App) orbit() *controls.Orbit {
	sess, ok := a.Host.Session(a.container)
	if !ok {
		return nil
	}
	o, _ := sess.Controls.(*controls.Orbit)
	return o
}

// Update handles input and advances the loop one frame. It returns false
// once the user asks to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}

	if a.InMenu {
		if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
			a.Selected = (a.Selected + 1) % len(a.Patterns)
		}
		if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
			a.Selected = (a.Selected - 1 + len(a.Patterns)) % len(a.Patterns)
		}
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
			a.open()
		}
		a.Loop.Drain()
		return true
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.Host.Destroy(a.container)
		a.InMenu = true
		return true
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) ||
		rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.ParamSel = 1 - a.ParamSel
	}
	step := paramStep
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step /= 5
	}
	delta := 0.0
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		delta = step
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		delta = -step
	}
	if delta != 0 {
		if a.ParamSel == 0 {
			a.setParams(a.Params.Param1+delta, a.Params.Param2)
		} else {
			a.setParams(a.Params.Param1, a.Params.Param2+delta)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.setParams(visual.DefaultParam, visual.DefaultParam)
		if o := a.orbit(); o != nil {
			o.Reset(0, math.Pi/2, host.CameraDistance)
		}
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.setParams(float64(a.rand.Intn(100))/100, float64(a.rand.Intn(100))/100)
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}

	if o := a.orbit(); o != nil {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			d := rl.GetMouseDelta()
			o.Rotate(-float64(d.X)*0.01, -float64(d.Y)*0.01)
		}
		if wheel := rl.GetMouseWheelMove(); wheel != 0 {
			o.Zoom(1 - float64(wheel)*0.1)
		}
	}

	a.Loop.Drain()
	if a.Running {
		a.Loop.Tick(time.Now())
	}
	return true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
