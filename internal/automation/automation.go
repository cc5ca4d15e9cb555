package automation

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mathgallery/internal/config"
	"github.com/san-kum/mathgallery/internal/export"
	"github.com/san-kum/mathgallery/internal/host"
	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/metrics"
	"github.com/san-kum/mathgallery/internal/render"
	"github.com/san-kum/mathgallery/internal/visual"
)

var logger = loggo.GetLogger("mathgallery.automation")

var (
	ErrEmptyScenario = errors.New("scenario has no steps")
	ErrBadStep       = errors.New("invalid scenario step")
)

const defaultFrames = 60

// Scenario is a scripted tour: patterns mounted one after another into
// the same container.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Container   string `yaml:"container"`
	Steps       []Step `yaml:"steps"`
}

// Step mounts one pattern and runs it for a number of frames. Params
// left out keep their defaults; a preset, when named, wins over both.
type Step struct {
	Pattern string   `yaml:"pattern"`
	Preset  string   `yaml:"preset"`
	Param1  *float64 `yaml:"param1"`
	Param2  *float64 `yaml:"param2"`
	Frames  int      `yaml:"frames"`
	SaveAs  string   `yaml:"save_as"`
}

// Params resolves the slider values the step asks for.
func (s Step) Params() (p1, p2 float64) {
	p1, p2 = visual.DefaultParam, visual.DefaultParam
	if s.Param1 != nil {
		p1 = *s.Param1
	}
	if s.Param2 != nil {
		p2 = *s.Param2
	}
	if s.Preset != "" {
		if p := config.GetPreset(s.Pattern, s.Preset); p != nil {
			p1, p2 = p.Param1, p.Param2
		} else {
			logger.Warningf("pattern %s has no preset %q", s.Pattern, s.Preset)
		}
	}
	return p1, p2
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "opening %s", path)
	}
	defer f.Close()
	sc, err := ParseScenario(f)
	return sc, errors.Annotatef(err, "%s", path)
}

func ParseScenario(r io.Reader) (*Scenario, error) {
	var sc Scenario
	if err := yaml.NewDecoder(r).Decode(&sc); err != nil {
		return nil, errors.Annotate(err, "parsing scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return ErrEmptyScenario
	}
	for i, s := range sc.Steps {
		if s.Pattern == "" {
			return errors.Annotatef(ErrBadStep, "step %d: no pattern", i+1)
		}
		if s.Frames < 0 {
			return errors.Annotatef(ErrBadStep, "step %d: negative frames", i+1)
		}
		switch strings.ToLower(filepath.Ext(s.SaveAs)) {
		case "", ".svg", ".png", ".gif":
		default:
			return errors.Annotatef(ErrBadStep, "step %d: unsupported output %q", i+1, s.SaveAs)
		}
	}
	return nil
}

// StepResult describes one played step.
type StepResult struct {
	Pattern  string
	Frames   int
	Fallback bool
	Saved    string
	FrameMS  float64
}

// Player drives a host synchronously: it ticks the loop itself and
// advances Clock by one frame interval per tick, so a tour renders the
// same frames however fast the machine is.
type Player struct {
	Host      *host.Host
	Loop      *loop.Loop
	Clock     *visual.FixedClock
	Container string
	// Progress, if set, is called before each step.
	Progress func(i, n int, s Step)
	// AfterStep, if set, sees each step's session before it is replaced.
	AfterStep func(i int, r StepResult, sess *host.Session)

	now time.Time
}

// Run plays every step in order. Each step replaces the previous one in
// the container.
func (p *Player) Run(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	if err := sc.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	container := p.Container
	if sc.Container != "" {
		container = sc.Container
	}
	defer p.Host.Destroy(container)

	results := make([]StepResult, 0, len(sc.Steps))
	for i, step := range sc.Steps {
		if p.Progress != nil {
			p.Progress(i, len(sc.Steps), step)
		}
		res, err := p.play(ctx, container, step)
		if err != nil {
			return results, errors.Annotatef(err, "step %d (%s)", i+1, step.Pattern)
		}
		if p.AfterStep != nil {
			if sess, ok := p.Host.Session(container); ok {
				p.AfterStep(i, res, sess)
			}
		}
		results = append(results, res)
	}
	return results, nil
}

func (p *Player) play(ctx context.Context, container string, step Step) (StepResult, error) {
	res := StepResult{Pattern: step.Pattern}
	inst := p.Host.Mount(container, step.Pattern)
	if inst == nil {
		return res, errors.Errorf("container %q not available", container)
	}
	_, knot := inst.(*visual.TorusKnot)
	res.Fallback = knot && step.Pattern != visual.FallbackID
	p1, p2 := step.Params()
	p.Host.UpdateParams(step.Pattern, p1, p2)

	sess, _ := p.Host.Session(container)
	frames := step.Frames
	if frames == 0 {
		frames = defaultFrames
	}

	var rec *export.Recorder
	if strings.EqualFold(filepath.Ext(step.SaveAs), ".gif") {
		rec = export.NewRecorder(100 / p.Loop.FPS())
	}
	cost := metrics.NewFrameTime()
	for f := 0; f < frames; f++ {
		if err := ctx.Err(); err != nil {
			return res, errors.Trace(err)
		}
		start := time.Now()
		p.tick()
		cost.Observe(time.Since(start))
		if sess.Failed() {
			return res, errors.Errorf("session stopped after %d frames", sess.Frames())
		}
		if rec != nil {
			capture(rec, sess)
		}
	}
	res.Frames = sess.Frames()
	res.FrameMS = cost.Value()

	if step.SaveAs != "" {
		if err := save(step.SaveAs, sess, rec); err != nil {
			return res, errors.Trace(err)
		}
		res.Saved = step.SaveAs
	}
	return res, nil
}

func (p *Player) tick() {
	if p.now.IsZero() {
		p.now = time.Unix(0, 0)
	}
	interval := p.Loop.Interval()
	p.now = p.now.Add(interval)
	if p.Clock != nil {
		p.Clock.Advance(interval.Seconds())
	}
	p.Loop.Drain()
	p.Loop.Tick(p.now)
}

func capture(rec *export.Recorder, sess *host.Session) {
	switch r := sess.Renderer.(type) {
	case *render.Braille:
		rec.CaptureCanvas(r.Canvas(), sess.Scene.Background)
	case *render.Raster:
		rec.CaptureImage(r.Image())
	}
}

func save(path string, sess *host.Session, rec *export.Recorder) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return rec.Save(path)
	case ".svg":
		b, ok := sess.Renderer.(*render.Braille)
		if !ok {
			return errors.Errorf("svg output needs the braille renderer")
		}
		svg := export.CanvasToSVG(b.Canvas(), 4, sess.Scene.Background)
		return errors.Trace(os.WriteFile(path, []byte(svg), 0644))
	case ".png":
		r, ok := sess.Renderer.(*render.Raster)
		if !ok {
			return errors.Errorf("png output needs the raster renderer")
		}
		return export.SavePNG(path, r.Image())
	}
	return errors.Annotatef(ErrBadStep, "unsupported output %q", path)
}
