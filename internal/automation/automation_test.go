package automation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/juju/errors"

	"github.com/san-kum/mathgallery/internal/host"
	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/render"
	"github.com/san-kum/mathgallery/internal/visual"
)

const tour = `
name: basics
description: three quick stops
steps:
  - pattern: lorenz
    frames: 3
  - pattern: clifford
    preset: classic
    frames: 2
    save_as: %s
  - pattern: wave
    param1: 0.1
`

func newPlayer(renderer func(w, h int) render.Renderer) *Player {
	l := loop.New(30)
	page := host.NewPage()
	page.Add("tour", 40, 24)
	clock := &visual.FixedClock{}
	h := host.New(host.Options{
		Document:    page,
		Scheduler:   l,
		Factory:     visual.NewFactory(visual.WithClock(clock)),
		NewRenderer: renderer,
	})
	return &Player{Host: h, Loop: l, Clock: clock, Container: "tour"}
}

func TestParseScenario(t *testing.T) {
	c := qt.New(t)
	sc, err := ParseScenario(strings.NewReader(strings.Replace(tour, "%s", "out.svg", 1)))
	c.Assert(err, qt.IsNil)
	c.Assert(sc.Name, qt.Equals, "basics")
	c.Assert(sc.Steps, qt.HasLen, 3)

	p1, p2 := sc.Steps[1].Params()
	c.Assert([]float64{p1, p2}, qt.DeepEquals, []float64{0.2, 0.8})
	p1, p2 = sc.Steps[2].Params()
	c.Assert([]float64{p1, p2}, qt.DeepEquals, []float64{0.1, 0.5})
}

func TestScenarioValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"empty", "name: nothing\n", ErrEmptyScenario},
		{"no pattern", "steps:\n  - frames: 2\n", ErrBadStep},
		{"negative frames", "steps:\n  - pattern: wave\n    frames: -1\n", ErrBadStep},
		{"bad output", "steps:\n  - pattern: wave\n    save_as: out.bmp\n", ErrBadStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			_, err := ParseScenario(strings.NewReader(tt.yaml))
			c.Assert(errors.Cause(err), qt.Equals, tt.want)
		})
	}
}

func TestPlayerRun(t *testing.T) {
	c := qt.New(t)
	out := filepath.Join(c.TempDir(), "clifford.svg")
	sc, err := ParseScenario(strings.NewReader(strings.Replace(tour, "%s", out, 1)))
	c.Assert(err, qt.IsNil)

	p := newPlayer(nil)
	var seen []string
	p.Progress = func(i, n int, s Step) { seen = append(seen, s.Pattern) }

	results, err := p.Run(context.Background(), sc)
	c.Assert(err, qt.IsNil)
	c.Assert(seen, qt.DeepEquals, []string{"lorenz", "clifford", "wave"})
	c.Assert(results, qt.HasLen, 3)
	c.Assert(results[0].Frames, qt.Equals, 3)
	c.Assert(results[1].Saved, qt.Equals, out)
	c.Assert(results[2].Frames, qt.Equals, defaultFrames)
	c.Assert(p.Host.Len(), qt.Equals, 0)

	data, err := os.ReadFile(out)
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Contains, "<svg")
}

func TestPlayerGIF(t *testing.T) {
	c := qt.New(t)
	out := filepath.Join(c.TempDir(), "wave.gif")
	sc := &Scenario{Steps: []Step{{Pattern: "wave", Frames: 2, SaveAs: out}}}

	p := newPlayer(func(w, h int) render.Renderer { return render.NewRaster(w, h) })
	_, err := p.Run(context.Background(), sc)
	c.Assert(err, qt.IsNil)
	_, err = os.Stat(out)
	c.Assert(err, qt.IsNil)
}

func TestPlayerMissingContainer(t *testing.T) {
	c := qt.New(t)
	p := newPlayer(nil)
	p.Container = "elsewhere"
	_, err := p.Run(context.Background(), &Scenario{Steps: []Step{{Pattern: "wave"}}})
	c.Assert(err, qt.ErrorMatches, `step 1 \(wave\): container "elsewhere" not available`)
}

func TestPlayerCancelled(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newPlayer(nil)
	_, err := p.Run(ctx, &Scenario{Steps: []Step{{Pattern: "wave"}}})
	c.Assert(errors.Cause(err), qt.Equals, context.Canceled)
}

func TestRunSweep(t *testing.T) {
	c := qt.New(t)
	p := newPlayer(nil)
	res, err := p.RunSweep(context.Background(), Sweep{Pattern: "platonic", Param: 1, Min: 0, Max: 1, Steps: 5, Frames: 2})
	c.Assert(err, qt.IsNil)
	c.Assert(res, qt.HasLen, 5)
	c.Assert(res[4].Value, qt.Equals, 1.0)
	c.Assert(p.Host.Len(), qt.Equals, 0)

	_, err = p.RunSweep(context.Background(), Sweep{Pattern: "platonic", Param: 3, Steps: 5, Frames: 1})
	c.Assert(errors.Cause(err), qt.Equals, ErrBadStep)
}

func TestPlayerFallback(t *testing.T) {
	c := qt.New(t)
	p := newPlayer(nil)
	res, err := p.Run(context.Background(), &Scenario{Steps: []Step{
		{Pattern: "no-such-pattern", Frames: 1},
		{Pattern: visual.FallbackID, Frames: 1},
	}})
	c.Assert(err, qt.IsNil)
	c.Assert(res[0].Fallback, qt.IsTrue)
	c.Assert(res[1].Fallback, qt.IsFalse)
}

func TestPlayerAfterStep(t *testing.T) {
	c := qt.New(t)
	p := newPlayer(nil)
	var seen []string
	p.AfterStep = func(i int, r StepResult, sess *host.Session) {
		c.Check(sess.PatternID, qt.Equals, r.Pattern)
		c.Check(sess.Cancelled(), qt.IsFalse)
		seen = append(seen, sess.PatternID)
	}
	_, err := p.Run(context.Background(), &Scenario{Steps: []Step{
		{Pattern: "penrose", Frames: 1},
		{Pattern: "voronoi", Frames: 1},
	}})
	c.Assert(err, qt.IsNil)
	c.Assert(seen, qt.DeepEquals, []string{"penrose", "voronoi"})
}
