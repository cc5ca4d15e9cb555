package automation

import (
	"context"
	"time"

	"github.com/juju/errors"

	"github.com/san-kum/mathgallery/internal/metrics"
)

// Sweep steps one slider of a pattern across a range and times a fixed
// number of frames at each value.
type Sweep struct {
	Pattern string
	// Param selects the slider, 1 or 2. The other stays at its default.
	Param    int
	Min, Max float64
	Steps    int
	Frames   int
}

type SweepResult struct {
	Value   float64
	FrameMS float64
	Jitter  float64
}

func (p *Player) RunSweep(ctx context.Context, sw Sweep) ([]SweepResult, error) {
	if sw.Steps < 2 || sw.Frames < 1 || (sw.Param != 1 && sw.Param != 2) {
		return nil, errors.Annotatef(ErrBadStep, "sweep %+v", sw)
	}
	if p.Host.Mount(p.Container, sw.Pattern) == nil {
		return nil, errors.Errorf("container %q not available", p.Container)
	}
	defer p.Host.Destroy(p.Container)

	step := (sw.Max - sw.Min) / float64(sw.Steps-1)
	results := make([]SweepResult, 0, sw.Steps)
	for i := 0; i < sw.Steps; i++ {
		v := sw.Min + float64(i)*step
		p1, p2 := 0.5, 0.5
		if sw.Param == 1 {
			p1 = v
		} else {
			p2 = v
		}
		p.Host.UpdateParams(sw.Pattern, p1, p2)

		mean, jitter := metrics.NewFrameTime(), metrics.NewJitter()
		for f := 0; f < sw.Frames; f++ {
			if err := ctx.Err(); err != nil {
				return results, errors.Trace(err)
			}
			start := time.Now()
			p.tick()
			d := time.Since(start)
			mean.Observe(d)
			jitter.Observe(d)
		}
		results = append(results, SweepResult{Value: v, FrameMS: mean.Value(), Jitter: jitter.Value()})
		logger.Debugf("sweep %s param%d=%.3f: %.3fms", sw.Pattern, sw.Param, v, mean.Value())
	}
	return results, nil
}
