package metrics

import (
	"math"
	"sort"
	"sync"
	"time"
)

// Metric accumulates frame durations into one number.
type Metric interface {
	Name() string
	Observe(d time.Duration)
	Value() float64
	Reset()
}

// FrameTime is the mean frame duration in milliseconds.
type FrameTime struct {
	sum     time.Duration
	samples int
}

func NewFrameTime() *FrameTime { return &FrameTime{} }

func (f *FrameTime) Name() string { return "frame_ms" }

func (f *FrameTime) Observe(d time.Duration) {
	f.sum += d
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.sum) / float64(f.samples) / float64(time.Millisecond)
}

func (f *FrameTime) Reset() { *f = FrameTime{} }

// Jitter is the standard deviation of frame durations in milliseconds,
// computed with Welford's update.
type Jitter struct {
	n        int
	mean, m2 float64
}

func NewJitter() *Jitter { return &Jitter{} }

func (j *Jitter) Name() string { return "jitter_ms" }

func (j *Jitter) Observe(d time.Duration) {
	x := float64(d) / float64(time.Millisecond)
	j.n++
	delta := x - j.mean
	j.mean += delta / float64(j.n)
	j.m2 += delta * (x - j.mean)
}

func (j *Jitter) Value() float64 {
	if j.n < 2 {
		return 0
	}
	return math.Sqrt(j.m2 / float64(j.n-1))
}

func (j *Jitter) Reset() { *j = Jitter{} }

// Budget is the fraction of frames that fit in the frame interval of the
// target rate. It starts at 1.
type Budget struct {
	limit      time.Duration
	violations int
	samples    int
}

func NewBudget(fps int) *Budget {
	if fps <= 0 {
		fps = 60
	}
	return &Budget{limit: time.Second / time.Duration(fps)}
}

func (b *Budget) Name() string { return "on_budget" }

func (b *Budget) Observe(d time.Duration) {
	b.samples++
	if d > b.limit {
		b.violations++
	}
}

func (b *Budget) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Budget) Reset() {
	b.violations = 0
	b.samples = 0
}

// History keeps the most recent frame durations, oldest first.
type History struct {
	buf  []float64
	next int
	full bool
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = 1
	}
	return &History{buf: make([]float64, size)}
}

func (h *History) Observe(d time.Duration) {
	h.buf[h.next] = float64(d) / float64(time.Millisecond)
	h.next = (h.next + 1) % len(h.buf)
	if h.next == 0 {
		h.full = true
	}
}

// Samples returns the retained durations in milliseconds.
func (h *History) Samples() []float64 {
	if !h.full {
		return append([]float64(nil), h.buf[:h.next]...)
	}
	out := make([]float64, 0, len(h.buf))
	out = append(out, h.buf[h.next:]...)
	return append(out, h.buf[:h.next]...)
}

// Set groups the standard metrics for one container.
type Set struct {
	Metrics []Metric
	History *History
}

func NewSet(fps, history int) *Set {
	return &Set{
		Metrics: []Metric{NewFrameTime(), NewJitter(), NewBudget(fps)},
		History: NewHistory(history),
	}
}

func (s *Set) Observe(d time.Duration) {
	for _, m := range s.Metrics {
		m.Observe(d)
	}
	s.History.Observe(d)
}

// Values maps metric names to their current values.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.Metrics))
	for _, m := range s.Metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Collector keeps a metric set per container. It is safe for concurrent
// use so servers can read it off the event loop.
type Collector struct {
	mu      sync.Mutex
	fps     int
	history int
	sets    map[string]*Set
}

func NewCollector(fps, history int) *Collector {
	return &Collector{fps: fps, history: history, sets: make(map[string]*Set)}
}

// ObserveFrame records one frame of the session in container.
func (c *Collector) ObserveFrame(container string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sets[container]
	if !ok {
		s = NewSet(c.fps, c.history)
		c.sets[container] = s
	}
	s.Observe(d)
}

// Snapshot returns the metric values and history for container.
func (c *Collector) Snapshot(container string) (map[string]float64, []float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sets[container]
	if !ok {
		return nil, nil, false
	}
	return s.Values(), s.History.Samples(), true
}

// Forget drops the metrics of a destroyed container.
func (c *Collector) Forget(container string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sets, container)
}

func (c *Collector) Containers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, 0, len(c.sets))
	for id := range c.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
