package metrics

import (
	"math"
	"testing"
	"time"
)

func TestFrameTime(t *testing.T) {
	m := NewFrameTime()
	if m.Value() != 0 {
		t.Errorf("empty mean = %v", m.Value())
	}
	m.Observe(10 * time.Millisecond)
	m.Observe(20 * time.Millisecond)
	if math.Abs(m.Value()-15) > 1e-9 {
		t.Errorf("expected 15ms, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear")
	}
}

func TestJitter(t *testing.T) {
	j := NewJitter()
	for _, ms := range []int{2, 4, 4, 4, 5, 5, 7, 9} {
		j.Observe(time.Duration(ms) * time.Millisecond)
	}
	want := math.Sqrt(32.0 / 7)
	if math.Abs(j.Value()-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, j.Value())
	}
}

func TestBudget(t *testing.T) {
	b := NewBudget(50)
	if b.Value() != 1 {
		t.Errorf("empty budget = %v", b.Value())
	}
	b.Observe(10 * time.Millisecond)
	b.Observe(30 * time.Millisecond)
	if b.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", b.Value())
	}
}

func TestHistoryWraps(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 4; i++ {
		h.Observe(time.Duration(i) * time.Millisecond)
	}
	got := h.Samples()
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(60, 8)
	c.ObserveFrame("a", 5*time.Millisecond)
	c.ObserveFrame("b", 7*time.Millisecond)
	c.ObserveFrame("a", 7*time.Millisecond)

	vals, hist, ok := c.Snapshot("a")
	if !ok {
		t.Fatal("no snapshot for a")
	}
	if math.Abs(vals["frame_ms"]-6) > 1e-9 {
		t.Errorf("frame_ms = %v", vals["frame_ms"])
	}
	if len(hist) != 2 {
		t.Errorf("history len = %d", len(hist))
	}

	c.Forget("a")
	if _, _, ok := c.Snapshot("a"); ok {
		t.Error("forgotten container still reported")
	}
	if ids := c.Containers(); len(ids) != 1 || ids[0] != "b" {
		t.Errorf("containers = %v", ids)
	}
}
