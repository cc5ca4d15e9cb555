package gallery

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/mathgallery/internal/config"
	"github.com/san-kum/mathgallery/internal/host"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func loaded(t *testing.T) *Model {
	t.Helper()
	m := New(Options{Config: *config.DefaultConfig()})
	for i := 0; i < 100 && m.screen == screenLoading; i++ {
		m.Update(loadMsg{})
	}
	if m.screen != screenGrid {
		t.Fatalf("still loading at %.0f%%", m.loadPct*100)
	}
	return m
}

func session(t *testing.T, m *Model, container string) *host.Session {
	t.Helper()
	sess, ok := m.host.Session(container)
	if !ok {
		t.Fatalf("no session in %s", container)
	}
	return sess
}

func TestLoadingMountsPreviews(t *testing.T) {
	m := New(Options{Config: *config.DefaultConfig()})
	if !strings.Contains(m.View(), "Loading patterns") {
		t.Error("loading screen missing")
	}
	m.Update(loadMsg{})
	if m.loadPct <= 0 || m.loadPct >= 1 {
		t.Errorf("one step should advance part way, got %f", m.loadPct)
	}

	m = loaded(t)
	if got := m.host.Len(); got != len(m.patterns) {
		t.Fatalf("expected %d previews, got %d", len(m.patterns), got)
	}
	sess := session(t, m, PreviewPrefix+"lorenz")
	if sess.Controls != nil {
		t.Error("previews should not get orbit controls")
	}

	m.Update(FrameMsg(time.Now()))
	if sess.Frames() != 1 {
		t.Errorf("expected 1 frame after one tick, got %d", sess.Frames())
	}
	if !strings.Contains(m.View(), m.patterns[0].Name) {
		t.Error("grid should show pattern names")
	}
}

func TestDetailSliders(t *testing.T) {
	m := loaded(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenDetail {
		t.Fatal("enter should open the detail view")
	}
	id := m.current().ID
	detail := session(t, m, m.cfg.DetailContainer)
	preview := session(t, m, PreviewPrefix+id)
	if detail.PatternID != id || detail.Controls == nil {
		t.Fatalf("detail session %s, controls %v", detail.PatternID, detail.Controls)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(runes("H"))
	for _, sess := range []*host.Session{detail, preview} {
		p := sess.Instance.Params()
		if math.Abs(p.Param1-0.51) > 1e-9 || math.Abs(p.Param2-0.4) > 1e-9 {
			t.Errorf("%s params = %v, want 0.51/0.4", sess.ContainerID, *p)
		}
	}

	for i := 0; i < 20; i++ {
		m.Update(runes("L"))
	}
	if m.params.Param2 != 1 {
		t.Errorf("slider should clamp at 1, got %f", m.params.Param2)
	}

	m.Update(runes("n"))
	for _, v := range []float64{m.params.Param1, m.params.Param2} {
		if math.Abs(v*100-math.Round(v*100)) > 1e-9 {
			t.Errorf("random value %f is not a whole percent", v)
		}
		if v < 0 || v > 0.99 {
			t.Errorf("random value %f outside [0, 0.99]", v)
		}
	}

	m.Update(runes("r"))
	if *detail.Instance.Params() != m.params || m.params.Param1 != 0.5 || m.params.Param2 != 0.5 {
		t.Errorf("reset gave %v", m.params)
	}
	if !strings.Contains(m.View(), " 50%") {
		t.Error("detail view should show slider percent")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenGrid || m.host.Len() != len(m.patterns) {
		t.Errorf("esc should close the detail session, %d sessions left", m.host.Len())
	}
}

func TestPresetCycling(t *testing.T) {
	m := loaded(t)
	for m.current().ID != "clifford" {
		m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(runes("p"))

	names := config.ListPresets("clifford")
	want := config.GetPreset("clifford", names[0])
	if m.preset != names[0] || m.params.Param1 != want.Param1 || m.params.Param2 != want.Param2 {
		t.Errorf("preset %q gave %v", m.preset, m.params)
	}
	m.Update(runes("p"))
	if m.preset != names[1] {
		t.Errorf("expected second preset %q, got %q", names[1], m.preset)
	}
}

func TestResizeDetail(t *testing.T) {
	m := loaded(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	w, h := m.detailSize()
	sess := session(t, m, m.cfg.DetailContainer)
	if sess.Camera.Aspect != float64(w)/float64(h) {
		t.Errorf("aspect = %f, want %f", sess.Camera.Aspect, float64(w)/float64(h))
	}
	if m.columns != 120/m.cardWidth() {
		t.Errorf("columns = %d", m.columns)
	}
}

func TestPauseStopsFrames(t *testing.T) {
	m := loaded(t)
	sess := session(t, m, PreviewPrefix+"wave")
	m.Update(runes(" "))
	m.Update(FrameMsg(time.Now()))
	if sess.Frames() != 0 {
		t.Errorf("paused gallery rendered %d frames", sess.Frames())
	}
}

func TestQuitTearsDown(t *testing.T) {
	m := loaded(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.host.Len() != 0 {
		t.Errorf("%d sessions survived quit", m.host.Len())
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "cyberpunk" {
		t.Error("unknown theme should fall back to cyberpunk")
	}
	names := ThemeNames()
	if NextTheme(names[len(names)-1]).Name != names[0] {
		t.Error("NextTheme should wrap")
	}
}
