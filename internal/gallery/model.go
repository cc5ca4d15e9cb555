package gallery

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/juju/loggo"

	"github.com/san-kum/mathgallery/internal/config"
	"github.com/san-kum/mathgallery/internal/controls"
	"github.com/san-kum/mathgallery/internal/host"
	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/metrics"
	"github.com/san-kum/mathgallery/internal/pattern"
	"github.com/san-kum/mathgallery/internal/scene"
	"github.com/san-kum/mathgallery/internal/visual"
)

var logger = loggo.GetLogger("mathgallery.gallery")

const (
	// PreviewPrefix prefixes the card container of each pattern.
	PreviewPrefix = "preview-"

	loadInterval = 120 * time.Millisecond
	historySize  = 120
	sliderStep   = 0.01
	sliderJump   = 0.10
	orbitStep    = 0.1
)

type (
	// FrameMsg drives one loop tick.
	FrameMsg time.Time
	loadMsg  struct{}
)

type screen int

const (
	screenLoading screen = iota
	screenGrid
	screenDetail
)

type Options struct {
	Config   config.Config
	Factory  *visual.Factory
	Patterns *pattern.Registry
}

// Model is the gallery controller: a loading screen, a grid of cards
// with live previews and a detail view with sliders.
type Model struct {
	cfg      config.Config
	host     *host.Host
	page     *host.Page
	loop     *loop.Loop
	metrics  *metrics.Collector
	patterns []pattern.Descriptor
	rand     *rand.Rand

	screen   screen
	loadPct  float64
	progress progress.Model
	spinner  spinner.Model
	help     help.Model
	theme    Theme

	cursor    int
	columns   int
	params    visual.Params
	slider    int
	presetIdx int
	preset    string
	paused    bool

	width, height int
}

func New(opts Options) *Model {
	cfg := opts.Config
	if opts.Factory == nil {
		opts.Factory = visual.NewFactory()
	}
	if opts.Patterns == nil {
		opts.Patterns = pattern.Default()
	}
	l := loop.New(cfg.FPS)
	page := host.NewPage()
	collector := metrics.NewCollector(l.FPS(), historySize)

	s := spinner.New()
	s.Spinner = spinner.Dot

	m := &Model{
		cfg:      cfg,
		page:     page,
		loop:     l,
		metrics:  collector,
		patterns: opts.Patterns.All(),
		rand:     rand.New(rand.NewSource(cfg.Seed)),
		progress: progress.New(progress.WithScaledGradient("#ff00ff", "#00ffff"), progress.WithoutPercentage()),
		spinner:  s,
		help:     help.New(),
		theme:    GetTheme(cfg.Theme),
		columns:  3,
		params:   visual.DefaultParams(),
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.theme.Secondary)
	m.host = host.New(host.Options{
		Document:  page,
		Scheduler: l,
		Factory:   opts.Factory,
		Patterns:  opts.Patterns,
		NewControls: func(cam *scene.PerspectiveCamera) host.Controls {
			return controls.NewOrbit(cam, l.FPS(), controls.DefaultDamping)
		},
		DetailContainer: cfg.DetailContainer,
		Observer:        collector,
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadTick(), m.frameTick())
}

func loadTick() tea.Cmd {
	return tea.Tick(loadInterval, func(time.Time) tea.Msg { return loadMsg{} })
}

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(m.loop.Interval(), func(t time.Time) tea.Msg { return FrameMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = min(max(msg.Width-8, 20), 60)
		m.help.Width = msg.Width
		m.columns = max(1, msg.Width/m.cardWidth())
		if m.screen == screenDetail {
			w, h := m.detailSize()
			m.page.Add(m.cfg.DetailContainer, w, h)
			m.loop.NotifyResize()
		}
		return m, nil
	case loadMsg:
		if m.screen != screenLoading {
			return m, nil
		}
		m.loadPct += 0.05 + m.rand.Float64()*0.15
		if m.loadPct >= 1 {
			m.loadPct = 1
			m.finishLoading()
			return m, nil
		}
		return m, loadTick()
	case spinner.TickMsg:
		if m.screen != screenLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case FrameMsg:
		m.loop.Drain()
		if !m.paused {
			m.loop.Tick(time.Time(msg))
		}
		return m, m.frameTick()
	}
	return m, nil
}

// finishLoading mounts a preview for every card.
func (m *Model) finishLoading() {
	for _, d := range m.patterns {
		id := PreviewPrefix + d.ID
		m.page.Add(id, m.cfg.PreviewWidth, m.cfg.PreviewHeight)
		m.host.Mount(id, d.ID)
	}
	m.screen = screenGrid
	logger.Debugf("mounted %d previews", len(m.patterns))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.Quit) {
		m.Close()
		return tea.Quit
	}
	if key.Matches(msg, keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return nil
	}
	if key.Matches(msg, keys.Theme) {
		m.theme = NextTheme(m.theme.Name)
		return nil
	}
	if key.Matches(msg, keys.Pause) {
		m.paused = !m.paused
		return nil
	}
	switch m.screen {
	case screenGrid:
		m.gridKey(msg)
	case screenDetail:
		m.detailKey(msg)
	}
	return nil
}

func (m *Model) gridKey(msg tea.KeyMsg) {
	n := len(m.patterns)
	switch {
	case key.Matches(msg, keys.Left):
		m.cursor = (m.cursor - 1 + n) % n
	case key.Matches(msg, keys.Right):
		m.cursor = (m.cursor + 1) % n
	case key.Matches(msg, keys.Up):
		if m.cursor-m.columns >= 0 {
			m.cursor -= m.columns
		}
	case key.Matches(msg, keys.Down):
		if m.cursor+m.columns < n {
			m.cursor += m.columns
		}
	case key.Matches(msg, keys.Open):
		m.openDetail()
	}
}

func (m *Model) detailKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Back):
		m.closeDetail()
	case key.Matches(msg, keys.Slider):
		m.slider = 1 - m.slider
	case key.Matches(msg, keys.Left):
		m.nudge(-sliderStep)
	case key.Matches(msg, keys.Right):
		m.nudge(sliderStep)
	case key.Matches(msg, keys.Fine):
		if msg.String() == "H" {
			m.nudge(-sliderJump)
		} else {
			m.nudge(sliderJump)
		}
	case key.Matches(msg, keys.Reset):
		m.preset = ""
		m.setParams(visual.DefaultParam, visual.DefaultParam)
	case key.Matches(msg, keys.Randomize):
		m.preset = ""
		m.setParams(m.randomParam(), m.randomParam())
	case key.Matches(msg, keys.Preset):
		m.nextPreset()
	case key.Matches(msg, keys.Orbit):
		m.rotate(msg.String())
	case key.Matches(msg, keys.Zoom):
		if o := m.orbit(); o != nil {
			if s := msg.String(); s == "+" || s == "=" {
				o.Zoom(0.9)
			} else {
				o.Zoom(1.1)
			}
		}
	}
}

func (m *Model) current() pattern.Descriptor { return m.patterns[m.cursor] }

// openDetail mounts the selected pattern into the detail container,
// sized to the terminal when known.
func (m *Model) openDetail() {
	w, h := m.cfg.Width, m.cfg.Height
	if m.width > 0 && m.height > 0 {
		w, h = m.detailSize()
	}
	m.page.Add(m.cfg.DetailContainer, w, h)
	if m.host.Mount(m.cfg.DetailContainer, m.current().ID) == nil {
		return
	}
	m.screen = screenDetail
	m.slider, m.presetIdx, m.preset = 0, 0, ""
	m.setParams(visual.DefaultParam, visual.DefaultParam)
}

func (m *Model) closeDetail() {
	m.host.Destroy(m.cfg.DetailContainer)
	m.screen = screenGrid
}

// detailSize is the braille dot size that fits left of the info panel.
func (m *Model) detailSize() (int, int) {
	cols := max(m.width-panelWidth-4, 10)
	rows := max(m.height-4, 4)
	return cols * 2, rows * 4
}

// setParams clamps to the slider range and writes to every session of
// the open pattern, previews included.
func (m *Model) setParams(p1, p2 float64) {
	m.params = visual.Params{Param1: clamp01(p1), Param2: clamp01(p2)}
	m.host.UpdateParams(m.current().ID, m.params.Param1, m.params.Param2)
}

func (m *Model) nudge(d float64) {
	m.preset = ""
	if m.slider == 0 {
		m.setParams(m.params.Param1+d, m.params.Param2)
	} else {
		m.setParams(m.params.Param1, m.params.Param2+d)
	}
}

func (m *Model) randomParam() float64 { return float64(m.rand.Intn(100)) / 100 }

func (m *Model) nextPreset() {
	names := config.ListPresets(m.current().ID)
	if len(names) == 0 {
		return
	}
	name := names[m.presetIdx%len(names)]
	m.presetIdx++
	p := config.GetPreset(m.current().ID, name)
	m.setParams(p.Param1, p.Param2)
	m.preset = name
}

func (m *Model) orbit() *controls.Orbit {
	sess, ok := m.host.Session(m.cfg.DetailContainer)
	if !ok {
		return nil
	}
	o, _ := sess.Controls.(*controls.Orbit)
	return o
}

func (m *Model) rotate(k string) {
	o := m.orbit()
	if o == nil {
		return
	}
	switch k {
	case "x":
		o.Rotate(orbitStep, 0)
	case "X":
		o.Rotate(-orbitStep, 0)
	case "y":
		o.Rotate(0, orbitStep)
	case "Y":
		o.Rotate(0, -orbitStep)
	}
}

// Close tears down every session and stops the loop.
func (m *Model) Close() {
	m.host.DestroyAll()
	m.loop.Close()
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
