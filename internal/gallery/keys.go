package gallery

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Open, Back            key.Binding
	Slider                key.Binding
	Fine                  key.Binding
	Reset, Randomize      key.Binding
	Preset, Theme         key.Binding
	Orbit, Zoom           key.Binding
	Pause, Help, Quit     key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "less")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "more")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Slider:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next slider")),
	Fine:      key.NewBinding(key.WithKeys("H", "L"), key.WithHelp("H/L", "±10%")),
	Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Randomize: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "randomize")),
	Preset:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preset")),
	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Orbit:     key.NewBinding(key.WithKeys("x", "X", "y", "Y"), key.WithHelp("x/y", "orbit")),
	Zoom:      key.NewBinding(key.WithKeys("+", "=", "-", "_"), key.WithHelp("+/-", "zoom")),
	Pause:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Back, k.Slider, k.Reset, k.Randomize, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Fine},
		{k.Open, k.Back, k.Slider, k.Pause},
		{k.Reset, k.Randomize, k.Preset, k.Theme},
		{k.Orbit, k.Zoom, k.Help, k.Quit},
	}
}
