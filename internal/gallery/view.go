package gallery

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mathgallery/internal/render"
)

const panelWidth = 44

func (m *Model) View() string {
	switch m.screen {
	case screenLoading:
		return m.loadingView()
	case screenDetail:
		return m.detailView()
	}
	return m.gridView()
}

func (m *Model) title() string {
	return lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("mathgallery")
}

func (m *Model) loadingView() string {
	var b strings.Builder
	b.WriteString("\n  " + m.title() + "\n\n")
	b.WriteString("  " + m.progress.ViewAs(m.loadPct) + fmt.Sprintf("  %.0f%%", m.loadPct*100) + "\n")
	b.WriteString("  " + m.spinner.View() + " " + lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Loading patterns...") + "\n")
	return b.String()
}

// frame returns the styled braille output of the session in container.
func (m *Model) frame(container string) string {
	sess, ok := m.host.Session(container)
	if !ok {
		return ""
	}
	b, ok := sess.Renderer.(*render.Braille)
	if !ok {
		return ""
	}
	return b.String()
}

// cardWidth is the outer width of one card, border included.
func (m *Model) cardWidth() int { return (m.cfg.PreviewWidth+1)/2 + 4 }

func (m *Model) gridView() string {
	inner := m.cardWidth() - 4
	var rows []string
	var row []string
	for i, d := range m.patterns {
		border := m.theme.Border
		if i == m.cursor {
			border = lipgloss.Color(d.Color.Hex())
		}
		name := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(d.Color.Hex())).Render(truncate(d.Name, inner))
		desc := lipgloss.NewStyle().Foreground(m.theme.Muted).Render(truncate(d.Description, inner))
		card := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(inner + 2).
			Render(lipgloss.JoinVertical(lipgloss.Left, name, m.frame(PreviewPrefix+d.ID), desc))
		row = append(row, card)
		if len(row) == m.columns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.JoinVertical(lipgloss.Left, m.title(), body, m.help.View(keys))
}

func (m *Model) detailView() string {
	d := m.current()
	th := m.theme.ForPattern(d)
	text := lipgloss.NewStyle().Foreground(m.theme.Text).Width(panelWidth - 4)
	label := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Bold(true).Foreground(th.Primary).Render(strings.ToUpper(d.Name)) + "\n")
	s.WriteString(text.Render(d.Description) + "\n\n")
	for _, sec := range []struct{ title, body string }{
		{"About", d.About},
		{"Mathematical significance", d.MathSignificance},
		{"In nature", d.NaturalOccurrences},
		{"Fact", d.Fact},
	} {
		if sec.body == "" {
			continue
		}
		s.WriteString(label.Render(sec.title) + "\n" + text.Render(sec.body) + "\n\n")
	}

	bar := progress.New(progress.WithScaledGradient(string(th.Secondary), string(th.Primary)), progress.WithoutPercentage())
	bar.Width = 20
	for i, sl := range []struct {
		name  string
		value float64
	}{{d.ParamLabel1, m.params.Param1}, {d.ParamLabel2, m.params.Param2}} {
		prefix := "  "
		style := muted
		if i == m.slider {
			prefix = "> "
			style = lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
		}
		s.WriteString(style.Render(fmt.Sprintf("%s%-18s", prefix, truncate(sl.name, 18))) +
			bar.ViewAs(sl.value) + fmt.Sprintf(" %3d%%", percent(sl.value)) + "\n")
	}
	if m.preset != "" {
		s.WriteString(muted.Render("preset: "+m.preset) + "\n")
	}

	if values, history, ok := m.metrics.Snapshot(m.cfg.DetailContainer); ok && len(history) > 1 {
		chart := asciigraph.Plot(history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("frame ms"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Secondary).Render(chart) + "\n")
		s.WriteString(muted.Render(fmt.Sprintf("jitter %.2fms  on budget %.0f%%", values["jitter_ms"], values["on_budget"]*100)) + "\n")
	}
	if m.paused {
		s.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Render("PAUSED") + "\n")
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.Border).
		Padding(0, 2).
		Width(panelWidth).
		Render(s.String())
	canvas := lipgloss.NewStyle().Padding(1, 2).Render(m.frame(m.cfg.DetailContainer))
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvas, panel)
	return lipgloss.JoinVertical(lipgloss.Left, main, m.help.View(keys))
}

// percent is the slider value shown to the user, 0 to 100.
func percent(v float64) int { return int(v*100 + 0.5) }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
