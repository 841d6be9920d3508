package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/promplot/internal/channel"
	"github.com/san-kum/promplot/internal/render"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	active = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("86")).Padding(0, 1)
	tab    = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Padding(0, 1)
)

type model struct {
	title     string
	series    []channel.Series
	cursor    int
	showDemos bool
	width     int
	height    int
}

// NewViewer returns a program model that pages through the series one channel at a time.
func NewViewer(title string, series []channel.Series) tea.Model {
	return model{title: title, series: series, showDemos: true, width: 80, height: 24}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			if len(m.series) > 0 {
				m.cursor = (m.cursor + 1) % len(m.series)
			}
		case "shift+tab", "left", "h":
			if len(m.series) > 0 {
				m.cursor = (m.cursor + len(m.series) - 1) % len(m.series)
			}
		case "d":
			m.showDemos = !m.showDemos
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render(m.title))
	b.WriteString("\n\n")

	if len(m.series) == 0 {
		b.WriteString(dim.Render("no channels loaded"))
		b.WriteString("\n")
		return b.String()
	}

	tabs := make([]string, len(m.series))
	for i, s := range m.series {
		if i == m.cursor {
			tabs[i] = active.Render(s.Channel.String())
		} else {
			tabs[i] = tab.Render(s.Channel.String())
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	s := m.series[m.cursor]
	b.WriteString(render.Preview(s, render.PreviewOptions{
		Width:     max(20, m.width-12),
		Height:    max(5, m.height-12),
		WithDemos: m.showDemos,
	}))
	b.WriteString("\n\n")

	lo, _ := s.Lower.Bounds()
	_, hi := s.Upper.Bounds()
	b.WriteString(white.Render(fmt.Sprintf("samples %d", s.Samples())))
	b.WriteString(dim.Render("  ·  "))
	b.WriteString(white.Render(fmt.Sprintf("demonstrations %d", len(s.Demos))))
	b.WriteString(dim.Render("  ·  "))
	b.WriteString(yellow.Render(fmt.Sprintf("band [%.4f, %.4f]", lo, hi)))
	b.WriteString("\n\n")

	overlay := "on"
	if !m.showDemos {
		overlay = "off"
	}
	b.WriteString(dim.Render(fmt.Sprintf("tab/←/→ channel · d demonstrations (%s) · q quit", overlay)))
	b.WriteString("\n")
	return b.String()
}

func Run(title string, series []channel.Series) error {
	p := tea.NewProgram(NewViewer(title, series), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
