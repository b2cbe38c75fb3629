// ABOUTME: Graph view rendering Graphviz DOT source in the terminal
// ABOUTME: Scrolls through the funnel or relationship network generated by viz
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var dotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

// graphPageSize is how many DOT lines fit under the title and help.
func (m Model) graphPageSize() int {
	if n := m.height - 6; n > 5 {
		return n
	}
	return 5
}

func (m Model) renderGraphView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(strings.ToUpper(m.graphKind) + " GRAPH"))
	s.WriteString("\n\n")

	if m.graphDOT == "" {
		s.WriteString("Generating graph...\n")
	} else {
		lines := strings.Split(strings.TrimRight(m.graphDOT, "\n"), "\n")
		end := m.graphOffset + m.graphPageSize()
		if end > len(lines) {
			end = len(lines)
		}
		s.WriteString(dotStyle.Render(strings.Join(lines[m.graphOffset:end], "\n")))
		s.WriteString(fmt.Sprintf("\n\nlines %d-%d of %d", m.graphOffset+1, end, len(lines)))
	}

	s.WriteString("\n")
	s.WriteString(m.renderGraphHelp())

	return s.String()
}

func (m Model) renderGraphHelp() string {
	help := []string{
		"↑/↓: Scroll",
		"Esc: Back",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleGraphKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := strings.Count(strings.TrimRight(m.graphDOT, "\n"), "\n") + 1
	maxOffset := total - m.graphPageSize()
	if maxOffset < 0 {
		maxOffset = 0
	}

	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.graphDOT = ""
		m.graphOffset = 0
	case "down", "j":
		if m.graphOffset < maxOffset {
			m.graphOffset++
		}
	case "up", "k":
		if m.graphOffset > 0 {
			m.graphOffset--
		}
	}
	return m, nil
}
