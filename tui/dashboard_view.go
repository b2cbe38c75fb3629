// ABOUTME: Dashboard tab showing pipeline health and growth trend
// ABOUTME: Reuses the terminal dashboard renderer from the viz package
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/kinetic/viz"
)

func (m Model) renderDashboardView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("KINETIC"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	stats, err := viz.GenerateDashboardStats(m.store)
	if err != nil {
		s.WriteString(errorStyle.Render(err.Error()))
		s.WriteString("\n")
	} else {
		s.WriteString(viz.RenderDashboard(stats))
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}

	help := []string{
		"f: Funnel graph",
		"g: Network graph",
		"1-3/Tab: Switch tabs",
		"q: Quit",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f", "g":
		if err := m.generateGraph(msg.String() == "g"); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.viewMode = ViewGraph
	}
	return m, nil
}

func (m *Model) generateGraph(network bool) error {
	generator := viz.NewGraphGenerator(m.store)

	var dot string
	var err error
	kind := "funnel"
	if network {
		kind = "network"
		dot, err = generator.GenerateNetworkGraph(context.Background())
	} else {
		dot, err = generator.GenerateFunnelGraph(context.Background())
	}
	if err != nil {
		return err
	}

	m.graphDOT = dot
	m.graphKind = kind
	m.graphOffset = 0
	return nil
}
