// ABOUTME: Workflow tab with conversion stats, follow-up hub and pipeline table
// ABOUTME: Contacts can be opened, created and moved between lifecycle stages
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/models"
)

func (m Model) renderWorkflowView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("KINETIC"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	stats := db.ComputeStats(m.store.Contacts())
	s.WriteString(fmt.Sprintf("Invitation success %d%%   Coffee conversion %d%%   %d contacts\n\n",
		stats.InvitationSuccessRate, stats.CoffeeConversionRate, stats.Total))

	s.WriteString(m.renderFollowUpHub())
	s.WriteString("\n")

	s.WriteString(sectionStyle.Render("PIPELINE"))
	s.WriteString("\n")
	s.WriteString(m.renderPipelineTable())
	s.WriteString("\n")

	if m.message != "" {
		s.WriteString(messageStyle.Render(m.message))
		s.WriteString("\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}

	s.WriteString(m.renderWorkflowHelp())
	return s.String()
}

// pipelineContacts lists contacts in board order.
func (m Model) pipelineContacts() []models.Contact {
	var out []models.Contact
	for _, col := range db.Board(m.store.Contacts()) {
		out = append(out, col.Contacts...)
	}
	return out
}

func cardFlags(c models.Contact, today string) string {
	var flags []string
	switch {
	case c.IsOverdue(today):
		flags = append(flags, "⚠ overdue")
	case c.IsDueToday(today):
		flags = append(flags, "● due")
	}
	if len(c.PendingEvents(today)) > 0 {
		flags = append(flags, "🔔 event")
	}
	return strings.Join(flags, " ")
}

func (m Model) renderPipelineTable() string {
	today := m.store.Today()

	columns := []table.Column{
		{Title: "Stage", Width: 17},
		{Title: "Name", Width: 20},
		{Title: "Role", Width: 34},
		{Title: "Next", Width: 10},
		{Title: "Flags", Width: 18},
	}

	var rows []table.Row
	for _, c := range m.pipelineContacts() {
		rows = append(rows, table.Row{
			string(c.Status),
			c.Name,
			fmt.Sprintf("%s @ %s", c.Position, c.Company),
			c.NextFollowUpDate,
			cardFlags(c, today),
		})
	}

	height := m.height - 18
	if height < 5 {
		height = 5
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderWorkflowHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Enter: Details",
		"[/]: Move stage",
		"n: New lead",
		"1-3/Tab: Switch tabs",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleWorkflowKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	contacts := m.pipelineContacts()
	m.err = nil
	m.message = ""

	switch msg.String() {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(contacts)-1 {
			m.selectedRow++
		}
	case "enter":
		if m.selectedRow < len(contacts) {
			m.selectedID = contacts[m.selectedRow].ID
			m.viewMode = ViewDetail
		}
	case "[", "]":
		if m.selectedRow < len(contacts) {
			c := contacts[m.selectedRow]
			m = m.moveStage(c.ID, msg.String() == "]")
			m.selectedRow = m.rowOf(c.ID)
		}
	case "n":
		m.selectedID = ""
		m.initForm(FormNewLead)
		m.viewMode = ViewEdit
	}

	return m, nil
}

func (m Model) rowOf(id string) int {
	for i, c := range m.pipelineContacts() {
		if c.ID == id {
			return i
		}
	}
	return 0
}

// moveStage shifts a contact one lifecycle stage forward or back.
func (m Model) moveStage(id string, forward bool) Model {
	c, err := m.store.GetContact(id)
	if err != nil {
		m.err = err
		return m
	}

	idx := 0
	for i, s := range models.Statuses {
		if s == c.Status {
			idx = i
		}
	}
	if forward {
		idx++
	} else {
		idx--
	}
	if idx < 0 || idx >= len(models.Statuses) {
		return m
	}

	updated, err := m.store.SetStatus(id, models.Statuses[idx])
	if err != nil {
		m.err = err
		return m
	}
	m.message = fmt.Sprintf("%s → %s", updated.Name, updated.Status)
	return m
}
