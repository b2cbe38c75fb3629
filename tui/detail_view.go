// ABOUTME: Contact detail view for the TUI
// ABOUTME: Shows profile, cadence, interaction history and one-off reminders
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CONTACT"))
	s.WriteString("\n\n")
	s.WriteString(m.renderContactDetail())
	s.WriteString("\n")

	if m.message != "" {
		s.WriteString(messageStyle.Render(m.message))
		s.WriteString("\n")
	}
	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}

	s.WriteString(m.renderDetailHelp())
	return s.String()
}

func (m Model) renderContactDetail() string {
	contact, err := m.store.GetContact(m.selectedID)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	today := m.store.Today()

	var s strings.Builder
	s.WriteString(renderField("Name", contact.Name))
	s.WriteString(renderField("Role", fmt.Sprintf("%s @ %s", contact.Position, contact.Company)))
	s.WriteString(renderField("Stage", string(contact.Status)))
	if contact.Location != "" {
		s.WriteString(renderField("Location", contact.Location))
	}
	if contact.Education != "" {
		s.WriteString(renderField("Education", contact.Education))
	}
	if contact.LinkedInURL != "" {
		s.WriteString(renderField("LinkedIn", contact.LinkedInURL))
	}
	if len(contact.Commonalities) > 0 {
		s.WriteString(renderField("In common", strings.Join(contact.Commonalities, ", ")))
	}
	s.WriteString(renderField("Cadence", fmt.Sprintf("every %d days", contact.FollowUpInterval)))

	next := contact.NextFollowUpDate
	switch {
	case contact.IsOverdue(today):
		next += "  " + overdueStyle.Render("overdue")
	case contact.IsDueToday(today):
		next += "  " + dueStyle.Render("due today")
	}
	s.WriteString(renderField("Next follow-up", next))

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render(fmt.Sprintf("INTERACTIONS (%d)", len(contact.Interactions))))
	s.WriteString("\n")
	for i := len(contact.Interactions) - 1; i >= 0; i-- {
		in := contact.Interactions[i]
		s.WriteString(fmt.Sprintf("  %s  %dmin  score %d/10  %s\n", in.Date, in.Duration, in.Score, in.Notes))
		if in.Hook != "" {
			s.WriteString(fmt.Sprintf("    hook: %s\n", in.Hook))
		}
	}

	s.WriteString("\n")
	s.WriteString(sectionStyle.Render("EVENTS"))
	s.WriteString("\n")
	if len(contact.OneOffEvents) == 0 {
		s.WriteString("  none\n")
	}
	for _, e := range contact.OneOffEvents {
		mark := "[ ]"
		if e.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %s on %s (notify %s)", mark, e.Name, e.EventDate, e.NotifyDate)
		if e.IsNotifyDue(today) {
			line = eventStyle.Render(line + "  action needed")
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	return s.String()
}

func renderField(label, value string) string {
	return fieldLabelStyle.Render(label+":") + " " + fieldValueStyle.Render(value) + "\n"
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"[/]: Move stage",
		"l: Log interaction",
		"c: Cadence",
		"e: Add event",
		"x: Complete events",
		"d: Delete",
		"Esc: Back",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	m.message = ""

	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.selectedRow = m.rowOf(m.selectedID)
	case "[", "]":
		m = m.moveStage(m.selectedID, msg.String() == "]")
	case "l":
		m.initForm(FormInteraction)
		m.viewMode = ViewEdit
	case "c":
		m.initForm(FormCadence)
		m.viewMode = ViewEdit
	case "e":
		m.initForm(FormEvent)
		m.viewMode = ViewEdit
	case "x":
		m = m.completePendingEvents()
	case "d":
		m.viewMode = ViewConfirmDelete
	}

	return m, nil
}

func (m Model) completePendingEvents() Model {
	contact, err := m.store.GetContact(m.selectedID)
	if err != nil {
		m.err = err
		return m
	}
	done := 0
	for _, e := range contact.PendingEvents(m.store.Today()) {
		if _, err := m.store.CompleteEvent(contact.ID, e.ID); err != nil {
			m.err = err
			return m
		}
		done++
	}
	m.message = fmt.Sprintf("Completed %d event(s)", done)
	return m
}
