// ABOUTME: Form views for the TUI
// ABOUTME: Handles new leads, interaction logging, cadence changes and event reminders
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/kinetic/models"
)

func (m Model) renderEditView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(m.formTitle()))
	s.WriteString("\n\n")

	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}

	s.WriteString(m.renderEditHelp())
	return s.String()
}

func (m Model) formTitle() string {
	switch m.formKind {
	case FormInteraction:
		return "LOG INTERACTION"
	case FormCadence:
		return "FOLLOW-UP CADENCE"
	case FormEvent:
		return "NEW EVENT"
	}
	return "NEW LEAD"
}

func (m Model) renderEditHelp() string {
	help := []string{
		"Tab: Next field",
		"Enter: Save",
		"Esc: Cancel",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

// returnView is where the form goes back to on save or cancel.
func (m Model) returnView() ViewMode {
	if m.formKind == FormNewLead {
		return ViewList
	}
	return ViewDetail
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.err = nil
		m.viewMode = m.returnView()
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex - 1 + len(m.formInputs)) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "enter":
		if err := m.saveForm(); err != nil {
			m.err = err
		} else {
			m.err = nil
			m.viewMode = m.returnView()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return in
}

func (m *Model) initForm(kind FormKind) {
	m.formKind = kind
	m.err = nil
	today := m.store.Today()

	switch kind {
	case FormNewLead:
		m.formInputs = []textinput.Model{
			newInput("Name", 100),
			newInput("Company", 100),
			newInput("Position", 100),
			newInput("Location", 100),
			newInput("Education", 100),
			newInput("LinkedIn URL", 200),
			newInput("Commonalities (comma separated)", 300),
		}
	case FormInteraction:
		m.formInputs = []textinput.Model{
			newInput("Date (YYYY-MM-DD)", 10),
			newInput("Duration (minutes)", 4),
			newInput("Score (0-10)", 2),
			newInput("Notes", 500),
			newInput("Hook", 200),
			newInput("Value received", 200),
			newInput("Help given", 200),
		}
		m.formInputs[0].SetValue(today)
	case FormCadence:
		m.formInputs = []textinput.Model{newInput("Days between follow-ups", 4)}
		if c, err := m.store.GetContact(m.selectedID); err == nil {
			m.formInputs[0].SetValue(strconv.Itoa(c.FollowUpInterval))
		}
	case FormEvent:
		m.formInputs = []textinput.Model{
			newInput("Event name", 100),
			newInput("Event date (YYYY-MM-DD)", 10),
			newInput("Notify on (YYYY-MM-DD, blank for event date)", 10),
		}
	}

	m.focusIndex = 0
	m.updateFormFocus()
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m *Model) value(i int) string {
	return strings.TrimSpace(m.formInputs[i].Value())
}

func (m *Model) intValue(i int, name string) (int, error) {
	raw := m.value(i)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return n, nil
}

func (m *Model) saveForm() error {
	switch m.formKind {
	case FormInteraction:
		return m.saveInteraction()
	case FormCadence:
		return m.saveCadence()
	case FormEvent:
		return m.saveEvent()
	}
	return m.saveLead()
}

func (m *Model) saveLead() error {
	contact := &models.Contact{
		Name:        m.value(0),
		Company:     m.value(1),
		Position:    m.value(2),
		Location:    m.value(3),
		Education:   m.value(4),
		LinkedInURL: m.value(5),
	}
	for _, c := range strings.Split(m.value(6), ",") {
		if c = strings.TrimSpace(c); c != "" {
			contact.Commonalities = append(contact.Commonalities, c)
		}
	}

	if err := m.store.AddContact(contact); err != nil {
		return err
	}
	m.selectedID = contact.ID
	m.selectedRow = m.rowOf(contact.ID)
	m.message = "Added " + contact.Name
	return nil
}

func (m *Model) saveInteraction() error {
	duration, err := m.intValue(1, "Duration")
	if err != nil {
		return err
	}
	score, err := m.intValue(2, "Score")
	if err != nil {
		return err
	}

	interaction := &models.Interaction{
		Date:           m.value(0),
		Duration:       duration,
		Score:          score,
		Notes:          m.value(3),
		Hook:           m.value(4),
		ValueReceived:  m.value(5),
		AltruismRecord: m.value(6),
	}
	updated, err := m.store.LogInteraction(m.selectedID, interaction)
	if err != nil {
		return err
	}
	m.message = "Next follow-up " + updated.NextFollowUpDate
	return nil
}

func (m *Model) saveCadence() error {
	days, err := m.intValue(0, "Days")
	if err != nil {
		return err
	}
	updated, err := m.store.SetFollowUpInterval(m.selectedID, days)
	if err != nil {
		return err
	}
	m.message = "Next follow-up " + updated.NextFollowUpDate
	return nil
}

func (m *Model) saveEvent() error {
	event := &models.OneOffEvent{
		Name:       m.value(0),
		EventDate:  m.value(1),
		NotifyDate: m.value(2),
	}
	if event.NotifyDate == "" {
		event.NotifyDate = event.EventDate
	}
	if _, err := m.store.AddEvent(m.selectedID, event); err != nil {
		return err
	}
	m.message = "Added event " + event.Name
	return nil
}
