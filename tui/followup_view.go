// ABOUTME: TUI view for follow-up tracking
// ABOUTME: Renders Today's Follow-up Hub with overdue counts and event reminders
package tui

import (
	"fmt"
	"strings"

	"github.com/harperreed/kinetic/db"
)

func (m Model) renderFollowUpHub() string {
	today := m.store.Today()
	queue := db.FollowUpQueue(m.store.Contacts(), today)

	var s strings.Builder
	s.WriteString(sectionStyle.Render(fmt.Sprintf("TODAY'S FOLLOW-UP HUB (%d)", len(queue))))
	s.WriteString("\n")

	if len(queue) == 0 {
		s.WriteString("  All caught up.\n")
		return s.String()
	}

	for _, item := range queue {
		c := item.Contact
		s.WriteString(fmt.Sprintf("  %s  %s @ %s", c.Name, c.Position, c.Company))
		switch {
		case item.OverdueDays > 0:
			s.WriteString("  " + overdueStyle.Render(fmt.Sprintf("%dd overdue", item.OverdueDays)))
		case item.DueToday:
			s.WriteString("  " + dueStyle.Render("Due today"))
		}
		s.WriteString("\n")
		for _, e := range item.PendingEvents {
			s.WriteString("    " + eventStyle.Render(fmt.Sprintf("Action needed: %s (%s)", e.Name, e.EventDate)))
			s.WriteString("\n")
		}
	}
	return s.String()
}
