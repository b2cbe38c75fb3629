// ABOUTME: AI Insights tab with the review period selector and audit report
// ABOUTME: Runs audits off the UI loop and cycles staged loading messages
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/kinetic/insights"
	"github.com/harperreed/kinetic/models"
)

type auditDoneMsg struct {
	report *models.AuditReport
	err    error
}

// stageTickMsg carries the audit it was scheduled for so ticks left over
// from an earlier run are dropped.
type stageTickMsg struct {
	seq int
	at  time.Time
}

var (
	periodActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("63")).
				Padding(0, 1)

	periodInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var periodKeys = map[string]models.ReviewPeriod{
	"w": models.PeriodWeekly,
	"m": models.PeriodMonthly,
	"q": models.PeriodQuarterly,
	"y": models.PeriodYearly,
}

func (m Model) handleInsightsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if p, ok := periodKeys[key]; ok {
		m.period = p
		return m, nil
	}

	if key == "r" || key == "enter" {
		if m.auditing || (m.auditor != nil && m.auditor.Running()) {
			return m, nil
		}
		m.auditing = true
		m.auditStage = 0
		m.auditErr = nil
		m.auditSeq++
		m.auditStarted = time.Now()
		return m, tea.Batch(m.runAudit(), stageTick(m.auditSeq))
	}

	return m, nil
}

func (m Model) runAudit() tea.Cmd {
	auditor := m.auditor
	contacts := m.store.Contacts()
	period := m.period
	return func() tea.Msg {
		if auditor == nil {
			return auditDoneMsg{err: insights.ErrNoModel}
		}
		report, err := auditor.Audit(context.Background(), contacts, period)
		return auditDoneMsg{report: report, err: err}
	}
}

func stageTick(seq int) tea.Cmd {
	return tea.Tick(insights.StageInterval, func(t time.Time) tea.Msg {
		return stageTickMsg{seq: seq, at: t}
	})
}

func (m Model) handleStageTick(msg stageTickMsg) (tea.Model, tea.Cmd) {
	if !m.auditing || msg.seq != m.auditSeq {
		return m, nil
	}
	if stage := insights.StageAt(msg.at.Sub(m.auditStarted)); stage > m.auditStage {
		m.auditStage = stage
	}
	if m.auditStage == len(insights.Stages)-1 {
		return m, nil
	}
	return m, stageTick(m.auditSeq)
}

func (m Model) handleAuditDone(msg auditDoneMsg) (tea.Model, tea.Cmd) {
	m.auditing = false
	m.auditStage = 0
	if msg.err != nil {
		m.auditErr = msg.err
		return m, nil
	}
	m.auditErr = nil
	m.auditReport = msg.report
	return m, nil
}

func (m Model) renderInsightsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("KINETIC"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	var periods []string
	for _, p := range models.ReviewPeriods {
		label := fmt.Sprintf("%s %s", strings.ToLower(string(p)), p.Name())
		if p == m.period {
			periods = append(periods, periodActiveStyle.Render(label))
		} else {
			periods = append(periods, periodInactiveStyle.Render(label))
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, periods...))
	s.WriteString("\n\n")

	switch {
	case m.auditing:
		s.WriteString(dueStyle.Render(insights.Stages[m.auditStage]))
		s.WriteString("\n")
	case m.auditErr != nil:
		s.WriteString(errorStyle.Render(auditErrorText(m.auditErr) + "\npress r to try again"))
		s.WriteString("\n")
	case m.auditReport != nil:
		s.WriteString(renderReport(m.auditReport))
	default:
		s.WriteString(fmt.Sprintf("No audit yet. Press r to analyze %d contacts.\n", m.store.Len()))
	}

	help := []string{
		"w/m/q/y: Period",
		"r: Run audit",
		"1-3/Tab: Switch tabs",
		"ctrl+c: Quit",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func auditErrorText(err error) string {
	var auditErr *insights.AuditError
	if errors.As(err, &auditErr) {
		return auditErr.Message
	}
	return err.Error()
}

func trend(m models.MetricWithTrend) string {
	if m.ComparisonValue == "" {
		return ""
	}
	if m.IsPositive {
		return positiveStyle.Render(m.ComparisonValue)
	}
	return negativeStyle.Render(m.ComparisonValue)
}

func renderReport(r *models.AuditReport) string {
	in := r.Insight
	var s strings.Builder

	s.WriteString(sectionStyle.Render(fmt.Sprintf("%s AUDIT  %d contacts  %s",
		strings.ToUpper(r.Period.Name()), r.ContactCount, r.GeneratedAt.Format("2006-01-02 15:04"))))
	s.WriteString("\n\n")

	s.WriteString(sectionStyle.Render("FUNNEL"))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("  sent %d → responded %d → coffee %d\n", in.Funnel.Sent, in.Funnel.Responded, in.Funnel.Coffee))
	s.WriteString(fmt.Sprintf("  response rate %.0f%% %s\n", in.Funnel.ResponseRate.CurrentValue, trend(in.Funnel.ResponseRate)))
	s.WriteString(fmt.Sprintf("  coffee rate   %.0f%% %s\n\n", in.Funnel.CoffeeRate.CurrentValue, trend(in.Funnel.CoffeeRate)))

	s.WriteString(sectionStyle.Render("PERSONAS"))
	s.WriteString("\n")
	s.WriteString(renderPersona("Success", in.Personas.Success))
	s.WriteString(renderPersona("Failure", in.Personas.Failure))
	if in.Personas.DriftAnalysis != "" {
		s.WriteString("  drift: " + in.Personas.DriftAnalysis + "\n")
	}
	s.WriteString("\n")

	if len(in.FeatureHitRates) > 0 {
		s.WriteString(sectionStyle.Render("HIT RATES"))
		s.WriteString("\n")
		for _, h := range in.FeatureHitRates {
			s.WriteString(fmt.Sprintf("  %-24s %3.0f%%  %s\n", h.Name, h.Percentage, h.Description))
		}
		s.WriteString("\n")
	}

	s.WriteString(sectionStyle.Render("KEYWORDS"))
	s.WriteString("\n")
	s.WriteString("  mine:   " + strings.Join(in.Keywords.MyThoughts, ", ") + "\n")
	s.WriteString("  theirs: " + strings.Join(in.Keywords.TheirInfo, ", ") + "\n")
	if in.Keywords.EvolutionNotes != "" {
		s.WriteString("  " + in.Keywords.EvolutionNotes + "\n")
	}
	s.WriteString("\n")

	s.WriteString(sectionStyle.Render("ALTRUISM"))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("  helped %d times, momentum %d\n", in.Altruism.HelpCount, in.Altruism.MomentumScore))
	if in.Altruism.Summary != "" {
		s.WriteString("  " + in.Altruism.Summary + "\n")
	}

	return s.String()
}

func renderPersona(label string, p models.PersonaProfile) string {
	line := fmt.Sprintf("  %s: %s", label, p.Summary)
	if p.Seniority != "" {
		line += " (" + p.Seniority + ")"
	}
	line += "\n"
	if len(p.Traits) > 0 {
		line += "    " + strings.Join(p.Traits, ", ") + "\n"
	}
	return line
}
