// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Provides the workflow board, AI insights panel and dashboard tabs
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/kinetic/db"
	"github.com/harperreed/kinetic/insights"
	"github.com/harperreed/kinetic/models"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewEdit
	ViewGraph
	ViewConfirmDelete
)

// Tab is a top-level section.
type Tab int

const (
	TabWorkflow Tab = iota
	TabInsights
	TabDashboard
)

var tabNames = []string{"Workflow", "AI Insights", "Dashboard"}

// FormKind selects which form the edit view shows.
type FormKind int

const (
	FormNewLead FormKind = iota
	FormInteraction
	FormCadence
	FormEvent
)

// Model is the main bubbletea model
type Model struct {
	store    *db.Store
	auditor  *insights.Service
	viewMode ViewMode
	tab      Tab

	// Workflow state
	selectedRow int
	selectedID  string

	// Edit view state
	formKind   FormKind
	formInputs []textinput.Model
	focusIndex int

	// Graph view state
	graphDOT    string
	graphKind   string
	graphOffset int

	// Delete confirmation state
	deleteMessage string

	// Audit state
	period       models.ReviewPeriod
	auditing     bool
	auditStage   int
	auditSeq     int
	auditStarted time.Time
	auditReport  *models.AuditReport
	auditErr     error

	// UI state
	width   int
	height  int
	message string
	err     error
}

// NewModel creates a new TUI model
func NewModel(store *db.Store, auditor *insights.Service) Model {
	m := Model{
		store:    store,
		auditor:  auditor,
		viewMode: ViewList,
		tab:      TabWorkflow,
		period:   models.PeriodMonthly,
		width:    100,
		height:   30,
	}
	if auditor != nil {
		m.auditReport = auditor.Latest()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case stageTickMsg:
		return m.handleStageTick(msg)
	case auditDoneMsg:
		return m.handleAuditDone(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewDetail:
		return m.renderDetailView()
	case ViewEdit:
		return m.renderEditView()
	case ViewGraph:
		return m.renderGraphView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}

	switch m.tab {
	case TabInsights:
		return m.renderInsightsView()
	case TabDashboard:
		return m.renderDashboardView()
	}
	return m.renderWorkflowView()
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Forms swallow printable keys.
	if m.viewMode == ViewEdit {
		return m.handleEditKeys(msg)
	}

	// On the insights tab q selects the quarterly period.
	if msg.String() == "q" && !(m.viewMode == ViewList && m.tab == TabInsights) {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewGraph:
		return m.handleGraphKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	switch msg.String() {
	case "1":
		m.tab = TabWorkflow
		return m, nil
	case "2":
		m.tab = TabInsights
		return m, nil
	case "3":
		m.tab = TabDashboard
		return m, nil
	case "tab":
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil
	}

	switch m.tab {
	case TabInsights:
		return m.handleInsightsKeys(msg)
	case TabDashboard:
		return m.handleDashboardKeys(msg)
	}
	return m.handleWorkflowKeys(msg)
}

func (m Model) renderTabs() string {
	var rendered []string
	for i, name := range tabNames {
		label := string(rune('1'+i)) + " " + name
		if Tab(i) == m.tab {
			rendered = append(rendered, tabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	overdueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dueStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	eventStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)

	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)
