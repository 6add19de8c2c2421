package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/casebook/internal/api"
	"github.com/fyrsmithlabs/casebook/internal/derive"
)

const (
	sparklineWidth  = 30
	sparklineHeight = 3
	maxTodoLines    = 5
)

// DashboardModel renders the practice dashboard: headline stats, the
// enquiry trend sparkline, and the next to-dos. Data is fetched before the
// program starts; the screen itself is read-only.
type DashboardModel struct {
	practice string
	stats    derive.Stats
	series   []float64
	todos    []api.Todo
	now      time.Time
	quitting bool
}

// NewDashboard creates the dashboard screen from already-derived views.
func NewDashboard(practice string, stats derive.Stats, series []float64, todos []api.Todo, now time.Time) DashboardModel {
	return DashboardModel{
		practice: practice,
		stats:    stats,
		series:   series,
		todos:    todos,
		now:      now,
	}
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(" "+m.practice+" | Dashboard ") + "\n")

	statPanels := lipgloss.JoinHorizontal(lipgloss.Top,
		statPanel("Active Cases", fmt.Sprintf("%d", m.stats.ActiveCases),
			fmt.Sprintf("%d total", m.stats.TotalCases)),
		statPanel("Upcoming Sessions", fmt.Sprintf("%d", m.stats.UpcomingSessions), ""),
		statPanel("Outstanding", "£"+m.stats.OutstandingTotal.StringFixed(2),
			fmt.Sprintf("%d unpaid", m.stats.UnpaidCount)),
		statPanel("Enquiries This Month", fmt.Sprintf("%d", m.stats.ThisMonthEnquiries), ""),
	)
	b.WriteString(statPanels + "\n")

	b.WriteString(sectionStyle.Render("Enquiries (last months)") + "\n")
	b.WriteString(renderSparkline(m.series) + "\n")

	b.WriteString(sectionStyle.Render("To-dos") + "\n")
	b.WriteString(m.renderTodos())

	b.WriteString(footerStyle.Render(footerKeyStyle.Render("q") + " quit"))
	return b.String()
}

func (m DashboardModel) renderTodos() string {
	if len(m.todos) == 0 {
		return dimStyle.Render("No upcoming to-dos") + "\n"
	}
	var b strings.Builder
	shown := m.todos
	if len(shown) > maxTodoLines {
		shown = shown[:maxTodoLines]
	}
	for _, t := range shown {
		due := ""
		if t.DueDate != nil && !t.DueDate.IsZero() {
			due = t.DueDate.Format("02 Jan")
		}
		line := fmt.Sprintf("%s  %s", labelStyle.Render(due), t.Title)
		if derive.IsOverdue(t, m.now) {
			line += " " + overdueStyle.Render("overdue")
		}
		b.WriteString(line + "\n")
	}
	if hidden := len(m.todos) - len(shown); hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("+%d more", hidden)) + "\n")
	}
	return b.String()
}

func statPanel(label, value, sub string) string {
	content := labelStyle.Render(label) + "\n" + valueStyle.Render(value)
	if sub != "" {
		content += "\n" + dimStyle.Render(sub)
	}
	return containerStyle.Render(content)
}

func renderSparkline(data []float64) string {
	if len(data) == 0 {
		return dimStyle.Render(fmt.Sprintf("%*s", sparklineWidth, "no data"))
	}
	spark := sparkline.New(sparklineWidth, sparklineHeight)
	for _, v := range data {
		spark.Push(v)
	}
	return sparklineStyle.Render(spark.View())
}
