package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fyrsmithlabs/casebook/internal/api"
	"github.com/fyrsmithlabs/casebook/internal/derive"
)

// StatusUpdater pushes a case status change to the backend.
type StatusUpdater interface {
	UpdateCaseStatus(ctx context.Context, id string, status api.CaseStatus) error
}

// pendingMove tracks a speculative local move until the backend confirms
// or rejects it. A rejected move is reverted, never left ambiguous.
type pendingMove struct {
	caseID  string
	from    api.CaseStatus
	fromIdx int
	to      api.CaseStatus
}

// moveResultMsg reports the backend's answer to a status update.
type moveResultMsg struct {
	caseID string
	err    error
}

// KanbanModel is the interactive progress board: one column per status,
// moving a case issues an optimistic status overwrite that is rolled back
// if the update fails.
type KanbanModel struct {
	updater StatusUpdater
	timeout time.Duration

	board      derive.Board
	col        int // index into derive.Columns
	row        int
	pending    *pendingMove
	spin       spinner.Model
	statusLine string
	quitting   bool
}

// NewKanban creates the board screen over an already-fetched case list.
func NewKanban(cases []api.Case, updater StatusUpdater, timeout time.Duration) KanbanModel {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = labelStyle
	return KanbanModel{
		updater: updater,
		timeout: timeout,
		board:   derive.Group(cases),
		spin:    spin,
	}
}

// Init implements tea.Model.
func (m KanbanModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m KanbanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case moveResultMsg:
		return m.handleMoveResult(msg)
	case spinner.TickMsg:
		if m.pending == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m KanbanModel) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "left", "h":
		if m.col > 0 {
			m.col--
			m.clampRow()
		}
	case "right", "l":
		if m.col < len(derive.Columns)-1 {
			m.col++
			m.clampRow()
		}
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		if m.row < len(m.currentColumn())-1 {
			m.row++
		}
	case "shift+left", "H":
		return m.moveSelected(-1)
	case "shift+right", "L":
		return m.moveSelected(1)
	}
	return m, nil
}

// moveSelected applies the move locally and fires the backend update.
// One move is in flight at a time; further moves wait for the result.
func (m KanbanModel) moveSelected(direction int) (tea.Model, tea.Cmd) {
	if m.pending != nil {
		return m, nil
	}
	target := m.col + direction
	if target < 0 || target >= len(derive.Columns) {
		return m, nil
	}
	column := m.currentColumn()
	if m.row >= len(column) {
		return m, nil
	}

	from := derive.Columns[m.col]
	to := derive.Columns[target]
	moved := column[m.row]

	m.pending = &pendingMove{caseID: moved.ID, from: from, fromIdx: m.row, to: to}
	m.applyMove(moved.ID, from, to)
	m.statusLine = fmt.Sprintf("Moving %s to %s…", moved.Reference, to)
	m.col = target
	m.row = len(m.board.ByStatus[to]) - 1
	m.clampRow()

	updater, timeout, id := m.updater, m.timeout, moved.ID
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return moveResultMsg{caseID: id, err: updater.UpdateCaseStatus(ctx, id, to)}
	})
}

func (m KanbanModel) handleMoveResult(msg moveResultMsg) (tea.Model, tea.Cmd) {
	pending := m.pending
	if pending == nil || pending.caseID != msg.caseID {
		return m, nil
	}
	m.pending = nil

	if msg.err == nil {
		m.statusLine = "Status updated"
		return m, nil
	}

	// Roll back the optimistic move so the view matches the backend.
	reverted := m.revertMove(pending)
	m.statusLine = errorStyle.Render(fmt.Sprintf("Could not update %s: %v (move reverted)", reverted, msg.err))
	return m, nil
}

// applyMove relocates a case between columns in the local view, appending
// to the end of the target column.
func (m *KanbanModel) applyMove(caseID string, from, to api.CaseStatus) {
	source := m.board.ByStatus[from]
	for i, c := range source {
		if c.ID == caseID {
			moved := c
			moved.Status = to
			m.board.ByStatus[from] = append(source[:i:i], source[i+1:]...)
			m.board.ByStatus[to] = append(m.board.ByStatus[to], moved)
			return
		}
	}
}

// revertMove undoes a failed optimistic move, restoring the case to its
// original column position. Returns the case reference for the message.
func (m *KanbanModel) revertMove(pending *pendingMove) string {
	target := m.board.ByStatus[pending.to]
	for i, c := range target {
		if c.ID == pending.caseID {
			restored := c
			restored.Status = pending.from
			m.board.ByStatus[pending.to] = append(target[:i:i], target[i+1:]...)

			source := m.board.ByStatus[pending.from]
			idx := pending.fromIdx
			if idx > len(source) {
				idx = len(source)
			}
			source = append(source[:idx:idx], append([]api.Case{restored}, source[idx:]...)...)
			m.board.ByStatus[pending.from] = source
			m.clampRow()
			return restored.Reference
		}
	}
	return pending.caseID
}

func (m *KanbanModel) clampRow() {
	if max := len(m.currentColumn()) - 1; m.row > max {
		m.row = max
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m KanbanModel) currentColumn() []api.Case {
	return m.board.ByStatus[derive.Columns[m.col]]
}

// Board exposes the current grouping. Used by tests to check rollback.
func (m KanbanModel) Board() derive.Board { return m.board }

// View implements tea.Model.
func (m KanbanModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(" Progress View ") + "\n")

	rendered := make([]string, 0, len(derive.Columns))
	for ci, status := range derive.Columns {
		cases := m.board.ByStatus[status]

		var col strings.Builder
		col.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d)", status, len(cases))) + "\n")
		for ri, c := range cases {
			title := c.Title
			if title == "" {
				title = "Untitled"
			}
			line := fmt.Sprintf("%s %s", c.Reference, title)
			if ci == m.col && ri == m.row {
				line = selectedCardStyle.Render(line)
			} else {
				line = cardStyle.Render(line)
			}
			col.WriteString(line + "\n")
		}
		if len(cases) == 0 {
			col.WriteString(dimStyle.Render("(empty)") + "\n")
		}

		style := columnStyle
		if ci == m.col {
			style = activeColumnStyle
		}
		rendered = append(rendered, style.Render(col.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n")

	if len(m.board.Unknown) > 0 {
		refs := make([]string, len(m.board.Unknown))
		for i, c := range m.board.Unknown {
			refs[i] = fmt.Sprintf("%s (%s)", c.Reference, c.Status)
		}
		b.WriteString(overdueStyle.Render("Unrecognized status: ") + strings.Join(refs, ", ") + "\n")
	}

	if m.pending != nil {
		b.WriteString(m.spin.View() + " " + m.statusLine + "\n")
	} else if m.statusLine != "" {
		b.WriteString(m.statusLine + "\n")
	}
	b.WriteString(footerStyle.Render(
		footerKeyStyle.Render("←/→") + " column  " +
			footerKeyStyle.Render("↑/↓") + " case  " +
			footerKeyStyle.Render("shift+←/→") + " move  " +
			footerKeyStyle.Render("q") + " quit"))
	return b.String()
}
