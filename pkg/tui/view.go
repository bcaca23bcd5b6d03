package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/vibrant/internal/filter"
	"github.com/marcus/vibrant/internal/models"
	"github.com/marcus/vibrant/pkg/tui/keymap"
)

// renderView renders the complete TUI view
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	styles := StylesFor(m.sink.view.Theme)

	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact(styles)
	}

	if m.HelpOpen {
		return m.overlay(styles.Modal.Render(styles.Help.Render(m.Keymap.GenerateHelp())))
	}

	if m.FormOpen && m.FormState != nil {
		content := m.FormState.Form.View()
		if m.StatusIsError && m.StatusMessage != "" {
			content += "\n" + styles.StatusError.Render(m.StatusMessage)
		}
		return m.overlay(styles.Modal.Render(content))
	}

	header := m.renderHeader(styles)
	inputLine := m.renderInput(styles)
	footer := m.renderFooter(styles)

	listHeight := m.Height - lipgloss.Height(header) - lipgloss.Height(inputLine) - lipgloss.Height(footer) - 2
	list := m.renderList(styles, listHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, inputLine, list, footer)
}

func (m Model) overlay(content string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceChars(" "))
}

// renderCompact is the fallback for tiny terminals
func (m Model) renderCompact(styles Styles) string {
	v := m.sink.view
	lines := []string{filter.Summary(v.ActiveCount) + " · " + string(v.Mode)}
	if task, ok := m.SelectedTask(); ok {
		lines = append(lines, "› "+task.Text)
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.Width, "…")
	}
	return styles.Subtle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHeader(styles Styles) string {
	v := m.sink.view
	var tabs []string
	for i, mode := range []models.FilterMode{models.FilterAll, models.FilterActive, models.FilterCompleted} {
		label := fmt.Sprintf("%d %s", i+1, mode)
		if mode == v.Mode {
			tabs = append(tabs, styles.FilterOn.Render(label))
		} else {
			tabs = append(tabs, styles.FilterOff.Render(label))
		}
	}

	title := styles.Title.Render("vibrant")
	theme := styles.Subtle.Render(string(v.Theme))
	left := title + "  " + strings.Join(tabs, "  ")

	padding := m.Width - lipgloss.Width(left) - lipgloss.Width(theme) - 1
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + theme
}

func (m Model) renderInput(styles Styles) string {
	style := styles.Panel
	if m.Focus == FocusInput {
		style = styles.ActivePanel
	}
	return style.Width(m.Width - 2).Render(m.Input.View())
}

func (m Model) renderList(styles Styles, height int) string {
	style := styles.Panel
	if m.Focus == FocusList {
		style = styles.ActivePanel
	}
	if height < 1 {
		height = 1
	}

	tasks := m.sink.view.Tasks
	contentWidth := m.Width - 6

	var lines []string
	if len(tasks) == 0 {
		lines = append(lines, styles.Subtle.Render(emptyMessage(m.sink.view.Mode)))
	}

	start := scrollStart(m.Cursor, len(tasks), height)
	end := start + height
	if end > len(tasks) {
		end = len(tasks)
	}
	for i := start; i < end; i++ {
		lines = append(lines, m.formatTaskRow(styles, tasks[i], i == m.Cursor, contentWidth))
	}

	return style.Width(m.Width - 2).Height(height).Render(strings.Join(lines, "\n"))
}

// scrollStart keeps the cursor row inside a window of height rows
func scrollStart(cursor, total, height int) int {
	if total <= height || cursor < height {
		return 0
	}
	start := cursor - height + 1
	if start > total-height {
		start = total - height
	}
	return start
}

func emptyMessage(mode models.FilterMode) string {
	switch mode {
	case models.FilterActive:
		return "Nothing left to do"
	case models.FilterCompleted:
		return "No completed tasks"
	default:
		return "No tasks yet. Press a to add one."
	}
}

func (m Model) formatTaskRow(styles Styles, t models.Task, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = "› "
	}
	if t.ID == m.Grabbed {
		marker = styles.Grabbed.Render("↕ ")
	}

	box := "[ ]"
	text := styles.Task.Render(t.Text)
	if t.Completed {
		box = "[x]"
		text = styles.Done.Render(t.Text)
	}

	due := formatDue(styles, t, m.now())
	dueWidth := lipgloss.Width(due)

	// Marker, box and separators take 6 columns
	textWidth := width - 6 - dueWidth
	if dueWidth > 0 {
		textWidth -= 2
	}
	if textWidth < 4 {
		textWidth = 4
	}
	text = ansi.Truncate(text, textWidth, "…")

	row := marker + box + " " + text
	if due != "" {
		row += "  " + due
	}
	if selected && m.Grabbed == "" {
		return styles.Selected.Render(row)
	}
	return row
}

func formatDue(styles Styles, t models.Task, now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	due, err := time.ParseInLocation(models.DateLayout, *t.DueDate, now.Location())
	y, mo, d := now.Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, now.Location())
	if err == nil && !t.Completed && due.Before(today) {
		return styles.Overdue.Render(*t.DueDate)
	}
	return styles.Due.Render(*t.DueDate)
}

// shortID trims an id for titles
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m Model) renderFooter(styles Styles) string {
	v := m.sink.view
	summary := styles.Subtle.Render(filter.Summary(v.ActiveCount))

	var hint string
	switch m.currentContext() {
	case keymap.ContextGrab:
		hint = m.Keymap.ShortHelp(keymap.ContextGrab, keymap.CmdDrop, keymap.CmdCancelGrab)
	case keymap.ContextInput:
		hint = m.Keymap.ShortHelp(keymap.ContextInput, keymap.CmdInputSubmit, keymap.CmdInputClear, keymap.CmdFocusList)
	default:
		hint = m.Keymap.ShortHelp(keymap.ContextList,
			keymap.CmdFocusInput, keymap.CmdToggle, keymap.CmdEdit, keymap.CmdDelete,
			keymap.CmdGrab, keymap.CmdCycleFilter, keymap.CmdToggleHelp, keymap.CmdQuit)
	}
	if pending := m.Keymap.PendingKey(); pending != "" {
		hint = pending + " …"
	}

	status := ""
	if m.StatusMessage != "" {
		if m.StatusIsError {
			status = styles.StatusError.Render(m.StatusMessage)
		} else {
			status = styles.Status.Render(m.StatusMessage)
		}
	}

	line := summary
	if status != "" {
		line += "  " + status
	}
	return line + "\n" + styles.Help.Render(ansi.Truncate(hint, m.Width, "…"))
}
