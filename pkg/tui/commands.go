package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/marcus/vibrant/internal/app"
	"github.com/marcus/vibrant/internal/dateparse"
	"github.com/marcus/vibrant/internal/filter"
	"github.com/marcus/vibrant/internal/input"
	"github.com/marcus/vibrant/internal/models"
	"github.com/marcus/vibrant/pkg/tui/keymap"
)

// currentContext returns the keymap context based on current UI state
func (m Model) currentContext() keymap.Context {
	if m.HelpOpen {
		return keymap.ContextHelp
	}
	if m.FormOpen {
		return keymap.ContextForm
	}
	if m.Grabbed != "" {
		return keymap.ContextGrab
	}
	if m.Focus == FocusInput {
		return keymap.ContextInput
	}
	return keymap.ContextList
}

// handleFormUpdate handles all messages when form is open
func (m Model) handleFormUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if cmd, found := m.Keymap.Lookup(keyMsg, keymap.ContextForm); found {
			switch cmd {
			case keymap.CmdFormSubmit, keymap.CmdFormCancel, keymap.CmdQuit:
				return m.executeCommand(cmd)
			}
		}
	}

	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.Width = sizeMsg.Width
		m.Height = sizeMsg.Height
	}

	form, cmd := m.FormState.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.FormState.Form = f
	}

	switch m.FormState.Form.State {
	case huh.StateCompleted:
		return m.executeCommand(keymap.CmdFormSubmit)
	case huh.StateAborted:
		return m.executeCommand(keymap.CmdFormCancel)
	}

	return m, cmd
}

// handleKey processes key input using the centralized keymap registry
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.currentContext()

	// Input focus: bound keys (enter, esc, tab) are commands, the rest type
	if ctx == keymap.ContextInput {
		if cmd, found := m.Keymap.Lookup(msg, ctx); found {
			return m.executeCommand(cmd)
		}
		var inputCmd tea.Cmd
		m.Input, inputCmd = m.Input.Update(msg)
		return m, inputCmd
	}

	cmd, found := m.Keymap.Lookup(msg, ctx)
	if !found {
		return m, nil
	}
	return m.executeCommand(cmd)
}

// executeCommand executes a keymap command and returns the updated model and any tea.Cmd
func (m Model) executeCommand(cmd keymap.Command) (tea.Model, tea.Cmd) {
	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	if cmd != keymap.CmdCursorDown && cmd != keymap.CmdCursorUp {
		m.clearStatus()
	}

	switch cmd {
	case keymap.CmdQuit:
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.HelpOpen = !m.HelpOpen
	case keymap.CmdCloseHelp:
		m.HelpOpen = false

	// Navigation
	case keymap.CmdCursorDown:
		m.moveCursor(1)
	case keymap.CmdCursorUp:
		m.moveCursor(-1)
	case keymap.CmdCursorTop:
		m.Cursor = 0
	case keymap.CmdCursorBottom:
		m.Cursor = len(m.sink.view.Tasks) - 1
		m.clampCursor()
	case keymap.CmdFocusInput:
		m.Focus = FocusInput
		return m, m.Input.Focus()
	case keymap.CmdFocusList:
		m.Focus = FocusList
		m.Input.Blur()

	// Task actions
	case keymap.CmdToggle:
		if task, ok := m.SelectedTask(); ok {
			m.Session.ToggleComplete(ctx, task.ID)
			m.selectID(task.ID)
		}
	case keymap.CmdDelete:
		if task, ok := m.SelectedTask(); ok {
			if m.Session.Remove(ctx, task.ID) {
				m.setStatus("Deleted "+task.Text, false)
			}
			m.clampCursor()
		}
	case keymap.CmdEdit:
		if task, ok := m.SelectedTask(); ok {
			m.FormState = NewFormState(task.ID, app.Submission{Text: task.Text, Due: task.DueDate}, m.Session.Theme(), m.now)
			m.FormOpen = true
			return m, m.FormState.Form.Init()
		}
	case keymap.CmdMoveUp, keymap.CmdMoveDown:
		if task, ok := m.SelectedTask(); ok {
			dir := 1
			if cmd == keymap.CmdMoveUp {
				dir = -1
			}
			m.Session.MoveAdjacent(ctx, task.ID, dir)
			m.selectID(task.ID)
		}
	case keymap.CmdGrab:
		if task, ok := m.SelectedTask(); ok {
			m.Grabbed = task.ID
			m.setStatus(fmt.Sprintf("Moving %q: pick a task and press enter to drop before it", task.Text), false)
		}
	case keymap.CmdDrop:
		grabbed := m.Grabbed
		m.Grabbed = ""
		if target, ok := m.SelectedTask(); ok && target.ID != grabbed {
			m.Session.ReorderByMove(ctx, grabbed, target.ID)
		}
		m.selectID(grabbed)
	case keymap.CmdCancelGrab:
		grabbed := m.Grabbed
		m.Grabbed = ""
		m.selectID(grabbed)
	case keymap.CmdClearCompleted:
		n := len(filter.Project(m.Session.Tasks(), models.FilterCompleted).Tasks)
		m.Session.ClearCompleted(ctx)
		if n > 0 {
			m.setStatus(fmt.Sprintf("Cleared %d completed", n), false)
		}
		m.clampCursor()

	// Filters and theme
	case keymap.CmdCycleFilter:
		m.Session.CycleFilter()
		m.clampCursor()
	case keymap.CmdFilterAll:
		m.Session.SetFilter(models.FilterAll)
		m.clampCursor()
	case keymap.CmdFilterActive:
		m.Session.SetFilter(models.FilterActive)
		m.clampCursor()
	case keymap.CmdFilterCompleted:
		m.Session.SetFilter(models.FilterCompleted)
		m.clampCursor()
	case keymap.CmdToggleTheme:
		m.Session.ToggleTheme(ctx)

	// Input
	case keymap.CmdInputSubmit:
		return m.submitInput(ctx)
	case keymap.CmdInputClear:
		m.Input.Reset()
		m.Focus = FocusList
		m.Input.Blur()

	// Form
	case keymap.CmdFormSubmit:
		return m.submitForm(ctx)
	case keymap.CmdFormCancel:
		m.closeForm()
		m.setStatus("Edit canceled", false)
	}

	return m, nil
}

// submitInput adds a task from the input line ("text | due")
func (m Model) submitInput(ctx context.Context) (tea.Model, tea.Cmd) {
	text, dueInput := input.SplitDue(m.Input.Value())
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	due, err := dateparse.ParseDue(dueInput, m.now())
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}

	if task, ok := m.Session.Create(ctx, text, due); ok {
		m.Input.Reset()
		m.selectID(task.ID)
	}
	return m, nil
}

// submitForm applies the edit through the session's editor contract
func (m Model) submitForm(ctx context.Context) (tea.Model, tea.Cmd) {
	fs := m.FormState
	sub, err := fs.Submission()
	if err != nil {
		m.setStatus(err.Error(), true)
		// A completed huh form cannot take more input; rebuild it so the
		// user can fix the value.
		fs.buildForm(m.Session.Theme())
		return m, fs.Form.Init()
	}

	editor := app.EditorFunc(func(context.Context, app.Submission) (app.Submission, error) {
		return sub, nil
	})
	if _, err := m.Session.Edit(ctx, fs.TaskID, editor); err != nil {
		m.setStatus(err.Error(), true)
	}
	m.selectID(fs.TaskID)
	m.closeForm()
	return m, nil
}

func (m *Model) closeForm() {
	m.FormOpen = false
	m.FormState = nil
}
