// Package tui is the interactive terminal front end: a bubbletea model
// that renders the session's current view and maps keys to task
// operations through the keymap registry.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/vibrant/internal/app"
	"github.com/marcus/vibrant/internal/models"
	"github.com/marcus/vibrant/internal/persist"
	"github.com/marcus/vibrant/pkg/tui/keymap"
)

// Minimum terminal size for the full layout
const (
	MinWidth  = 30
	MinHeight = 8
)

// Focus is which part of the screen receives unbound keys
type Focus int

const (
	FocusList Focus = iota
	FocusInput
)

// viewSink is the render sink the session writes to. It is shared by
// pointer so copies of Model see every render.
type viewSink struct {
	view    models.View
	renders int
}

// Render implements app.Renderer
func (s *viewSink) Render(v models.View) {
	s.view = v
	s.renders++
}

// Options configures New
type Options struct {
	Filter       models.FilterMode
	KeyOverrides map[string]string
	Logger       *slog.Logger
	Now          func() time.Time
	SessionOpts  []app.Option
}

// Model is the main Bubble Tea model for the task list TUI
type Model struct {
	ctx     context.Context
	Session *app.Session
	sink    *viewSink
	Keymap  *keymap.Registry
	logger  *slog.Logger
	now     func() time.Time

	// Window dimensions
	Width  int
	Height int

	// UI state
	Cursor   int
	Focus    Focus
	Input    textinput.Model
	HelpOpen bool

	// Grabbed is the id of the task being moved, "" when none
	Grabbed string

	// Form modal state
	FormOpen  bool
	FormState *FormState

	StatusMessage string
	StatusIsError bool
}

// New opens a session over p and builds the model around it
func New(ctx context.Context, p *persist.Persistence, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for _, err := range keymap.ApplyOverrides(km, opts.KeyOverrides) {
		logger.Warn("ignoring key override", "error", err)
	}

	input := textinput.New()
	input.Placeholder = "Add a task (text | due)"
	input.Prompt = "+ "
	input.CharLimit = 500

	sink := &viewSink{}
	sessionOpts := append([]app.Option{app.WithFilter(opts.Filter)}, opts.SessionOpts...)
	session := app.Open(ctx, p, sink, logger, sessionOpts...)

	return Model{
		ctx:     ctx,
		Session: session,
		sink:    sink,
		Keymap:  km,
		logger:  logger,
		now:     now,
		Input:   input,
		Focus:   FocusList,
	}
}

// CurrentView returns the projected tasks currently on screen
func (m Model) CurrentView() models.View {
	return m.sink.view
}

// SelectedTask returns the task under the cursor
func (m Model) SelectedTask() (models.Task, bool) {
	tasks := m.sink.view.Tasks
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[m.Cursor], true
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Form mode: forward all messages to huh form first
	if m.FormOpen && m.FormState != nil && m.FormState.Form != nil {
		return m.handleFormUpdate(msg)
	}

	// Input focused: forward non-key messages (cursor blink) to the field
	if m.Focus == FocusInput {
		if _, isKey := msg.(tea.KeyMsg); !isKey {
			if _, isSize := msg.(tea.WindowSizeMsg); !isSize {
				var cmd tea.Cmd
				m.Input, cmd = m.Input.Update(msg)
				return m, cmd
			}
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Input.Width = msg.Width - 6
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

// CurrentContextString returns the active keymap context name
func (m Model) CurrentContextString() string {
	return string(m.currentContext())
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.StatusMessage = msg
	m.StatusIsError = isErr
}

func (m *Model) clearStatus() {
	m.StatusMessage = ""
	m.StatusIsError = false
}

// clampCursor keeps the cursor on a row of the current view
func (m *Model) clampCursor() {
	n := len(m.sink.view.Tasks)
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// selectID moves the cursor to the task with id if it is visible
func (m *Model) selectID(id string) {
	for i, t := range m.sink.view.Tasks {
		if t.ID == id {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	m.Cursor += delta
	m.clampCursor()
}
