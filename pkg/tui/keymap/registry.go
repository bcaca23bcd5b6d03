package keymap

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const sequenceTimeout = 500 * time.Millisecond

// Context represents a UI context for keybindings
type Context string

const (
	ContextGlobal Context = "global"
	ContextList   Context = "list"  // Task list focused
	ContextInput  Context = "input" // New-task input focused (has text input)
	ContextGrab   Context = "grab"  // A task is grabbed for move-before
	ContextForm   Context = "form"  // Edit form open
	ContextHelp   Context = "help"  // Help overlay open
)

// Command represents a named command that can be triggered by key bindings
type Command string

// All available commands
const (
	// Global commands
	CmdQuit       Command = "quit"
	CmdToggleHelp Command = "toggle-help"

	// Navigation commands
	CmdCursorDown   Command = "cursor-down"
	CmdCursorUp     Command = "cursor-up"
	CmdCursorTop    Command = "cursor-top"
	CmdCursorBottom Command = "cursor-bottom"
	CmdFocusInput   Command = "focus-input"
	CmdFocusList    Command = "focus-list"

	// Task actions
	CmdToggle         Command = "toggle"
	CmdDelete         Command = "delete"
	CmdEdit           Command = "edit"
	CmdMoveUp         Command = "move-up"
	CmdMoveDown       Command = "move-down"
	CmdGrab           Command = "grab"
	CmdDrop           Command = "drop"
	CmdCancelGrab     Command = "cancel-grab"
	CmdClearCompleted Command = "clear-completed"

	// Filters and theme
	CmdCycleFilter     Command = "cycle-filter"
	CmdFilterAll       Command = "filter-all"
	CmdFilterActive    Command = "filter-active"
	CmdFilterCompleted Command = "filter-completed"
	CmdToggleTheme     Command = "toggle-theme"

	// Input commands
	CmdInputSubmit Command = "input-submit"
	CmdInputClear  Command = "input-clear"

	// Form commands
	CmdFormSubmit Command = "form-submit"
	CmdFormCancel Command = "form-cancel"

	CmdCloseHelp Command = "close-help"
)

// Binding maps a key or key sequence to a command in a specific context
type Binding struct {
	Key         string  // e.g., "space", "shift+up", "g g"
	Command     Command // Command ID
	Context     Context
	Description string // Human-readable description for help text
}

// Registry manages key bindings and command dispatch
type Registry struct {
	bindings      map[Context][]Binding // context -> bindings
	userOverrides map[string]Command    // "context:key" -> command
	pendingKey    string
	pendingTime   time.Time
	mu            sync.RWMutex
}

// NewRegistry creates a new keymap registry
func NewRegistry() *Registry {
	return &Registry{
		bindings:      make(map[Context][]Binding),
		userOverrides: make(map[string]Command),
	}
}

// RegisterBinding adds a key binding
func (r *Registry) RegisterBinding(b Binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.Context] = append(r.bindings[b.Context], b)
}

// RegisterBindings adds multiple key bindings
func (r *Registry) RegisterBindings(bindings []Binding) {
	for _, b := range bindings {
		r.RegisterBinding(b)
	}
}

// SetUserOverride sets a user-configured key override for a specific context
func (r *Registry) SetUserOverride(context Context, key string, cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.userOverrides[string(context)+":"+key] = cmd
}

// Lookup finds the command for a given key in the specified context
// Checks: user overrides -> context bindings -> global bindings
func (r *Registry) Lookup(key tea.KeyMsg, activeContext Context) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keyStr := KeyToString(key)

	if r.pendingKey != "" {
		if time.Since(r.pendingTime) < sequenceTimeout {
			seq := r.pendingKey + " " + keyStr
			r.pendingKey = ""
			if cmd, found := r.findCommand(seq, activeContext); found {
				return cmd, true
			}
			// Sequence didn't match, try just the new key
		} else {
			r.pendingKey = ""
		}
	}

	if r.isSequenceStart(keyStr, activeContext) {
		r.pendingKey = keyStr
		r.pendingTime = time.Now()
		return "", false
	}

	return r.findCommand(keyStr, activeContext)
}

// findCommand looks up a command for the given key in order of precedence
func (r *Registry) findCommand(key string, activeContext Context) (Command, bool) {
	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, ok := r.userOverrides[string(activeContext)+":"+key]; ok {
			return cmd, true
		}
	}
	if cmd, ok := r.userOverrides[string(ContextGlobal)+":"+key]; ok {
		return cmd, true
	}

	if activeContext != "" && activeContext != ContextGlobal {
		if cmd, found := r.findInContext(key, activeContext); found {
			return cmd, true
		}
	}

	return r.findInContext(key, ContextGlobal)
}

func (r *Registry) findInContext(key string, context Context) (Command, bool) {
	for _, b := range r.bindings[context] {
		if b.Key == key {
			return b.Command, true
		}
	}
	return "", false
}

// isSequenceStart checks if this key could start a multi-key sequence
func (r *Registry) isSequenceStart(key string, activeContext Context) bool {
	prefix := key + " "

	contexts := []Context{ContextGlobal}
	if activeContext != "" && activeContext != ContextGlobal {
		contexts = append(contexts, activeContext)
	}

	for _, ctx := range contexts {
		for _, b := range r.bindings[ctx] {
			if strings.HasPrefix(b.Key, prefix) {
				return true
			}
		}
	}

	for k := range r.userOverrides {
		ctx, bound, ok := strings.Cut(k, ":")
		if !ok || !strings.HasPrefix(bound, prefix) {
			continue
		}
		if Context(ctx) == ContextGlobal || Context(ctx) == activeContext {
			return true
		}
	}

	return false
}

// ResetPending clears any pending key sequence
func (r *Registry) ResetPending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingKey = ""
}

// PendingKey returns the current pending key (for UI display)
func (r *Registry) PendingKey() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.pendingKey != "" && time.Since(r.pendingTime) < sequenceTimeout {
		return r.pendingKey
	}
	return ""
}

// BindingsForContext returns all bindings for a given context (including global)
func (r *Registry) BindingsForContext(context Context) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Binding
	result = append(result, r.bindings[context]...)
	if context != ContextGlobal {
		result = append(result, r.bindings[ContextGlobal]...)
	}
	return result
}

// KeysFor returns the keys bound to cmd in context, overrides first
func (r *Registry) KeysFor(cmd Command, context Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []string
	prefix := string(context) + ":"
	for k, c := range r.userOverrides {
		if c == cmd && strings.HasPrefix(k, prefix) {
			keys = append(keys, strings.TrimPrefix(k, prefix))
		}
	}
	for _, b := range r.bindings[context] {
		if b.Command == cmd {
			keys = append(keys, b.Key)
		}
	}
	return keys
}

// KeyToString converts a tea.KeyMsg to a string representation
func KeyToString(key tea.KeyMsg) string {
	switch key.Type {
	case tea.KeyCtrlC:
		return "ctrl+c"
	case tea.KeyCtrlS:
		return "ctrl+s"
	case tea.KeyCtrlU:
		return "ctrl+u"
	case tea.KeyTab:
		return "tab"
	case tea.KeyEnter:
		return "enter"
	case tea.KeyEsc:
		return "esc"
	case tea.KeySpace:
		return "space"
	case tea.KeyBackspace:
		return "backspace"
	case tea.KeyUp:
		return "up"
	case tea.KeyDown:
		return "down"
	case tea.KeyShiftUp:
		return "shift+up"
	case tea.KeyShiftDown:
		return "shift+down"
	case tea.KeyHome:
		return "home"
	case tea.KeyEnd:
		return "end"
	case tea.KeyDelete:
		return "delete"
	case tea.KeyShiftTab:
		return "shift+tab"
	case tea.KeyRunes:
		if len(key.Runes) == 1 && key.Runes[0] == ' ' {
			return "space"
		}
		return string(key.Runes)
	default:
		return key.String()
	}
}

// IsPrintable returns true if the key represents a printable character
func IsPrintable(key tea.KeyMsg) bool {
	if key.Type != tea.KeyRunes {
		return false
	}
	if len(key.Runes) != 1 {
		return false
	}
	r := key.Runes[0]
	return r >= ' ' && r <= '~'
}
