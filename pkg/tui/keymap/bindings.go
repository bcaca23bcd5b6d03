package keymap

// DefaultBindings returns the default key bindings for the task list TUI.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings apply unless a context overrides the key
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal, Description: "Quit"},

		// List
		{Key: "q", Command: CmdQuit, Context: ContextList, Description: "Quit"},
		{Key: "?", Command: CmdToggleHelp, Context: ContextList, Description: "Toggle help"},
		{Key: "j", Command: CmdCursorDown, Context: ContextList, Description: "Move down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextList, Description: "Move down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextList, Description: "Move up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextList, Description: "Move up"},
		{Key: "g g", Command: CmdCursorTop, Context: ContextList, Description: "Go to top"},
		{Key: "home", Command: CmdCursorTop, Context: ContextList, Description: "Go to top"},
		{Key: "G", Command: CmdCursorBottom, Context: ContextList, Description: "Go to bottom"},
		{Key: "end", Command: CmdCursorBottom, Context: ContextList, Description: "Go to bottom"},

		{Key: "space", Command: CmdToggle, Context: ContextList, Description: "Toggle complete"},
		{Key: "x", Command: CmdDelete, Context: ContextList, Description: "Delete task"},
		{Key: "delete", Command: CmdDelete, Context: ContextList, Description: "Delete task"},
		{Key: "e", Command: CmdEdit, Context: ContextList, Description: "Edit task"},
		{Key: "enter", Command: CmdEdit, Context: ContextList, Description: "Edit task"},
		{Key: "K", Command: CmdMoveUp, Context: ContextList, Description: "Move task up"},
		{Key: "shift+up", Command: CmdMoveUp, Context: ContextList, Description: "Move task up"},
		{Key: "J", Command: CmdMoveDown, Context: ContextList, Description: "Move task down"},
		{Key: "shift+down", Command: CmdMoveDown, Context: ContextList, Description: "Move task down"},
		{Key: "m", Command: CmdGrab, Context: ContextList, Description: "Grab task to move"},
		{Key: "c", Command: CmdClearCompleted, Context: ContextList, Description: "Clear completed"},

		{Key: "f", Command: CmdCycleFilter, Context: ContextList, Description: "Cycle filter"},
		{Key: "1", Command: CmdFilterAll, Context: ContextList, Description: "Show all"},
		{Key: "2", Command: CmdFilterActive, Context: ContextList, Description: "Show active"},
		{Key: "3", Command: CmdFilterCompleted, Context: ContextList, Description: "Show completed"},
		{Key: "t", Command: CmdToggleTheme, Context: ContextList, Description: "Toggle theme"},

		{Key: "a", Command: CmdFocusInput, Context: ContextList, Description: "Add task"},
		{Key: "tab", Command: CmdFocusInput, Context: ContextList, Description: "Focus input"},

		// Input: unbound keys go to the text field
		{Key: "enter", Command: CmdInputSubmit, Context: ContextInput, Description: "Add task"},
		{Key: "esc", Command: CmdInputClear, Context: ContextInput, Description: "Clear input"},
		{Key: "tab", Command: CmdFocusList, Context: ContextInput, Description: "Focus list"},
		{Key: "shift+tab", Command: CmdFocusList, Context: ContextInput, Description: "Focus list"},

		// Grab: cursor picks the drop target
		{Key: "j", Command: CmdCursorDown, Context: ContextGrab, Description: "Move target down"},
		{Key: "down", Command: CmdCursorDown, Context: ContextGrab, Description: "Move target down"},
		{Key: "k", Command: CmdCursorUp, Context: ContextGrab, Description: "Move target up"},
		{Key: "up", Command: CmdCursorUp, Context: ContextGrab, Description: "Move target up"},
		{Key: "enter", Command: CmdDrop, Context: ContextGrab, Description: "Drop before target"},
		{Key: "m", Command: CmdDrop, Context: ContextGrab, Description: "Drop before target"},
		{Key: "esc", Command: CmdCancelGrab, Context: ContextGrab, Description: "Cancel move"},
		{Key: "q", Command: CmdCancelGrab, Context: ContextGrab, Description: "Cancel move"},

		// Form: other keys are delegated to the huh form
		{Key: "ctrl+s", Command: CmdFormSubmit, Context: ContextForm, Description: "Save"},
		{Key: "esc", Command: CmdFormCancel, Context: ContextForm, Description: "Cancel"},

		// Help
		{Key: "?", Command: CmdCloseHelp, Context: ContextHelp, Description: "Close help"},
		{Key: "esc", Command: CmdCloseHelp, Context: ContextHelp, Description: "Close help"},
		{Key: "q", Command: CmdCloseHelp, Context: ContextHelp, Description: "Close help"},
	}
}

// RegisterDefaults registers all default bindings with the registry
func RegisterDefaults(r *Registry) {
	r.RegisterBindings(DefaultBindings())
}

// AllCommands lists every command a binding may name
func AllCommands() []Command {
	return []Command{
		CmdQuit, CmdToggleHelp,
		CmdCursorDown, CmdCursorUp, CmdCursorTop, CmdCursorBottom, CmdFocusInput, CmdFocusList,
		CmdToggle, CmdDelete, CmdEdit, CmdMoveUp, CmdMoveDown, CmdGrab, CmdDrop, CmdCancelGrab, CmdClearCompleted,
		CmdCycleFilter, CmdFilterAll, CmdFilterActive, CmdFilterCompleted, CmdToggleTheme,
		CmdInputSubmit, CmdInputClear,
		CmdFormSubmit, CmdFormCancel,
		CmdCloseHelp,
	}
}

// IsKnownCommand reports whether cmd is one of AllCommands
func IsKnownCommand(cmd Command) bool {
	for _, c := range AllCommands() {
		if c == cmd {
			return true
		}
	}
	return false
}
