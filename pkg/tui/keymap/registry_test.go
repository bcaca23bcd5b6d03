package keymap

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func TestLookupDefaults(t *testing.T) {
	r := newDefaultRegistry()

	tests := []struct {
		name string
		key  tea.KeyMsg
		ctx  Context
		want Command
	}{
		{"space toggles", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ContextList, CmdToggle},
		{"x deletes", runes("x"), ContextList, CmdDelete},
		{"delete key deletes", tea.KeyMsg{Type: tea.KeyDelete}, ContextList, CmdDelete},
		{"e edits", runes("e"), ContextList, CmdEdit},
		{"K moves up", runes("K"), ContextList, CmdMoveUp},
		{"shift+down moves down", tea.KeyMsg{Type: tea.KeyShiftDown}, ContextList, CmdMoveDown},
		{"m grabs", runes("m"), ContextList, CmdGrab},
		{"f cycles filter", runes("f"), ContextList, CmdCycleFilter},
		{"2 shows active", runes("2"), ContextList, CmdFilterActive},
		{"c clears", runes("c"), ContextList, CmdClearCompleted},
		{"t theme", runes("t"), ContextList, CmdToggleTheme},
		{"enter drops in grab", tea.KeyMsg{Type: tea.KeyEnter}, ContextGrab, CmdDrop},
		{"esc cancels grab", tea.KeyMsg{Type: tea.KeyEsc}, ContextGrab, CmdCancelGrab},
		{"enter submits input", tea.KeyMsg{Type: tea.KeyEnter}, ContextInput, CmdInputSubmit},
		{"ctrl+c is global", tea.KeyMsg{Type: tea.KeyCtrlC}, ContextInput, CmdQuit},
		{"ctrl+s saves form", tea.KeyMsg{Type: tea.KeyCtrlS}, ContextForm, CmdFormSubmit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.key, tt.ctx)
			if !ok || got != tt.want {
				t.Errorf("Lookup = %q, %v; want %q", got, ok, tt.want)
			}
		})
	}
}

func TestInputContextLeavesLettersUnbound(t *testing.T) {
	r := newDefaultRegistry()
	for _, k := range []string{"q", "x", "t", "a", "j"} {
		if cmd, ok := r.Lookup(runes(k), ContextInput); ok {
			t.Errorf("%q in input context = %q, letters must reach the text field", k, cmd)
		}
	}
}

func TestKeySequence(t *testing.T) {
	r := newDefaultRegistry()

	if _, ok := r.Lookup(runes("g"), ContextList); ok {
		t.Fatal("first g should wait for the sequence")
	}
	if r.PendingKey() != "g" {
		t.Errorf("PendingKey = %q, want g", r.PendingKey())
	}
	cmd, ok := r.Lookup(runes("g"), ContextList)
	if !ok || cmd != CmdCursorTop {
		t.Errorf("g g = %q, %v; want cursor-top", cmd, ok)
	}
}

func TestKeySequenceFallsBackToSingleKey(t *testing.T) {
	r := newDefaultRegistry()
	r.Lookup(runes("g"), ContextList)

	cmd, ok := r.Lookup(runes("x"), ContextList)
	if !ok || cmd != CmdDelete {
		t.Errorf("g x = %q, %v; want delete from the second key", cmd, ok)
	}
}

func TestKeySequenceTimeout(t *testing.T) {
	r := newDefaultRegistry()
	r.Lookup(runes("g"), ContextList)
	r.pendingTime = time.Now().Add(-2 * sequenceTimeout)

	if r.PendingKey() != "" {
		t.Error("stale pending key still reported")
	}
	// The stale g is dropped and this g starts a new sequence
	if _, ok := r.Lookup(runes("g"), ContextList); ok {
		t.Error("expected a fresh pending sequence")
	}
}

func TestUserOverrideWins(t *testing.T) {
	r := newDefaultRegistry()
	r.SetUserOverride(ContextList, "x", CmdToggle)

	if cmd, _ := r.Lookup(runes("x"), ContextList); cmd != CmdToggle {
		t.Errorf("override x = %q, want toggle", cmd)
	}

	r.SetUserOverride(ContextGlobal, "ctrl+q", CmdQuit)
	if cmd, ok := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlQ}, ContextGrab); !ok || cmd != CmdQuit {
		t.Errorf("global override = %q, %v", cmd, ok)
	}
}

func TestApplyOverrides(t *testing.T) {
	r := newDefaultRegistry()
	errs := ApplyOverrides(r, map[string]string{
		"list:d":      "delete",
		"bogus:z":     "delete",
		"list:z":      "explode",
		"list:":       "quit",
		"ctrl+w":      "quit",
		"grab:ctrl+u": "move-up",
	})
	if len(errs) != 3 {
		t.Errorf("errors = %v, want 3", errs)
	}

	if cmd, _ := r.Lookup(runes("d"), ContextList); cmd != CmdDelete {
		t.Errorf("list:d = %q", cmd)
	}
	if cmd, _ := r.Lookup(tea.KeyMsg{Type: tea.KeyCtrlW}, ContextInput); cmd != CmdQuit {
		t.Errorf("bare key should bind globally, got %q", cmd)
	}
}

func TestKeyToString(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space"},
		{runes(" "), "space"},
		{runes("K"), "K"},
		{tea.KeyMsg{Type: tea.KeyShiftUp}, "shift+up"},
		{tea.KeyMsg{Type: tea.KeyEsc}, "esc"},
		{tea.KeyMsg{Type: tea.KeyCtrlQ}, "ctrl+q"},
	}
	for _, tt := range tests {
		if got := KeyToString(tt.key); got != tt.want {
			t.Errorf("KeyToString(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestEveryDefaultCommandIsKnown(t *testing.T) {
	for _, b := range DefaultBindings() {
		if !IsKnownCommand(b.Command) {
			t.Errorf("binding %q uses unknown command %q", b.Key, b.Command)
		}
		if b.Description == "" {
			t.Errorf("binding %s:%s has no description", b.Context, b.Key)
		}
	}
}

func TestHelp(t *testing.T) {
	r := newDefaultRegistry()

	var toggle *HelpBinding
	for _, h := range r.HelpFor(ContextList) {
		if h.Description == "Toggle complete" {
			h := h
			toggle = &h
		}
	}
	if toggle == nil || toggle.Keys != "space" {
		t.Errorf("toggle help = %+v", toggle)
	}

	text := r.GenerateHelp()
	for _, want := range []string{"TASK LIST:", "MOVING A TASK:", "x / delete", "Drop before target"} {
		if !strings.Contains(text, want) {
			t.Errorf("help missing %q", want)
		}
	}

	if got := r.ShortHelp(ContextGrab, CmdDrop, CmdCancelGrab); got != "enter drop · esc cancel-grab" {
		t.Errorf("ShortHelp = %q", got)
	}
}
