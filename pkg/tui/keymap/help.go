package keymap

import (
	"fmt"
	"strings"
)

// HelpBinding represents a single binding for display
type HelpBinding struct {
	Keys        string // Combined keys like "j / down"
	Description string
}

// HelpFor groups a context's bindings by command, in registration order.
// User overrides are listed alongside the defaults.
func (r *Registry) HelpFor(context Context) []HelpBinding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var order []Command
	keys := make(map[Command][]string)
	desc := make(map[Command]string)

	add := func(cmd Command, key, description string) {
		if _, seen := keys[cmd]; !seen {
			order = append(order, cmd)
		}
		keys[cmd] = append(keys[cmd], key)
		if desc[cmd] == "" {
			desc[cmd] = description
		}
	}

	for _, b := range r.bindings[context] {
		add(b.Command, b.Key, b.Description)
	}
	prefix := string(context) + ":"
	for k, cmd := range r.userOverrides {
		if strings.HasPrefix(k, prefix) {
			add(cmd, strings.TrimPrefix(k, prefix), string(cmd))
		}
	}

	result := make([]HelpBinding, 0, len(order))
	for _, cmd := range order {
		result = append(result, HelpBinding{
			Keys:        strings.Join(keys[cmd], " / "),
			Description: desc[cmd],
		})
	}
	return result
}

// GenerateHelp renders the full help text for the TUI
func (r *Registry) GenerateHelp() string {
	sections := []struct {
		title string
		ctx   Context
	}{
		{"TASK LIST", ContextList},
		{"NEW TASK INPUT", ContextInput},
		{"MOVING A TASK", ContextGrab},
		{"EDIT FORM", ContextForm},
	}

	var sb strings.Builder
	sb.WriteString("Key Bindings\n")
	for _, s := range sections {
		sb.WriteString("\n" + s.title + ":\n")
		for _, b := range r.HelpFor(s.ctx) {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", b.Keys, b.Description))
		}
	}
	sb.WriteString("\nNew tasks accept a due date after a bar: \"pay rent | friday\"\n")
	return sb.String()
}

// ShortHelp renders a one-line key hint for the footer
func (r *Registry) ShortHelp(context Context, cmds ...Command) string {
	var parts []string
	for _, cmd := range cmds {
		keys := r.KeysFor(cmd, context)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", keys[0], cmd))
	}
	return strings.Join(parts, " · ")
}
