// Package keymap provides user-configurable key bindings for the task list
// TUI. Overrides come from the [keys] table of the config file.
package keymap

import (
	"fmt"
	"sort"
	"strings"
)

// ApplyOverrides applies "context:key" -> command overrides to the
// registry. Entries naming an unknown context or command are skipped and
// reported.
func ApplyOverrides(r *Registry, overrides map[string]string) []error {
	var errs []error

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, binding := range keys {
		cmd := Command(strings.TrimSpace(overrides[binding]))
		ctx, key := parseBinding(binding)
		if key == "" {
			errs = append(errs, fmt.Errorf("key binding %q: missing key", binding))
			continue
		}
		if !isKnownContext(ctx) {
			errs = append(errs, fmt.Errorf("key binding %q: unknown context %q", binding, ctx))
			continue
		}
		if !IsKnownCommand(cmd) {
			errs = append(errs, fmt.Errorf("key binding %q: unknown command %q", binding, cmd))
			continue
		}
		r.SetUserOverride(ctx, key, cmd)
	}
	return errs
}

// parseBinding parses a "context:key" string into context and key parts.
// A bare key is global.
func parseBinding(s string) (Context, string) {
	s = strings.TrimSpace(s)
	if ctx, key, ok := strings.Cut(s, ":"); ok && ctx != "" {
		return Context(ctx), key
	}
	return ContextGlobal, s
}

func isKnownContext(c Context) bool {
	switch c {
	case ContextGlobal, ContextList, ContextInput, ContextGrab, ContextForm, ContextHelp:
		return true
	}
	return false
}

// ExampleOverrides returns example [keys] entries for documentation
func ExampleOverrides() map[string]string {
	return map[string]string{
		"list:d":        "delete",
		"list:ctrl+u":   "move-up",
		"global:ctrl+q": "quit",
	}
}
