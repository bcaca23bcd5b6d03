// Package models defines the task, view, filter and theme types shared by
// the store, persistence and front ends.
package models

import (
	"strings"
)

// DateLayout is the persisted due date format
const DateLayout = "2006-01-02"

// FilterMode selects which tasks a view shows
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterActive    FilterMode = "active"
	FilterCompleted FilterMode = "completed"
)

// Theme is the persisted UI color preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Task represents one to-do item
type Task struct {
	ID        string  `json:"id"`
	Text      string  `json:"text"`
	DueDate   *string `json:"dueDate"`
	Completed bool    `json:"completed"`
	Order     int     `json:"order"`
}

// Due returns the due date or "" when absent
func (t Task) Due() string {
	if t.DueDate == nil {
		return ""
	}
	return *t.DueDate
}

// Clone returns a copy that shares no pointers with t
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// View is the payload handed to a render sink
type View struct {
	Tasks       []Task     `json:"tasks"`
	ActiveCount int        `json:"active_count"`
	Mode        FilterMode `json:"mode"`
	Theme       Theme      `json:"theme"`
}

// NormalizeDue maps a blank due date to absent and trims the rest
func NormalizeDue(due *string) *string {
	if due == nil {
		return nil
	}
	d := strings.TrimSpace(*due)
	if d == "" {
		return nil
	}
	return &d
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// IsValidFilterMode checks if a filter mode is valid
func IsValidFilterMode(m FilterMode) bool {
	switch m {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// NormalizeFilterMode converts alternate filter names to canonical form
// Accepts: "todo", "open" for active and "done" for completed
func NormalizeFilterMode(s string) FilterMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll
	case "active", "todo", "open":
		return FilterActive
	case "completed", "done":
		return FilterCompleted
	default:
		return FilterMode(s)
	}
}

// Next returns the filter that follows m in all -> active -> completed order
func (m FilterMode) Next() FilterMode {
	switch m {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// ParseTheme maps any unrecognized value to the light theme
func ParseTheme(s string) Theme {
	if Theme(strings.TrimSpace(s)) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// IsValidTheme checks if a theme is valid
func IsValidTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
