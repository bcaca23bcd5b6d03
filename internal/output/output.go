// Package output provides styled terminal output helpers (success, error,
// warning, task formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/vibrant/internal/filter"
	"github.com/marcus/vibrant/internal/models"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	dueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

var out io.Writer = os.Stdout

// SetWriter redirects output and returns a func restoring the previous
// writer (tests)
func SetWriter(w io.Writer) func() {
	prev := out
	out = w
	return func() { out = prev }
}

// OutputMode determines output format
type OutputMode int

const (
	ModeShort OutputMode = iota
	ModeJSON
	ModeMarkdown
)

// ShortIDLen is how many id characters list output shows
const ShortIDLen = 8

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Fprintln(out, errorStyle.Render("ERROR: "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Fprintln(out, warningStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Fprintln(out, fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// Error codes for structured JSON output
const (
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeAmbiguous    = "ambiguous_id"
	ErrCodeStorageError = "storage_error"
)

// JSONError outputs an error as JSON
func JSONError(code, message string) {
	data, _ := json.Marshal(map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
	fmt.Fprintln(out, string(data))
}

// ShortID trims an id for display
func ShortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

// StatusBadge returns "○" for open tasks and "✓" for completed ones
func StatusBadge(completed bool) string {
	if completed {
		return successStyle.Render("✓")
	}
	return "○"
}

// FormatDue renders a due date, highlighting it when past due and open
func FormatDue(t models.Task, now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	label := "due " + *t.DueDate
	if !t.Completed && IsOverdue(*t.DueDate, now) {
		return overdueStyle.Render(label + " (overdue)")
	}
	return dueStyle.Render(label)
}

// IsOverdue reports whether due is before now's calendar day
func IsOverdue(due string, now time.Time) bool {
	d, err := time.ParseInLocation(models.DateLayout, due, now.Location())
	if err != nil {
		return false
	}
	y, m, day := now.Date()
	return d.Before(time.Date(y, m, day, 0, 0, 0, 0, now.Location()))
}

// FormatTaskShort formats a task as one list line
func FormatTaskShort(t models.Task, now time.Time) string {
	var parts []string
	parts = append(parts, StatusBadge(t.Completed))
	parts = append(parts, titleStyle.Render(ShortID(t.ID)))
	if t.Completed {
		parts = append(parts, doneStyle.Render(t.Text))
	} else {
		parts = append(parts, t.Text)
	}
	if due := FormatDue(t, now); due != "" {
		parts = append(parts, due)
	}
	return strings.Join(parts, "  ")
}

// TaskOneLiner returns a concise unstyled task reference
// Format: `a1b2c3d4 "Text"`
func TaskOneLiner(t models.Task) string {
	return fmt.Sprintf("%s %q", ShortID(t.ID), t.Text)
}

// FormatFooter renders the "N tasks left" line with the active filter
func FormatFooter(v models.View) string {
	return subtleStyle.Render(fmt.Sprintf("%s · filter: %s", filter.Summary(v.ActiveCount), v.Mode))
}

// FormatView renders a whole view as list lines plus footer
func FormatView(v models.View, now time.Time) string {
	var sb strings.Builder
	if len(v.Tasks) == 0 {
		sb.WriteString(subtleStyle.Render("No tasks"))
		sb.WriteString("\n")
	}
	for _, t := range v.Tasks {
		sb.WriteString(FormatTaskShort(t, now))
		sb.WriteString("\n")
	}
	sb.WriteString(FormatFooter(v))
	return sb.String()
}

// MarkdownView renders a view as a markdown task list
func MarkdownView(v models.View) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Tasks (%s)\n\n", v.Mode)
	if len(v.Tasks) == 0 {
		sb.WriteString("_No tasks._\n")
	}
	for _, t := range v.Tasks {
		box := " "
		if t.Completed {
			box = "x"
		}
		fmt.Fprintf(&sb, "- [%s] %s", box, escapeMarkdown(t.Text))
		if t.DueDate != nil {
			fmt.Fprintf(&sb, " _(due %s)_", *t.DueDate)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n%s\n", filter.Summary(v.ActiveCount))
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// Printer is a render sink that writes each view to the terminal
type Printer struct {
	Mode OutputMode
	Now  func() time.Time
}

// Render implements app.Renderer
func (p Printer) Render(v models.View) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	switch p.Mode {
	case ModeJSON:
		if err := JSON(v); err != nil {
			Error("encode view: %v", err)
		}
	case ModeMarkdown:
		rendered, err := RenderMarkdownForTheme(MarkdownView(v), v.Theme)
		if err != nil {
			Error("render markdown: %v", err)
			return
		}
		fmt.Fprintln(out, rendered)
	default:
		fmt.Fprintln(out, FormatView(v, now()))
	}
}
