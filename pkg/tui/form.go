package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/marcus/vibrant/internal/app"
	"github.com/marcus/vibrant/internal/dateparse"
	"github.com/marcus/vibrant/internal/models"
)

var errTextRequired = errors.New("text is required")

// FormState holds the state for the edit task form
type FormState struct {
	Form   *huh.Form
	TaskID string

	// Bound form values
	Text string
	Due  string

	now func() time.Time
}

// NewFormState creates a form populated with the current values
func NewFormState(taskID string, current app.Submission, theme models.Theme, now func() time.Time) *FormState {
	if now == nil {
		now = time.Now
	}
	fs := &FormState{
		TaskID: taskID,
		Text:   current.Text,
		now:    now,
	}
	if current.Due != nil {
		fs.Due = *current.Due
	}
	fs.buildForm(theme)
	return fs
}

func (fs *FormState) buildForm(theme models.Theme) {
	title := "Edit Task"
	if fs.TaskID != "" {
		title = "Edit Task: " + shortID(fs.TaskID)
	}

	fs.Form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Text").
				Value(&fs.Text).
				Placeholder("What needs doing?").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errTextRequired
					}
					return nil
				}),
			huh.NewInput().
				Title("Due").
				Description("YYYY-MM-DD, today, +3d, friday; blank for none").
				Value(&fs.Due).
				Validate(func(s string) error {
					_, err := dateparse.ParseDue(s, fs.now())
					return err
				}),
		).Title(title),
	).WithTheme(formTheme(theme)).WithShowHelp(true)
}

// Submission converts the bound values, resolving relative due dates
func (fs *FormState) Submission() (app.Submission, error) {
	due, err := dateparse.ParseDue(fs.Due, fs.now())
	if err != nil {
		return app.Submission{}, err
	}
	return app.Submission{Text: strings.TrimSpace(fs.Text), Due: due}, nil
}

// FormEditor runs the edit form as a standalone program (CLI edit)
type FormEditor struct {
	Theme models.Theme
	Now   func() time.Time
}

// EditTask implements app.Editor
func (e FormEditor) EditTask(ctx context.Context, current app.Submission) (app.Submission, error) {
	fs := NewFormState("", current, e.Theme, e.Now)
	if err := fs.Form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return app.Submission{}, app.ErrEditCanceled
		}
		return app.Submission{}, err
	}
	return fs.Submission()
}
