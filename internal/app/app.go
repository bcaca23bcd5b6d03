// Package app wires the task store to persistence and a render sink.
// Every applied mutation is saved, projected through the active filter,
// and handed to the renderer, in that order.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/marcus/vibrant/internal/filter"
	"github.com/marcus/vibrant/internal/models"
	"github.com/marcus/vibrant/internal/persist"
	"github.com/marcus/vibrant/internal/store"
)

// ErrEditCanceled is returned by an Editor when the user backs out
var ErrEditCanceled = errors.New("edit canceled")

// Renderer receives the current view after load and every change
type Renderer interface {
	Render(view models.View)
}

// RenderFunc adapts a function to Renderer
type RenderFunc func(view models.View)

// Render implements Renderer
func (f RenderFunc) Render(view models.View) { f(view) }

// Submission is the text and due date an Editor produces
type Submission struct {
	Text string
	Due  *string
}

// Editor collects replacement values for a task
type Editor interface {
	EditTask(ctx context.Context, current Submission) (Submission, error)
}

// EditorFunc adapts a function to Editor
type EditorFunc func(ctx context.Context, current Submission) (Submission, error)

// EditTask implements Editor
func (f EditorFunc) EditTask(ctx context.Context, current Submission) (Submission, error) {
	return f(ctx, current)
}

// Session owns the live task collection for one process
type Session struct {
	store    *store.Store
	persist  *persist.Persistence
	renderer Renderer
	logger   *slog.Logger
	mode     models.FilterMode
	theme    models.Theme
	changes  int
}

// Option configures a Session
type Option func(*sessionOptions)

type sessionOptions struct {
	mode      models.FilterMode
	storeOpts []store.Option
}

// WithFilter sets the initial filter mode
func WithFilter(mode models.FilterMode) Option {
	return func(o *sessionOptions) { o.mode = mode }
}

// WithStoreOptions passes options through to store.New
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *sessionOptions) { o.storeOpts = append(o.storeOpts, opts...) }
}

// Open loads persisted state and renders the initial view. A nil renderer
// discards views.
func Open(ctx context.Context, p *persist.Persistence, r Renderer, logger *slog.Logger, opts ...Option) *Session {
	o := sessionOptions{mode: models.FilterAll}
	for _, opt := range opts {
		opt(&o)
	}
	if r == nil {
		r = RenderFunc(func(models.View) {})
	}
	if logger == nil {
		logger = slog.Default()
	}
	if !models.IsValidFilterMode(o.mode) {
		o.mode = models.FilterAll
	}

	s := &Session{
		persist:  p,
		renderer: r,
		logger:   logger,
		mode:     o.mode,
		theme:    p.LoadTheme(ctx),
	}

	tasks := p.LoadTasks(ctx)
	s.store = store.New(tasks, append(o.storeOpts, store.WithOnChange(func() { s.changes++ }))...)
	logger.Debug("session opened", "tasks", len(tasks), "theme", s.theme, "filter", s.mode)

	s.render()
	return s
}

// View projects the current tasks through the active filter
func (s *Session) View() models.View {
	res := filter.Project(s.store.Tasks(), s.mode)
	return models.View{
		Tasks:       res.Tasks,
		ActiveCount: res.ActiveCount,
		Mode:        res.Mode,
		Theme:       s.theme,
	}
}

// Tasks returns every task in order, ignoring the filter
func (s *Session) Tasks() []models.Task { return s.store.Tasks() }

// Get returns the task with id
func (s *Session) Get(id string) (models.Task, bool) { return s.store.Get(id) }

// Resolve maps a full id or id prefix to an id; see store.Resolve
func (s *Session) Resolve(ref string) (id string, matches int) { return s.store.Resolve(ref) }

// Mode returns the active filter
func (s *Session) Mode() models.FilterMode { return s.mode }

// Theme returns the active theme
func (s *Session) Theme() models.Theme { return s.theme }

// Changes counts applied store mutations since Open
func (s *Session) Changes() int { return s.changes }

// Create adds a task
func (s *Session) Create(ctx context.Context, text string, due *string) (models.Task, bool) {
	task, ok := s.store.Create(text, due)
	s.commit(ctx, ok)
	return task, ok
}

// Update replaces a task's text and due date
func (s *Session) Update(ctx context.Context, id, text string, due *string) bool {
	return s.commit(ctx, s.store.Update(id, text, due))
}

// Remove deletes a task
func (s *Session) Remove(ctx context.Context, id string) bool {
	return s.commit(ctx, s.store.Remove(id))
}

// ToggleComplete flips a task's completed flag
func (s *Session) ToggleComplete(ctx context.Context, id string) bool {
	return s.commit(ctx, s.store.ToggleComplete(id))
}

// ClearCompleted drops every completed task
func (s *Session) ClearCompleted(ctx context.Context) bool {
	return s.commit(ctx, s.store.ClearCompleted())
}

// ReorderByMove moves id to just before targetID
func (s *Session) ReorderByMove(ctx context.Context, id, targetID string) bool {
	return s.commit(ctx, s.store.ReorderByMove(id, targetID))
}

// MoveAdjacent swaps id with its neighbour; direction is -1 (up) or +1 (down)
func (s *Session) MoveAdjacent(ctx context.Context, id string, direction int) bool {
	return s.commit(ctx, s.store.MoveAdjacent(id, direction))
}

// Edit asks editor for new values and applies them. Cancellation leaves
// the task untouched and is not an error.
func (s *Session) Edit(ctx context.Context, id string, editor Editor) (bool, error) {
	task, ok := s.store.Get(id)
	if !ok {
		return false, nil
	}

	sub, err := editor.EditTask(ctx, Submission{Text: task.Text, Due: task.DueDate})
	if errors.Is(err, ErrEditCanceled) {
		s.logger.Debug("edit canceled", "id", id)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.Update(ctx, id, sub.Text, sub.Due), nil
}

// SetFilter changes the active filter; unknown modes fall back to all
func (s *Session) SetFilter(mode models.FilterMode) {
	if !models.IsValidFilterMode(mode) {
		mode = models.FilterAll
	}
	s.mode = mode
	s.render()
}

// CycleFilter advances all -> active -> completed -> all
func (s *Session) CycleFilter() {
	s.SetFilter(s.mode.Next())
}

// SetTheme persists and applies a theme
func (s *Session) SetTheme(ctx context.Context, theme models.Theme) {
	if !models.IsValidTheme(theme) {
		theme = models.ThemeLight
	}
	s.theme = theme
	if err := s.persist.SaveTheme(ctx, theme); err != nil {
		s.logger.Warn("theme not saved", "theme", theme, "error", err)
	}
	s.render()
}

// ToggleTheme switches between light and dark
func (s *Session) ToggleTheme(ctx context.Context) models.Theme {
	s.SetTheme(ctx, s.theme.Toggle())
	return s.theme
}

// commit saves and re-renders after an applied mutation. A failed save
// is logged and the in-memory state stays authoritative.
func (s *Session) commit(ctx context.Context, applied bool) bool {
	if !applied {
		return false
	}
	if err := s.persist.SaveTasks(ctx, s.store.Tasks()); err != nil {
		s.logger.Warn("tasks not saved", "error", err)
	}
	s.render()
	return true
}

func (s *Session) render() {
	s.renderer.Render(s.View())
}
