// Package store holds the ordered task collection and enforces its ordering
// invariants. Every mutation degrades to a no-op on invalid input; the bool
// result reports whether anything changed.
package store

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/marcus/vibrant/internal/models"
)

// Store owns the task records. Callers only ever see copies.
type Store struct {
	tasks    []models.Task
	newID    func() string
	onChange func()
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator overrides the id source (tests)
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithOnChange registers a hook invoked after every applied mutation
func WithOnChange(fn func()) Option {
	return func(s *Store) {
		s.onChange = fn
	}
}

// New creates a store seeded with tasks, sorted by order
func New(tasks []models.Task, opts ...Option) *Store {
	s := &Store{
		tasks: make([]models.Task, 0, len(tasks)),
		newID: uuid.NewString,
	}
	for _, t := range tasks {
		s.tasks = append(s.tasks, t.Clone())
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].Order < s.tasks[j].Order
	})
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetOnChange replaces the change hook
func (s *Store) SetOnChange(fn func()) {
	s.onChange = fn
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tasks returns a snapshot of all tasks in order
func (s *Store) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of the task with id
func (s *Store) Get(id string) (models.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return models.Task{}, false
	}
	return s.tasks[idx].Clone(), true
}

// ActiveCount counts incomplete tasks
func (s *Store) ActiveCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Resolve maps an exact id or an id prefix to a task id. matches is the
// number of tasks the ref selects; id is set only when it is exactly one.
func (s *Store) Resolve(ref string) (id string, matches int) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", 0
	}
	if s.indexOf(ref) >= 0 {
		return ref, 1
	}
	for _, t := range s.tasks {
		if strings.HasPrefix(t.ID, ref) {
			id = t.ID
			matches++
		}
	}
	if matches != 1 {
		return "", matches
	}
	return id, 1
}

// Create appends a new task. Blank text is ignored.
func (s *Store) Create(text string, due *string) (models.Task, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.Task{}, false
	}

	order := 0
	if len(s.tasks) > 0 {
		order = s.maxOrder() + 1
	}

	task := models.Task{
		ID:      s.uniqueID(),
		Text:    trimmed,
		DueDate: models.NormalizeDue(due),
		Order:   order,
	}
	s.tasks = append(s.tasks, task)
	s.changed()
	return task.Clone(), true
}

// Update replaces text and due date. Blank text keeps the previous text
// while the due date is still replaced.
func (s *Store) Update(id, text string, due *string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		s.tasks[idx].Text = trimmed
	}
	s.tasks[idx].DueDate = models.NormalizeDue(due)
	s.changed()
	return true
}

// Remove deletes a task. Remaining orders are left as they are.
func (s *Store) Remove(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.changed()
	return true
}

// ToggleComplete flips the completed flag
func (s *Store) ToggleComplete(id string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.tasks[idx].Completed = !s.tasks[idx].Completed
	s.changed()
	return true
}

// ClearCompleted removes all completed tasks and renumbers the rest to
// 0..n-1. It applies when a task was removed or an order changed.
func (s *Store) ClearCompleted() bool {
	remaining := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Completed {
			removed++
			continue
		}
		remaining = append(remaining, t)
	}
	s.tasks = remaining
	if !s.renumber() && removed == 0 {
		return false
	}
	s.changed()
	return true
}

// ReorderByMove moves id so it sits immediately before targetID
func (s *Store) ReorderByMove(id, targetID string) bool {
	if id == targetID {
		return false
	}
	from := s.indexOf(id)
	if from < 0 || s.indexOf(targetID) < 0 {
		return false
	}

	moved := s.tasks[from]
	s.tasks = append(s.tasks[:from], s.tasks[from+1:]...)

	to := s.indexOf(targetID)
	s.tasks = append(s.tasks, models.Task{})
	copy(s.tasks[to+1:], s.tasks[to:])
	s.tasks[to] = moved

	s.renumber()
	s.changed()
	return true
}

// MoveAdjacent swaps id with its neighbour; direction is -1 (up) or +1 (down)
func (s *Store) MoveAdjacent(id string, direction int) bool {
	if direction != -1 && direction != 1 {
		return false
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	next := idx + direction
	if next < 0 || next >= len(s.tasks) {
		return false
	}
	s.tasks[idx], s.tasks[next] = s.tasks[next], s.tasks[idx]
	s.renumber()
	s.changed()
	return true
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) maxOrder() int {
	max := s.tasks[0].Order
	for _, t := range s.tasks[1:] {
		if t.Order > max {
			max = t.Order
		}
	}
	return max
}

// renumber sets each order to its position and reports whether any changed
func (s *Store) renumber() bool {
	changed := false
	for i := range s.tasks {
		if s.tasks[i].Order != i {
			s.tasks[i].Order = i
			changed = true
		}
	}
	return changed
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *Store) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
