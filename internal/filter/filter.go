// Package filter projects a task collection into the ordered list a view shows.
package filter

import (
	"fmt"
	"sort"

	"github.com/marcus/vibrant/internal/models"
)

// Result is the outcome of a projection
type Result struct {
	Tasks       []models.Task
	ActiveCount int // incomplete tasks across the whole input, not just Tasks
	Mode        models.FilterMode
}

// Project filters tasks by mode and sorts them by order. The input slice is
// not modified. Unknown modes behave like FilterAll.
func Project(tasks []models.Task, mode models.FilterMode) Result {
	if !models.IsValidFilterMode(mode) {
		mode = models.FilterAll
	}

	res := Result{
		Tasks: make([]models.Task, 0, len(tasks)),
		Mode:  mode,
	}
	for _, t := range tasks {
		if !t.Completed {
			res.ActiveCount++
		}
		if Matches(t, mode) {
			res.Tasks = append(res.Tasks, t.Clone())
		}
	}

	sort.SliceStable(res.Tasks, func(i, j int) bool {
		return res.Tasks[i].Order < res.Tasks[j].Order
	})
	return res
}

// Matches reports whether a task belongs in a view with the given mode
func Matches(t models.Task, mode models.FilterMode) bool {
	switch mode {
	case models.FilterActive:
		return !t.Completed
	case models.FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Summary renders the "N tasks left" footer
func Summary(activeCount int) string {
	if activeCount == 1 {
		return "1 task left"
	}
	return fmt.Sprintf("%d tasks left", activeCount)
}
