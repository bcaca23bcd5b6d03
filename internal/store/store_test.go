package store

import (
	"fmt"
	"testing"

	"github.com/marcus/vibrant/internal/models"
)

// seqIDs returns an id generator producing id-1, id-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// abc builds the [a(0), b(1), c(2)] fixture used throughout
func abc() []models.Task {
	return []models.Task{
		{ID: "a", Text: "A", Order: 0},
		{ID: "b", Text: "B", Order: 1},
		{ID: "c", Text: "C", Order: 2},
	}
}

func ids(tasks []models.Task) string {
	s := ""
	for i, t := range tasks {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%s(%d)", t.ID, t.Order)
	}
	return s
}

// assertDense checks that orders are exactly 0..n-1
func assertDense(t *testing.T, s *Store) {
	t.Helper()
	seen := make(map[int]bool)
	for _, task := range s.Tasks() {
		if task.Order < 0 || task.Order >= s.Len() {
			t.Fatalf("order %d out of range for %d tasks: %s", task.Order, s.Len(), ids(s.Tasks()))
		}
		if seen[task.Order] {
			t.Fatalf("duplicate order %d: %s", task.Order, ids(s.Tasks()))
		}
		seen[task.Order] = true
	}
}

func TestNewSortsByOrder(t *testing.T) {
	s := New([]models.Task{
		{ID: "c", Order: 2},
		{ID: "a", Order: 0},
		{ID: "b", Order: 1},
	})
	if got := ids(s.Tasks()); got != "a(0),b(1),c(2)" {
		t.Errorf("Tasks() = %s, want a(0),b(1),c(2)", got)
	}
}

func TestCreate(t *testing.T) {
	s := New(nil, WithIDGenerator(seqIDs()))

	task, ok := s.Create("  Buy milk  ", models.StringPtr("2026-03-01"))
	if !ok {
		t.Fatal("Create returned false")
	}
	if task.Text != "Buy milk" {
		t.Errorf("Text = %q, want trimmed", task.Text)
	}
	if task.Order != 0 {
		t.Errorf("first Order = %d, want 0", task.Order)
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}
	if task.Due() != "2026-03-01" {
		t.Errorf("Due = %q", task.Due())
	}

	second, _ := s.Create("Walk dog", nil)
	if second.Order != 1 {
		t.Errorf("second Order = %d, want 1", second.Order)
	}
	if second.DueDate != nil {
		t.Error("nil due should stay absent")
	}
	if second.ID == task.ID {
		t.Error("ids must be unique")
	}
}

func TestCreateBlankIsNoop(t *testing.T) {
	calls := 0
	s := New(abc(), WithOnChange(func() { calls++ }))

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, ok := s.Create(text, nil); ok {
			t.Errorf("Create(%q) applied", text)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
	if calls != 0 {
		t.Errorf("onChange called %d times for no-ops", calls)
	}
}

func TestCreateUsesMaxOrderAfterGap(t *testing.T) {
	s := New(abc(), WithIDGenerator(seqIDs()))
	s.Remove("b")

	task, _ := s.Create("D", nil)
	if task.Order != 3 {
		t.Errorf("Order = %d, want max+1 = 3", task.Order)
	}
}

func TestCreateBlankDueIsAbsent(t *testing.T) {
	s := New(nil)
	task, _ := s.Create("x", models.StringPtr("  "))
	if task.DueDate != nil {
		t.Errorf("blank due = %q, want absent", *task.DueDate)
	}
}

func TestUpdate(t *testing.T) {
	s := New(abc())

	if !s.Update("b", " New B ", models.StringPtr("2026-01-02")) {
		t.Fatal("Update returned false")
	}
	got, _ := s.Get("b")
	if got.Text != "New B" || got.Due() != "2026-01-02" {
		t.Errorf("got %+v", got)
	}
}

func TestUpdateBlankTextKeepsTextButSetsDue(t *testing.T) {
	s := New(abc())

	s.Update("a", "   ", models.StringPtr("2026-05-05"))
	got, _ := s.Get("a")
	if got.Text != "A" {
		t.Errorf("Text = %q, want unchanged", got.Text)
	}
	if got.Due() != "2026-05-05" {
		t.Errorf("Due = %q, want updated", got.Due())
	}

	s.Update("a", "", models.StringPtr(""))
	got, _ = s.Get("a")
	if got.DueDate != nil {
		t.Error("blank due should clear the date")
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	calls := 0
	s := New(abc(), WithOnChange(func() { calls++ }))
	before := ids(s.Tasks())

	if s.Update("zz", "x", nil) {
		t.Error("Update applied")
	}
	if s.Remove("zz") {
		t.Error("Remove applied")
	}
	if s.ToggleComplete("zz") {
		t.Error("ToggleComplete applied")
	}
	if s.ReorderByMove("zz", "a") || s.ReorderByMove("a", "zz") {
		t.Error("ReorderByMove applied")
	}
	if s.MoveAdjacent("zz", 1) {
		t.Error("MoveAdjacent applied")
	}

	if after := ids(s.Tasks()); after != before {
		t.Errorf("collection changed: %s -> %s", before, after)
	}
	if calls != 0 {
		t.Errorf("onChange called %d times", calls)
	}
}

func TestRemoveLeavesGap(t *testing.T) {
	s := New(abc())
	if !s.Remove("b") {
		t.Fatal("Remove returned false")
	}
	if got := ids(s.Tasks()); got != "a(0),c(2)" {
		t.Errorf("Tasks() = %s, want a(0),c(2)", got)
	}
}

func TestToggleComplete(t *testing.T) {
	s := New(abc())
	s.ToggleComplete("a")
	if got, _ := s.Get("a"); !got.Completed {
		t.Error("expected completed")
	}
	s.ToggleComplete("a")
	if got, _ := s.Get("a"); got.Completed {
		t.Error("expected active again")
	}
}

func TestClearCompleted(t *testing.T) {
	tasks := abc()
	tasks[1].Completed = true
	s := New(tasks)

	if !s.ClearCompleted() {
		t.Fatal("ClearCompleted returned false")
	}
	if got := ids(s.Tasks()); got != "a(0),c(1)" {
		t.Errorf("Tasks() = %s, want a(0),c(1)", got)
	}
}

func TestClearCompletedRenumbersAfterRemove(t *testing.T) {
	calls := 0
	s := New(nil, WithIDGenerator(seqIDs()), WithOnChange(func() { calls++ }))
	s.Create("a", nil)
	s.Create("b", nil)
	s.Create("c", nil)
	s.Remove("id-2")
	calls = 0

	if !s.ClearCompleted() {
		t.Error("ClearCompleted should apply when it closes an order gap")
	}
	if got := ids(s.Tasks()); got != "id-1(0),id-3(1)" {
		t.Errorf("Tasks() = %s, want id-1(0),id-3(1)", got)
	}
	if calls != 1 {
		t.Errorf("onChange calls = %d, want 1", calls)
	}
}

func TestClearCompletedNoOpWhenDense(t *testing.T) {
	calls := 0
	s := New(abc(), WithOnChange(func() { calls++ }))
	if s.ClearCompleted() {
		t.Error("ClearCompleted applied with nothing to remove or renumber")
	}
	if calls != 0 {
		t.Error("onChange should not fire")
	}
}

func TestReorderByMove(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		target string
		want   string
		ok     bool
	}{
		{"move last before first", "c", "a", "c(0),a(1),b(2)", true},
		{"move first before last", "a", "c", "b(0),a(1),c(2)", true},
		{"move to neighbour above", "b", "a", "b(0),a(1),c(2)", true},
		{"move before next is identity", "a", "b", "a(0),b(1),c(2)", true},
		{"same id", "b", "b", "a(0),b(1),c(2)", false},
		{"unknown target", "a", "x", "a(0),b(1),c(2)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(abc())
			if ok := s.ReorderByMove(tt.id, tt.target); ok != tt.ok {
				t.Errorf("ReorderByMove ok = %v, want %v", ok, tt.ok)
			}
			if got := ids(s.Tasks()); got != tt.want {
				t.Errorf("Tasks() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMoveAdjacent(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		direction int
		want      string
		ok        bool
	}{
		{"up swaps", "b", -1, "b(0),a(1),c(2)", true},
		{"down swaps", "b", 1, "a(0),c(1),b(2)", true},
		{"first up out of bounds", "a", -1, "a(0),b(1),c(2)", false},
		{"last down out of bounds", "c", 1, "a(0),b(1),c(2)", false},
		{"invalid direction", "b", 2, "a(0),b(1),c(2)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(abc())
			if ok := s.MoveAdjacent(tt.id, tt.direction); ok != tt.ok {
				t.Errorf("MoveAdjacent ok = %v, want %v", ok, tt.ok)
			}
			if got := ids(s.Tasks()); got != tt.want {
				t.Errorf("Tasks() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMoveAdjacentRenormalizesGap(t *testing.T) {
	s := New(abc())
	s.Remove("b")
	s.MoveAdjacent("c", -1)
	if got := ids(s.Tasks()); got != "c(0),a(1)" {
		t.Errorf("Tasks() = %s, want c(0),a(1)", got)
	}
}

func TestOrderStaysDenseAcrossOperations(t *testing.T) {
	s := New(nil, WithIDGenerator(seqIDs()))
	for i := 0; i < 6; i++ {
		s.Create(fmt.Sprintf("task %d", i), nil)
		assertDense(t, s)
	}

	s.ToggleComplete("id-2")
	s.ToggleComplete("id-5")
	s.ReorderByMove("id-6", "id-1")
	assertDense(t, s)
	s.MoveAdjacent("id-3", 1)
	assertDense(t, s)
	s.Remove("id-4")
	s.ClearCompleted()
	assertDense(t, s)
	s.ReorderByMove("id-3", "id-6")
	assertDense(t, s)

	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := New([]models.Task{{ID: "a", Text: "A", DueDate: models.StringPtr("2026-01-01")}})

	snap := s.Tasks()
	snap[0].Text = "changed"
	*snap[0].DueDate = "1999-01-01"

	got, _ := s.Get("a")
	if got.Text != "A" || got.Due() != "2026-01-01" {
		t.Errorf("store mutated through snapshot: %+v", got)
	}
}

func TestResolve(t *testing.T) {
	s := New([]models.Task{
		{ID: "abc123", Order: 0},
		{ID: "abd456", Order: 1},
		{ID: "ab", Order: 2},
	})

	tests := []struct {
		ref     string
		want    string
		matches int
	}{
		{"abc123", "abc123", 1},
		{"abc", "abc123", 1},
		{"abd", "abd456", 1},
		{"ab", "ab", 1}, // exact id wins over prefix matches
		{"a", "", 3},
		{"zz", "", 0},
		{"", "", 0},
	}
	for _, tt := range tests {
		got, matches := s.Resolve(tt.ref)
		if got != tt.want || matches != tt.matches {
			t.Errorf("Resolve(%q) = %q, %d; want %q, %d", tt.ref, got, matches, tt.want, tt.matches)
		}
	}
}

func TestOnChangeFiresOncePerMutation(t *testing.T) {
	calls := 0
	s := New(abc(), WithIDGenerator(seqIDs()), WithOnChange(func() { calls++ }))

	s.Create("d", nil)
	s.Update("a", "A2", nil)
	s.ToggleComplete("a")
	s.MoveAdjacent("b", 1)
	s.ReorderByMove("c", "a")
	s.ClearCompleted()
	s.Remove("b")

	if calls != 7 {
		t.Errorf("onChange calls = %d, want 7", calls)
	}
}

func TestActiveCount(t *testing.T) {
	tasks := abc()
	tasks[0].Completed = true
	s := New(tasks)
	if got := s.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount = %d, want 2", got)
	}
}
