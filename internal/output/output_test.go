package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/marcus/vibrant/internal/models"
)

var testNow = time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

func TestShortID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0f8fad5b-d9cb-469f-a165-70867728950e", "0f8fad5b"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortID(tt.in); got != tt.want {
			t.Errorf("ShortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsOverdue(t *testing.T) {
	tests := []struct {
		due  string
		want bool
	}{
		{"2026-02-17", true},
		{"2026-02-18", false},
		{"2026-03-01", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := IsOverdue(tt.due, testNow); got != tt.want {
			t.Errorf("IsOverdue(%q) = %v, want %v", tt.due, got, tt.want)
		}
	}
}

func TestFormatDue(t *testing.T) {
	if got := FormatDue(models.Task{}, testNow); got != "" {
		t.Errorf("FormatDue(no due) = %q", got)
	}

	open := models.Task{DueDate: models.StringPtr("2026-01-01")}
	if got := FormatDue(open, testNow); !strings.Contains(got, "overdue") {
		t.Errorf("open past-due task = %q, want overdue marker", got)
	}

	done := models.Task{DueDate: models.StringPtr("2026-01-01"), Completed: true}
	if got := FormatDue(done, testNow); strings.Contains(got, "overdue") {
		t.Errorf("completed task = %q, must not be overdue", got)
	}
}

func TestFormatTaskShort(t *testing.T) {
	task := models.Task{
		ID:      "0f8fad5b-d9cb-469f-a165-70867728950e",
		Text:    "write report",
		DueDate: models.StringPtr("2026-03-01"),
	}
	got := FormatTaskShort(task, testNow)

	for _, want := range []string{"○", "0f8fad5b", "write report", "due 2026-03-01"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatTaskShort = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "d9cb") {
		t.Errorf("FormatTaskShort = %q, should show short id", got)
	}

	task.Completed = true
	if got := FormatTaskShort(task, testNow); !strings.Contains(got, "✓") {
		t.Errorf("completed task = %q, want check mark", got)
	}
}

func TestTaskOneLiner(t *testing.T) {
	got := TaskOneLiner(models.Task{ID: "abcdef0123", Text: `say "hi"`})
	if got != `abcdef01 "say \"hi\""` {
		t.Errorf("TaskOneLiner = %s", got)
	}
}

func TestFormatView(t *testing.T) {
	v := models.View{
		Tasks:       []models.Task{{ID: "a", Text: "one"}, {ID: "b", Text: "two"}},
		ActiveCount: 2,
		Mode:        models.FilterActive,
	}
	got := FormatView(v, testNow)
	if !strings.Contains(got, "one") || !strings.Contains(got, "two") {
		t.Errorf("FormatView = %q", got)
	}
	if !strings.Contains(got, "2 tasks left") || !strings.Contains(got, "filter: active") {
		t.Errorf("footer missing from %q", got)
	}
	if strings.Index(got, "one") > strings.Index(got, "two") {
		t.Error("tasks out of order")
	}

	empty := FormatView(models.View{Mode: models.FilterAll}, testNow)
	if !strings.Contains(empty, "No tasks") || !strings.Contains(empty, "0 tasks left") {
		t.Errorf("empty view = %q", empty)
	}
}

func TestMarkdownView(t *testing.T) {
	v := models.View{
		Tasks: []models.Task{
			{ID: "a", Text: "ship *it*"},
			{ID: "b", Text: "done thing", Completed: true, DueDate: models.StringPtr("2026-01-02")},
		},
		ActiveCount: 1,
		Mode:        models.FilterAll,
	}
	got := MarkdownView(v)

	for _, want := range []string{
		"# Tasks (all)",
		`- [ ] ship \*it\*`,
		"- [x] done thing _(due 2026-01-02)_",
		"1 task left",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("MarkdownView missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderMarkdownWithWidth(t *testing.T) {
	got, err := RenderMarkdownWithWidth("# Tasks\n\n- one\n", models.ThemeDark, 10)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(got, "Tasks") || !strings.Contains(got, "one") {
		t.Errorf("rendered = %q", got)
	}

	empty, err := RenderMarkdownWithWidth("   ", models.ThemeLight, 80)
	if err != nil || empty != "" {
		t.Errorf("blank render = %q, %v", empty, err)
	}
}

func TestMessagesUseWriter(t *testing.T) {
	var buf bytes.Buffer
	defer SetWriter(&buf)()

	Success("added %s", "x")
	Warning("careful")
	Error("broke")
	Info("plain")

	got := buf.String()
	for _, want := range []string{"added x", "Warning: careful", "ERROR: broke", "plain"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q in %q", want, got)
		}
	}
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	defer SetWriter(&buf)()

	JSONError(ErrCodeNotFound, `no task "x"`)

	var got struct {
		Error struct{ Code, Message string }
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if got.Error.Code != "not_found" || got.Error.Message != `no task "x"` {
		t.Errorf("JSONError = %+v", got)
	}
}

func TestPrinterModes(t *testing.T) {
	v := models.View{
		Tasks:       []models.Task{{ID: "a", Text: "alpha", Order: 0}},
		ActiveCount: 1,
		Mode:        models.FilterAll,
		Theme:       models.ThemeLight,
	}
	now := func() time.Time { return testNow }

	var buf bytes.Buffer
	restore := SetWriter(&buf)
	defer restore()

	Printer{Mode: ModeShort, Now: now}.Render(v)
	if !strings.Contains(buf.String(), "alpha") || !strings.Contains(buf.String(), "1 task left") {
		t.Errorf("short = %q", buf.String())
	}

	buf.Reset()
	Printer{Mode: ModeJSON}.Render(v)
	var decoded models.View
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json mode output invalid: %v", err)
	}
	if len(decoded.Tasks) != 1 || decoded.Tasks[0].Text != "alpha" || decoded.ActiveCount != 1 {
		t.Errorf("decoded = %+v", decoded)
	}

	buf.Reset()
	Printer{Mode: ModeMarkdown}.Render(v)
	if !strings.Contains(buf.String(), "alpha") {
		t.Errorf("markdown = %q", buf.String())
	}
}
