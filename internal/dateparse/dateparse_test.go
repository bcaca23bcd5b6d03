package dateparse

import (
	"testing"
	"time"
)

// Wednesday, 2026-02-18 12:00:00 UTC
var testNow = time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2026-03-01", "2026-03-01"},
		{"  2025-12-31 ", "2025-12-31"},
		{"today", "2026-02-18"},
		{"TOMORROW", "2026-02-19"},
		{"yesterday", "2026-02-17"},
		{"next-week", "2026-02-23"},
		{"next-month", "2026-03-01"},
		{"+0d", "2026-02-18"},
		{"+10d", "2026-02-28"},
		{"3d", "2026-02-21"},
		{"+2w", "2026-03-04"},
		{"+1m", "2026-03-18"},
		{"friday", "2026-02-20"},
		{"fri", "2026-02-20"},
		{"Monday", "2026-02-23"},
		// same weekday rolls a full week
		{"wed", "2026-02-25"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input, testNow)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseMonthEndOverflow(t *testing.T) {
	jan31 := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	got, err := Parse("+1m", jan31)
	if err != nil {
		t.Fatal(err)
	}
	// Go normalizes Feb 31 to Mar 3
	if got != "2026-03-03" {
		t.Errorf("Parse(+1m) from Jan 31 = %q", got)
	}
}

func TestParseNextMonthFromDecember(t *testing.T) {
	dec := time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)
	got, _ := Parse("next-month", dec)
	if got != "2027-01-01" {
		t.Errorf("next-month from December = %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "   ", "soon", "+3y", "2026-02-30", "+-1d", "05/01/2026"} {
		if got, err := Parse(input, testNow); err == nil {
			t.Errorf("Parse(%q) = %q, want error", input, got)
		}
	}
}

func TestParseDue(t *testing.T) {
	got, err := ParseDue("  ", testNow)
	if err != nil || got != nil {
		t.Errorf("ParseDue(blank) = %v, %v; want nil, nil", got, err)
	}

	got, err = ParseDue("tomorrow", testNow)
	if err != nil || got == nil || *got != "2026-02-19" {
		t.Errorf("ParseDue(tomorrow) = %v, %v", got, err)
	}

	if _, err := ParseDue("whenever", testNow); err == nil {
		t.Error("ParseDue(whenever) should fail")
	}
}

func TestValid(t *testing.T) {
	if !Valid("2024-02-29") {
		t.Error("leap day should be valid")
	}
	if Valid("2023-02-29") || Valid("tomorrow") {
		t.Error("invalid dates accepted")
	}
}
