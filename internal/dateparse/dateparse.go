// Package dateparse turns user due-date input into the YYYY-MM-DD form
// tasks persist. Relative input ("tomorrow", "+3d", "fri") is resolved
// against a reference time.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/vibrant/internal/models"
)

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseDue resolves input relative to now. Blank input means no due date
// and returns nil.
func ParseDue(input string, now time.Time) (*string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	d, err := Parse(input, now)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Parse resolves non-blank input relative to now.
//
// Accepted forms:
//   - exact dates: "2026-03-01"
//   - keywords: "today", "tomorrow", "yesterday", "next-week" (next
//     Monday), "next-month" (the 1st)
//   - offsets: "+7d", "+2w", "+1m", with or without the plus
//   - weekday names, full or abbreviated: the next occurrence, never today
func Parse(input string, now time.Time) (string, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return "", fmt.Errorf("empty date input")
	}

	if t, err := time.Parse(models.DateLayout, s); err == nil {
		return format(t), nil
	}

	switch s {
	case "today":
		return format(now), nil
	case "tomorrow":
		return format(now.AddDate(0, 0, 1)), nil
	case "yesterday":
		return format(now.AddDate(0, 0, -1)), nil
	case "next-week":
		return format(nextWeekday(now, time.Monday)), nil
	case "next-month":
		year, month, _ := now.Date()
		return format(time.Date(year, month+1, 1, 0, 0, 0, 0, now.Location())), nil
	}

	if day, ok := weekdays[s]; ok {
		return format(nextWeekday(now, day)), nil
	}

	if d, ok, err := parseOffset(s, now); ok {
		return d, err
	}

	return "", fmt.Errorf("unrecognized date %q (try YYYY-MM-DD, today, +3d, friday)", input)
}

// Valid reports whether s is already a YYYY-MM-DD calendar date
func Valid(s string) bool {
	_, err := time.Parse(models.DateLayout, s)
	return err == nil
}

// parseOffset handles [+]N{d,w,m}; ok is false when s is not offset-shaped
func parseOffset(s string, now time.Time) (string, bool, error) {
	body := strings.TrimPrefix(s, "+")
	if len(body) < 2 {
		return "", false, nil
	}
	unit := body[len(body)-1]
	n, err := strconv.Atoi(body[:len(body)-1])
	if err != nil || n < 0 {
		return "", false, nil
	}

	switch unit {
	case 'd':
		return format(now.AddDate(0, 0, n)), true, nil
	case 'w':
		return format(now.AddDate(0, 0, 7*n)), true, nil
	case 'm':
		return format(now.AddDate(0, n, 0)), true, nil
	default:
		return "", true, fmt.Errorf("unknown unit %q in %q (use d, w, or m)", string(unit), s)
	}
}

func nextWeekday(now time.Time, day time.Weekday) time.Time {
	ahead := (int(day) - int(now.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead)
}

func format(t time.Time) string {
	return t.Format(models.DateLayout)
}
