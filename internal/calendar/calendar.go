// Package calendar maps a (view kind, anchor date) pair to the half-open
// time range [start, end) used by the task listing queries.
package calendar

import (
	"fmt"
	"time"
)

type ViewKind string

const (
	ViewDay   ViewKind = "day"
	ViewWeek  ViewKind = "week"
	ViewMonth ViewKind = "month"
	ViewYear  ViewKind = "year"
)

// Accepted anchor date layouts, most specific first.
var anchorLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseAnchor parses an anchor date string in one of the accepted layouts.
func ParseAnchor(value string) (time.Time, error) {
	for _, layout := range anchorLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized anchor date %q", value)
}

// Resolve returns the [start, end) range for a view anchored at the given
// time. Month and year boundaries use calendar arithmetic, so December rolls
// into January and leap Februaries end exactly at March 1. ok is false for an
// unknown view kind.
func Resolve(kind ViewKind, anchor time.Time) (start, end time.Time, ok bool) {
	switch kind {
	case ViewDay:
		start = startOfDay(anchor)
		return start, start.AddDate(0, 0, 1), true
	case ViewWeek:
		// Monday is day zero of the week.
		start = startOfDay(anchor)
		offset := (int(start.Weekday()) + 6) % 7
		start = start.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), true
	case ViewMonth:
		start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return start, start.AddDate(0, 1, 0), true
	case ViewYear:
		start = time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
		return start, start.AddDate(1, 0, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
