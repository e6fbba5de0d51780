package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/klokku/agenda/pkg/event"
)

type View string

const (
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

func ParseView(s string) (View, error) {
	switch View(strings.ToLower(s)) {
	case ViewWeek:
		return ViewWeek, nil
	case ViewMonth:
		return ViewMonth, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// DefaultWeekStart is used by FilterEvents.
const DefaultWeekStart = time.Sunday

// Window returns the first and last day (local midnight, both inclusive) of the
// week or month containing reference.
func Window(reference time.Time, view View, weekStart time.Weekday) (time.Time, time.Time) {
	day := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.Local)
	if view == ViewMonth {
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.Local)
		return first, first.AddDate(0, 1, -1)
	}

	if weekStart < time.Sunday || weekStart > time.Saturday {
		weekStart = DefaultWeekStart
	}
	delta := (int(day.Weekday()) - int(weekStart) + 7) % 7
	first := day.AddDate(0, 0, -delta)
	return first, first.AddDate(0, 0, 6)
}

// FilterEvents keeps the events dated inside the view window around reference
// (Sunday-start weeks) that match query.
func FilterEvents(events []event.Event, query string, reference time.Time, view View) []event.Event {
	return FilterEventsWithWeekStart(events, query, reference, view, DefaultWeekStart)
}

func FilterEventsWithWeekStart(events []event.Event, query string, reference time.Time, view View, weekStart time.Weekday) []event.Event {
	from, to := Window(reference, view, weekStart)
	first, last := InstantOf(from), InstantOf(to)
	needle := strings.ToLower(query)

	filtered := make([]event.Event, 0)
	for _, e := range events {
		date := ParseDate(e.Date)
		if !date.Valid() || date.Before(first) || date.After(last) {
			continue
		}
		if needle != "" && !matches(e, needle) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// Search keeps the events matching query regardless of date.
func Search(events []event.Event, query string) []event.Event {
	needle := strings.ToLower(query)
	found := make([]event.Event, 0)
	for _, e := range events {
		if needle == "" || matches(e, needle) {
			found = append(found, e)
		}
	}
	return found
}

func matches(e event.Event, needle string) bool {
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(e.Description), needle) ||
		strings.Contains(strings.ToLower(e.Location), needle)
}
