package schedule

import "github.com/klokku/agenda/pkg/event"

// Range is the [Start, End) span of an event on its date.
type Range struct {
	Start Instant
	End   Instant
}

func (r Range) Valid() bool {
	return r.Start.Valid() && r.End.Valid()
}

// EventToRange converts an event into its time range. If either end fails to
// parse, both ends are invalid.
func EventToRange(e event.Event) Range {
	start := ParseInstant(e.Date, e.StartTime)
	end := ParseInstant(e.Date, e.EndTime)
	if !start.Valid() || !end.Valid() {
		return Range{Start: InvalidInstant, End: InvalidInstant}
	}
	return Range{Start: start, End: end}
}

// Overlaps reports whether two events share any time. Touching ranges and
// events with invalid ranges never overlap.
func Overlaps(a, b event.Event) bool {
	ra, rb := EventToRange(a), EventToRange(b)
	if !ra.Valid() || !rb.Valid() {
		return false
	}
	return ra.Start.Before(rb.End) && rb.Start.Before(ra.End)
}

// FindConflicts returns, in input order, every existing event other than the
// candidate itself that overlaps the candidate.
func FindConflicts(candidate event.Event, existing []event.Event) []event.Event {
	conflicts := make([]event.Event, 0)
	for _, e := range existing {
		if candidate.ID != "" && e.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, e) {
			conflicts = append(conflicts, e)
		}
	}
	return conflicts
}
