package schedule

import (
	"regexp"
	"time"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

var (
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// Instant is a wall-clock point in time or the invalid sentinel.
// Ordering predicates never hold when either side is invalid.
type Instant struct {
	t     time.Time
	valid bool
}

// InvalidInstant is the zero Instant.
var InvalidInstant = Instant{}

func InstantOf(t time.Time) Instant {
	return Instant{t: t, valid: true}
}

// ParseInstant combines a YYYY-MM-DD date and an HH:MM clock time in
// time.Local. Any other shape yields InvalidInstant.
func ParseInstant(date, clock string) Instant {
	if !datePattern.MatchString(date) || !clockPattern.MatchString(clock) {
		return InvalidInstant
	}
	t, err := time.ParseInLocation(dateTimeLayout, date+" "+clock, time.Local)
	if err != nil {
		return InvalidInstant
	}
	return InstantOf(t)
}

// ParseDate returns local midnight of a YYYY-MM-DD date.
func ParseDate(date string) Instant {
	if !datePattern.MatchString(date) {
		return InvalidInstant
	}
	t, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return InvalidInstant
	}
	return InstantOf(t)
}

func (i Instant) Valid() bool {
	return i.valid
}

// Time returns the underlying time; the zero time for an invalid instant.
func (i Instant) Time() time.Time {
	if !i.valid {
		return time.Time{}
	}
	return i.t
}

func (i Instant) Before(other Instant) bool {
	return i.valid && other.valid && i.t.Before(other.t)
}

func (i Instant) After(other Instant) bool {
	return i.valid && other.valid && i.t.After(other.t)
}

func (i Instant) Equal(other Instant) bool {
	return i.valid && other.valid && i.t.Equal(other.t)
}

func (i Instant) Add(d time.Duration) Instant {
	if !i.valid {
		return InvalidInstant
	}
	return InstantOf(i.t.Add(d))
}

func (i Instant) String() string {
	if !i.valid {
		return "Invalid Date"
	}
	return i.t.Format(dateTimeLayout)
}
