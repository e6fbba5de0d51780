package schedule

import (
	"fmt"
	"slices"
	"time"

	"github.com/klokku/agenda/pkg/event"
)

type Notification struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// State is the notification lifecycle of a single event within a session.
type State string

const (
	StatePending  State = "pending"
	StateDue      State = "due"
	StateNotified State = "notified"
	// StateExpired covers events whose start has passed without a notification,
	// and events whose range cannot be parsed.
	StateExpired State = "expired"
)

func NotificationMessage(e event.Event) string {
	return fmt.Sprintf("%d분 후 %s 일정이 시작됩니다.", e.NotificationTime, e.Title)
}

// DueNotifications returns, in input order, a notification for every event
// whose lead window [start - notificationTime, start) contains now and whose id
// is not in notified. The ledger is only read; callers record the result.
func DueNotifications(events []event.Event, now time.Time, notified *Ledger) []Notification {
	due := make([]Notification, 0)
	for _, e := range events {
		if notified.Has(e.ID) || !isDue(e, now) {
			continue
		}
		due = append(due, Notification{ID: e.ID, Message: NotificationMessage(e)})
	}
	return due
}

func NotificationState(e event.Event, now time.Time, notified *Ledger) State {
	if notified.Has(e.ID) {
		return StateNotified
	}
	start := EventToRange(e).Start
	if !start.Valid() {
		return StateExpired
	}
	if isDue(e, now) {
		return StateDue
	}
	if InstantOf(now).Before(start) {
		return StatePending
	}
	return StateExpired
}

func isDue(e event.Event, now time.Time) bool {
	start := EventToRange(e).Start
	if !start.Valid() {
		return false
	}
	at := InstantOf(now)
	notifyAt := start.Add(-time.Duration(e.NotificationTime) * time.Minute)
	return !at.Before(notifyAt) && at.Before(start)
}

// Ledger is the set of event ids already notified in the current session.
// It only grows; a new session starts with a new Ledger. A nil *Ledger reads
// as empty.
type Ledger struct {
	ids map[string]struct{}
}

func NewLedger(ids ...string) *Ledger {
	l := &Ledger{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		l.ids[id] = struct{}{}
	}
	return l
}

func (l *Ledger) Has(id string) bool {
	if l == nil {
		return false
	}
	_, ok := l.ids[id]
	return ok
}

func (l *Ledger) Record(id string) {
	if l.ids == nil {
		l.ids = make(map[string]struct{})
	}
	l.ids[id] = struct{}{}
}

func (l *Ledger) RecordAll(notifications []Notification) {
	for _, n := range notifications {
		l.Record(n.ID)
	}
}

func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.ids)
}

// IDs returns the recorded ids sorted.
func (l *Ledger) IDs() []string {
	if l == nil {
		return []string{}
	}
	ids := make([]string, 0, len(l.ids))
	for id := range l.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
