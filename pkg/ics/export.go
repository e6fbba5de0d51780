package ics

import (
	"fmt"
	"io"
	"time"

	goical "github.com/emersion/go-ical"
	"github.com/klokku/agenda/pkg/event"
	"github.com/klokku/agenda/pkg/schedule"
	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

const productID = "-//agenda//Calendar Export//KO"

var frequencies = map[event.RepeatType]rrule.Frequency{
	event.RepeatDaily:   rrule.DAILY,
	event.RepeatWeekly:  rrule.WEEKLY,
	event.RepeatMonthly: rrule.MONTHLY,
	event.RepeatYearly:  rrule.YEARLY,
}

// Export builds a VCALENDAR with one VEVENT per event. Events whose date or
// times do not parse are left out.
func Export(events []event.Event, now time.Time) *goical.Calendar {
	cal := goical.NewCalendar()
	cal.Props.SetText(goical.PropVersion, "2.0")
	cal.Props.SetText(goical.PropProductID, productID)

	for _, e := range events {
		r := schedule.EventToRange(e)
		if !r.Valid() {
			log.Debugf("skipping event %s in ics export: invalid time range", e.ID)
			continue
		}
		cal.Children = append(cal.Children, toVEvent(e, r, now).Component)
	}
	return cal
}

func Write(w io.Writer, events []event.Event, now time.Time) error {
	if err := goical.NewEncoder(w).Encode(Export(events, now)); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func toVEvent(e event.Event, r schedule.Range, now time.Time) *goical.Event {
	vevent := goical.NewEvent()
	vevent.Props.SetText(goical.PropUID, e.ID+"@agenda")
	vevent.Props.SetText(goical.PropSummary, e.Title)
	vevent.Props.SetDateTime(goical.PropDateTimeStamp, now.UTC())
	vevent.Props.SetDateTime(goical.PropDateTimeStart, r.Start.Time().UTC())
	vevent.Props.SetDateTime(goical.PropDateTimeEnd, r.End.Time().UTC())

	if e.Description != "" {
		vevent.Props.SetText(goical.PropDescription, e.Description)
	}
	if e.Location != "" {
		vevent.Props.SetText(goical.PropLocation, e.Location)
	}
	if e.Category != "" {
		vevent.Props.SetText(goical.PropCategories, e.Category)
	}
	if freq, ok := frequencies[e.Repeat.Type]; ok {
		interval := e.Repeat.Interval
		if interval < 1 {
			interval = 1
		}
		vevent.Props.SetRecurrenceRule(&rrule.ROption{Freq: freq, Interval: interval})
	}
	if e.NotificationTime > 0 {
		vevent.Children = append(vevent.Children, alarm(e))
	}
	return vevent
}

func alarm(e event.Event) *goical.Component {
	valarm := goical.NewComponent(goical.CompAlarm)
	valarm.Props.SetText(goical.PropAction, "DISPLAY")
	valarm.Props.SetText(goical.PropDescription, schedule.NotificationMessage(e))

	trigger := goical.NewProp(goical.PropTrigger)
	trigger.SetValueType(goical.ValueDuration)
	trigger.Value = fmt.Sprintf("-PT%dM", e.NotificationTime)
	valarm.Props.Set(trigger)
	return valarm
}
