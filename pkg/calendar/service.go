package calendar

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/klokku/agenda/internal/event_bus"
	"github.com/klokku/agenda/pkg/event"
	"github.com/klokku/agenda/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidEvent = errors.New("invalid event")

// ConflictError is returned by Save when the event overlaps stored events and
// the caller did not force the save.
type ConflictError struct {
	Conflicts []event.Event
}

func (e *ConflictError) Error() string {
	titles := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		titles = append(titles, c.Title)
	}
	return fmt.Sprintf("event overlaps %d existing event(s): %s", len(e.Conflicts), strings.Join(titles, ", "))
}

type Service struct {
	repo      event.Repository
	eventBus  *event_bus.EventBus
	weekStart time.Weekday
}

func NewService(repo event.Repository, eventBus *event_bus.EventBus, weekStart time.Weekday) *Service {
	return &Service{
		repo:      repo,
		eventBus:  eventBus,
		weekStart: weekStart,
	}
}

func (s *Service) List(ctx context.Context) ([]event.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *Service) Get(ctx context.Context, id string) (event.Event, error) {
	events, err := s.List(ctx)
	if err != nil {
		return event.Event{}, err
	}
	idx := slices.IndexFunc(events, func(e event.Event) bool { return e.ID == id })
	if idx < 0 {
		return event.Event{}, event.ErrEventNotFound
	}
	return events[idx], nil
}

// Save creates the event when it has no id and replaces the stored one
// otherwise. Overlapping events block the save unless force is set.
func (s *Service) Save(ctx context.Context, e event.Event, force bool) (event.Event, error) {
	e = normalize(e)
	if err := validate(e); err != nil {
		return event.Event{}, err
	}
	if e.ID != "" {
		if _, err := s.Get(ctx, e.ID); err != nil {
			return event.Event{}, fmt.Errorf("failed to update event %s: %w", e.ID, err)
		}
	}

	conflicts, err := s.Conflicts(ctx, e)
	if err != nil {
		return event.Event{}, err
	}
	if len(conflicts) > 0 && !force {
		return event.Event{}, &ConflictError{Conflicts: conflicts}
	}
	if len(conflicts) > 0 {
		log.Infof("Saving %q despite %d overlapping event(s)", e.Title, len(conflicts))
	}

	if e.ID == "" {
		created, err := s.repo.Create(ctx, e)
		if err != nil {
			return event.Event{}, fmt.Errorf("failed to store event: %w", err)
		}
		s.publish(ctx, event_bus.CalendarEventCreated, created)
		return created, nil
	}

	updated, err := s.repo.Update(ctx, e.ID, e)
	if err != nil {
		return event.Event{}, fmt.Errorf("failed to update event %s: %w", e.ID, err)
	}
	s.publish(ctx, event_bus.CalendarEventUpdated, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	s.publish(ctx, event_bus.CalendarEventDeleted, event.Event{ID: id})
	return nil
}

// Conflicts lists the stored events overlapping candidate.
func (s *Service) Conflicts(ctx context.Context, candidate event.Event) ([]event.Event, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.FindConflicts(candidate, events), nil
}

// SearchAll returns every event matching query, whatever its date.
func (s *Service) SearchAll(ctx context.Context, query string) ([]event.Event, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.Search(events, query), nil
}

// Search returns the events of the week or month around reference matching query.
func (s *Service) Search(ctx context.Context, query string, reference time.Time, view schedule.View) ([]event.Event, error) {
	events, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return schedule.FilterEventsWithWeekStart(events, query, reference, view, s.weekStart), nil
}

func (s *Service) publish(ctx context.Context, eventType event_bus.EventType, e event.Event) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.CalendarEventChanged{
		ID:    e.ID,
		Title: e.Title,
		Date:  e.Date,
	}))
	if err != nil {
		// the change is already stored
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}

func normalize(e event.Event) event.Event {
	e.Title = strings.TrimSpace(e.Title)
	if e.Category == "" {
		e.Category = event.Categories[0]
	}
	if e.Repeat.Type == "" {
		e.Repeat.Type = event.RepeatNone
	}
	if e.Repeat.Type != event.RepeatNone && e.Repeat.Interval == 0 {
		e.Repeat.Interval = 1
	}
	return e
}

func validate(e event.Event) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if err := schedule.ValidateTimes(e.Date, e.StartTime, e.EndTime); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	if !event.IsKnownCategory(e.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEvent, e.Category)
	}
	if !event.IsKnownRepeatType(e.Repeat.Type) {
		return fmt.Errorf("%w: unknown repeat type %q", ErrInvalidEvent, e.Repeat.Type)
	}
	if e.Repeat.Interval < 0 {
		return fmt.Errorf("%w: repeat interval must not be negative", ErrInvalidEvent)
	}
	if e.NotificationTime != 0 && !slices.Contains(event.NotificationOptions, e.NotificationTime) {
		return fmt.Errorf("%w: notification time must be one of %v minutes", ErrInvalidEvent, event.NotificationOptions)
	}
	return nil
}
