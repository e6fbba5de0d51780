package event_bus

const (
	CalendarEventCreated EventType = "calendar.event.created"
	CalendarEventUpdated EventType = "calendar.event.updated"
	CalendarEventDeleted EventType = "calendar.event.deleted"
	NotificationEmitted  EventType = "notification.emitted"
)

// CalendarEventChanged is published after an event was stored, modified or removed.
type CalendarEventChanged struct {
	ID    string
	Title string
	Date  string
}

type NotificationDelivered struct {
	EventID string
	Message string
}
