package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events
	r.HandleFunc("/api/events", deps.CalendarHandler.ListEvents).Methods("GET")
	r.HandleFunc("/api/events", deps.CalendarHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/events/view", deps.CalendarHandler.ViewEvents).Methods("GET")
	r.HandleFunc("/api/events/search", deps.CalendarHandler.SearchEvents).Methods("GET")
	r.HandleFunc("/api/events/conflicts", deps.CalendarHandler.FindConflicts).Methods("POST")
	r.HandleFunc("/api/events.ics", deps.CalendarHandler.ExportICS).Methods("GET")
	r.HandleFunc("/api/events/{id}", deps.CalendarHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/events/{id}", deps.CalendarHandler.DeleteEvent).Methods("DELETE")

	// Notifications
	r.HandleFunc("/api/notifications", deps.NotificationHandler.ListActive).Methods("GET")
	r.HandleFunc("/api/notifications/{index}", deps.NotificationHandler.Dismiss).Methods("DELETE")

	// Holidays
	r.HandleFunc("/api/holidays", deps.HolidayHandler.GetHolidays).Methods("GET")
}
