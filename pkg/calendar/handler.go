package calendar

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/klokku/agenda/internal/rest"
	"github.com/klokku/agenda/internal/utils"
	"github.com/klokku/agenda/pkg/event"
	"github.com/klokku/agenda/pkg/ics"
	"github.com/klokku/agenda/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	calendar *Service
	clock    utils.Clock
}

type eventsResponse struct {
	Events []event.Event `json:"events"`
}

type conflictResponse struct {
	Error     string        `json:"error"`
	Conflicts []event.Event `json:"conflicts"`
}

func NewHandler(s *Service, clock utils.Clock) *Handler {
	return &Handler{calendar: s, clock: clock}
}

// ListEvents godoc
// @Summary List events
// @Description Get every stored event in insertion order
// @Tags Events
// @Produce json
// @Success 200 {object} eventsResponse
// @Failure 500 {object} rest.ErrorResponse "Failed to fetch events"
// @Router /api/events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.calendar.List(r.Context())
	if err != nil {
		log.Errorf("failed to list events: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventsResponse{Events: events})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Store a new event. Overlapping events are rejected unless force is set
// @Tags Events
// @Accept json
// @Produce json
// @Param event body event.Event true "Event"
// @Param force query bool false "Save despite overlapping events"
// @Success 201 {object} event.Event
// @Failure 400 {object} rest.ErrorResponse "Invalid event"
// @Failure 409 {object} conflictResponse "Overlapping events"
// @Router /api/events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := decodeEvent(w, r)
	if !ok {
		return
	}
	e.ID = ""

	saved, err := h.calendar.Save(r.Context(), e, isForced(r))
	if err != nil {
		h.writeSaveError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, saved)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replace a stored event. Overlapping events are rejected unless force is set
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param event body event.Event true "Event"
// @Param force query bool false "Save despite overlapping events"
// @Success 200 {object} event.Event
// @Failure 400 {object} rest.ErrorResponse "Invalid event"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Failure 409 {object} conflictResponse "Overlapping events"
// @Router /api/events/{id} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	e, ok := decodeEvent(w, r)
	if !ok {
		return
	}
	e.ID = mux.Vars(r)["id"]

	saved, err := h.calendar.Save(r.Context(), e, isForced(r))
	if err != nil {
		h.writeSaveError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, saved)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/events/{id} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.calendar.Delete(r.Context(), id); err != nil {
		if errors.Is(err, event.ErrEventNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Event not found", id)
			return
		}
		log.Errorf("failed to delete event %s: %v", id, err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to delete event", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}

// ViewEvents godoc
// @Summary Events of a week or month
// @Description Events dated in the week or month around date (today when missing) matching q
// @Tags Events
// @Produce json
// @Param date query string false "Reference date (YYYY-MM-DD)"
// @Param view query string false "week or month" default(week)
// @Param q query string false "Text matched against title, description and location"
// @Success 200 {object} eventsResponse
// @Failure 400 {object} rest.ErrorResponse "Invalid date or view"
// @Router /api/events/view [get]
func (h *Handler) ViewEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	reference := h.clock.Now()
	if date := query.Get("date"); date != "" {
		parsed := schedule.ParseDate(date)
		if !parsed.Valid() {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
			return
		}
		reference = parsed.Time()
	}

	view := schedule.ViewWeek
	if v := query.Get("view"); v != "" {
		parsed, err := schedule.ParseView(v)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid view", "'view' must be 'week' or 'month'")
			return
		}
		view = parsed
	}

	events, err := h.calendar.Search(r.Context(), query.Get("q"), reference, view)
	if err != nil {
		log.Errorf("failed to search events: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventsResponse{Events: events})
}

// SearchEvents godoc
// @Summary Search all events
// @Description Events of any date whose title, description or location contains q
// @Tags Events
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} eventsResponse
// @Failure 500 {object} rest.ErrorResponse "Failed to fetch events"
// @Router /api/events/search [get]
func (h *Handler) SearchEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.calendar.SearchAll(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Errorf("failed to search events: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, eventsResponse{Events: events})
}

// FindConflicts godoc
// @Summary Overlapping events
// @Description Stored events overlapping the posted candidate
// @Tags Events
// @Accept json
// @Produce json
// @Param event body event.Event true "Candidate event"
// @Success 200 {object} object{conflicts=[]event.Event}
// @Failure 400 {object} rest.ErrorResponse "Invalid request body"
// @Router /api/events/conflicts [post]
func (h *Handler) FindConflicts(w http.ResponseWriter, r *http.Request) {
	e, ok := decodeEvent(w, r)
	if !ok {
		return
	}
	conflicts, err := h.calendar.Conflicts(r.Context(), e)
	if err != nil {
		log.Errorf("failed to find conflicts: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string][]event.Event{"conflicts": conflicts})
}

// ExportICS godoc
// @Summary Export events as iCalendar
// @Tags Events
// @Produce text/calendar
// @Success 200 {string} string "VCALENDAR document"
// @Failure 500 {object} rest.ErrorResponse "Failed to export events"
// @Router /api/events.ics [get]
func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	events, err := h.calendar.List(r.Context())
	if err != nil {
		log.Errorf("failed to list events: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to fetch events", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := ics.Write(&buf, events, h.clock.Now()); err != nil {
		log.Errorf("failed to export events: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to export events", err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Errorf("failed to write ics response: %v", err)
	}
}

func (h *Handler) writeSaveError(w http.ResponseWriter, err error) {
	var conflict *ConflictError
	switch {
	case errors.As(err, &conflict):
		rest.WriteJSON(w, http.StatusConflict, conflictResponse{Error: conflict.Error(), Conflicts: conflict.Conflicts})
	case errors.Is(err, ErrInvalidEvent):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
	case errors.Is(err, event.ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", err.Error())
	default:
		log.Errorf("failed to save event: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, "Failed to save event", err.Error())
	}
}

func decodeEvent(w http.ResponseWriter, r *http.Request) (event.Event, bool) {
	var e event.Event
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return event.Event{}, false
	}
	return e, true
}

func isForced(r *http.Request) bool {
	force, err := strconv.ParseBool(r.URL.Query().Get("force"))
	return err == nil && force
}
