package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/klokku/agenda/internal/rest"
	"github.com/klokku/agenda/pkg/schedule"
)

type Handler struct {
	notifier *Notifier
}

type notificationsResponse struct {
	Notifications []schedule.Notification `json:"notifications"`
}

func NewHandler(notifier *Notifier) *Handler {
	return &Handler{notifier: notifier}
}

// ListActive godoc
// @Summary Active notifications
// @Description Delivered notifications not dismissed yet, oldest first
// @Tags Notifications
// @Produce json
// @Success 200 {object} notificationsResponse
// @Router /api/notifications [get]
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, notificationsResponse{Notifications: h.notifier.Active()})
}

// Dismiss godoc
// @Summary Dismiss a notification
// @Description Remove the active notification at index. The event is not notified again
// @Tags Notifications
// @Produce json
// @Param index path int true "Position in the active list"
// @Success 200 {object} notificationsResponse
// @Failure 400 {object} rest.ErrorResponse "Invalid notification index"
// @Failure 404 {object} rest.ErrorResponse "Notification not found"
// @Router /api/notifications/{index} [delete]
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid notification index", "'index' must be a number")
		return
	}
	if err := h.notifier.Dismiss(index); err != nil {
		if errors.Is(err, ErrNoSuchNotification) {
			rest.WriteError(w, http.StatusNotFound, "Notification not found", err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, "Failed to dismiss notification", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, notificationsResponse{Notifications: h.notifier.Active()})
}
