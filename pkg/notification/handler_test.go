package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/agenda/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*mux.Router, *Notifier) {
	t.Helper()
	notifier, _, _, _ := setupNotifierTest(t, time.Date(2024, 10, 15, 8, 50, 1, 0, time.Local), teamMeeting())
	handler := NewHandler(notifier)

	r := mux.NewRouter()
	r.HandleFunc("/api/notifications", handler.ListActive).Methods("GET")
	r.HandleFunc("/api/notifications/{index}", handler.Dismiss).Methods("DELETE")
	return r, notifier
}

func TestHandler_ListActive(t *testing.T) {
	r, notifier := setupHandlerTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"notifications":[]}`, w.Body.String())

	notifier.Tick(context.Background())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))
	var response notificationsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, []schedule.Notification{{ID: "1", Message: "10분 후 기존 회의 일정이 시작됩니다."}}, response.Notifications)
}

func TestHandler_Dismiss(t *testing.T) {
	testCases := []struct {
		name       string
		target     string
		wantStatus int
		wantActive int
	}{
		{name: "dismissed", target: "/api/notifications/0", wantStatus: http.StatusOK, wantActive: 0},
		{name: "out of range", target: "/api/notifications/3", wantStatus: http.StatusNotFound, wantActive: 1},
		{name: "not a number", target: "/api/notifications/first", wantStatus: http.StatusBadRequest, wantActive: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, notifier := setupHandlerTest(t)
			notifier.Tick(context.Background())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, tc.target, nil))

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Len(t, notifier.Active(), tc.wantActive)
		})
	}
}
