package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klokku/agenda/internal/config"
	"github.com/klokku/agenda/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Application {
	cfg := config.Defaults()
	cfg.Storage.Type = config.StorageMemory
	return cfg
}

func TestApplication_EventLifecycle(t *testing.T) {
	application, err := NewApplicationWithConfig(memoryConfig())
	require.NoError(t, err)
	server := httptest.NewServer(application.Handler())
	t.Cleanup(server.Close)

	body, err := json.Marshal(event.Event{
		Title:            "기존 회의",
		Date:             "2024-10-15",
		StartTime:        "09:00",
		EndTime:          "10:00",
		Category:         "업무",
		NotificationTime: 10,
	})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/events", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created event.Event
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp, err = http.Post(server.URL+"/api/events", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/events/view?date=2024-10-15&view=week")
	require.NoError(t, err)
	var view struct {
		Events []event.Event `json:"events"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	resp.Body.Close()
	assert.Equal(t, []event.Event{created}, view.Events)

	for _, path := range []string{"/api/events.ics", "/api/notifications", "/api/holidays?month=2024-01"} {
		resp, err = http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/events/"+created.ID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestApplication_RemoteStorage(t *testing.T) {
	upstream, err := NewApplicationWithConfig(memoryConfig())
	require.NoError(t, err)
	upstreamServer := httptest.NewServer(upstream.Handler())
	t.Cleanup(upstreamServer.Close)

	cfg := config.Defaults()
	cfg.Storage.Type = config.StorageRemote
	cfg.Storage.RemoteURL = upstreamServer.URL
	application, err := NewApplicationWithConfig(cfg)
	require.NoError(t, err)

	body, err := json.Marshal(event.Event{Title: "점심", Date: "2024-10-16", StartTime: "12:00", EndTime: "13:00"})
	require.NoError(t, err)
	w := httptest.NewRecorder()
	application.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, w.Code)

	events, err := upstream.deps.EventRepository.List(t.Context())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "점심", events[0].Title)
}
