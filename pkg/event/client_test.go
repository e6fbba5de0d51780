package event

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventsServer mimics the remote events API on top of a RepositoryStub.
func fakeEventsServer(t *testing.T, repo *RepositoryStub) *httptest.Server {
	r := mux.NewRouter()
	r.HandleFunc("/api/events", func(w http.ResponseWriter, req *http.Request) {
		events, _ := repo.List(req.Context())
		_ = json.NewEncoder(w).Encode(listResponse{Events: events})
	}).Methods("GET")
	r.HandleFunc("/api/events", func(w http.ResponseWriter, req *http.Request) {
		var e Event
		require.NoError(t, json.NewDecoder(req.Body).Decode(&e))
		created, _ := repo.Create(req.Context(), e)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	}).Methods("POST")
	r.HandleFunc("/api/events/{id}", func(w http.ResponseWriter, req *http.Request) {
		var e Event
		require.NoError(t, json.NewDecoder(req.Body).Decode(&e))
		updated, err := repo.Update(req.Context(), mux.Vars(req)["id"], e)
		if err != nil {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(updated)
	}).Methods("PUT")
	r.HandleFunc("/api/events/{id}", func(w http.ResponseWriter, req *http.Request) {
		if err := repo.Delete(req.Context(), mux.Vars(req)["id"]); err != nil {
			http.Error(w, "Event not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Event deleted"})
	}).Methods("DELETE")

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func meeting(title string) Event {
	return Event{
		Title:            title,
		Date:             "2024-10-15",
		StartTime:        "09:00",
		EndTime:          "10:00",
		Description:      "기존 팀 미팅",
		Location:         "회의실 B",
		Category:         "업무",
		Repeat:           Repeat{Type: RepeatNone},
		NotificationTime: 10,
	}
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryStub()
	client := NewClient(fakeEventsServer(t, repo).URL, nil)

	// empty store
	events, err := client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	// create
	created, err := client.Create(ctx, meeting("기존 회의"))
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)
	assert.Equal(t, "기존 회의", created.Title)

	// update
	changed := created
	changed.Title = "테스트 기존 회의"
	changed.EndTime = "22:00"
	updated, err := client.Update(ctx, created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, "테스트 기존 회의", updated.Title)

	events, err = client.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "22:00", events[0].EndTime)

	// delete
	require.NoError(t, client.Delete(ctx, created.ID))
	events, err = client.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestClient_NotFound(t *testing.T) {
	ctx := context.Background()
	client := NewClient(fakeEventsServer(t, NewRepositoryStub()).URL, nil)

	_, err := client.Update(ctx, "42", meeting("ghost"))
	assert.ErrorIs(t, err, ErrEventNotFound)

	err = client.Delete(ctx, "42")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, nil).List(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEventNotFound)
}

func TestClient_ListNotFoundIsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewClient(server.URL+"/wrong-prefix", nil).List(context.Background())

	assert.ErrorContains(t, err, "unexpected status 404")
	assert.NotErrorIs(t, err, ErrEventNotFound)
}
