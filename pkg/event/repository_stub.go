package event

import (
	"context"
	"slices"
	"strconv"
	"sync"
)

// RepositoryStub keeps events in memory in insertion order. It backs the
// "memory" storage type and the tests.
type RepositoryStub struct {
	mu      sync.RWMutex
	events  []Event
	nextId  int
	listErr error
}

func NewRepositoryStub(initial ...Event) *RepositoryStub {
	r := &RepositoryStub{nextId: 1}
	for _, e := range initial {
		if e.ID == "" {
			e.ID = r.newId()
		} else if n, err := strconv.Atoi(e.ID); err == nil && n >= r.nextId {
			r.nextId = n + 1
		}
		r.events = append(r.events, e)
	}
	return r
}

func (r *RepositoryStub) List(ctx context.Context) ([]Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.listErr != nil {
		return nil, r.listErr
	}
	return slices.Clone(r.events), nil
}

func (r *RepositoryStub) Create(ctx context.Context, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = r.newId()
	r.events = append(r.events, event)
	return event, nil
}

// newId returns the next sequential id not held by any stored event.
func (r *RepositoryStub) newId() string {
	for {
		id := strconv.Itoa(r.nextId)
		r.nextId++
		if r.indexOf(id) == -1 {
			return id
		}
	}
}

func (r *RepositoryStub) Update(ctx context.Context, id string, event Event) (Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return Event{}, ErrEventNotFound
	}
	event.ID = id
	r.events[idx] = event
	return event, nil
}

func (r *RepositoryStub) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return ErrEventNotFound
	}
	r.events = slices.Delete(r.events, idx, idx+1)
	return nil
}

func (r *RepositoryStub) indexOf(id string) int {
	return slices.IndexFunc(r.events, func(e Event) bool { return e.ID == id })
}

// SetListError makes List fail until it is cleared with nil.
func (r *RepositoryStub) SetListError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listErr = err
}

// Reset drops all events (useful between tests)
func (r *RepositoryStub) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = nil
	r.nextId = 1
	r.listErr = nil
}
