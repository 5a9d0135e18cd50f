package repository

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"talkmap/internal/domain"
)

// mockIDFloor keeps generated ids clear of hand-written seed ids.
const mockIDFloor = 100

// MockEventRepository keeps events in memory for local development. It never
// fails and notifies synchronously on every mutation.
//
// Only one subscriber is supported: a later Subscribe replaces the earlier
// registration. The store keeps insertion order; new events are prepended
// and nothing is re-sorted after a mutation.
type MockEventRepository struct {
	mu         sync.Mutex
	events     []domain.Event
	lastID     int
	subscriber func([]domain.Event)
	generation int
	now        func() time.Time
}

// NewMockEventRepository seeds the repository with a copy of seed.
func NewMockEventRepository(seed []domain.Event, now func() time.Time) *MockEventRepository {
	if now == nil {
		now = time.Now
	}
	events := make([]domain.Event, len(seed))
	copy(events, seed)

	lastID := mockIDFloor
	for _, e := range events {
		if n, err := strconv.Atoi(e.ID); err == nil && n > lastID {
			lastID = n
		}
	}
	return &MockEventRepository{events: events, lastID: lastID, now: now}
}

func (r *MockEventRepository) List(_ context.Context) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events, nil
}

func (r *MockEventRepository) Subscribe(_ context.Context, onChange func([]domain.Event), _ func(error)) Unsubscribe {
	r.mu.Lock()
	r.generation++
	gen := r.generation
	r.subscriber = onChange
	events := r.events
	r.mu.Unlock()

	onChange(events)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		// a replaced registration must not clear its successor
		if r.generation == gen {
			r.subscriber = nil
		}
	}
}

func (r *MockEventRepository) Create(_ context.Context, event domain.Event) (string, error) {
	r.mu.Lock()
	r.lastID++
	event.ID = strconv.Itoa(r.lastID)
	event.CreatedAt = r.now()
	if event.Images == nil {
		event.Images = []string{}
	}
	events := make([]domain.Event, 0, len(r.events)+1)
	events = append(events, event)
	events = append(events, r.events...)
	r.events = events
	r.mu.Unlock()

	r.notify()
	return event.ID, nil
}

func (r *MockEventRepository) Update(_ context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	idx := r.indexOf(id)
	if idx < 0 {
		r.mu.Unlock()
		return nil
	}
	existing := r.events[idx]
	merged := mergeFields(existing, fields)
	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt

	events := make([]domain.Event, len(r.events))
	copy(events, r.events)
	events[idx] = merged
	r.events = events
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *MockEventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if r.indexOf(id) < 0 {
		r.mu.Unlock()
		return nil
	}
	events := make([]domain.Event, 0, len(r.events))
	for _, e := range r.events {
		if e.ID != id {
			events = append(events, e)
		}
	}
	r.events = events
	r.mu.Unlock()

	r.notify()
	return nil
}

func (r *MockEventRepository) indexOf(id string) int {
	for i, e := range r.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (r *MockEventRepository) notify() {
	r.mu.Lock()
	cb := r.subscriber
	events := r.events
	r.mu.Unlock()
	if cb != nil {
		cb(events)
	}
}

// mergeFields overlays fields on the JSON form of e. Fields that cannot be
// encoded or decoded are skipped.
func mergeFields(e domain.Event, fields map[string]interface{}) domain.Event {
	base, err := json.Marshal(e)
	if err != nil {
		return e
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &doc); err != nil {
		return e
	}
	for k, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			continue
		}
		doc[k] = raw
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return e
	}
	var merged domain.Event
	if err := json.Unmarshal(out, &merged); err != nil {
		return e
	}
	return merged
}
