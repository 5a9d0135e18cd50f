package state

import (
	"context"
	"sync"

	"talkmap/internal/domain"
	"talkmap/internal/repository"
)

// EventRepository is what the store needs from the event service.
type EventRepository interface {
	Subscribe(ctx context.Context, fn func([]domain.Event)) repository.Unsubscribe
	Create(ctx context.Context, in domain.EventInput) (string, error)
	Update(ctx context.Context, id string, patch domain.EventPatch) error
	Delete(ctx context.Context, id string) error
	Loading() bool
	Err() string
}

// FormState describes the event form: closed, open in create mode (Editing
// nil, optionally with a picked position) or open on an existing event.
type FormState struct {
	Open      bool           `json:"open"`
	Editing   *domain.Event  `json:"editing,omitempty"`
	NewMarker *domain.LatLng `json:"newMarker,omitempty"`
}

// CreateMode reports whether the open form creates a new event.
func (f FormState) CreateMode() bool {
	return f.Open && f.Editing == nil
}

// View is a consistent snapshot of everything the dashboard renders.
type View struct {
	Events   []domain.Event `json:"events"`
	Total    int            `json:"total"`
	Selected *domain.Event  `json:"selected,omitempty"`
	Form     FormState      `json:"form"`
	Filter   domain.Filter  `json:"filter"`
	Loading  bool           `json:"loading"`
	Error    string         `json:"error,omitempty"`
}

// EventStore holds the canonical event list, fed by the repository
// subscription, and the transient dashboard state around it.
//
// Mutations are delegated to the repository; the list itself only changes
// when the subscription delivers a new snapshot.
type EventStore struct {
	repo EventRepository

	mu       sync.RWMutex
	events   []domain.Event
	selected *domain.Event
	filter   domain.Filter
	form     FormState
}

func NewEventStore(repo EventRepository) *EventStore {
	return &EventStore{
		repo:   repo,
		events: []domain.Event{},
		filter: domain.Filter{Types: []domain.EventType{}},
	}
}

// InitializeSubscription attaches the store to the live feed. The caller owns
// the returned handle and must call it on teardown.
func (s *EventStore) InitializeSubscription(ctx context.Context) repository.Unsubscribe {
	return s.repo.Subscribe(ctx, s.replace)
}

func (s *EventStore) replace(events []domain.Event) {
	if events == nil {
		events = []domain.Event{}
	}
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
}

// Events is the latest complete snapshot, newest first.
func (s *EventStore) Events() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.events
}

// EventByID looks id up in the current snapshot.
func (s *EventStore) EventByID(id string) (domain.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Event{}, false
}

// FilteredEvents applies the type selection and date window to the snapshot.
func (s *EventStore) FilteredEvents() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Apply(s.events)
}

// Stats summarises the filtered events.
func (s *EventStore) Stats() domain.Stats {
	return domain.Summarize(s.FilteredEvents())
}

func (s *EventStore) SelectEvent(event *domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = cloneEvent(event)
}

func (s *EventStore) SelectedEvent() *domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// OpenForm opens the form on event, or in create mode when event is nil.
// Opening an open form replaces its target.
func (s *EventStore) OpenForm(event *domain.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openForm(event)
}

func (s *EventStore) openForm(event *domain.Event) {
	s.form.Editing = cloneEvent(event)
	s.form.Open = true
}

// CloseForm closes the form and forgets the target and any picked position.
func (s *EventStore) CloseForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = FormState{}
}

func (s *EventStore) Form() FormState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.form
}

// SetNewMarkerPosition records a position picked on the map and opens the
// form in create mode with it.
func (s *EventStore) SetNewMarkerPosition(lat, lng float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.NewMarker = &domain.LatLng{Lat: lat, Lng: lng}
	s.openForm(nil)
}

// ToggleFilter adds t to the type selection, or removes it when present.
func (s *EventStore) ToggleFilter(t domain.EventType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	types := make([]domain.EventType, 0, len(s.filter.Types)+1)
	found := false
	for _, cur := range s.filter.Types {
		if cur == t {
			found = true
			continue
		}
		types = append(types, cur)
	}
	if !found {
		types = append(types, t)
	}
	s.filter.Types = types
}

// SetFilterTypes replaces the type selection; duplicates are dropped.
func (s *EventStore) SetFilterTypes(types []domain.EventType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[domain.EventType]bool, len(types))
	out := make([]domain.EventType, 0, len(types))
	for _, t := range types {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	s.filter.Types = out
}

// ClearFilters empties the type selection.
func (s *EventStore) ClearFilters() {
	s.SetFilterTypes(nil)
}

// SetDateFilter sets the date window; an empty bound is open.
func (s *EventStore) SetDateFilter(from, to string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.From = from
	s.filter.To = to
}

func (s *EventStore) ClearDateFilter() {
	s.SetDateFilter("", "")
}

// Filter returns a copy of the active criteria.
func (s *EventStore) Filter() domain.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := s.filter
	f.Types = append([]domain.EventType{}, s.filter.Types...)
	return f
}

func (s *EventStore) CreateEvent(ctx context.Context, in domain.EventInput) (string, error) {
	return s.repo.Create(ctx, in)
}

func (s *EventStore) UpdateEvent(ctx context.Context, id string, patch domain.EventPatch) error {
	return s.repo.Update(ctx, id, patch)
}

func (s *EventStore) DeleteEvent(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *EventStore) Loading() bool { return s.repo.Loading() }
func (s *EventStore) Err() string   { return s.repo.Err() }

// View snapshots the whole dashboard state at once.
func (s *EventStore) View() View {
	s.mu.RLock()
	v := View{
		Events:   s.filter.Apply(s.events),
		Total:    len(s.events),
		Selected: s.selected,
		Form:     s.form,
	}
	v.Filter = s.filter
	v.Filter.Types = append([]domain.EventType{}, s.filter.Types...)
	s.mu.RUnlock()

	v.Loading = s.repo.Loading()
	v.Error = s.repo.Err()
	return v
}

func cloneEvent(e *domain.Event) *domain.Event {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}
