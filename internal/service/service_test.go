package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"talkmap/internal/backing"
	"talkmap/internal/config"
	"talkmap/internal/domain"
	"talkmap/internal/logger"
	"talkmap/internal/repository"
	"talkmap/internal/service"
)

// MockRepository manually implements repository.EventRepository for testing
type MockRepository struct {
	ListFunc      func(ctx context.Context) ([]domain.Event, error)
	SubscribeFunc func(ctx context.Context, onChange func([]domain.Event), onError func(error)) repository.Unsubscribe
	CreateFunc    func(ctx context.Context, event domain.Event) (string, error)
	UpdateFunc    func(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteFunc    func(ctx context.Context, id string) error
}

func (m *MockRepository) List(ctx context.Context) ([]domain.Event, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Event{}, nil
}

func (m *MockRepository) Subscribe(ctx context.Context, onChange func([]domain.Event), onError func(error)) repository.Unsubscribe {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, onChange, onError)
	}
	return func() {}
}

func (m *MockRepository) Create(ctx context.Context, event domain.Event) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, event)
	}
	return "new-id", nil
}

func (m *MockRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func newRemoteService(t *testing.T, repo *MockRepository) *service.EventService {
	t.Helper()
	svc, err := service.NewEventService(&backing.Remote{Events: repo}, logger.Discard())
	if err != nil {
		t.Fatalf("NewEventService failed: %v", err)
	}
	return svc
}

func testConfig() config.Config {
	return config.Config{DevMode: true, DevRole: "admin"}
}

func validInput() domain.EventInput {
	return domain.EventInput{
		Title:     "Agents in Practice",
		Date:      "2025-06-01",
		Location:  domain.Location{Name: "Hamburg Office"},
		EventType: domain.EventTypeTalk,
		Status:    domain.StatusPlanned,
		Audience:  domain.AudienceExternal,
	}
}

func TestCreateEvent(t *testing.T) {
	var stored domain.Event
	mockRepo := &MockRepository{
		CreateFunc: func(ctx context.Context, event domain.Event) (string, error) {
			stored = event
			return "abc", nil
		},
	}
	svc := newRemoteService(t, mockRepo)

	id, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if id != "abc" {
		t.Errorf("Expected id abc, got %s", id)
	}
	// coordinates are filled from the location name
	if stored.Location.Lat != 53.5511 || stored.Location.Lng != 9.9937 {
		t.Errorf("Expected Hamburg coordinates, got %v", stored.Location)
	}
	if stored.ID != "" {
		t.Errorf("Expected no client-side id, got %q", stored.ID)
	}
}

func TestCreateEvent_KeepsExplicitCoordinates(t *testing.T) {
	var stored domain.Event
	svc := newRemoteService(t, &MockRepository{
		CreateFunc: func(ctx context.Context, event domain.Event) (string, error) {
			stored = event
			return "abc", nil
		},
	})

	in := validInput()
	in.Location = domain.Location{Name: "Hamburg Office", Lat: 51.0, Lng: 7.0}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if stored.Location.Lat != 51.0 || stored.Location.Lng != 7.0 {
		t.Errorf("Expected picked position to be kept, got %v", stored.Location)
	}
}

func TestCreateEvent_Validation(t *testing.T) {
	called := false
	svc := newRemoteService(t, &MockRepository{
		CreateFunc: func(ctx context.Context, event domain.Event) (string, error) {
			called = true
			return "", nil
		},
	})

	in := validInput()
	in.EventType = "Party"
	_, err := svc.Create(context.Background(), in)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if called {
		t.Error("Repository must not be called for invalid input")
	}
	if svc.Err() == "" {
		t.Error("Expected validation failure to be recorded")
	}
}

func TestCreateEvent_StoreFailureIsRecordedAndPropagated(t *testing.T) {
	storeErr := &domain.StoreError{Op: "create", Err: errors.New("permission denied")}
	svc := newRemoteService(t, &MockRepository{
		CreateFunc: func(ctx context.Context, event domain.Event) (string, error) {
			return "", storeErr
		},
	})

	_, err := svc.Create(context.Background(), validInput())
	if !errors.Is(err, storeErr) {
		t.Fatalf("Expected store error, got %v", err)
	}
	if !strings.Contains(svc.Err(), "permission denied") {
		t.Errorf("Expected error flag to carry the failure, got %q", svc.Err())
	}
	if svc.Loading() {
		t.Error("Expected loading to be false after the call")
	}
}

func TestUpdateEvent_ProtectsIdentityFields(t *testing.T) {
	var got map[string]interface{}
	svc := newRemoteService(t, &MockRepository{
		UpdateFunc: func(ctx context.Context, id string, fields map[string]interface{}) error {
			got = fields
			return nil
		},
	})

	err := svc.UpdateFields(context.Background(), "7", map[string]interface{}{
		"status":    domain.StatusPlanned,
		"id":        "other",
		"createdAt": time.Now(),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 1 || got["status"] != domain.StatusPlanned {
		t.Errorf("Expected only status to be written, got %v", got)
	}
}

func TestUpdateEvent_Validation(t *testing.T) {
	svc := newRemoteService(t, &MockRepository{})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"EmptyID", func() error { return svc.UpdateFields(ctx, "", map[string]interface{}{"title": "x"}) }},
		{"OnlyProtectedFields", func() error { return svc.UpdateFields(ctx, "7", map[string]interface{}{"id": "8"}) }},
		{"BadDate", func() error {
			d := "tomorrow"
			return svc.Update(ctx, "7", domain.EventPatch{Date: &d})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vErr *domain.ValidationError
			if err := tt.call(); !errors.As(err, &vErr) {
				t.Errorf("Expected ValidationError, got %v", err)
			}
		})
	}
}

func TestUpdateEvent_GeocodesNewLocation(t *testing.T) {
	var got map[string]interface{}
	svc := newRemoteService(t, &MockRepository{
		UpdateFunc: func(ctx context.Context, id string, fields map[string]interface{}) error {
			got = fields
			return nil
		},
	})

	if err := svc.Update(context.Background(), "7", domain.EventPatch{Location: &domain.Location{Name: "Leipzig"}}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	loc, ok := got["location"].(domain.Location)
	if !ok || loc.Lat != 51.3397 {
		t.Errorf("Expected geocoded Leipzig location, got %v", got["location"])
	}
}

func TestFetchAll_FailureYieldsEmptyList(t *testing.T) {
	svc := newRemoteService(t, &MockRepository{
		ListFunc: func(ctx context.Context) ([]domain.Event, error) {
			return nil, errors.New("unavailable")
		},
	})

	events := svc.FetchAll(context.Background())
	if events == nil || len(events) != 0 {
		t.Errorf("Expected empty list, got %v", events)
	}
	if svc.Err() != "unavailable" {
		t.Errorf("Expected error flag 'unavailable', got %q", svc.Err())
	}
}

func TestLoading_TrueWhileRemoteCallInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	svc := newRemoteService(t, &MockRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			close(entered)
			<-release
			return nil
		},
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = svc.Delete(context.Background(), "7")
	}()

	<-entered
	if !svc.Loading() {
		t.Error("Expected loading while the delete is in flight")
	}
	close(release)
	wg.Wait()
	if svc.Loading() {
		t.Error("Expected loading to clear after the delete")
	}
}

func TestSuccessClearsPreviousError(t *testing.T) {
	fail := true
	svc := newRemoteService(t, &MockRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			if fail {
				return errors.New("boom")
			}
			return nil
		},
	})
	ctx := context.Background()

	_ = svc.Delete(ctx, "7")
	if svc.Err() == "" {
		t.Fatal("Expected error to be recorded")
	}
	fail = false
	if err := svc.Delete(ctx, "7"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if svc.Err() != "" {
		t.Errorf("Expected error to be cleared, got %q", svc.Err())
	}
}

func TestSubscribe_FeedErrorIsRecorded(t *testing.T) {
	svc := newRemoteService(t, &MockRepository{
		SubscribeFunc: func(ctx context.Context, onChange func([]domain.Event), onError func(error)) repository.Unsubscribe {
			onChange([]domain.Event{{ID: "1"}})
			onError(&domain.StoreError{Op: "subscribe", Err: errors.New("stream reset")})
			return func() {}
		},
	})

	var delivered []domain.Event
	unsub := svc.Subscribe(context.Background(), func(events []domain.Event) { delivered = events })
	defer unsub()

	if len(delivered) != 1 {
		t.Errorf("Expected one delivered event, got %d", len(delivered))
	}
	if !strings.Contains(svc.Err(), "stream reset") {
		t.Errorf("Expected feed error to be recorded, got %q", svc.Err())
	}
}

func TestMockBacking_NeverLoading(t *testing.T) {
	mock := backing.NewMock(testConfig(), nil)
	svc, err := service.NewEventService(mock, logger.Discard())
	if err != nil {
		t.Fatalf("NewEventService failed: %v", err)
	}

	id, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if svc.Loading() {
		t.Error("Mock backing must never report loading")
	}
	events := svc.FetchAll(context.Background())
	if events[0].ID != id {
		t.Errorf("Expected created event first, got %s", events[0].ID)
	}
}
