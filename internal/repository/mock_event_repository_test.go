package repository

import (
	"context"
	"testing"
	"time"

	"talkmap/internal/domain"
)

var fixedNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func twoEventSeed() []domain.Event {
	return []domain.Event{
		{ID: "20", Title: "December", Date: "2025-12-03", EventType: domain.EventTypeMeetUp, Status: domain.StatusPlanned, Images: []string{}},
		{ID: "1", Title: "May", Date: "2025-05-13", EventType: domain.EventTypeVideo, Status: domain.StatusCompleted, Images: []string{}},
	}
}

func TestMockEventRepository_CreatePrependsAndNotifiesOnce(t *testing.T) {
	repo := NewMockEventRepository(twoEventSeed(), func() time.Time { return fixedNow })
	ctx := context.Background()

	var deliveries [][]domain.Event
	repo.Subscribe(ctx, func(events []domain.Event) {
		deliveries = append(deliveries, events)
	}, nil)
	if len(deliveries) != 1 {
		t.Fatalf("Expected initial delivery on subscribe, got %d", len(deliveries))
	}

	id, err := repo.Create(ctx, domain.Event{Title: "June", Date: "2025-06-01", EventType: domain.EventTypeTalk})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "20" || id == "1" || id == "" {
		t.Errorf("Expected fresh id, got %q", id)
	}

	if len(deliveries) != 2 {
		t.Fatalf("Expected exactly one notification after create, got %d", len(deliveries)-1)
	}
	got := deliveries[1]
	if len(got) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(got))
	}
	if got[0].ID != id {
		t.Errorf("Expected new event first, got %s", got[0].ID)
	}
	if !got[0].CreatedAt.Equal(fixedNow) {
		t.Errorf("Expected createdAt %v, got %v", fixedNow, got[0].CreatedAt)
	}
	if got[0].Images == nil {
		t.Error("Expected images to default to an empty list")
	}
}

func TestMockEventRepository_IDsStayAboveSeed(t *testing.T) {
	seed := []domain.Event{{ID: "250", Date: "2025-01-01"}, {ID: "not-a-number", Date: "2025-01-02"}}
	repo := NewMockEventRepository(seed, nil)

	id, _ := repo.Create(context.Background(), domain.Event{Date: "2025-02-01"})
	if id != "251" {
		t.Errorf("Expected id 251, got %s", id)
	}
}

func TestMockEventRepository_UpdateKeepsIdentity(t *testing.T) {
	created := fixedNow.Add(-time.Hour)
	seed := twoEventSeed()
	seed[0].CreatedAt = created
	repo := NewMockEventRepository(seed, func() time.Time { return fixedNow })
	ctx := context.Background()

	err := repo.Update(ctx, "20", map[string]interface{}{
		"status":    domain.StatusCompleted,
		"id":        "hijack",
		"createdAt": fixedNow,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	events, _ := repo.List(ctx)
	e := events[0]
	if e.ID != "20" {
		t.Errorf("Expected id to stay 20, got %s", e.ID)
	}
	if !e.CreatedAt.Equal(created) {
		t.Errorf("Expected createdAt %v, got %v", created, e.CreatedAt)
	}
	if e.Status != domain.StatusCompleted {
		t.Errorf("Expected status completed, got %s", e.Status)
	}
	if e.Date != "2025-12-03" || e.Title != "December" {
		t.Errorf("Untouched fields changed: %+v", e)
	}
}

func TestMockEventRepository_UnknownIDsAreNoOps(t *testing.T) {
	repo := NewMockEventRepository(twoEventSeed(), nil)
	ctx := context.Background()

	notified := 0
	repo.Subscribe(ctx, func([]domain.Event) { notified++ }, nil)
	notified = 0

	if err := repo.Update(ctx, "404", map[string]interface{}{"title": "x"}); err != nil {
		t.Errorf("Expected no error on unknown update, got %v", err)
	}
	if err := repo.Delete(ctx, "404"); err != nil {
		t.Errorf("Expected no error on unknown delete, got %v", err)
	}
	if notified != 0 {
		t.Errorf("Expected no notifications, got %d", notified)
	}
}

func TestMockEventRepository_DeleteIsIdempotent(t *testing.T) {
	repo := NewMockEventRepository(twoEventSeed(), nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repo.Delete(ctx, "1"); err != nil {
			t.Fatalf("Delete #%d failed: %v", i+1, err)
		}
	}
	events, _ := repo.List(ctx)
	if len(events) != 1 || events[0].ID != "20" {
		t.Errorf("Expected only event 20 left, got %+v", events)
	}
}

func TestMockEventRepository_SingleSubscriber(t *testing.T) {
	repo := NewMockEventRepository(twoEventSeed(), nil)
	ctx := context.Background()

	first, second := 0, 0
	unsubFirst := repo.Subscribe(ctx, func([]domain.Event) { first++ }, nil)
	repo.Subscribe(ctx, func([]domain.Event) { second++ }, nil)

	// the replaced handle must not detach the current subscriber
	unsubFirst()

	_, _ = repo.Create(ctx, domain.Event{Date: "2025-07-01"})

	if first != 1 {
		t.Errorf("Expected replaced subscriber to see only its initial delivery, got %d", first)
	}
	if second != 2 {
		t.Errorf("Expected current subscriber to see 2 deliveries, got %d", second)
	}
}

func TestMockEventRepository_UnsubscribeStopsDelivery(t *testing.T) {
	repo := NewMockEventRepository(twoEventSeed(), nil)
	ctx := context.Background()

	calls := 0
	unsub := repo.Subscribe(ctx, func([]domain.Event) { calls++ }, nil)
	unsub()
	unsub()

	_ = repo.Delete(ctx, "1")
	if calls != 1 {
		t.Errorf("Expected no delivery after unsubscribe, got %d calls", calls)
	}
}

func TestMockEventRepository_DeliveredSlicesAreSnapshots(t *testing.T) {
	repo := NewMockEventRepository(twoEventSeed(), nil)
	ctx := context.Background()

	var snapshots [][]domain.Event
	repo.Subscribe(ctx, func(events []domain.Event) { snapshots = append(snapshots, events) }, nil)

	_ = repo.Update(ctx, "1", map[string]interface{}{"title": "Changed"})

	if snapshots[0][1].Title != "May" {
		t.Errorf("Earlier snapshot was mutated: %q", snapshots[0][1].Title)
	}
	if snapshots[1][1].Title != "Changed" {
		t.Errorf("Expected update in new snapshot, got %q", snapshots[1][1].Title)
	}
}
