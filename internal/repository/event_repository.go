package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"talkmap/internal/domain"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CollectionEvents = "events"

// Unsubscribe stops a live feed. Calling it more than once is allowed.
type Unsubscribe func()

// EventRepository is the document store contract shared by the Firestore
// adapter and the in-memory mock.
type EventRepository interface {
	// List returns every event ordered by date descending.
	List(ctx context.Context) ([]domain.Event, error)
	// Subscribe delivers the full ordered list on attach and after every
	// change until the returned Unsubscribe is called. A delivery may repeat.
	Subscribe(ctx context.Context, onChange func([]domain.Event), onError func(error)) Unsubscribe
	// Create stores event and returns the assigned id.
	Create(ctx context.Context, event domain.Event) (string, error)
	// Update replaces the given top-level fields, leaving the rest untouched.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// Delete removes the event. Unknown ids are not an error.
	Delete(ctx context.Context, id string) error
}

type eventRepo struct {
	client *firestore.Client
}

func NewEventRepository(client *firestore.Client) EventRepository {
	return &eventRepo{client: client}
}

func (r *eventRepo) ordered() firestore.Query {
	return r.client.Collection(CollectionEvents).OrderBy("date", firestore.Desc)
}

func (r *eventRepo) List(ctx context.Context) ([]domain.Event, error) {
	iter := r.ordered().Documents(ctx)
	defer iter.Stop()

	events, err := readEvents(iter)
	if err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	return events, nil
}

func (r *eventRepo) Subscribe(ctx context.Context, onChange func([]domain.Event), onError func(error)) Unsubscribe {
	ctx, cancel := context.WithCancel(ctx)
	snapshots := r.ordered().Snapshots(ctx)

	go func() {
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if ctx.Err() != nil || status.Code(err) == codes.Canceled || errors.Is(err, iterator.Done) {
					return
				}
				if onError != nil {
					onError(&domain.StoreError{Op: "subscribe", Err: err})
				}
				return
			}
			events, err := readEvents(snap.Documents)
			if err != nil {
				if onError != nil {
					onError(&domain.StoreError{Op: "subscribe", Err: err})
				}
				continue
			}
			onChange(events)
		}
	}()

	var once sync.Once
	return func() { once.Do(cancel) }
}

func (r *eventRepo) Create(ctx context.Context, event domain.Event) (string, error) {
	// zero CreatedAt is replaced by the server timestamp
	event.ID = ""
	event.CreatedAt = time.Time{}
	if event.Images == nil {
		event.Images = []string{}
	}
	ref, _, err := r.client.Collection(CollectionEvents).Add(ctx, event)
	if err != nil {
		return "", &domain.StoreError{Op: "create", Err: err}
	}
	return ref.ID, nil
}

func (r *eventRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	delete(fields, "id")
	delete(fields, "createdAt")
	if len(fields) == 0 {
		return nil
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: fields[k]})
	}

	_, err := r.client.Collection(CollectionEvents).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return &domain.StoreError{Op: "update", Err: domain.ErrNotFound}
	}
	if err != nil {
		return &domain.StoreError{Op: "update", Err: err}
	}
	return nil
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(CollectionEvents).Doc(id).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return &domain.StoreError{Op: "delete", Err: err}
	}
	return nil
}

func readEvents(iter *firestore.DocumentIterator) ([]domain.Event, error) {
	events := []domain.Event{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "readEvents: failed to iterate documents")
		}
		e, err := docToEvent(doc)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func docToEvent(doc *firestore.DocumentSnapshot) (domain.Event, error) {
	var e domain.Event
	if err := doc.DataTo(&e); err != nil {
		return domain.Event{}, errors.Wrapf(err, "docToEvent: cannot decode document '%s'", doc.Ref.ID)
	}
	e.ID = doc.Ref.ID
	if e.Images == nil {
		e.Images = []string{}
	}
	return e, nil
}
