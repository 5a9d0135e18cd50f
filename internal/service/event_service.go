package service

import (
	"context"
	"fmt"
	"sync"

	"talkmap/internal/backing"
	"talkmap/internal/domain"
	"talkmap/internal/logger"
	"talkmap/internal/repository"

	"github.com/sirupsen/logrus"
)

// EventService is the event repository seen by the rest of the system: a
// uniform CRUD and subscribe surface over whichever backing was selected,
// plus the loading and error flags of the last operation.
type EventService struct {
	repo   repository.EventRepository
	remote bool
	log    *logrus.Entry

	mu       sync.RWMutex
	inFlight int
	err      string
}

// NewEventService binds the service to the event store of b.
func NewEventService(b backing.Backing, log *logrus.Entry) (*EventService, error) {
	s := &EventService{log: log.WithField(logger.FldBacking, b.Name())}
	switch b := b.(type) {
	case *backing.Remote:
		s.repo = b.Events
		s.remote = true
	case *backing.Mock:
		s.repo = b.Events
	default:
		return nil, fmt.Errorf("unsupported backing %T", b)
	}
	return s, nil
}

// Loading is true while a remote call is in flight.
func (s *EventService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// Err is the message of the last failed operation, empty after a success.
func (s *EventService) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// FetchAll returns every event, newest first. Failures are recorded and an
// empty list is returned.
func (s *EventService) FetchAll(ctx context.Context) []domain.Event {
	end := s.begin()
	events, err := s.repo.List(ctx)
	end(err)
	if err != nil {
		s.log.WithError(err).WithField(logger.FldOp, "list").Warn("Failed to fetch events")
		return []domain.Event{}
	}
	return events
}

// Subscribe attaches fn to the live feed. Feed failures are recorded.
func (s *EventService) Subscribe(ctx context.Context, fn func([]domain.Event)) repository.Unsubscribe {
	return s.repo.Subscribe(ctx, fn, func(err error) {
		s.setErr(err)
		s.log.WithError(err).WithField(logger.FldOp, "subscribe").Error("Event feed failed")
	})
}

// Create validates in and stores it, returning the assigned id. A location
// without coordinates is geocoded from its name.
func (s *EventService) Create(ctx context.Context, in domain.EventInput) (string, error) {
	if err := domain.Validate.Struct(in); err != nil {
		return "", s.fail(domain.ErrValidation(err.Error()))
	}
	if in.Location.Lat == 0 && in.Location.Lng == 0 {
		in.Location = domain.GeocodedLocation(in.Location.Name)
	}

	end := s.begin()
	id, err := s.repo.Create(ctx, in.ToEvent())
	end(err)
	if err != nil {
		s.log.WithError(err).WithField(logger.FldOp, "create").Error("Failed to create event")
		return "", err
	}
	s.log.WithField(logger.FldEvent, id).Info("Event created")
	return id, nil
}

// Update validates patch and applies the provided fields to event id.
func (s *EventService) Update(ctx context.Context, id string, patch domain.EventPatch) error {
	if err := domain.Validate.Struct(patch); err != nil {
		return s.fail(domain.ErrValidation(err.Error()))
	}
	if patch.Location != nil && patch.Location.Lat == 0 && patch.Location.Lng == 0 {
		loc := domain.GeocodedLocation(patch.Location.Name)
		patch.Location = &loc
	}
	return s.UpdateFields(ctx, id, patch.Fields())
}

// UpdateFields applies raw stored fields. id and createdAt are never written.
func (s *EventService) UpdateFields(ctx context.Context, id string, updates map[string]interface{}) error {
	if id == "" {
		return s.fail(domain.ErrValidation("id is required for update"))
	}
	fields := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if k == "id" || k == "createdAt" {
			continue
		}
		fields[k] = v
	}
	if len(fields) == 0 {
		return s.fail(domain.ErrValidation("no fields to update"))
	}

	end := s.begin()
	err := s.repo.Update(ctx, id, fields)
	end(err)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{logger.FldOp: "update", logger.FldEvent: id}).Error("Failed to update event")
		return err
	}
	return nil
}

// Delete removes event id. Unknown ids are not an error.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return s.fail(domain.ErrValidation("id is required"))
	}

	end := s.begin()
	err := s.repo.Delete(ctx, id)
	end(err)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{logger.FldOp: "delete", logger.FldEvent: id}).Error("Failed to delete event")
		return err
	}
	return nil
}

// begin clears the error and, for the remote backing, marks a call in flight.
func (s *EventService) begin() func(error) {
	s.mu.Lock()
	s.err = ""
	if s.remote {
		s.inFlight++
	}
	s.mu.Unlock()

	return func(err error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.remote {
			s.inFlight--
		}
		if err != nil {
			s.err = err.Error()
		}
	}
}

func (s *EventService) fail(err error) error {
	s.setErr(err)
	return err
}

func (s *EventService) setErr(err error) {
	s.mu.Lock()
	s.err = err.Error()
	s.mu.Unlock()
}
