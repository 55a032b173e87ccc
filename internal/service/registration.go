package service

import (
	"context"
	"time"

	"github.com/clubhub/api/internal/model"
)

// EventRepositoryInterface defines the event storage operations the
// registration service depends on
type EventRepositoryInterface interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Update(ctx context.Context, event *model.Event) error
	UpdateRoster(ctx context.Context, eventID string, participants []model.Participant) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter model.EventFilter) ([]*model.Event, int, error)
	GetRegisteredBy(ctx context.Context, userID string) ([]*model.Event, error)
}

// ClubReader is the read-only club access the registration service
// needs for officer checks on event creation
type ClubReader interface {
	GetByID(ctx context.Context, id string) (*model.Club, error)
}

// RegistrationService owns event creation, capacity-bounded
// registration, and the creator-only authorization gating event
// mutation. Unlike clubs, events grant no rights by roster role: the
// creator reference is the sole authority for update and delete.
//
// The registration roster is a single-record write, so register/cancel
// races resolve last-writer-wins at the event record. Events are never
// referenced from user records, so no propagation step exists here.
type RegistrationService struct {
	events EventRepositoryInterface
	clubs  ClubReader
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(events EventRepositoryInterface, clubs ClubReader) *RegistrationService {
	return &RegistrationService{events: events, clubs: clubs}
}

// CreateEvent creates an event for a club. Only a club officer
// (president or vice-president) may create events.
func (s *RegistrationService) CreateEvent(ctx context.Context, principalID string, req *model.CreateEventRequest) (*model.Event, error) {
	club, err := s.clubs.GetByID(ctx, req.ClubID)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, ErrClubNotFound
	}
	if !club.HasOfficer(principalID) {
		return nil, ErrNotClubOfficer
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = model.DefaultEventType
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = model.DefaultCapacity
	}

	event := &model.Event{
		ClubID:      club.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		EventType:   eventType,
		Capacity:    capacity,
		Status:      model.EventStatusUpcoming,
		CreatedBy:   principalID,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvent retrieves an event by ID
func (s *RegistrationService) GetEvent(ctx context.Context, eventID string) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// ListEvents retrieves events matching the filter
func (s *RegistrationService) ListEvents(ctx context.Context, filter model.EventFilter) ([]*model.Event, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	return s.events.List(ctx, filter)
}

// UpdateEvent applies a partial update. Creator only; nil patch fields
// are left untouched.
func (s *RegistrationService) UpdateEvent(ctx context.Context, principalID, eventID string, req *model.UpdateEventRequest) (*model.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != principalID {
		return nil, ErrNotEventCreator
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}
	if req.EventType != nil {
		event.EventType = *req.EventType
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.Status != nil {
		event.Status = *req.Status
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// DeleteEvent deletes an event. Creator only. Deletion does not cascade
// into user records; events are not referenced from them.
func (s *RegistrationService) DeleteEvent(ctx context.Context, principalID, eventID string) error {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event.CreatedBy != principalID {
		return ErrNotEventCreator
	}
	return s.events.Delete(ctx, event.ID)
}

// Register adds the principal to the event roster. Capacity counts only
// non-cancelled entries; a previously cancelled entry is revived in
// place so a user never holds two entries at once.
func (s *RegistrationService) Register(ctx context.Context, principalID, eventID string) (*model.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	idx := event.ParticipantOf(principalID)
	if idx >= 0 && event.RegisteredParticipants[idx].Status != model.RegistrationCancelled {
		return nil, ErrAlreadyRegistered
	}
	if event.IsFull() {
		return nil, ErrEventFull
	}

	now := time.Now().UTC()
	if idx >= 0 {
		event.RegisteredParticipants[idx].Status = model.RegistrationRegistered
		event.RegisteredParticipants[idx].RegisteredAt = now
	} else {
		event.RegisteredParticipants = append(event.RegisteredParticipants, model.Participant{
			UserID:       principalID,
			Status:       model.RegistrationRegistered,
			RegisteredAt: now,
		})
	}
	event.ParticipantCount = len(event.RegisteredParticipants)

	if err := s.events.UpdateRoster(ctx, event.ID, event.RegisteredParticipants); err != nil {
		return nil, err
	}
	return event, nil
}

// CancelRegistration transitions the principal's entry to cancelled,
// releasing its capacity while retaining the registration history.
func (s *RegistrationService) CancelRegistration(ctx context.Context, principalID, eventID string) (*model.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	idx := event.ParticipantOf(principalID)
	if idx < 0 || event.RegisteredParticipants[idx].Status == model.RegistrationCancelled {
		return nil, ErrRegistrationNotFound
	}

	event.RegisteredParticipants[idx].Status = model.RegistrationCancelled

	if err := s.events.UpdateRoster(ctx, event.ID, event.RegisteredParticipants); err != nil {
		return nil, err
	}
	return event, nil
}

// MarkAttended transitions a registered participant to attended.
// Creator only.
func (s *RegistrationService) MarkAttended(ctx context.Context, principalID, eventID, userID string) (*model.Event, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != principalID {
		return nil, ErrNotEventCreator
	}

	idx := event.ParticipantOf(userID)
	if idx < 0 || event.RegisteredParticipants[idx].Status != model.RegistrationRegistered {
		return nil, ErrRegistrationNotFound
	}

	event.RegisteredParticipants[idx].Status = model.RegistrationAttended

	if err := s.events.UpdateRoster(ctx, event.ID, event.RegisteredParticipants); err != nil {
		return nil, err
	}
	return event, nil
}

// EventsRegisteredBy retrieves the events where the user holds an
// active registration
func (s *RegistrationService) EventsRegisteredBy(ctx context.Context, userID string) ([]*model.Event, error) {
	return s.events.GetRegisteredBy(ctx, userID)
}
