package model

import "time"

// RegistrationStatus represents the state of a participant entry
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationAttended   RegistrationStatus = "attended"
	RegistrationCancelled  RegistrationStatus = "cancelled"
)

// Participant is a single entry on an event's registration roster.
// Cancellation is a status transition, not a removal, so the entry
// history survives; only non-cancelled entries count toward capacity.
type Participant struct {
	UserID       string             `json:"user_id"`
	Status       RegistrationStatus `json:"status"`
	RegisteredAt time.Time          `json:"registered_at"`
}

// Event represents a club-run gathering with bounded registration.
//
// RegisteredParticipants is the authoritative registration record;
// ParticipantCount is derived from it. ClubID and CreatedBy are
// immutable after creation.
type Event struct {
	ID                     string        `json:"id"`
	ClubID                 string        `json:"club_id"`
	Title                  string        `json:"title"`
	Description            string        `json:"description"`
	EventImage             *string       `json:"event_image,omitempty"`
	Location               string        `json:"location"`
	StartDate              time.Time     `json:"start_date"`
	EndDate                time.Time     `json:"end_date"`
	EventType              string        `json:"event_type"`
	Capacity               int           `json:"capacity"`
	RegisteredParticipants []Participant `json:"registered_participants"`
	ParticipantCount       int           `json:"participant_count"`
	Status                 string        `json:"status"`
	CreatedBy              string        `json:"created_by"`
	CreatedOn              time.Time     `json:"created_on"`
	UpdatedOn              time.Time     `json:"updated_on"`
}

// ParticipantOf returns the index of the user's roster entry, or -1.
func (e *Event) ParticipantOf(userID string) int {
	for i, p := range e.RegisteredParticipants {
		if p.UserID == userID {
			return i
		}
	}
	return -1
}

// RegisteredCount returns the number of entries currently holding
// capacity, which excludes cancelled entries.
func (e *Event) RegisteredCount() int {
	n := 0
	for _, p := range e.RegisteredParticipants {
		if p.Status != RegistrationCancelled {
			n++
		}
	}
	return n
}

// IsFull returns true when no capacity remains
func (e *Event) IsFull() bool {
	return e.RegisteredCount() >= e.Capacity
}

// EventType constants
const (
	EventTypeMeeting     = "meeting"
	EventTypeWorkshop    = "workshop"
	EventTypeCompetition = "competition"
	EventTypeSocial      = "social"
	EventTypeOther       = "other"
)

// IsValidEventType returns true for a recognized event type
func IsValidEventType(eventType string) bool {
	switch eventType {
	case EventTypeMeeting, EventTypeWorkshop, EventTypeCompetition,
		EventTypeSocial, EventTypeOther:
		return true
	default:
		return false
	}
}

// EventStatus constants
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// IsValidEventStatus returns true for a recognized event status
func IsValidEventStatus(status string) bool {
	switch status {
	case EventStatusUpcoming, EventStatusOngoing,
		EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}

// Event defaults
const (
	DefaultEventType = EventTypeMeeting
	DefaultCapacity  = 100
)

// Validation bounds for event fields
const (
	MinEventTitleLength = 5
)

// CreateEventRequest represents a request to create an event
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ClubID      string    `json:"club_id"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	EventType   string    `json:"event_type,omitempty"`
	Capacity    int       `json:"capacity,omitempty"`
}

// Validate checks the create request fields
func (r *CreateEventRequest) Validate() []FieldError {
	var errs []FieldError

	if len(r.Title) < MinEventTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: "event title must be at least 5 characters long"})
	}
	if r.Description == "" {
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	}
	if r.ClubID == "" {
		errs = append(errs, FieldError{Field: "club_id", Message: "club ID is required"})
	}
	if r.Location == "" {
		errs = append(errs, FieldError{Field: "location", Message: "location is required"})
	}
	if r.StartDate.IsZero() {
		errs = append(errs, FieldError{Field: "start_date", Message: "start date is required"})
	}
	if r.EndDate.IsZero() {
		errs = append(errs, FieldError{Field: "end_date", Message: "end date is required"})
	} else if !r.StartDate.IsZero() && !r.EndDate.After(r.StartDate) {
		errs = append(errs, FieldError{Field: "end_date", Message: "end date must be after start date"})
	}
	if r.EventType != "" && !IsValidEventType(r.EventType) {
		errs = append(errs, FieldError{Field: "event_type", Message: "invalid event type"})
	}
	if r.Capacity < 0 {
		errs = append(errs, FieldError{Field: "capacity", Message: "capacity must be positive"})
	}

	return errs
}

// UpdateEventRequest represents a partial event update.
// Nil fields are left untouched. Club and creator are immutable.
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	EventType   *string    `json:"event_type,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

// Validate checks the provided update fields
func (r *UpdateEventRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Title != nil && len(*r.Title) < MinEventTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: "event title must be at least 5 characters long"})
	}
	if r.EventType != nil && !IsValidEventType(*r.EventType) {
		errs = append(errs, FieldError{Field: "event_type", Message: "invalid event type"})
	}
	if r.Capacity != nil && *r.Capacity <= 0 {
		errs = append(errs, FieldError{Field: "capacity", Message: "capacity must be positive"})
	}
	if r.Status != nil && !IsValidEventStatus(*r.Status) {
		errs = append(errs, FieldError{Field: "status", Message: "invalid event status"})
	}
	if r.StartDate != nil && r.EndDate != nil && !r.EndDate.After(*r.StartDate) {
		errs = append(errs, FieldError{Field: "end_date", Message: "end date must be after start date"})
	}

	return errs
}

// MarkAttendedRequest identifies the participant to mark attended
type MarkAttendedRequest struct {
	UserID string `json:"user_id"`
}

// EventFilter narrows event listings
type EventFilter struct {
	ClubID    string
	EventType string
	Status    string
	Page      int
	Limit     int
}
