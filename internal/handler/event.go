package handler

import (
	"context"
	"net/http"

	"github.com/clubhub/api/internal/model"
)

// RegistrationServiceInterface defines the event and registration
// operations the handler depends on
type RegistrationServiceInterface interface {
	CreateEvent(ctx context.Context, principalID string, req *model.CreateEventRequest) (*model.Event, error)
	GetEvent(ctx context.Context, eventID string) (*model.Event, error)
	ListEvents(ctx context.Context, filter model.EventFilter) ([]*model.Event, int, error)
	UpdateEvent(ctx context.Context, principalID, eventID string, req *model.UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, principalID, eventID string) error
	Register(ctx context.Context, principalID, eventID string) (*model.Event, error)
	CancelRegistration(ctx context.Context, principalID, eventID string) (*model.Event, error)
	MarkAttended(ctx context.Context, principalID, eventID, userID string) (*model.Event, error)
	EventsRegisteredBy(ctx context.Context, userID string) ([]*model.Event, error)
}

// EventHandler handles event and registration endpoints
type EventHandler struct {
	registration RegistrationServiceInterface
}

// NewEventHandler creates a new event handler
func NewEventHandler(registration RegistrationServiceInterface) *EventHandler {
	return &EventHandler{registration: registration}
}

// List handles GET /v1/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.EventFilter{
		ClubID:    r.URL.Query().Get("club_id"),
		EventType: r.URL.Query().Get("event_type"),
		Status:    r.URL.Query().Get("status"),
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 10),
	}

	events, total, err := h.registration.ListEvents(r.Context(), filter)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, events, NewPaginationInfo(filter.Page, filter.Limit, total))
}

// Create handles POST /v1/events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req model.CreateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	event, err := h.registration.CreateEvent(r.Context(), principalID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, event)
}

// Get handles GET /v1/events/{eventId}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.registration.GetEvent(r.Context(), r.PathValue("eventId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, event)
}

// Update handles PATCH /v1/events/{eventId}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req model.UpdateEventRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	event, err := h.registration.UpdateEvent(r.Context(), principalID, r.PathValue("eventId"), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// Delete handles DELETE /v1/events/{eventId}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.registration.DeleteEvent(r.Context(), principalID, r.PathValue("eventId")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// Register handles POST /v1/events/{eventId}/register
func (h *EventHandler) Register(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	event, err := h.registration.Register(r.Context(), principalID, r.PathValue("eventId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// CancelRegistration handles DELETE /v1/events/{eventId}/register
func (h *EventHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	event, err := h.registration.CancelRegistration(r.Context(), principalID, r.PathValue("eventId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// MarkAttended handles POST /v1/events/{eventId}/attendance
func (h *EventHandler) MarkAttended(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req model.MarkAttendedRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	event, err := h.registration.MarkAttended(r.Context(), principalID, r.PathValue("eventId"), req.UserID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, event)
}

// MyEvents handles GET /v1/users/me/events
func (h *EventHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	events, err := h.registration.EventsRegisteredBy(r.Context(), principalID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, events, nil)
}
