package handler

import (
	"errors"
	"log/slog"

	"github.com/clubhub/api/internal/database"
	"github.com/clubhub/api/internal/model"
	"github.com/clubhub/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails
// response. This centralizes error handling for all handlers so every
// failure kind maps to exactly one status code.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Authorization Errors → 403 =====
	case errors.Is(err, service.ErrNotClubOfficer),
		errors.Is(err, service.ErrNotClubOwner),
		errors.Is(err, service.ErrNotEventCreator):
		return model.NewForbiddenError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrClubNotFound):
		return model.NewNotFoundError("club")
	case errors.Is(err, service.ErrEventNotFound):
		return model.NewNotFoundError("event")
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrRegistrationNotFound):
		return model.NewNotFoundError("registration")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrClubNameExists),
		errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAlreadyClubMember),
		errors.Is(err, service.ErrAlreadyRegistered):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrUserIDRequired):
		return model.NewValidationError([]model.FieldError{{Field: "user_id", Message: err.Error()}})
	case errors.Is(err, service.ErrCannotRemoveOwner):
		return model.NewValidationError([]model.FieldError{{Field: "user_id", Message: err.Error()}})
	// ===== Capacity Errors → 422 =====
	case errors.Is(err, service.ErrEventFull):
		return model.NewCapacityExceededError(err.Error())

	// ===== Store Errors → 500 =====
	// Persistence failures always surface; they are never retried or
	// silently absorbed.
	case errors.Is(err, database.ErrConnection),
		errors.Is(err, database.ErrQuery):
		slog.Error("store unavailable", slog.String("error", err.Error()))
		return model.NewInternalError("persistence layer unavailable")

	default:
		slog.Error("unhandled service error", slog.String("error", err.Error()))
		return model.NewInternalError("")
	}
}
