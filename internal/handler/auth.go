package handler

import (
	"context"
	"net/http"

	"github.com/clubhub/api/internal/model"
)

// AuthServiceInterface defines the auth operations the handler depends on
type AuthServiceInterface interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth AuthServiceInterface
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthServiceInterface) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	resp, err := h.auth.Signup(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, resp)
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, resp)
}
