package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/clubhub/api/internal/middleware"
	"github.com/clubhub/api/internal/model"
	"github.com/clubhub/api/internal/service"
)

// MembershipServiceInterface defines the membership operations the
// handler depends on
type MembershipServiceInterface interface {
	CreateClub(ctx context.Context, principalID string, req *model.CreateClubRequest) (*model.Club, error)
	GetClub(ctx context.Context, clubID string) (*model.Club, error)
	ListClubs(ctx context.Context, filter model.ClubFilter) ([]*model.Club, int, error)
	UpdateClub(ctx context.Context, principalID, clubID string, req *model.UpdateClubRequest) (*model.Club, error)
	DeleteClub(ctx context.Context, principalID, clubID string) error
	AddMember(ctx context.Context, principalID, clubID, userID string) (*model.Club, error)
	RemoveMember(ctx context.Context, principalID, clubID, userID string) (*model.Club, error)
	ClubsFor(ctx context.Context, userID string, relation service.ClubRelation) ([]*model.Club, error)
}

// ClubHandler handles club and roster endpoints
type ClubHandler struct {
	membership MembershipServiceInterface
}

// NewClubHandler creates a new club handler
func NewClubHandler(membership MembershipServiceInterface) *ClubHandler {
	return &ClubHandler{membership: membership}
}

// List handles GET /v1/clubs
func (h *ClubHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.ClubFilter{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 10),
	}

	clubs, total, err := h.membership.ListClubs(r.Context(), filter)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, clubs, NewPaginationInfo(filter.Page, filter.Limit, total))
}

// Create handles POST /v1/clubs
func (h *ClubHandler) Create(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req model.CreateClubRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	club, err := h.membership.CreateClub(r.Context(), principalID, &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, club)
}

// Get handles GET /v1/clubs/{clubId}
func (h *ClubHandler) Get(w http.ResponseWriter, r *http.Request) {
	club, err := h.membership.GetClub(r.Context(), r.PathValue("clubId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}
	WriteData(w, http.StatusOK, club)
}

// Update handles PATCH /v1/clubs/{clubId}
func (h *ClubHandler) Update(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req model.UpdateClubRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	club, err := h.membership.UpdateClub(r.Context(), principalID, r.PathValue("clubId"), &req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, club)
}

// Delete handles DELETE /v1/clubs/{clubId}
func (h *ClubHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.membership.DeleteClub(r.Context(), principalID, r.PathValue("clubId")); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}

// AddMember handles POST /v1/clubs/{clubId}/members
func (h *ClubHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req model.AddMemberRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	club, err := h.membership.AddMember(r.Context(), principalID, r.PathValue("clubId"), req.UserID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, club)
}

// RemoveMember handles DELETE /v1/clubs/{clubId}/members/{userId}
func (h *ClubHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	club, err := h.membership.RemoveMember(r.Context(), principalID, r.PathValue("clubId"), r.PathValue("userId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, club)
}

// MyClubs handles GET /v1/users/me/clubs?relation=joined|owned
func (h *ClubHandler) MyClubs(w http.ResponseWriter, r *http.Request) {
	principalID, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	relation := service.ClubRelation(r.URL.Query().Get("relation"))
	if relation == "" {
		relation = service.RelationJoined
	}
	if relation != service.RelationJoined && relation != service.RelationOwned {
		WriteError(w, model.NewBadRequestError("relation must be 'joined' or 'owned'"))
		return
	}

	clubs, err := h.membership.ClubsFor(r.Context(), principalID, relation)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, clubs, nil)
}

// requirePrincipal resolves the authenticated user ID or writes a 401
func requirePrincipal(w http.ResponseWriter, r *http.Request) (string, bool) {
	principalID := middleware.GetUserID(r.Context())
	if principalID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return "", false
	}
	return principalID, true
}

// queryInt parses an integer query parameter with a fallback
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
