package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clubhub/api/internal/database"
	"github.com/clubhub/api/internal/model"
)

// ClubRepositoryInterface defines the club storage operations the
// membership service depends on
type ClubRepositoryInterface interface {
	Create(ctx context.Context, club *model.Club) error
	GetByID(ctx context.Context, id string) (*model.Club, error)
	GetByName(ctx context.Context, name string) (*model.Club, error)
	Update(ctx context.Context, club *model.Club) error
	UpdateRoster(ctx context.Context, clubID string, members []model.ClubMember) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter model.ClubFilter) ([]*model.Club, int, error)
	GetByIDs(ctx context.Context, ids []string) ([]*model.Club, error)
}

// UserRepositoryInterface defines the user storage operations the
// membership service depends on, including the denormalized
// back-reference writes used for propagation
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	AddClubJoined(ctx context.Context, userID, clubID string) error
	RemoveClubJoined(ctx context.Context, userID, clubID string) error
	AddClubOwned(ctx context.Context, userID, clubID string) error
	RemoveClubOwned(ctx context.Context, userID, clubID string) error
	RemoveClubJoinedBulk(ctx context.Context, userIDs []string, clubID string) error
}

// MembershipService owns club creation, roster mutation, ownership
// bookkeeping, and the role checks gating club-level actions.
//
// Rosters and back-references live on separate records with no
// cross-record atomicity. Mutations write the primary record (the club)
// first, then propagate into the affected users' clubs_joined and
// clubs_owned sets. A failed propagation after a successful primary
// write is logged as drift and never rolled back; the roster on the
// club record remains the source of truth.
type MembershipService struct {
	clubs ClubRepositoryInterface
	users UserRepositoryInterface
}

// NewMembershipService creates a new membership service
func NewMembershipService(clubs ClubRepositoryInterface, users UserRepositoryInterface) *MembershipService {
	return &MembershipService{clubs: clubs, users: users}
}

// CreateClub creates a club with the principal as its sole president
// member, then propagates ownership references onto the principal.
func (s *MembershipService) CreateClub(ctx context.Context, principalID string, req *model.CreateClubRequest) (*model.Club, error) {
	existing, err := s.clubs.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrClubNameExists
	}

	schedule := model.MeetingScheduleAsNeeded
	if req.MeetingSchedule != nil {
		schedule = *req.MeetingSchedule
	}

	club := &model.Club{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		OwnerID:     principalID,
		Members: []model.ClubMember{
			{UserID: principalID, Role: model.ClubRolePresident, JoinedAt: time.Now().UTC()},
		},
		MemberCount:     1,
		Location:        req.Location,
		MeetingSchedule: schedule,
	}

	if err := s.clubs.Create(ctx, club); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrClubNameExists
		}
		return nil, err
	}

	// Primary write done; back-reference failures past this point leave
	// the club authoritative and the user record stale.
	if err := s.users.AddClubOwned(ctx, principalID, club.ID); err != nil {
		s.logDrift("create_club", "clubs_owned", principalID, club.ID, err)
	}
	if err := s.users.AddClubJoined(ctx, principalID, club.ID); err != nil {
		s.logDrift("create_club", "clubs_joined", principalID, club.ID, err)
	}

	return club, nil
}

// GetClub retrieves a club by ID
func (s *MembershipService) GetClub(ctx context.Context, clubID string) (*model.Club, error) {
	club, err := s.clubs.GetByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, ErrClubNotFound
	}
	return club, nil
}

// ListClubs retrieves active clubs matching the filter
func (s *MembershipService) ListClubs(ctx context.Context, filter model.ClubFilter) ([]*model.Club, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	return s.clubs.List(ctx, filter)
}

// UpdateClub applies a partial update. Officer only; nil patch fields
// are left untouched.
func (s *MembershipService) UpdateClub(ctx context.Context, principalID, clubID string, req *model.UpdateClubRequest) (*model.Club, error) {
	club, err := s.GetClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.HasOfficer(principalID) {
		return nil, ErrNotClubOfficer
	}

	if req.Name != nil {
		club.Name = *req.Name
	}
	if req.Description != nil {
		club.Description = *req.Description
	}
	if req.Category != nil {
		club.Category = *req.Category
	}
	if req.Location != nil {
		club.Location = req.Location
	}
	if req.MeetingSchedule != nil {
		club.MeetingSchedule = *req.MeetingSchedule
	}
	if req.IsActive != nil {
		club.IsActive = *req.IsActive
	}

	if err := s.clubs.Update(ctx, club); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrClubNameExists
		}
		return nil, err
	}
	return club, nil
}

// DeleteClub deletes a club. Owner only, by identity equality against
// the owner reference rather than roster role.
//
// Propagation runs before the primary deletion: a crash mid-sequence
// leaves users with stale references to a club that still exists,
// never dangling references to a deleted one.
func (s *MembershipService) DeleteClub(ctx context.Context, principalID, clubID string) error {
	club, err := s.GetClub(ctx, clubID)
	if err != nil {
		return err
	}
	if club.OwnerID != principalID {
		return ErrNotClubOwner
	}

	memberIDs := make([]string, 0, len(club.Members))
	for _, m := range club.Members {
		memberIDs = append(memberIDs, m.UserID)
	}

	if err := s.users.RemoveClubJoinedBulk(ctx, memberIDs, club.ID); err != nil {
		return err
	}
	if err := s.users.RemoveClubOwned(ctx, club.OwnerID, club.ID); err != nil {
		return err
	}

	return s.clubs.Delete(ctx, club.ID)
}

// AddMember appends a user to the club roster with the member role,
// then propagates the club reference into the user's clubs_joined set.
// Officer only. Repeat additions fail rather than no-op.
func (s *MembershipService) AddMember(ctx context.Context, principalID, clubID, userID string) (*model.Club, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	club, err := s.GetClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.HasOfficer(principalID) {
		return nil, ErrNotClubOfficer
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if _, ok := club.RoleOf(userID); ok {
		return nil, ErrAlreadyClubMember
	}

	club.Members = append(club.Members, model.ClubMember{
		UserID:   userID,
		Role:     model.ClubRoleMember,
		JoinedAt: time.Now().UTC(),
	})
	club.MemberCount = len(club.Members)

	if err := s.clubs.UpdateRoster(ctx, club.ID, club.Members); err != nil {
		return nil, err
	}

	if err := s.users.AddClubJoined(ctx, userID, club.ID); err != nil {
		s.logDrift("add_member", "clubs_joined", userID, club.ID, err)
	}

	return club, nil
}

// RemoveMember filters a user out of the club roster, then propagates
// the removal from the user's clubs_joined set. Officer only; the club
// owner cannot be removed.
func (s *MembershipService) RemoveMember(ctx context.Context, principalID, clubID, userID string) (*model.Club, error) {
	club, err := s.GetClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.HasOfficer(principalID) {
		return nil, ErrNotClubOfficer
	}
	if userID == club.OwnerID {
		return nil, ErrCannotRemoveOwner
	}

	filtered := club.Members[:0:0]
	for _, m := range club.Members {
		if m.UserID != userID {
			filtered = append(filtered, m)
		}
	}
	club.Members = filtered
	club.MemberCount = len(club.Members)

	if err := s.clubs.UpdateRoster(ctx, club.ID, club.Members); err != nil {
		return nil, err
	}

	if err := s.users.RemoveClubJoined(ctx, userID, club.ID); err != nil {
		s.logDrift("remove_member", "clubs_joined", userID, club.ID, err)
	}

	return club, nil
}

// ClubRelation selects which denormalized reference set to project
type ClubRelation string

const (
	RelationJoined ClubRelation = "joined"
	RelationOwned  ClubRelation = "owned"
)

// ClubsFor resolves the clubs behind a user's joined or owned
// reference set. The sets are eventually consistent caches, so a
// reference may point at a club deleted mid-propagation; such holes
// are skipped rather than surfaced.
func (s *MembershipService) ClubsFor(ctx context.Context, userID string, relation ClubRelation) ([]*model.Club, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	refs := user.ClubsJoined
	if relation == RelationOwned {
		refs = user.ClubsOwned
	}

	return s.clubs.GetByIDs(ctx, refs)
}

// logDrift records a failed propagation write. The primary record is
// already persisted, so the two sides disagree until a reconciliation
// sweep heals them.
func (s *MembershipService) logDrift(op, field, userID, clubID string, err error) {
	slog.Warn("membership propagation failed, back-reference drifted",
		slog.String("op", op),
		slog.String("field", field),
		slog.String("user_id", userID),
		slog.String("club_id", clubID),
		slog.String("error", err.Error()),
	)
}
