package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clubhub/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockClubRepo struct {
	createFunc       func(ctx context.Context, club *model.Club) error
	getByIDFunc      func(ctx context.Context, id string) (*model.Club, error)
	getByNameFunc    func(ctx context.Context, name string) (*model.Club, error)
	updateFunc       func(ctx context.Context, club *model.Club) error
	updateRosterFunc func(ctx context.Context, clubID string, members []model.ClubMember) error
	deleteFunc       func(ctx context.Context, id string) error
	listFunc         func(ctx context.Context, filter model.ClubFilter) ([]*model.Club, int, error)
	getByIDsFunc     func(ctx context.Context, ids []string) ([]*model.Club, error)
}

func (m *mockClubRepo) Create(ctx context.Context, club *model.Club) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, club)
	}
	club.ID = "club:1"
	return nil
}

func (m *mockClubRepo) GetByID(ctx context.Context, id string) (*model.Club, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockClubRepo) GetByName(ctx context.Context, name string) (*model.Club, error) {
	if m.getByNameFunc != nil {
		return m.getByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *mockClubRepo) Update(ctx context.Context, club *model.Club) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, club)
	}
	return nil
}

func (m *mockClubRepo) UpdateRoster(ctx context.Context, clubID string, members []model.ClubMember) error {
	if m.updateRosterFunc != nil {
		return m.updateRosterFunc(ctx, clubID, members)
	}
	return nil
}

func (m *mockClubRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockClubRepo) List(ctx context.Context, filter model.ClubFilter) ([]*model.Club, int, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockClubRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Club, error) {
	if m.getByIDsFunc != nil {
		return m.getByIDsFunc(ctx, ids)
	}
	return nil, nil
}

type mockUserRepo struct {
	getByIDFunc              func(ctx context.Context, id string) (*model.User, error)
	addClubJoinedFunc        func(ctx context.Context, userID, clubID string) error
	removeClubJoinedFunc     func(ctx context.Context, userID, clubID string) error
	addClubOwnedFunc         func(ctx context.Context, userID, clubID string) error
	removeClubOwnedFunc      func(ctx context.Context, userID, clubID string) error
	removeClubJoinedBulkFunc func(ctx context.Context, userIDs []string, clubID string) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &model.User{ID: id}, nil
}

func (m *mockUserRepo) AddClubJoined(ctx context.Context, userID, clubID string) error {
	if m.addClubJoinedFunc != nil {
		return m.addClubJoinedFunc(ctx, userID, clubID)
	}
	return nil
}

func (m *mockUserRepo) RemoveClubJoined(ctx context.Context, userID, clubID string) error {
	if m.removeClubJoinedFunc != nil {
		return m.removeClubJoinedFunc(ctx, userID, clubID)
	}
	return nil
}

func (m *mockUserRepo) AddClubOwned(ctx context.Context, userID, clubID string) error {
	if m.addClubOwnedFunc != nil {
		return m.addClubOwnedFunc(ctx, userID, clubID)
	}
	return nil
}

func (m *mockUserRepo) RemoveClubOwned(ctx context.Context, userID, clubID string) error {
	if m.removeClubOwnedFunc != nil {
		return m.removeClubOwnedFunc(ctx, userID, clubID)
	}
	return nil
}

func (m *mockUserRepo) RemoveClubJoinedBulk(ctx context.Context, userIDs []string, clubID string) error {
	if m.removeClubJoinedBulkFunc != nil {
		return m.removeClubJoinedBulkFunc(ctx, userIDs, clubID)
	}
	return nil
}

// testClub returns a club with an owner-president and one plain member
func testClub() *model.Club {
	return &model.Club{
		ID:      "club:1",
		Name:    "Chess Club",
		OwnerID: "user:owner",
		Members: []model.ClubMember{
			{UserID: "user:owner", Role: model.ClubRolePresident, JoinedAt: time.Now()},
			{UserID: "user:member", Role: model.ClubRoleMember, JoinedAt: time.Now()},
		},
		MemberCount: 2,
		IsActive:    true,
	}
}

// ============================================================================
// CreateClub Tests
// ============================================================================

func TestCreateClub_OwnerBecomesSolePresident(t *testing.T) {
	svc := NewMembershipService(&mockClubRepo{}, &mockUserRepo{})

	club, err := svc.CreateClub(context.Background(), "user:owner", &model.CreateClubRequest{
		Name:        "Chess Club",
		Description: "We play chess every week",
		Category:    model.ClubCategorySocial,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if club.OwnerID != "user:owner" {
		t.Errorf("expected owner user:owner, got %s", club.OwnerID)
	}
	if len(club.Members) != 1 {
		t.Fatalf("expected 1 roster entry, got %d", len(club.Members))
	}
	if club.Members[0].UserID != "user:owner" || club.Members[0].Role != model.ClubRolePresident {
		t.Errorf("expected owner as president, got %+v", club.Members[0])
	}
	if club.MemberCount != 1 {
		t.Errorf("expected member count 1, got %d", club.MemberCount)
	}
}

func TestCreateClub_DuplicateName(t *testing.T) {
	clubs := &mockClubRepo{
		getByNameFunc: func(ctx context.Context, name string) (*model.Club, error) {
			return &model.Club{ID: "club:existing", Name: name}, nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	_, err := svc.CreateClub(context.Background(), "user:owner", &model.CreateClubRequest{
		Name:        "Chess Club",
		Description: "We play chess every week",
		Category:    model.ClubCategorySocial,
	})
	if !errors.Is(err, ErrClubNameExists) {
		t.Errorf("expected ErrClubNameExists, got %v", err)
	}
}

func TestCreateClub_PropagationFailureDoesNotFailCreate(t *testing.T) {
	users := &mockUserRepo{
		addClubOwnedFunc: func(ctx context.Context, userID, clubID string) error {
			return errors.New("connection lost")
		},
		addClubJoinedFunc: func(ctx context.Context, userID, clubID string) error {
			return errors.New("connection lost")
		},
	}
	svc := NewMembershipService(&mockClubRepo{}, users)

	club, err := svc.CreateClub(context.Background(), "user:owner", &model.CreateClubRequest{
		Name:        "Chess Club",
		Description: "We play chess every week",
		Category:    model.ClubCategorySocial,
	})
	if err != nil {
		t.Fatalf("expected create to succeed despite propagation failure, got %v", err)
	}
	if club.ID == "" {
		t.Error("expected created club to carry an ID")
	}
}

func TestCreateClub_DefaultMeetingSchedule(t *testing.T) {
	svc := NewMembershipService(&mockClubRepo{}, &mockUserRepo{})

	club, err := svc.CreateClub(context.Background(), "user:owner", &model.CreateClubRequest{
		Name:        "Chess Club",
		Description: "We play chess every week",
		Category:    model.ClubCategorySocial,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if club.MeetingSchedule != model.MeetingScheduleAsNeeded {
		t.Errorf("expected default schedule %q, got %q", model.MeetingScheduleAsNeeded, club.MeetingSchedule)
	}
}

// ============================================================================
// AddMember Tests
// ============================================================================

func TestAddMember_Success(t *testing.T) {
	club := testClub()
	var savedRoster []model.ClubMember
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return club, nil
		},
		updateRosterFunc: func(ctx context.Context, clubID string, members []model.ClubMember) error {
			savedRoster = members
			return nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	updated, err := svc.AddMember(context.Background(), "user:owner", "club:1", "user:new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(savedRoster) != 3 {
		t.Fatalf("expected 3 roster entries persisted, got %d", len(savedRoster))
	}
	if updated.MemberCount != len(updated.Members) {
		t.Errorf("member count %d does not match roster length %d", updated.MemberCount, len(updated.Members))
	}
	role, ok := updated.RoleOf("user:new")
	if !ok || role != model.ClubRoleMember {
		t.Errorf("expected new user to hold member role, got %q (%v)", role, ok)
	}
}

func TestAddMember_Duplicate(t *testing.T) {
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	_, err := svc.AddMember(context.Background(), "user:owner", "club:1", "user:member")
	if !errors.Is(err, ErrAlreadyClubMember) {
		t.Errorf("expected ErrAlreadyClubMember, got %v", err)
	}
}

func TestAddMember_NonOfficerForbidden(t *testing.T) {
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	_, err := svc.AddMember(context.Background(), "user:member", "club:1", "user:new")
	if !errors.Is(err, ErrNotClubOfficer) {
		t.Errorf("expected ErrNotClubOfficer, got %v", err)
	}
}

func TestAddMember_VicePresidentAllowed(t *testing.T) {
	club := testClub()
	club.Members = append(club.Members, model.ClubMember{
		UserID: "user:vp", Role: model.ClubRoleVicePresident, JoinedAt: time.Now(),
	})
	club.MemberCount = len(club.Members)
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return club, nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	if _, err := svc.AddMember(context.Background(), "user:vp", "club:1", "user:new"); err != nil {
		t.Errorf("expected vice-president to add members, got %v", err)
	}
}

func TestAddMember_TargetUserNotFound(t *testing.T) {
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
	}
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, nil
		},
	}
	svc := NewMembershipService(clubs, users)

	_, err := svc.AddMember(context.Background(), "user:owner", "club:1", "user:ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAddMember_EmptyUserID(t *testing.T) {
	svc := NewMembershipService(&mockClubRepo{}, &mockUserRepo{})

	_, err := svc.AddMember(context.Background(), "user:owner", "club:1", "")
	if !errors.Is(err, ErrUserIDRequired) {
		t.Errorf("expected ErrUserIDRequired, got %v", err)
	}
}

func TestAddMember_ClubNotFound(t *testing.T) {
	svc := NewMembershipService(&mockClubRepo{}, &mockUserRepo{})

	_, err := svc.AddMember(context.Background(), "user:owner", "club:missing", "user:new")
	if !errors.Is(err, ErrClubNotFound) {
		t.Errorf("expected ErrClubNotFound, got %v", err)
	}
}

// ============================================================================
// RemoveMember Tests
// ============================================================================

func TestRemoveMember_Success(t *testing.T) {
	club := testClub()
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return club, nil
		},
	}
	removed := false
	users := &mockUserRepo{
		removeClubJoinedFunc: func(ctx context.Context, userID, clubID string) error {
			removed = true
			return nil
		},
	}
	svc := NewMembershipService(clubs, users)

	updated, err := svc.RemoveMember(context.Background(), "user:owner", "club:1", "user:member")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := updated.RoleOf("user:member"); ok {
		t.Error("expected user:member to be removed from roster")
	}
	if updated.MemberCount != len(updated.Members) {
		t.Errorf("member count %d does not match roster length %d", updated.MemberCount, len(updated.Members))
	}
	if !removed {
		t.Error("expected clubs_joined propagation to run")
	}
}

func TestRemoveMember_OwnerCannotBeRemoved(t *testing.T) {
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	_, err := svc.RemoveMember(context.Background(), "user:owner", "club:1", "user:owner")
	if !errors.Is(err, ErrCannotRemoveOwner) {
		t.Errorf("expected ErrCannotRemoveOwner, got %v", err)
	}
}

func TestRemoveMember_NonOfficerForbidden(t *testing.T) {
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	_, err := svc.RemoveMember(context.Background(), "user:member", "club:1", "user:member")
	if !errors.Is(err, ErrNotClubOfficer) {
		t.Errorf("expected ErrNotClubOfficer, got %v", err)
	}
}

func TestRemoveMember_PropagationFailureStillSucceeds(t *testing.T) {
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
	}
	users := &mockUserRepo{
		removeClubJoinedFunc: func(ctx context.Context, userID, clubID string) error {
			return errors.New("connection lost")
		},
	}
	svc := NewMembershipService(clubs, users)

	if _, err := svc.RemoveMember(context.Background(), "user:owner", "club:1", "user:member"); err != nil {
		t.Errorf("expected removal to succeed despite propagation failure, got %v", err)
	}
}

// ============================================================================
// DeleteClub Tests
// ============================================================================

func TestDeleteClub_OwnerOnly(t *testing.T) {
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	err := svc.DeleteClub(context.Background(), "user:member", "club:1")
	if !errors.Is(err, ErrNotClubOwner) {
		t.Errorf("expected ErrNotClubOwner, got %v", err)
	}
}

func TestDeleteClub_PropagatesBeforePrimaryDelete(t *testing.T) {
	var order []string
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			order = append(order, "delete")
			return nil
		},
	}
	users := &mockUserRepo{
		removeClubJoinedBulkFunc: func(ctx context.Context, userIDs []string, clubID string) error {
			order = append(order, "bulk")
			if len(userIDs) != 2 {
				t.Errorf("expected 2 member references cleared, got %d", len(userIDs))
			}
			return nil
		},
		removeClubOwnedFunc: func(ctx context.Context, userID, clubID string) error {
			order = append(order, "owned")
			return nil
		},
	}
	svc := NewMembershipService(clubs, users)

	if err := svc.DeleteClub(context.Background(), "user:owner", "club:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(order) != 3 || order[0] != "bulk" || order[1] != "owned" || order[2] != "delete" {
		t.Errorf("expected propagation before primary delete, got order %v", order)
	}
}

func TestDeleteClub_PropagationFailureAbortsDelete(t *testing.T) {
	deleted := false
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	users := &mockUserRepo{
		removeClubJoinedBulkFunc: func(ctx context.Context, userIDs []string, clubID string) error {
			return errors.New("connection lost")
		},
	}
	svc := NewMembershipService(clubs, users)

	if err := svc.DeleteClub(context.Background(), "user:owner", "club:1"); err == nil {
		t.Error("expected error when propagation fails")
	}
	if deleted {
		t.Error("expected primary delete to be skipped after propagation failure")
	}
}

// ============================================================================
// UpdateClub Tests
// ============================================================================

func TestUpdateClub_PartialPatch(t *testing.T) {
	club := testClub()
	club.Description = "original description"
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return club, nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	name := "Go Club"
	updated, err := svc.UpdateClub(context.Background(), "user:owner", "club:1", &model.UpdateClubRequest{
		Name: &name,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Go Club" {
		t.Errorf("expected name updated, got %q", updated.Name)
	}
	if updated.Description != "original description" {
		t.Errorf("expected untouched description, got %q", updated.Description)
	}
}

func TestUpdateClub_NonOfficerForbidden(t *testing.T) {
	clubs := &mockClubRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Club, error) {
			return testClub(), nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	name := "Go Club"
	_, err := svc.UpdateClub(context.Background(), "user:member", "club:1", &model.UpdateClubRequest{Name: &name})
	if !errors.Is(err, ErrNotClubOfficer) {
		t.Errorf("expected ErrNotClubOfficer, got %v", err)
	}
}

// ============================================================================
// ClubsFor Tests
// ============================================================================

func TestClubsFor_JoinedAndOwned(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{
				ID:          id,
				ClubsJoined: []string{"club:1", "club:2"},
				ClubsOwned:  []string{"club:1"},
			}, nil
		},
	}
	var requested []string
	clubs := &mockClubRepo{
		getByIDsFunc: func(ctx context.Context, ids []string) ([]*model.Club, error) {
			requested = ids
			out := make([]*model.Club, len(ids))
			for i, id := range ids {
				out[i] = &model.Club{ID: id}
			}
			return out, nil
		},
	}
	svc := NewMembershipService(clubs, users)

	joined, err := svc.ClubsFor(context.Background(), "user:1", RelationJoined)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(joined) != 2 || len(requested) != 2 {
		t.Errorf("expected 2 joined clubs resolved, got %d", len(joined))
	}

	owned, err := svc.ClubsFor(context.Background(), "user:1", RelationOwned)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(owned) != 1 || len(requested) != 1 {
		t.Errorf("expected 1 owned club resolved, got %d", len(owned))
	}
}

func TestClubsFor_UserNotFound(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return nil, nil
		},
	}
	svc := NewMembershipService(&mockClubRepo{}, users)

	_, err := svc.ClubsFor(context.Background(), "user:ghost", RelationJoined)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

// ============================================================================
// ListClubs Tests
// ============================================================================

func TestListClubs_DefaultsPagination(t *testing.T) {
	var seen model.ClubFilter
	clubs := &mockClubRepo{
		listFunc: func(ctx context.Context, filter model.ClubFilter) ([]*model.Club, int, error) {
			seen = filter
			return nil, 0, nil
		},
	}
	svc := NewMembershipService(clubs, &mockUserRepo{})

	if _, _, err := svc.ListClubs(context.Background(), model.ClubFilter{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen.Page != 1 || seen.Limit != 10 {
		t.Errorf("expected defaults page=1 limit=10, got page=%d limit=%d", seen.Page, seen.Limit)
	}
}
