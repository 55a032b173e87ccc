package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubhub/api/internal/database"
	"github.com/clubhub/api/internal/model"
)

// UserRepository handles user data access, including the denormalized
// clubs_joined/clubs_owned back-references maintained by propagation
// writes from the membership service.
type UserRepository struct {
	db database.Database
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user account
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		CREATE user CONTENT {
			full_name: $full_name,
			email: $email,
			hash: $hash,
			phone_number: IF $phone_number IS NOT NULL THEN $phone_number ELSE NONE END,
			student_id: IF $student_id IS NOT NULL THEN $student_id ELSE NONE END,
			role: $role,
			is_active: true,
			clubs_joined: [],
			clubs_owned: [],
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"full_name":    user.FullName,
		"email":        user.Email,
		"hash":         user.Hash,
		"phone_number": optionalString(user.PhoneNumber),
		"student_id":   optionalString(user.StudentID),
		"role":         string(user.Role),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: email already registered", database.ErrDuplicate)
		}
		return err
	}

	records := unwrapResults(result)
	if len(records) == 0 {
		return errors.New("no result returned")
	}

	created := &model.User{}
	if err := decodeRecord(records[0], created); err != nil {
		return err
	}
	user.ID = created.ID
	user.IsActive = created.IsActive
	user.ClubsJoined = created.ClubsJoined
	user.ClubsOwned = created.ClubsOwned
	user.CreatedOn = created.CreatedOn
	user.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a user by ID. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserResult(result)
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM user WHERE email = $email LIMIT 1`
	vars := map[string]interface{}{"email": email}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseUserResult(result)
}

// AddClubJoined adds a club reference to the user's clubs_joined set.
// array::union keeps the propagation idempotent under retries.
func (r *UserRepository) AddClubJoined(ctx context.Context, userID, clubID string) error {
	query := `UPDATE type::record($id) SET clubs_joined = array::union(clubs_joined, [$club]), updated_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": userID, "club": clubID})
}

// RemoveClubJoined removes a club reference from the user's clubs_joined set
func (r *UserRepository) RemoveClubJoined(ctx context.Context, userID, clubID string) error {
	query := `UPDATE type::record($id) SET clubs_joined -= $club, updated_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": userID, "club": clubID})
}

// AddClubOwned adds a club reference to the user's clubs_owned set
func (r *UserRepository) AddClubOwned(ctx context.Context, userID, clubID string) error {
	query := `UPDATE type::record($id) SET clubs_owned = array::union(clubs_owned, [$club]), updated_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": userID, "club": clubID})
}

// RemoveClubOwned removes a club reference from the user's clubs_owned set
func (r *UserRepository) RemoveClubOwned(ctx context.Context, userID, clubID string) error {
	query := `UPDATE type::record($id) SET clubs_owned -= $club, updated_on = time::now()`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": userID, "club": clubID})
}

// RemoveClubJoinedBulk strips a club reference from clubs_joined of every
// listed user. Used by club deletion, which propagates before deleting
// the primary record.
func (r *UserRepository) RemoveClubJoinedBulk(ctx context.Context, userIDs []string, clubID string) error {
	query := `
		FOR $uid IN $ids {
			UPDATE type::record($uid) SET clubs_joined -= $club, updated_on = time::now();
		}
	`
	return r.db.Execute(ctx, query, map[string]interface{}{"ids": userIDs, "club": clubID})
}

// parseUserResult parses a single user record
func parseUserResult(result interface{}) (*model.User, error) {
	data, ok := unwrapOne(result)
	if !ok {
		return nil, nil
	}

	user := &model.User{}
	if err := decodeRecord(data, user); err != nil {
		return nil, err
	}
	return user, nil
}

// optionalString unwraps an optional field for query vars
func optionalString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
