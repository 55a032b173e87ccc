package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubhub/api/internal/database"
	"github.com/clubhub/api/internal/model"
)

// ClubRepository handles club data access. The members roster is stored
// inline on the club record, so roster mutations are single-record
// writes with last-writer-wins semantics.
type ClubRepository struct {
	db database.Database
}

// NewClubRepository creates a new club repository
func NewClubRepository(db database.Database) *ClubRepository {
	return &ClubRepository{db: db}
}

// Create creates a new club with its initial roster
func (r *ClubRepository) Create(ctx context.Context, club *model.Club) error {
	query := `
		CREATE club CONTENT {
			name: $name,
			description: $description,
			category: $category,
			owner_id: $owner_id,
			members: $members,
			member_count: $member_count,
			location: IF $location IS NOT NULL THEN $location ELSE NONE END,
			meeting_schedule: $meeting_schedule,
			is_active: true,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"name":             club.Name,
		"description":      club.Description,
		"category":         club.Category,
		"owner_id":         club.OwnerID,
		"members":          rosterVars(club.Members),
		"member_count":     club.MemberCount,
		"location":         optionalString(club.Location),
		"meeting_schedule": club.MeetingSchedule,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: club name already exists", database.ErrDuplicate)
		}
		return err
	}

	records := unwrapResults(result)
	if len(records) == 0 {
		return errors.New("no result returned")
	}

	created := &model.Club{}
	if err := decodeRecord(records[0], created); err != nil {
		return err
	}
	club.ID = created.ID
	club.IsActive = created.IsActive
	club.CreatedOn = created.CreatedOn
	club.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves a club by ID. Returns (nil, nil) when absent.
func (r *ClubRepository) GetByID(ctx context.Context, id string) (*model.Club, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseClubResult(result)
}

// GetByName retrieves a club by exact name match. Returns (nil, nil) when absent.
func (r *ClubRepository) GetByName(ctx context.Context, name string) (*model.Club, error) {
	query := `SELECT * FROM club WHERE name = $name LIMIT 1`
	vars := map[string]interface{}{"name": name}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseClubResult(result)
}

// Update persists the club's mutable descriptive fields
func (r *ClubRepository) Update(ctx context.Context, club *model.Club) error {
	query := `
		UPDATE type::record($id) SET
			name = $name,
			description = $description,
			category = $category,
			location = IF $location IS NOT NULL THEN $location ELSE NONE END,
			meeting_schedule = $meeting_schedule,
			is_active = $is_active,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":               club.ID,
		"name":             club.Name,
		"description":      club.Description,
		"category":         club.Category,
		"location":         optionalString(club.Location),
		"meeting_schedule": club.MeetingSchedule,
		"is_active":        club.IsActive,
	}
	return r.db.Execute(ctx, query, vars)
}

// UpdateRoster persists the members roster and its derived count in a
// single record write
func (r *ClubRepository) UpdateRoster(ctx context.Context, clubID string, members []model.ClubMember) error {
	query := `
		UPDATE type::record($id) SET
			members = $members,
			member_count = $member_count,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":           clubID,
		"members":      rosterVars(members),
		"member_count": len(members),
	}
	return r.db.Execute(ctx, query, vars)
}

// Delete deletes the club record
func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

// List retrieves active clubs matching the filter, newest first, along
// with the total match count for pagination
func (r *ClubRepository) List(ctx context.Context, filter model.ClubFilter) ([]*model.Club, int, error) {
	where := `is_active = true`
	vars := map[string]interface{}{
		"limit": filter.Limit,
		"start": (filter.Page - 1) * filter.Limit,
	}
	if filter.Category != "" {
		where += ` AND category = $category`
		vars["category"] = filter.Category
	}
	if filter.Search != "" {
		where += ` AND (string::contains(string::lowercase(name), string::lowercase($search))
			OR string::contains(string::lowercase(description), string::lowercase($search)))`
		vars["search"] = filter.Search
	}

	query := `SELECT * FROM club WHERE ` + where + ` ORDER BY created_on DESC LIMIT $limit START $start`
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, 0, err
	}

	clubs := make([]*model.Club, 0)
	for _, data := range unwrapResults(result) {
		club := &model.Club{}
		if err := decodeRecord(data, club); err != nil {
			return nil, 0, err
		}
		clubs = append(clubs, club)
	}

	countQuery := `SELECT count() FROM club WHERE ` + where + ` GROUP ALL`
	countResult, err := r.db.QueryOne(ctx, countQuery, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return clubs, len(clubs), nil
		}
		return nil, 0, err
	}

	return clubs, extractCount(countResult), nil
}

// GetByIDs retrieves the clubs behind a set of record references,
// preserving no particular order. Used to resolve clubs_joined and
// clubs_owned projections.
func (r *ClubRepository) GetByIDs(ctx context.Context, ids []string) ([]*model.Club, error) {
	if len(ids) == 0 {
		return []*model.Club{}, nil
	}

	query := `SELECT * FROM club WHERE <string> id INSIDE $ids`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"ids": ids})
	if err != nil {
		return nil, err
	}

	clubs := make([]*model.Club, 0, len(ids))
	for _, data := range unwrapResults(result) {
		club := &model.Club{}
		if err := decodeRecord(data, club); err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}
	return clubs, nil
}

// parseClubResult parses a single club record
func parseClubResult(result interface{}) (*model.Club, error) {
	data, ok := unwrapOne(result)
	if !ok {
		return nil, nil
	}

	club := &model.Club{}
	if err := decodeRecord(data, club); err != nil {
		return nil, err
	}
	return club, nil
}

// rosterVars converts a members roster into query variables
func rosterVars(members []model.ClubMember) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(members))
	for _, m := range members {
		out = append(out, map[string]interface{}{
			"user_id":   m.UserID,
			"role":      string(m.Role),
			"joined_at": m.JoinedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}
