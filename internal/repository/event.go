package repository

import (
	"context"
	"errors"
	"time"

	"github.com/clubhub/api/internal/database"
	"github.com/clubhub/api/internal/model"
)

// EventRepository handles event data access. The registration roster is
// stored inline on the event record, mirroring the club roster layout.
type EventRepository struct {
	db database.Database
}

// NewEventRepository creates a new event repository
func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	query := `
		CREATE event CONTENT {
			club_id: $club_id,
			title: $title,
			description: $description,
			location: $location,
			start_date: <datetime> $start_date,
			end_date: <datetime> $end_date,
			event_type: $event_type,
			capacity: $capacity,
			registered_participants: [],
			participant_count: 0,
			status: $status,
			created_by: $created_by,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"club_id":     event.ClubID,
		"title":       event.Title,
		"description": event.Description,
		"location":    event.Location,
		"start_date":  event.StartDate.UTC().Format(time.RFC3339Nano),
		"end_date":    event.EndDate.UTC().Format(time.RFC3339Nano),
		"event_type":  event.EventType,
		"capacity":    event.Capacity,
		"status":      event.Status,
		"created_by":  event.CreatedBy,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	records := unwrapResults(result)
	if len(records) == 0 {
		return errors.New("no result returned")
	}

	created := &model.Event{}
	if err := decodeRecord(records[0], created); err != nil {
		return err
	}
	event.ID = created.ID
	event.RegisteredParticipants = created.RegisteredParticipants
	event.CreatedOn = created.CreatedOn
	event.UpdatedOn = created.UpdatedOn
	return nil
}

// GetByID retrieves an event by ID. Returns (nil, nil) when absent.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseEventResult(result)
}

// Update persists the event's mutable fields. Club and creator
// references are immutable and never written here.
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	query := `
		UPDATE type::record($id) SET
			title = $title,
			description = $description,
			location = $location,
			start_date = <datetime> $start_date,
			end_date = <datetime> $end_date,
			event_type = $event_type,
			capacity = $capacity,
			status = $status,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":          event.ID,
		"title":       event.Title,
		"description": event.Description,
		"location":    event.Location,
		"start_date":  event.StartDate.UTC().Format(time.RFC3339Nano),
		"end_date":    event.EndDate.UTC().Format(time.RFC3339Nano),
		"event_type":  event.EventType,
		"capacity":    event.Capacity,
		"status":      event.Status,
	}
	return r.db.Execute(ctx, query, vars)
}

// UpdateRoster persists the registration roster and its derived count
// in a single record write
func (r *EventRepository) UpdateRoster(ctx context.Context, eventID string, participants []model.Participant) error {
	query := `
		UPDATE type::record($id) SET
			registered_participants = $participants,
			participant_count = $participant_count,
			updated_on = time::now()
	`
	vars := map[string]interface{}{
		"id":                eventID,
		"participants":      participantVars(participants),
		"participant_count": len(participants),
	}
	return r.db.Execute(ctx, query, vars)
}

// Delete deletes the event record. Events are not referenced from user
// records, so there is nothing to propagate.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE type::record($id)`
	return r.db.Execute(ctx, query, map[string]interface{}{"id": id})
}

// List retrieves events matching the filter ordered by start date,
// along with the total match count for pagination
func (r *EventRepository) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, int, error) {
	where := `true`
	vars := map[string]interface{}{
		"limit": filter.Limit,
		"start": (filter.Page - 1) * filter.Limit,
	}
	if filter.ClubID != "" {
		where += ` AND club_id = $club_id`
		vars["club_id"] = filter.ClubID
	}
	if filter.EventType != "" {
		where += ` AND event_type = $event_type`
		vars["event_type"] = filter.EventType
	}
	if filter.Status != "" {
		where += ` AND status = $status`
		vars["status"] = filter.Status
	}

	query := `SELECT * FROM event WHERE ` + where + ` ORDER BY start_date ASC LIMIT $limit START $start`
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, 0, err
	}

	events := make([]*model.Event, 0)
	for _, data := range unwrapResults(result) {
		event := &model.Event{}
		if err := decodeRecord(data, event); err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}

	countQuery := `SELECT count() FROM event WHERE ` + where + ` GROUP ALL`
	countResult, err := r.db.QueryOne(ctx, countQuery, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return events, len(events), nil
		}
		return nil, 0, err
	}

	return events, extractCount(countResult), nil
}

// GetRegisteredBy retrieves events where the user holds a non-cancelled
// registration, ordered by start date
func (r *EventRepository) GetRegisteredBy(ctx context.Context, userID string) ([]*model.Event, error) {
	query := `
		SELECT * FROM event
		WHERE registered_participants[WHERE user_id = $user AND status != 'cancelled'] != []
		ORDER BY start_date ASC
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"user": userID})
	if err != nil {
		return nil, err
	}

	events := make([]*model.Event, 0)
	for _, data := range unwrapResults(result) {
		event := &model.Event{}
		if err := decodeRecord(data, event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// parseEventResult parses a single event record
func parseEventResult(result interface{}) (*model.Event, error) {
	data, ok := unwrapOne(result)
	if !ok {
		return nil, nil
	}

	event := &model.Event{}
	if err := decodeRecord(data, event); err != nil {
		return nil, err
	}
	return event, nil
}

// participantVars converts a registration roster into query variables
func participantVars(participants []model.Participant) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(participants))
	for _, p := range participants {
		out = append(out, map[string]interface{}{
			"user_id":       p.UserID,
			"status":        string(p.Status),
			"registered_at": p.RegisteredAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}
