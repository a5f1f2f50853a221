package storage

import (
	"context"
	"fmt"

	"pmboard/internal/models"
)

// DefaultActivityLimit bounds activity listings when no limit is given.
const DefaultActivityLimit = 50

const activityColumns = `id, type, entity_type, entity_id, user_id, user_name, message, metadata, timestamp`

// ListActivities returns the most recent activities, newest first.
func (s *Store) ListActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	activities := []models.Activity{}
	err := s.db.SelectContext(ctx, &activities,
		s.db.Rebind(`SELECT `+activityColumns+` FROM activities ORDER BY timestamp DESC, id DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// AppendActivity stores a new activity. Activities are never updated.
func (s *Store) AppendActivity(ctx context.Context, a models.Activity) (models.Activity, error) {
	if !a.Type.Valid() {
		return models.Activity{}, fmt.Errorf("%w: unknown activity type %q", models.ErrInvalid, a.Type)
	}
	if !a.EntityType.Valid() {
		return models.Activity{}, fmt.Errorf("%w: unknown entity type %q", models.ErrInvalid, a.EntityType)
	}
	a.Timestamp = s.timestamp()
	id, err := s.insert(ctx, s.db,
		`INSERT INTO activities(type, entity_type, entity_id, user_id, user_name, message, metadata, timestamp)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Type, a.EntityType, a.EntityID, a.UserID, a.UserName, a.Message, a.Metadata, a.Timestamp)
	if err != nil {
		return models.Activity{}, fmt.Errorf("insert activity: %w", err)
	}
	a.ID = id
	return a, nil
}
