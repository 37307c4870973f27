package repository

import (
	"context"
	"fmt"
	"time"

	"bonusbot/database"
	"bonusbot/domain/entities"
	"bonusbot/domain/interfaces"
)

// NotificationLogRepository implements interfaces.NotificationLogRepository
type NotificationLogRepository struct {
	q Queryable
}

// NewNotificationLogRepository creates a new notification log repository
func NewNotificationLogRepository(db *database.DB) *NotificationLogRepository {
	return &NotificationLogRepository{q: db.Pool}
}

var _ interfaces.NotificationLogRepository = (*NotificationLogRepository)(nil)

// MarkSent records that day's transitions for artist were announced.
// It returns false when the day had already been recorded.
func (r *NotificationLogRepository) MarkSent(ctx context.Context, artist string, day time.Time) (bool, error) {
	query := `
		INSERT INTO bonus_notifications (artist_name, notified_on)
		VALUES ($1, $2)
		ON CONFLICT (artist_name, notified_on) DO NOTHING
	`

	tag, err := r.q.Exec(ctx, query, artist, entities.Day(day))
	if err != nil {
		return false, fmt.Errorf("failed to mark %s notified on %s: %w", artist, day.Format(entities.DateLayout), err)
	}

	return tag.RowsAffected() == 1, nil
}
