package repository

import (
	"github.com/staffhive-dev/workforce-scheduler/backend/internal/domain"
)

func (r *Repository) CreateNotification(notification *domain.Notification) error {
	ctx, cancel := r.queryCtx()
	defer cancel()

	query := `
		INSERT INTO notifications (user_id, trigger_user_id, tag_id, type, activity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at
	`

	args := []any{notification.UserID, notification.TriggerUserID, notification.TagID, notification.Type, notification.Activity}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&notification.ID, &notification.Read, &notification.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetUserNotifications(userID int64, limit, offset int) ([]*domain.Notification, error) {
	query := `
		SELECT id, user_id, trigger_user_id, tag_id, type, activity, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n := &domain.Notification{}
		dst := []any{&n.ID, &n.UserID, &n.TriggerUserID, &n.TagID, &n.Type, &n.Activity, &n.Read, &n.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *Repository) MarkNotificationRead(id, userID int64) error {
	query := `
		UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2
	`

	ctx, cancel := r.queryCtx()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id, userID); err != nil {
		return err
	}

	return nil
}
