package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/matchday-system/models"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, recipientID string) error
}

type postgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) Create(ctx context.Context, exec SQLExecutor, notification *models.Notification) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO notifications (id, recipient_id, message, link, type, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	var payload interface{}
	if len(notification.Payload) > 0 {
		payload = []byte(notification.Payload)
	}
	return exec.QueryRowContext(ctx, query,
		notification.ID,
		notification.RecipientID,
		notification.Message,
		notification.Link,
		notification.Type,
		payload,
	).Scan(&notification.CreatedAt)
}

func (r *postgresNotificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit int) ([]*models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, recipient_id, message, link, type, payload, read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		n := &models.Notification{}
		var payload []byte
		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.Message,
			&n.Link,
			&n.Type,
			&payload,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		n.Payload = payload
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *postgresNotificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
