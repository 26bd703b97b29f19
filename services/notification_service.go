package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Dosada05/matchday-system/models"
	"github.com/Dosada05/matchday-system/repositories"
	"github.com/google/uuid"
)

// Broadcaster pushes a message to a named room; satisfied by live.Hub.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// DispatchPublisher hands a notification record to the external Notification
// Dispatcher (AMQP in production, nil in tests).
type DispatchPublisher interface {
	Publish(ctx context.Context, notification *models.Notification) error
}

type NotificationInput struct {
	RecipientID string
	Message     string
	Link        string
	Type        models.NotificationType
	Payload     interface{}
}

// Notifier is the boundary other services emit through: Record persists the
// row inside the caller's transaction, Publish pushes it after commit.
type Notifier interface {
	Record(ctx context.Context, exec repositories.SQLExecutor, input NotificationInput) (*models.Notification, error)
	Publish(ctx context.Context, notifications ...*models.Notification)
}

type NotificationService interface {
	Notifier
	ListInbox(ctx context.Context, session models.Session, limit int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, session models.Session, id string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	hub              Broadcaster
	dispatcher       DispatchPublisher
	logger           *slog.Logger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	hub Broadcaster,
	dispatcher DispatchPublisher,
	logger *slog.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		hub:              hub,
		dispatcher:       dispatcher,
		logger:           logger,
	}
}

func (s *notificationService) Record(ctx context.Context, exec repositories.SQLExecutor, input NotificationInput) (*models.Notification, error) {
	notificationType := input.Type
	if notificationType == "" {
		notificationType = models.NotificationGeneric
	}

	notification := &models.Notification{
		ID:          uuid.NewString(),
		RecipientID: input.RecipientID,
		Message:     input.Message,
		Link:        input.Link,
		Type:        notificationType,
	}
	if input.Payload != nil {
		payload, err := json.Marshal(input.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal notification payload: %w", err)
		}
		notification.Payload = payload
	}

	if err := s.notificationRepo.Create(ctx, exec, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return notification, nil
}

// Publish is fire-and-forget: delivery to the inbox already happened via the
// persisted record, the push and the dispatcher feed are best-effort.
func (s *notificationService) Publish(ctx context.Context, notifications ...*models.Notification) {
	for _, notification := range notifications {
		if notification == nil {
			continue
		}
		if s.hub != nil {
			s.hub.BroadcastToRoom("user:"+notification.RecipientID, notification)
		}
		if s.dispatcher != nil {
			if err := s.dispatcher.Publish(ctx, notification); err != nil {
				s.logger.Warn("failed to publish notification to dispatcher",
					slog.String("notification_id", notification.ID),
					slog.Any("error", err))
			}
		}
	}
}

func (s *notificationService) ListInbox(ctx context.Context, session models.Session, limit int) ([]*models.Notification, error) {
	notifications, err := s.notificationRepo.ListByRecipient(ctx, session.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, session models.Session, id string) error {
	if err := s.notificationRepo.MarkRead(ctx, id, session.UserID); err != nil {
		if err == repositories.ErrNotificationNotFound {
			return ErrForbiddenOperation
		}
		return err
	}
	return nil
}
