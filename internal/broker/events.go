package broker

import (
	"context"
	"time"

	"dpstore-backend/internal/models"

	"github.com/google/uuid"
)

// NotificationPublisher publishes notification events after the owning
// database transaction has committed. Publish failures must be logged by the
// caller, never surfaced to the customer.
type NotificationPublisher struct {
	producer *Producer
}

// NewNotificationPublisher creates a new notification publisher
func NewNotificationPublisher(producer *Producer) *NotificationPublisher {
	return &NotificationPublisher{producer: producer}
}

// NewBaseEvent stamps a fresh event envelope of the given type.
func NewBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// PublishOrderCreated publishes the order-received notification, keyed by
// external id so retries for one order stay ordered.
func (np *NotificationPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	return np.producer.PublishEvent(ctx, event.ExternalID, event)
}

// PublishUserRegistered publishes the welcome notification.
func (np *NotificationPublisher) PublishUserRegistered(ctx context.Context, event *models.UserRegisteredEvent) error {
	return np.producer.PublishEvent(ctx, event.RecipientEmail, event)
}

// PublishPasswordChanged publishes the password-change notice.
func (np *NotificationPublisher) PublishPasswordChanged(ctx context.Context, event *models.PasswordChangedEvent) error {
	return np.producer.PublishEvent(ctx, event.RecipientEmail, event)
}

// PublishPasswordResetLink publishes the forgot-password link mail.
func (np *NotificationPublisher) PublishPasswordResetLink(ctx context.Context, event *models.PasswordResetLinkEvent) error {
	return np.producer.PublishEvent(ctx, event.RecipientEmail, event)
}

// PublishPasswordResetDone publishes the reset confirmation mail.
func (np *NotificationPublisher) PublishPasswordResetDone(ctx context.Context, event *models.PasswordResetDoneEvent) error {
	return np.producer.PublishEvent(ctx, event.RecipientEmail, event)
}
