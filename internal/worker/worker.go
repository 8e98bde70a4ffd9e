package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"dpstore-backend/internal/broker"
	"dpstore-backend/internal/mailer"
	"dpstore-backend/internal/models"
	"dpstore-backend/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MailWorker consumes notification events and delivers the matching email.
// Delivery failures are logged and the message is still committed: a mail is
// best-effort and must never wedge the consumer group.
type MailWorker struct {
	consumer *broker.Consumer
	sender   mailer.Sender
	logger   *zap.Logger
}

// NewMailWorker creates a new mail worker
func NewMailWorker(consumer *broker.Consumer, sender mailer.Sender) *MailWorker {
	return &MailWorker{
		consumer: consumer,
		sender:   sender,
		logger:   util.GetLogger(),
	}
}

// Start starts the worker
func (w *MailWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting mail worker")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *MailWorker) Stop() error {
	w.logger.Info("Stopping mail worker")
	return w.consumer.Close()
}

func (w *MailWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	to, subject, html, err := w.render(msg.Value, base.EventType)
	if err != nil {
		// Malformed payloads are dropped, not retried.
		w.logger.Error("Failed to render notification",
			zap.String("event_id", base.EventID),
			zap.String("event_type", base.EventType),
			zap.Error(err))
		return nil
	}
	if to == "" {
		return nil
	}

	if err := w.sender.Send(to, subject, html); err != nil {
		util.EmailsFailedTotal.Inc()
		w.logger.Error("Failed to send notification email",
			zap.String("event_id", base.EventID),
			zap.String("event_type", base.EventType),
			zap.Error(err))
		return nil
	}

	util.EmailsSentTotal.Inc()
	w.logger.Info("Notification email sent",
		zap.String("event_type", base.EventType),
		zap.String("to", to))
	return nil
}

func (w *MailWorker) render(payload []byte, eventType string) (to, subject, html string, err error) {
	switch eventType {
	case models.EventTypeOrderCreated:
		var ev models.OrderCreatedEvent
		if err = json.Unmarshal(payload, &ev); err != nil {
			return
		}
		subject, html = mailer.OrderReceived(&ev)
		to = ev.RecipientEmail

	case models.EventTypeUserRegistered:
		var ev models.UserRegisteredEvent
		if err = json.Unmarshal(payload, &ev); err != nil {
			return
		}
		subject, html = mailer.Welcome(&ev)
		to = ev.RecipientEmail

	case models.EventTypePasswordChanged:
		var ev models.PasswordChangedEvent
		if err = json.Unmarshal(payload, &ev); err != nil {
			return
		}
		subject, html = mailer.PasswordChanged(&ev)
		to = ev.RecipientEmail

	case models.EventTypePasswordResetLink:
		var ev models.PasswordResetLinkEvent
		if err = json.Unmarshal(payload, &ev); err != nil {
			return
		}
		subject, html = mailer.PasswordResetLink(&ev)
		to = ev.RecipientEmail

	case models.EventTypePasswordResetDone:
		var ev models.PasswordResetDoneEvent
		if err = json.Unmarshal(payload, &ev); err != nil {
			return
		}
		subject, html = mailer.PasswordResetDone(&ev)
		to = ev.RecipientEmail

	default:
		w.logger.Warn("Unhandled event type", zap.String("event_type", eventType))
	}
	return
}
