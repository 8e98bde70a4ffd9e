package models

import "time"

// Notification event types consumed by the mailer worker.
const (
	EventTypeOrderCreated      = "ORDER_CREATED"
	EventTypeUserRegistered    = "USER_REGISTERED"
	EventTypePasswordChanged   = "PASSWORD_CHANGED"
	EventTypePasswordResetLink = "PASSWORD_RESET_LINK"
	EventTypePasswordResetDone = "PASSWORD_RESET_DONE"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent is published after an order commits. RecipientName falls
// back to "Pelanggan" for guest checkouts.
type OrderCreatedEvent struct {
	BaseEvent
	ExternalID     string `json:"external_id"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UserGameID     string `json:"user_game_id"`
	PaymentMethod  string `json:"payment_method"`
	TotalPrice     int64  `json:"total_price"`
}

// UserRegisteredEvent triggers the welcome email.
type UserRegisteredEvent struct {
	BaseEvent
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
}

// PasswordChangedEvent triggers the change-notice email.
type PasswordChangedEvent struct {
	BaseEvent
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
}

// PasswordResetLinkEvent carries the reset URL for the forgot-password mail.
type PasswordResetLinkEvent struct {
	BaseEvent
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	ResetURL       string `json:"reset_url"`
}

// PasswordResetDoneEvent confirms a completed reset.
type PasswordResetDoneEvent struct {
	BaseEvent
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
}
