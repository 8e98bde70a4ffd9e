package mailer

import (
	"testing"

	"dpstore-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderReceived(t *testing.T) {
	ev := &models.OrderCreatedEvent{
		ExternalID:     "TX-DP-1700000000000-ABC",
		RecipientName:  "Budi",
		ProductName:    "100 Diamonds",
		Quantity:       2,
		UserGameID:     "123456(7890)",
		PaymentMethod:  "gopay",
		TotalPrice:     135000,
	}

	subject, html := OrderReceived(ev)
	assert.Contains(t, subject, "TX-DP-1700000000000-ABC")
	assert.Contains(t, html, "Halo Budi,")
	assert.Contains(t, html, "100 Diamonds")
	assert.Contains(t, html, "Rp 135.000")
}

func TestPasswordResetLink(t *testing.T) {
	ev := &models.PasswordResetLinkEvent{
		RecipientName: "Siti",
		ResetURL:      "https://dpstore.example/reset-password/abc123",
	}

	_, html := PasswordResetLink(ev)
	assert.Contains(t, html, "https://dpstore.example/reset-password/abc123")
}
