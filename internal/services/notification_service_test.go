// internal/services/notification_service_test.go
package services

import (
	"net/smtp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/petpalooza-backend/internal/models"
)

type sentMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func capturingNotifier() (*NotificationService, *[]sentMail) {
	cfg := testConfig()
	cfg.Email.SMTPHost = "smtp.example.com"
	cfg.Email.SMTPPort = "587"
	cfg.Email.SMTPUsername = "mailer"

	var sent []sentMail
	n := NewNotificationService(cfg)
	n.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return n, &sent
}

func TestOrderConfirmationEmail(t *testing.T) {
	n, sent := capturingNotifier()

	order := &models.Order{
		Token:        "tok-123",
		BillingName:  "Asha",
		BillingEmail: "asha@example.com",
		Subtotal:     decimal.RequireFromString("45.23"),
		Shipping:     decimal.RequireFromString("40"),
		Total:        decimal.RequireFromString("85.23"),
		Items: []models.OrderItem{
			{ProductTitle: "Puppy Kibble", Price: decimal.RequireFromString("19.99"), Quantity: 2},
		},
	}
	require.NoError(t, n.SendOrderConfirmation(order))
	require.Len(t, *sent, 1)

	mail := (*sent)[0]
	assert.Equal(t, "smtp.example.com:587", mail.addr)
	assert.Equal(t, "noreply@petpalooza.test", mail.from)
	assert.Equal(t, []string{"asha@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: Order received - tok-123")
	assert.Contains(t, mail.msg, "Thank you, Asha!")
	assert.Contains(t, mail.msg, "<td>19.99</td>")
	assert.Contains(t, mail.msg, "Total: 85.23")
}

func TestOrderConfirmationSkipsWithoutEmail(t *testing.T) {
	n, sent := capturingNotifier()
	require.NoError(t, n.SendOrderConfirmation(&models.Order{Token: "tok"}))
	assert.Empty(t, *sent)
}

func TestWelcomeEmailEscapesUsername(t *testing.T) {
	n, sent := capturingNotifier()
	require.NoError(t, n.SendWelcomeEmail(&models.User{Username: "<b>rex</b>", Email: "rex@example.com"}))
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "Hi &lt;b&gt;rex&lt;/b&gt;,")
	assert.Contains(t, (*sent)[0].msg, "Subject: Welcome to PetPalooza")
}

func TestEmailSkippedWithoutSMTP(t *testing.T) {
	n := NewNotificationService(testConfig())
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	assert.NoError(t, n.SendWelcomeEmail(&models.User{Username: "rex", Email: "rex@example.com"}))
}
