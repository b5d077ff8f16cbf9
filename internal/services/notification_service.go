// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/petpalooza-backend/internal/config"
	"github.com/javajoker/petpalooza-backend/internal/models"
)

type NotificationService struct {
	config *config.Config
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

type EmailTemplate struct {
	Subject string
	Body    string
}

var emailTemplates = map[string]EmailTemplate{
	"welcome": {
		Subject: "Welcome to {{.SiteName}}",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Hi {{.Username}},</h2>
	<p>Thanks for signing up with {{.SiteName}}.</p>
	<p>Best regards,<br>{{.SiteName}} Team</p>
</body>
</html>`,
	},
	"order_confirmation": {
		Subject: "Order received - {{.Token}}",
		Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you{{if .Name}}, {{.Name}}{{end}}!</h2>
	<p>We have received your order <strong>{{.Token}}</strong>.</p>
	<table>
	{{range .Items}}<tr><td>{{.ProductTitle}}</td><td>x{{.Quantity}}</td><td>{{.Price.StringFixed 2}}</td></tr>
	{{end}}</table>
	<p>Subtotal: {{.Subtotal}}<br>Shipping: {{.Shipping}}<br><strong>Total: {{.Total}}</strong></p>
	<p>{{.SiteName}} Team</p>
</body>
</html>`,
	},
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{
		config: config,
		send:   smtp.SendMail,
	}
}

func (s *NotificationService) SendWelcomeEmail(user *models.User) error {
	data := map[string]interface{}{
		"Username": user.Username,
		"SiteName": s.config.Email.FromName,
	}
	return s.sendTemplate("welcome", user.Email, data)
}

func (s *NotificationService) SendOrderConfirmation(order *models.Order) error {
	if order.BillingEmail == "" {
		return nil
	}
	data := map[string]interface{}{
		"Name":     order.BillingName,
		"Token":    order.Token,
		"Items":    order.Items,
		"Subtotal": order.Subtotal.StringFixed(2),
		"Shipping": order.Shipping.StringFixed(2),
		"Total":    order.Total.StringFixed(2),
		"SiteName": s.config.Email.FromName,
	}
	return s.sendTemplate("order_confirmation", order.BillingEmail, data)
}

func (s *NotificationService) sendTemplate(name, to string, data interface{}) error {
	tpl, ok := emailTemplates[name]
	if !ok {
		return fmt.Errorf("unknown email template %q", name)
	}

	subject, err := s.renderTemplate(tpl.Subject, data)
	if err != nil {
		return fmt.Errorf("failed to render email subject: %w", err)
	}
	body, err := s.renderTemplate(tpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(to, subject, body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" || s.config.Email.SMTPUsername == "" {
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("SMTP not configured, skipping email")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return s.send(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
