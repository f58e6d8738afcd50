// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/artwithshyz/storefront/internal/config"
	"github.com/artwithshyz/storefront/internal/models"
)

// NotificationService hands off transactional email. Delivery failures are
// logged and swallowed: no triggering operation ever fails because a mail
// could not be sent.
type NotificationService struct {
	config *config.Config
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{config: config}
}

var verificationTemplate = template.Must(template.New("verification").Parse(`
<h2>Hello {{.Name}},</h2>
<p>Thank you for joining ArtWithShyz! Please verify your email address by clicking the link below:</p>
<p><a href="{{.VerificationURL}}">Verify Email Address</a></p>
<p><strong>This verification link will expire in 24 hours.</strong></p>
<p>If you didn't create an account with us, please ignore this email.</p>
`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<h2>Hello {{.Name}},</h2>
<p>We received a request to reset your password. Click the link below to choose a new one:</p>
<p><a href="{{.ResetURL}}">Reset Password</a></p>
<p><strong>This link will expire in 1 hour.</strong></p>
<p>If you didn't request a reset, you can safely ignore this email.</p>
`))

var orderConfirmationTemplate = template.Must(template.New("order_confirmation").Parse(`
<h2>Hello {{.Name}},</h2>
<p>Thank you for your order <strong>{{.OrderNumber}}</strong>!</p>
<p>Order total: ₹{{printf "%.2f" .TotalAmount}} ({{.PaymentMethod}})</p>
<p>We'll email you again when your order ships.</p>
`))

func (s *NotificationService) SendVerificationEmail(user *models.User, token string) {
	data := map[string]interface{}{
		"Name":            user.Name,
		"VerificationURL": fmt.Sprintf("%s/verify-email?token=%s", s.config.Frontend.BaseURL, token),
	}

	if err := s.send(user.Email, "Welcome to ArtWithShyz - Please verify your email", verificationTemplate, data); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("Failed to send verification email")
	}
}

func (s *NotificationService) SendPasswordResetEmail(user *models.User, token string) {
	data := map[string]interface{}{
		"Name":     user.Name,
		"ResetURL": fmt.Sprintf("%s/reset-password?token=%s", s.config.Frontend.BaseURL, token),
	}

	if err := s.send(user.Email, "ArtWithShyz - Password Reset Request", passwordResetTemplate, data); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("Failed to send password reset email")
	}
}

func (s *NotificationService) SendOrderConfirmationEmail(order *models.Order) {
	data := map[string]interface{}{
		"Name":          order.Customer.Name,
		"OrderNumber":   order.OrderNumber,
		"TotalAmount":   order.TotalAmount,
		"PaymentMethod": order.PaymentMethod,
	}

	if err := s.send(order.Customer.Email, "Order Confirmation - "+order.OrderNumber, orderConfirmationTemplate, data); err != nil {
		logrus.WithError(err).WithField("order", order.OrderNumber).Error("Failed to send order confirmation email")
	}
}

func (s *NotificationService) send(to, subject string, tmpl *template.Template, data map[string]interface{}) error {
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email delivery skipped (SMTP not configured)")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.config.Email.FromName, s.config.Email.FromEmail, to, subject, body.String(),
	))

	addr := s.config.Email.SMTPHost + ":" + s.config.Email.SMTPPort
	if err := smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
