// internal/pkg/email/mailer.go
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
)

// Message represents an outbound email
type Message struct {
	To          []string
	Subject     string
	HTMLContent string
}

// Mailer sends transactional mail over SMTP
type Mailer struct {
	config *config.Config
	logger *logrus.Logger
}

// NewMailer creates a new mailer
func NewMailer(cfg *config.Config, logger *logrus.Logger) *Mailer {
	return &Mailer{
		config: cfg,
		logger: logger,
	}
}

// SendPasswordReset sends a password reset link to the user
func (m *Mailer) SendPasswordReset(to, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.config.App.StoreURL, resetToken)

	body := fmt.Sprintf(`
		<h2>Reset your %s password</h2>
		<p>We received a request to reset your password. The link below is valid for a limited time.</p>
		<p><a href="%s">Reset password</a></p>
		<p>If you did not request this, you can safely ignore this email.</p>`,
		m.config.App.StoreName, resetURL)

	return m.send(&Message{
		To:          []string{to},
		Subject:     fmt.Sprintf("%s password reset", m.config.App.StoreName),
		HTMLContent: body,
	})
}

// SendOrderConfirmation sends an order confirmation summary
func (m *Mailer) SendOrderConfirmation(to, orderNumber string, total float64) error {
	body := fmt.Sprintf(`
		<h2>Thanks for your order!</h2>
		<p>Your order <strong>%s</strong> has been received.</p>
		<p>Order total: <strong>$%.2f</strong></p>
		<p>You can review your order history any time from your %s profile.</p>`,
		orderNumber, total, m.config.App.StoreName)

	return m.send(&Message{
		To:          []string{to},
		Subject:     fmt.Sprintf("Order confirmation %s", orderNumber),
		HTMLContent: body,
	})
}

// send delivers a message over SMTP
func (m *Mailer) send(msg *Message) error {
	if m.config.Email.SMTPHost == "" {
		// No SMTP configured (common in development): log and move on
		m.logger.WithFields(logrus.Fields{
			"to":      msg.To,
			"subject": msg.Subject,
		}).Info("SMTP not configured, skipping email delivery")
		return nil
	}

	auth := smtp.PlainAuth("",
		m.config.Email.SMTPUser,
		m.config.Email.SMTPPass,
		m.config.Email.SMTPHost)

	fromEmail := m.config.Email.FromEmail
	from := fromEmail
	if m.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.config.Email.FromName, fromEmail)
	}

	headers := []string{
		"From: " + from,
		"To: " + strings.Join(msg.To, ", "),
		"Subject: " + msg.Subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="utf-8"`,
	}

	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, "\r\n"))
	buf.WriteString("\r\n\r\n")
	buf.WriteString(msg.HTMLContent)

	serverAddr := fmt.Sprintf("%s:%d", m.config.Email.SMTPHost, m.config.Email.SMTPPort)

	if m.config.Email.UseTLS {
		return m.sendWithTLS(serverAddr, auth, fromEmail, msg.To, buf.Bytes())
	}
	return smtp.SendMail(serverAddr, auth, fromEmail, msg.To, buf.Bytes())
}

// sendWithTLS delivers over an explicit TLS connection
func (m *Mailer) sendWithTLS(serverAddr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	tlsConfig := &tls.Config{
		ServerName: m.config.Email.SMTPHost,
	}

	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to create TLS connection: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.config.Email.SMTPHost)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", addr, err)
		}
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to send DATA command: %w", err)
	}
	defer writer.Close()

	if _, err := writer.Write(msg); err != nil {
		return fmt.Errorf("failed to write email content: %w", err)
	}

	return nil
}
