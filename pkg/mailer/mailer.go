package mailer

import (
	"bytes"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends the verification and password-reset mails over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func NewMailer(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("Email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// SendVerificationCode mails the email verification code.
func (m *Mailer) SendVerificationCode(to, code string, ttl time.Duration) error {
	var body bytes.Buffer
	if err := verificationTemplate.Execute(&body, map[string]any{
		"Code": code,
		"TTL":  ttl,
	}); err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}
	return m.send(to, "ZZINCAFE email verification", body.String())
}

// SendPasswordReset mails the password reset link.
func (m *Mailer) SendPasswordReset(to, link string, ttl time.Duration) error {
	var body bytes.Buffer
	if err := passwordResetTemplate.Execute(&body, map[string]any{
		"Link": link,
		"TTL":  ttl,
	}); err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}
	return m.send(to, "ZZINCAFE password reset", body.String())
}
