package notification

import (
	"context"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"venuebook/internal/pkg/logger"
)

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.dialer.DialAndSend(msg)
}

// DevConsoleMailer logs outgoing mail instead of sending it. Used when no
// SMTP server is configured.
type DevConsoleMailer struct {
	log *logger.Logger
}

func NewDevConsoleMailer(log *logger.Logger) *DevConsoleMailer {
	return &DevConsoleMailer{log: log}
}

func (m *DevConsoleMailer) Send(_ context.Context, to, subject, _ string) error {
	m.log.Info("dev mail",
		zap.String("to", to),
		zap.String("subject", subject),
	)
	return nil
}
