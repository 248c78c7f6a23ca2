// internal/app/system/mailer/mailer.go

// Package mailer sends activation emails over SMTP. In deployments
// without an SMTP host configured, NewFromConfig falls back to a
// log-only sender so dev environments work without a mail relay.
package mailer

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Email is one outbound message. TextBody is required; HTMLBody is
// optional and, when present, the message goes out as
// multipart/alternative.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers an Email. The signups feature holds this interface
// so tests can substitute a recording fake.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Config holds SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends through an SMTP relay with optional PLAIN auth.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New creates an SMTP Mailer.
func New(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log}
}

// NewFromConfig returns an SMTP mailer when a host is configured,
// otherwise a log-only sender.
func NewFromConfig(cfg Config, log *zap.Logger) Sender {
	if cfg.Host == "" {
		log.Warn("no SMTP host configured; activation emails will only be logged")
		return LogSender{log: log}
	}
	return New(cfg, log)
}

const boundary = "uncfmixedpart"

// Send delivers the email. The ctx parameter bounds nothing today
// (net/smtp has no context support) but keeps the signature uniform
// with the stores.
func (m *Mailer) Send(ctx context.Context, email Email) error {
	_ = ctx

	if email.To == "" {
		return fmt.Errorf("mailer: empty recipient")
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	msg := buildMessage(m.cfg.From, email)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.To}, msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", email.To, err)
	}

	m.log.Info("email sent",
		zap.String("to", email.To),
		zap.String("subject", email.Subject))
	return nil
}

func buildMessage(from string, email Email) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody == "" {
		b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		b.WriteString(email.TextBody)
		return []byte(b.String())
	}

	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(email.TextBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(email.HTMLBody)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

// LogSender writes the would-be email to the log instead of sending.
type LogSender struct {
	log *zap.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(log *zap.Logger) LogSender {
	return LogSender{log: log}
}

func (s LogSender) Send(ctx context.Context, email Email) error {
	_ = ctx
	s.log.Info("email (log only)",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("text_body", email.TextBody))
	return nil
}
