package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/cutiefy/cutiefy-backend/pkg/config"
)

// Mailer delivers a single HTML message. Implementations must honor the
// context deadline.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// SMTPMailer sends through a plain SMTP relay with AUTH PLAIN, the same
// transport the storefront has always used.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTP builds a mailer from the SMTP section of the config.
func NewSMTP(cfg config.SMTPConfig) (*SMTPMailer, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("smtp port must be positive")
	}
	return &SMTPMailer{cfg: cfg}, nil
}

// From returns the configured sender address, falling back to the SMTP user.
func (m *SMTPMailer) From() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.User
}

// Send delivers the message. The smtp package has no context support, so the
// deadline is checked up front; the dial itself is bounded by the server.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("recipient is required")
	}

	from := m.From()
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "From: %s\r\n", from)
	fmt.Fprintf(&body, "To: %s\r\n", msg.To)
	fmt.Fprintf(&body, "Subject: %s\r\n", msg.Subject)
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	if err := smtp.SendMail(addr, auth, from, []string{msg.To}, []byte(body.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}
