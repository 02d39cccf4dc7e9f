package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

type MailerConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Receiver string
}

// ContactSubmission is the transient payload forwarded through the mail
// relay. It is never persisted.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}

// Mailer sends a single formatted email per contact submission through an
// SMTP relay.
type Mailer struct {
	cfg      MailerConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{
		cfg:      cfg,
		sendMail: smtp.SendMail,
	}
}

// Configured reports whether all required relay credentials are present.
func (m *Mailer) Configured() bool {
	return m.cfg.User != "" && m.cfg.Password != "" && m.cfg.Receiver != ""
}

// Send forwards one contact submission as a fixed-template email. No retry
// is attempted: a relay failure loses the submission.
func (m *Mailer) Send(ctx context.Context, sub ContactSubmission) error {
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	msg := BuildContactMessage(m.cfg.User, m.cfg.Receiver, sub)

	if err := m.sendMail(addr, auth, m.cfg.User, []string{m.cfg.Receiver}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("from", sub.Email).Msg("Contact submission forwarded via mail relay")
	return nil
}

// BuildContactMessage renders the contact email with plain-text and HTML
// alternatives.
func BuildContactMessage(from, to string, sub ContactSubmission) []byte {
	const boundary = "portfolio-contact-boundary"

	var b strings.Builder
	fmt.Fprintf(&b, "From: Portfolio Contact Form <%s>\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: Portfolio Contact Form Submission from %s\r\n", sub.Name)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\nEmail: %s\r\nMessage: %s\r\n\r\n", sub.Name, sub.Email, sub.Message)

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString("<h3>New Contact Form Submission</h3>\r\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\r\n", sub.Name)
	fmt.Fprintf(&b, "<p><strong>Email:</strong> <a href=\"mailto:%s\">%s</a></p>\r\n", sub.Email, sub.Email)
	fmt.Fprintf(&b, "<p><strong>Message:</strong></p>\r\n<p>%s</p>\r\n\r\n", sub.Message)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}
