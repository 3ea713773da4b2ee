// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"fmt"
	"strconv"

	gomail "github.com/wneessen/go-mail"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/env"
)

// Attachment is a file delivered with a message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer sends email. Implemented by the SMTP mailer; tests substitute fakes.
type Mailer interface {
	Send(to, subject, htmlBody string, attachments []Attachment) error
}

// SMTPMailer delivers mail through a configured SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailerFromEnv builds the mailer from MAIL_* environment variables.
func NewSMTPMailerFromEnv() (*SMTPMailer, error) {
	host := env.GetEnv("MAIL_HOST", "")
	if host == "" {
		return nil, fmt.Errorf("MAIL_HOST is not configured")
	}

	port, err := strconv.Atoi(env.GetEnv("MAIL_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAIL_PORT: %w", err)
	}

	return &SMTPMailer{
		host:     host,
		port:     port,
		username: env.GetEnv("MAIL_USERNAME", ""),
		password: env.GetEnv("MAIL_PASSWORD", ""),
		from:     env.GetEnv("MAIL_FROM", "noreply@licensehub.local"),
	}, nil
}

// Send delivers one HTML message with optional attachments.
func (m *SMTPMailer) Send(to, subject, htmlBody string, attachments []Attachment) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid sender address %s: %w", m.from, err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %s: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlBody)

	for _, a := range attachments {
		if err := msg.AttachReader(a.Filename, bytes.NewReader(a.Data),
			gomail.WithFileContentType(gomail.ContentType(a.ContentType))); err != nil {
			return fmt.Errorf("failed to attach %s: %w", a.Filename, err)
		}
	}

	opts := []gomail.Option{
		gomail.WithPort(m.port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if m.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.username),
			gomail.WithPassword(m.password),
		)
	}

	client, err := gomail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
