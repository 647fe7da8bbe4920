package config

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
	"go.uber.org/fx"
	"gopkg.in/gomail.v2"
)

// Mailer sends a single email. Implementations must not retry; the caller
// decides whether a failure matters.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, textBody, htmlBody string) error
}

// ResendMailer delivers mail through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(cfg *AppConfig) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.FromEmail,
	}
}

func (m *ResendMailer) SendEmail(ctx context.Context, to, subject, textBody, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    textBody,
		Html:    htmlBody,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email via resend: %w", err)
	}
	return nil
}

// SMTPMailer delivers mail through a plain SMTP account, matching the
// original Gmail transport.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *AppConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPUser,
	}
}

func (m *SMTPMailer) SendEmail(_ context.Context, to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}
	return nil
}

// NewMailer picks the SMTP account when one is configured and falls back to
// Resend otherwise.
func NewMailer(lc fx.Lifecycle, cfg *AppConfig) Mailer {
	var mailer Mailer
	if cfg.SMTPUser != "" && cfg.SMTPPassword != "" {
		mailer = NewSMTPMailer(cfg)
	} else {
		mailer = NewResendMailer(cfg)
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Email service initialized")
			return nil
		},
	})
	return mailer
}
