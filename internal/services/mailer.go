package services

import (
	"context"
	"fmt"
	"html"

	"portfolio-backend/internal/config"

	"github.com/resend/resend-go/v2"
)

type Mailer struct {
	client *resend.Client
	from   string
	to     string
}

func NewMailer(cfg *config.EmailConfig) *Mailer {
	return &Mailer{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From,
		to:     cfg.To,
	}
}

// Configured reports whether the delivery credentials are present.
func (m *Mailer) Configured() bool {
	return m.to != ""
}

// Send delivers the contact-form message to the fixed recipient and
// returns the provider's message id.
func (m *Mailer) Send(ctx context.Context, name, email, message string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.to},
		ReplyTo: email,
		Subject: "Project Request",
		Html:    contactEmailHTML(name, email, message),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("send contact email: %w", err)
	}
	return sent.Id, nil
}

func contactEmailHTML(name, email, message string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; line-height: 1.5;">
  <h1>New project request from %s</h1>
  <p><strong>Email:</strong> %s</p>
  <p>%s</p>
</div>`,
		html.EscapeString(name),
		html.EscapeString(email),
		html.EscapeString(message),
	)
}
