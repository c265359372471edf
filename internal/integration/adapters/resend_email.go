// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/reading-tracker/backend/internal/application/adapter"
)

// resendEmailSender implements the adapter.EmailSender interface using Resend.
type resendEmailSender struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendEmailSender creates a new Resend-backed email sender.
func NewResendEmailSender(apiKey, fromName, fromEmail string) adapter.EmailSender {
	return &resendEmailSender{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send sends an email via Resend.
func (s *resendEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send email via resend: %w", err)
	}
	return nil
}
