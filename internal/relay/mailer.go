// Package relay turns accepted lead records into the two outbound
// notifications: a confirmation to the prospect and an alert to the
// studio inbox. Delivery goes through the Mailer seam so the handler
// can run against the real provider or a logging dry-run.
package relay

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// Message is one outbound email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Mailer delivers a message and returns the provider's id for it.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendMailer delivers through the Resend API.
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer constructs a mailer for the given API key.
func NewResendMailer(apiKey string) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, errors.New("relay: resend api key is required")
	}
	return &ResendMailer{client: resend.NewClient(apiKey)}, nil
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	sent, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("relay: resend send: %w", err)
	}
	return sent.Id, nil
}

// DryRunMailer logs instead of delivering and fabricates ids, for
// local development and tests.
type DryRunMailer struct {
	logger *zap.Logger
}

// NewDryRunMailer constructs a logging mailer. A nil logger is
// replaced with a no-op one.
func NewDryRunMailer(logger *zap.Logger) *DryRunMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DryRunMailer{logger: logger}
}

func (m *DryRunMailer) Send(_ context.Context, msg Message) (string, error) {
	id := uuid.NewString()
	m.logger.Info("dry-run email",
		zap.String("id", id),
		zap.String("from", msg.From),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return id, nil
}
