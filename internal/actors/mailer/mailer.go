// Package mailer delivers notification messages through the Resend API.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/douglatornell/randopony-tetra-sub000/internal/core/model"
)

// Resend implements the Mailer port.
type Resend struct {
	client *resend.Client
}

// NewResend creates a new Resend mailer.
func NewResend(apiKey string) (*Resend, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key is empty")
	}
	return &Resend{client: resend.NewClient(apiKey)}, nil
}

// Send delivers one message. Message content is built entirely by the core;
// this adapter only moves it onto the wire.
func (r *Resend) Send(ctx context.Context, msg model.Message) error {
	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Body,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}
	if _, err := r.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
