// Package email sends transactional mail through the Resend API.
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Message is a single outgoing HTML email
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers a message and returns the provider's message id
type Sender interface {
	Send(ctx context.Context, msg *Message) (string, error)
}

// SenderFactory builds a Sender for an API key. The key is resolved per
// request, so senders are not cached.
type SenderFactory func(apiKey string) Sender

// ResendSender implements Sender with the Resend SDK
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a Resend-backed sender
func NewResendSender(apiKey string) Sender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

// Send posts the message to Resend
func (s *ResendSender) Send(ctx context.Context, msg *Message) (string, error) {
	if len(msg.To) == 0 {
		return "", errors.New("no recipients")
	}

	params := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}

	resp, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return resp.Id, nil
}
