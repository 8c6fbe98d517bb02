// Package email renders and sends transactional mail.
package email

import "context"

// Email represents an email message to be sent.
type Email struct {
	To       []string
	From     string
	Subject  string
	TextBody string
	HTMLBody string // optional
}

// Sender delivers a message. Returns a provider message ID when available.
type Sender interface {
	Send(ctx context.Context, email *Email) (string, error)
}

// NoopSender drops every message. Used when SMTP is not configured.
type NoopSender struct{}

func (NoopSender) Send(context.Context, *Email) (string, error) { return "", nil }
