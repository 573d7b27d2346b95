package model

import "context"

// Mailer delivers plain-text messages to a single recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
