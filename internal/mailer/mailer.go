// Package mailer delivers password reset messages. Real delivery is out of
// scope for this service; the default implementation only logs what would
// have been sent.
package mailer

import (
	"context"
	"log"
)

// Mailer sends password reset tokens out-of-band.
type Mailer interface {
	SendPasswordReset(ctx context.Context, email, name, token string) error
}

// LogMailer simulates delivery by logging. It stands in for a real mail
// transport during development and demos.
type LogMailer struct{}

// SendPasswordReset logs the reset token that a real transport would mail.
func (LogMailer) SendPasswordReset(_ context.Context, email, name, token string) error {
	log.Printf("password reset requested for %s", email)
	log.Printf("reset token for %s would be mailed to %s: %s", name, email, token)
	return nil
}
