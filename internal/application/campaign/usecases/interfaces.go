package usecases

import "context"

// EmailSender delivers a single rendered campaign email.
type EmailSender interface {
	Send(ctx context.Context, to, toName, subject, htmlBody string) error
}
