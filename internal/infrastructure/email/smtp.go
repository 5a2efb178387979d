package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/kinetix-inc/kinetix/internal/shared/config"
)

// SMTPEmailService sends campaign email over plain SMTP via gomail.
type SMTPEmailService struct {
	cfg    config.EmailConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPEmailService{
		cfg:    cfg,
		dialer: dialer,
	}
}

// Send delivers one HTML email. gomail has no context support, so the
// dial-and-send runs in a goroutine and the context only bounds the wait.
func (s *SMTPEmailService) Send(ctx context.Context, to, toName, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	if toName != "" {
		m.SetAddressHeader("To", to, toName)
	} else {
		m.SetHeader("To", to)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send to %s: %w", to, ctx.Err())
	}
}
