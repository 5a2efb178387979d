package email

import (
	"context"

	campaignUsecases "github.com/kinetix-inc/kinetix/internal/application/campaign/usecases"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/metrics"
)

// InstrumentedSender wraps an EmailSender with delivery counters.
type InstrumentedSender struct {
	inner campaignUsecases.EmailSender
}

func NewInstrumentedSender(inner campaignUsecases.EmailSender) *InstrumentedSender {
	return &InstrumentedSender{inner: inner}
}

func (s *InstrumentedSender) Send(ctx context.Context, to, toName, subject, htmlBody string) error {
	err := s.inner.Send(ctx, to, toName, subject, htmlBody)
	if err != nil {
		metrics.CampaignEmailsFailed.Inc()
		return err
	}
	metrics.CampaignEmailsSent.Inc()
	return nil
}
