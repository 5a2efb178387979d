package scheduler

import (
	"context"
	"sync"
	"time"

	subscriptionUsecases "github.com/kinetix-inc/kinetix/internal/application/subscription/usecases"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/metrics"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

// ExpiryScheduler runs the daily sweep that marks overdue active
// subscriptions expired. Reads always check the end date too, so the sweep
// is about keeping stored statuses honest for reports, not about gating
// access.
type ExpiryScheduler struct {
	expireSubscriptionsUC *subscriptionUsecases.ExpireSubscriptionsUseCase
	logger                logger.Interface
	stopChan              chan struct{}
	stopOnce              sync.Once
	wg                    sync.WaitGroup
	interval              time.Duration
}

func NewExpiryScheduler(
	expireSubscriptionsUC *subscriptionUsecases.ExpireSubscriptionsUseCase,
	logger logger.Interface,
) *ExpiryScheduler {
	return &ExpiryScheduler{
		expireSubscriptionsUC: expireSubscriptionsUC,
		logger:                logger,
		stopChan:              make(chan struct{}),
		interval:              24 * time.Hour,
	}
}

// Start starts the scheduler
func (s *ExpiryScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting expiry scheduler", "interval", s.interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.runLoop(ctx)
	}()
}

// Stop stops the scheduler gracefully
func (s *ExpiryScheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Infow("stopping expiry scheduler")
		close(s.stopChan)
		s.wg.Wait()
		s.logger.Infow("expiry scheduler stopped")
	})
}

func (s *ExpiryScheduler) runLoop(ctx context.Context) {
	// Run immediately on startup to clear any backlog
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("expiry scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *ExpiryScheduler) sweep(ctx context.Context) {
	startTime := time.Now()

	expired, err := s.expireSubscriptionsUC.Execute(ctx)
	if err != nil {
		s.logger.Errorw("expiry sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	metrics.SubscriptionsExpired.Add(float64(expired))

	if expired > 0 {
		s.logger.Infow("expiry sweep finished",
			"expired", expired,
			"duration", time.Since(startTime),
		)
	}
}
