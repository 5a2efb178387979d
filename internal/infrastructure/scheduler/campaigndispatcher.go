package scheduler

import (
	"context"
	"sync"
	"time"

	campaignUsecases "github.com/kinetix-inc/kinetix/internal/application/campaign/usecases"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
)

// CampaignDispatcher polls the durable campaign message queue and hands
// due messages to the dispatch use case. It runs inside the worker binary
// and can run alongside the API server; row claiming keeps them from
// double-sending.
type CampaignDispatcher struct {
	dispatchUC *campaignUsecases.DispatchQueueUseCase
	logger     logger.Interface
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	interval   time.Duration
}

func NewCampaignDispatcher(
	dispatchUC *campaignUsecases.DispatchQueueUseCase,
	pollInterval time.Duration,
	logger logger.Interface,
) *CampaignDispatcher {
	if pollInterval <= 0 {
		pollInterval = 15 * time.Second
	}
	return &CampaignDispatcher{
		dispatchUC: dispatchUC,
		logger:     logger,
		stopChan:   make(chan struct{}),
		interval:   pollInterval,
	}
}

// Start starts the dispatcher loop
func (d *CampaignDispatcher) Start(ctx context.Context) {
	d.logger.Infow("starting campaign dispatcher", "poll_interval", d.interval)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.runLoop(ctx)
	}()
}

// Stop stops the dispatcher gracefully, letting in-flight sends finish.
func (d *CampaignDispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.logger.Infow("stopping campaign dispatcher")
		close(d.stopChan)
		d.wg.Wait()
		d.logger.Infow("campaign dispatcher stopped")
	})
}

func (d *CampaignDispatcher) runLoop(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Infow("campaign dispatcher stopped due to context cancellation")
			return
		case <-d.stopChan:
			return
		case <-ticker.C:
			d.drain(ctx)
		}
	}
}

// drain keeps dispatching until a pass comes back empty, so a long queue
// is not throttled to one batch per poll.
func (d *CampaignDispatcher) drain(ctx context.Context) {
	for {
		processed, err := d.dispatchUC.Execute(ctx)
		if err != nil {
			d.logger.Errorw("campaign dispatch pass failed", "error", err)
			return
		}
		if processed == 0 {
			return
		}

		d.logger.Debugw("campaign dispatch pass finished", "processed", processed)

		select {
		case <-ctx.Done():
			return
		case <-d.stopChan:
			return
		default:
		}
	}
}
