package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/services/markdown"
)

// DispatchConfig tunes one dispatch pass.
type DispatchConfig struct {
	// Workers is the size of the send worker pool.
	Workers int
	// BatchSize caps how many due messages one pass claims.
	BatchSize int
	// MaxAttempts is the per-message delivery attempt ceiling.
	MaxAttempts int
	// BaseBackoff is the retry delay after the first failure; it doubles
	// per subsequent failure.
	BaseBackoff time.Duration
	// SendTimeout bounds a single SMTP send.
	SendTimeout time.Duration
}

// DispatchQueueUseCase drains the durable campaign message queue. Each pass
// claims due messages, renders the campaign markdown to sanitized HTML and
// fans the sends out over a bounded worker pool. Delivery failures are
// logged and retried by the queue; they never bubble up to API callers.
type DispatchQueueUseCase struct {
	campaignRepo campaign.Repository
	messageRepo  campaign.MessageRepository
	sender       EmailSender
	markdownSvc  markdown.Service
	cfg          DispatchConfig
	logger       logger.Interface

	// htmlCache holds rendered bodies per campaign within one pass.
	mu        sync.Mutex
	htmlCache map[uint]string
}

func NewDispatchQueueUseCase(
	campaignRepo campaign.Repository,
	messageRepo campaign.MessageRepository,
	sender EmailSender,
	markdownSvc markdown.Service,
	cfg DispatchConfig,
	logger logger.Interface,
) *DispatchQueueUseCase {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 30 * time.Second
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 15 * time.Second
	}

	return &DispatchQueueUseCase{
		campaignRepo: campaignRepo,
		messageRepo:  messageRepo,
		sender:       sender,
		markdownSvc:  markdownSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Execute runs one dispatch pass and returns how many messages were
// processed.
func (uc *DispatchQueueUseCase) Execute(ctx context.Context) (int, error) {
	now := time.Now().UTC()

	claimed, err := uc.messageRepo.ClaimDue(ctx, now, uc.cfg.BatchSize)
	if err != nil {
		uc.logger.Errorw("failed to claim due messages", "error", err)
		return 0, err
	}
	if len(claimed) == 0 {
		return 0, nil
	}

	uc.mu.Lock()
	uc.htmlCache = make(map[uint]string)
	uc.mu.Unlock()

	jobs := make(chan *campaign.Message)
	var wg sync.WaitGroup

	for i := 0; i < uc.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range jobs {
				uc.deliver(ctx, msg)
			}
		}()
	}

	for _, msg := range claimed {
		jobs <- msg
	}
	close(jobs)
	wg.Wait()

	return len(claimed), nil
}

func (uc *DispatchQueueUseCase) deliver(ctx context.Context, msg *campaign.Message) {
	c, err := uc.campaignRepo.GetByID(ctx, msg.CampaignID())
	if err != nil {
		uc.logger.Errorw("failed to load campaign for message", "error", err, "message_id", msg.MessageID())
		uc.fail(ctx, msg, err)
		return
	}
	if c.Status() != campaign.StatusRunning {
		// Cancelled mid-flight; drop the message without counting it.
		msg.MarkFailed(campaign.ErrCampaignNotRunning, 0, uc.cfg.BaseBackoff, time.Now().UTC())
		if err := uc.messageRepo.Update(ctx, msg); err != nil {
			uc.logger.Errorw("failed to update message", "error", err, "message_id", msg.MessageID())
		}
		return
	}

	html, err := uc.renderedBody(c)
	if err != nil {
		uc.logger.Errorw("failed to render campaign body", "error", err, "campaign_id", c.ID())
		uc.fail(ctx, msg, err)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, uc.cfg.SendTimeout)
	err = uc.sender.Send(sendCtx, msg.Email(), msg.Name(), c.Subject(), html)
	cancel()

	if err != nil {
		uc.logger.Warnw("campaign email delivery failed",
			"error", err,
			"message_id", msg.MessageID(),
			"attempts", msg.Attempts(),
		)
		uc.fail(ctx, msg, err)
		return
	}

	msg.MarkSent()
	if err := uc.messageRepo.Update(ctx, msg); err != nil {
		uc.logger.Errorw("failed to mark message sent", "error", err, "message_id", msg.MessageID())
		return
	}

	uc.recordOutcome(ctx, c.ID(), true)
}

func (uc *DispatchQueueUseCase) fail(ctx context.Context, msg *campaign.Message, cause error) {
	msg.MarkFailed(cause, uc.cfg.MaxAttempts, uc.cfg.BaseBackoff, time.Now().UTC())
	if err := uc.messageRepo.Update(ctx, msg); err != nil {
		uc.logger.Errorw("failed to update message", "error", err, "message_id", msg.MessageID())
		return
	}

	if msg.Status() == campaign.MessageStatusFailed {
		uc.recordOutcome(ctx, msg.CampaignID(), false)
	}
}

// recordOutcome folds one terminal delivery outcome into the campaign
// counters. The increment is a single atomic column update so parallel
// workers never overwrite each other.
func (uc *DispatchQueueUseCase) recordOutcome(ctx context.Context, campaignID uint, delivered bool) {
	if err := uc.campaignRepo.IncrementOutcome(ctx, campaignID, delivered); err != nil {
		uc.logger.Errorw("failed to update campaign counters", "error", err, "campaign_id", campaignID)
		return
	}

	remaining, err := uc.messageRepo.CountUndelivered(ctx, campaignID)
	if err != nil {
		uc.logger.Errorw("failed to count undelivered messages", "error", err, "campaign_id", campaignID)
		return
	}
	if remaining > 0 {
		return
	}

	if err := uc.campaignRepo.Complete(ctx, campaignID, time.Now().UTC()); err != nil {
		uc.logger.Errorw("failed to complete campaign", "error", err, "campaign_id", campaignID)
		return
	}
	uc.logger.Infow("campaign completed", "campaign_id", campaignID)
}

func (uc *DispatchQueueUseCase) renderedBody(c *campaign.Campaign) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if html, ok := uc.htmlCache[c.ID()]; ok {
		return html, nil
	}

	html, err := uc.markdownSvc.ToHTMLSanitized(c.Body())
	if err != nil {
		return "", err
	}
	uc.htmlCache[c.ID()] = html
	return html, nil
}
