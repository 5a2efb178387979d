package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinetix-inc/kinetix/internal/domain/campaign"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/services/markdown"
)

type stubCampaignRepo struct {
	mu          sync.Mutex
	campaign    *campaign.Campaign
	sentCount   int
	failedCount int
	completions int
}

func (r *stubCampaignRepo) Create(ctx context.Context, c *campaign.Campaign) error { return nil }
func (r *stubCampaignRepo) Update(ctx context.Context, c *campaign.Campaign) error { return nil }

func (r *stubCampaignRepo) GetByID(ctx context.Context, id uint) (*campaign.Campaign, error) {
	return r.campaign, nil
}

func (r *stubCampaignRepo) List(ctx context.Context, offset, limit int) ([]*campaign.Campaign, int64, error) {
	return nil, 0, nil
}

func (r *stubCampaignRepo) IncrementOutcome(ctx context.Context, campaignID uint, delivered bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if delivered {
		r.sentCount++
	} else {
		r.failedCount++
	}
	return nil
}

func (r *stubCampaignRepo) Complete(ctx context.Context, campaignID uint, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions++
	return nil
}

type stubMessageRepo struct {
	mu        sync.Mutex
	due       []*campaign.Message
	remaining int64
}

func (r *stubMessageRepo) CreateBatch(ctx context.Context, messages []*campaign.Message) error {
	return nil
}

func (r *stubMessageRepo) Update(ctx context.Context, m *campaign.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.IsTerminal() {
		r.remaining--
	}
	return nil
}

func (r *stubMessageRepo) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*campaign.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	claimed := r.due
	r.due = nil
	for _, m := range claimed {
		if err := m.MarkSending(); err != nil {
			return nil, err
		}
	}
	return claimed, nil
}

func (r *stubMessageRepo) CountUndelivered(ctx context.Context, campaignID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, nil
}

func (r *stubMessageRepo) DiscardQueued(ctx context.Context, campaignID uint) error { return nil }

type stubSender struct {
	err error
}

func (s *stubSender) Send(ctx context.Context, to, toName, subject, htmlBody string) error {
	return s.err
}

func newDispatchFixture(t *testing.T, recipients int, sendErr error) (*DispatchQueueUseCase, *stubCampaignRepo, *stubMessageRepo) {
	t.Helper()

	c, err := campaign.NewCampaign("spring promo", "New classes", "**Join us**", campaign.AudienceAll)
	require.NoError(t, err)
	require.NoError(t, c.SetID(1))
	require.NoError(t, c.Start(recipients))

	messages := make([]*campaign.Message, 0, recipients)
	for i := 0; i < recipients; i++ {
		m, err := campaign.NewMessage(1, uint(i+1), fmt.Sprintf("m%d@example.com", i+1), "Member")
		require.NoError(t, err)
		messages = append(messages, m)
	}

	campaignRepo := &stubCampaignRepo{campaign: c}
	messageRepo := &stubMessageRepo{due: messages, remaining: int64(recipients)}

	uc := NewDispatchQueueUseCase(
		campaignRepo,
		messageRepo,
		&stubSender{err: sendErr},
		markdown.NewService(),
		DispatchConfig{Workers: 8, BatchSize: recipients, MaxAttempts: 1},
		logger.NewLogger(),
	)
	return uc, campaignRepo, messageRepo
}

// Parallel workers each record their own outcome; every delivery must land
// in the counters exactly once.
func TestDispatchQueue_ConcurrentDeliveriesCountEverySend(t *testing.T) {
	const recipients = 20
	uc, campaignRepo, messageRepo := newDispatchFixture(t, recipients, nil)

	processed, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, recipients, processed)

	assert.Equal(t, recipients, campaignRepo.sentCount)
	assert.Equal(t, 0, campaignRepo.failedCount)
	assert.GreaterOrEqual(t, campaignRepo.completions, 1)

	remaining, err := messageRepo.CountUndelivered(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), remaining)
}

func TestDispatchQueue_PermanentFailuresCountEveryFailure(t *testing.T) {
	const recipients = 20
	uc, campaignRepo, _ := newDispatchFixture(t, recipients, errors.New("smtp unavailable"))

	processed, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, recipients, processed)

	assert.Equal(t, 0, campaignRepo.sentCount)
	assert.Equal(t, recipients, campaignRepo.failedCount)
	assert.GreaterOrEqual(t, campaignRepo.completions, 1)
}
