package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	campaignUsecases "github.com/kinetix-inc/kinetix/internal/application/campaign/usecases"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/config"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/database"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/email"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/repository"
	"github.com/kinetix-inc/kinetix/internal/infrastructure/scheduler"
	"github.com/kinetix-inc/kinetix/internal/shared/biztime"
	"github.com/kinetix-inc/kinetix/internal/shared/logger"
	"github.com/kinetix-inc/kinetix/internal/shared/services/markdown"
)

// The worker drains the campaign message queue. It runs separately from
// the API server so slow SMTP sends never block request handling.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting campaign worker", "environment", env)

	if err := biztime.Init(cfg.Business.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	campaignRepo := repository.NewCampaignRepository(database.Get(), log)
	messageRepo := repository.NewCampaignMessageRepository(database.Get(), log)

	sender := email.NewInstrumentedSender(email.NewSMTPEmailService(cfg.Email))

	dispatchUC := campaignUsecases.NewDispatchQueueUseCase(
		campaignRepo,
		messageRepo,
		sender,
		markdown.NewService(),
		campaignUsecases.DispatchConfig{
			Workers:     cfg.Campaign.Workers,
			BatchSize:   cfg.Campaign.BatchSize,
			MaxAttempts: cfg.Campaign.MaxAttempts,
			BaseBackoff: time.Duration(cfg.Campaign.BackoffSeconds) * time.Second,
			SendTimeout: time.Duration(cfg.Campaign.SendTimeoutSecs) * time.Second,
		},
		log,
	)

	dispatcher := scheduler.NewCampaignDispatcher(
		dispatchUC,
		time.Duration(cfg.Campaign.PollSeconds)*time.Second,
		log,
	)
	dispatcher.Start(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down campaign worker")
	dispatcher.Stop()
	log.Infow("campaign worker exited")

	return nil
}
