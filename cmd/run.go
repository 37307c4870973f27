package cmd

import (
	"context"
	"fmt"
	"time"

	"bonusbot/config"
	"bonusbot/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// Run starts the roster cache, its refresh worker and the scheduled notifier,
// then blocks until ctx is cancelled
func Run(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)
	log.WithField("environment", cfg.Environment).Info("Starting bonus bot...")

	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	c, err := buildComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.roster.Refresh(ctx); err != nil {
		return fmt.Errorf("initial roster load failed: %w", err)
	}

	stopRefresh := c.roster.StartRefreshWorker(ctx, cfg.RosterRefreshInterval)
	stopNotifier, err := c.notifier.Start(ctx, cfg.NotifyCron)
	if err != nil {
		stopRefresh()
		return err
	}

	log.Info("Bonus bot is running")
	<-ctx.Done()

	log.Info("Shutting down bonus bot...")
	stopNotifier()
	stopRefresh()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.WithError(err).Warn("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return nil
}

// Notify runs a single notifier pass for the current time and exits
func Notify(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	c, err := buildComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.close()

	if err := c.roster.Refresh(ctx); err != nil {
		return err
	}

	summary, err := c.notifier.RunOnce(ctx, time.Now())
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d artists failed", summary.Failed, summary.Artists)
	}
	return nil
}
