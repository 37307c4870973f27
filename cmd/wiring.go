package cmd

import (
	"context"
	"fmt"
	"time"

	"bonusbot/application"
	"bonusbot/bot"
	"bonusbot/config"
	"bonusbot/database"
	"bonusbot/domain/interfaces"
	"bonusbot/domain/services"
	"bonusbot/infrastructure"
	"bonusbot/repository"

	log "github.com/sirupsen/logrus"
)

// components holds everything the run and notify commands share
type components struct {
	db        *database.DB
	records   *repository.BonusRecordRepository
	roster    *application.RosterCache
	notifier  *application.BonusNotifier
	natsConn  *infrastructure.NATSClient
	publisher interfaces.EventPublisher
}

// close releases NATS and the database pool
func (c *components) close() {
	if c.natsConn != nil {
		if err := c.natsConn.Close(); err != nil {
			log.WithError(err).Warn("Error closing NATS connection")
		}
	}
	if c.db != nil {
		log.Info("Closing database connection...")
		c.db.Close()
	}
}

// buildComponents connects to the database and optional NATS and Discord
// outputs, then assembles the roster cache and notifier
func buildComponents(ctx context.Context, cfg *config.Config) (*components, error) {
	defaultLoc, err := cfg.DefaultLocation()
	if err != nil {
		return nil, err
	}

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c := &components{db: db}

	c.publisher, c.natsConn, err = buildPublisher(ctx, cfg)
	if err != nil {
		c.close()
		return nil, err
	}

	var announcers []application.BonusAnnouncer
	if cfg.AnnouncerEnabled() {
		announcer, err := bot.NewChannelAnnouncer(cfg.DiscordToken, cfg.BonusChannelID, cfg.DiscordPostsPerSecond)
		if err != nil {
			c.close()
			return nil, err
		}
		announcers = append(announcers, announcer)
		log.WithField("channelID", cfg.BonusChannelID).Info("Discord announcer enabled")
	} else {
		log.Info("DISCORD_TOKEN not set, transitions will only be published as events")
	}

	c.records = repository.NewBonusRecordRepository(db)
	c.roster = application.NewRosterCache(c.records, c.publisher)
	c.notifier = application.NewBonusNotifier(
		c.roster,
		repository.NewArtistRepository(db),
		repository.NewNotificationLogRepository(db),
		services.NewBonusResolver(),
		c.publisher,
		defaultLoc,
		announcers...,
	)

	return c, nil
}

func buildPublisher(ctx context.Context, cfg *config.Config) (interfaces.EventPublisher, *infrastructure.NATSClient, error) {
	if cfg.NATSServers == "" {
		log.Info("NATS_SERVERS not set, using no-op event publisher")
		return infrastructure.NewNoopEventPublisher(), nil, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(connectCtx); err != nil {
		return nil, nil, err
	}

	publisher := infrastructure.NewNATSEventPublisher(client, infrastructure.NewEventSubjectMapper())
	if err := publisher.EnsureBonusEventStream(client); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return publisher, client, nil
}
