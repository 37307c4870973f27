package bot

import (
	"context"
	"fmt"

	"bonusbot/application"
	"bonusbot/application/dto"
	"bonusbot/bot/common"
	"bonusbot/infrastructure/observability"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// messageSender is the REST call the announcer needs from *discordgo.Session
type messageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelAnnouncer posts bonus transitions as plain text to one Discord channel.
// It only uses the REST API and never opens a gateway connection.
type ChannelAnnouncer struct {
	sender    messageSender
	channelID string
	limiter   *rate.Limiter
}

var _ application.BonusAnnouncer = (*ChannelAnnouncer)(nil)

// NewChannelAnnouncer creates a REST-only session for token
func NewChannelAnnouncer(token, channelID string, postsPerSecond float64) (*ChannelAnnouncer, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return newChannelAnnouncer(session, channelID, postsPerSecond), nil
}

func newChannelAnnouncer(sender messageSender, channelID string, postsPerSecond float64) *ChannelAnnouncer {
	if postsPerSecond <= 0 {
		postsPerSecond = 1
	}
	return &ChannelAnnouncer{
		sender:    sender,
		channelID: channelID,
		limiter:   rate.NewLimiter(rate.Limit(postsPerSecond), 1),
	}
}

// Announce posts one message per chunk of the rendered announcement
func (a *ChannelAnnouncer) Announce(ctx context.Context, announcement dto.BonusAnnouncementDTO) error {
	if len(announcement.Bonuses) == 0 {
		return nil
	}

	content := common.FormatAnnouncement(announcement.Artist, announcement.Day,
		announcement.Starting(), announcement.Ending())

	for _, chunk := range common.SplitMessage(content, common.MaxMessageLength) {
		if err := a.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		_, err := a.sender.ChannelMessageSendComplex(a.channelID, &discordgo.MessageSend{
			Content:         chunk,
			AllowedMentions: &discordgo.MessageAllowedMentions{},
		}, discordgo.WithContext(ctx))
		observability.GetMetrics().RecordAnnouncement(err)
		if err != nil {
			return fmt.Errorf("failed to post to channel %s: %w", a.channelID, err)
		}
	}

	log.WithFields(log.Fields{
		"artist":    announcement.Artist,
		"channelID": a.channelID,
		"bonuses":   len(announcement.Bonuses),
	}).Info("Posted bonus announcement")
	return nil
}
